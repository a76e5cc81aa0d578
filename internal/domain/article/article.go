package article

import (
	"strings"
	"time"

	"github.com/kailas-cloud/pressdex/internal/domain"
)

// Field size limits.
const (
	MaxTitleLength       = 512
	MaxDescriptionLength = 2048
	MaxBodySize          = 1048576 // 1MB
	MaxAuthorLength      = 256
)

// Article is the indexed press article aggregate (immutable value object).
type Article struct {
	id              string
	title           string
	description     string
	body            string
	author          string
	publicationDate time.Time
	ingestedAt      time.Time
}

// New validates and creates an Article. The ID is assigned by the caller
// (the repository generates one on ingest). A zero publication date
// defaults to the current time.
func New(id, title, description, body, author string, publicationDate time.Time) (Article, error) {
	if strings.TrimSpace(title) == "" {
		return Article{}, domain.NewValidation("title", "is required")
	}
	if len(title) > MaxTitleLength {
		return Article{}, domain.NewValidation("title", "too long")
	}
	if strings.TrimSpace(description) == "" {
		return Article{}, domain.NewValidation("description", "is required")
	}
	if len(description) > MaxDescriptionLength {
		return Article{}, domain.NewValidation("description", "too long")
	}
	if strings.TrimSpace(body) == "" {
		return Article{}, domain.NewValidation("body", "is required")
	}
	if len(body) > MaxBodySize {
		return Article{}, domain.NewValidation("body", "too large")
	}
	if strings.TrimSpace(author) == "" {
		return Article{}, domain.NewValidation("author", "is required")
	}
	if len(author) > MaxAuthorLength {
		return Article{}, domain.NewValidation("author", "too long")
	}

	now := time.Now().UTC()
	if publicationDate.IsZero() {
		publicationDate = now
	}

	return Article{
		id:              id,
		title:           title,
		description:     description,
		body:            body,
		author:          author,
		publicationDate: publicationDate,
		ingestedAt:      now,
	}, nil
}

// Reconstruct creates an Article without validation (storage hydration).
func Reconstruct(id, title, description, body, author string, publicationDate, ingestedAt time.Time) Article {
	return Article{
		id:              id,
		title:           title,
		description:     description,
		body:            body,
		author:          author,
		publicationDate: publicationDate,
		ingestedAt:      ingestedAt,
	}
}

// ID returns the article identifier.
func (a *Article) ID() string { return a.id }

// Title returns the headline.
func (a *Article) Title() string { return a.title }

// Description returns the summary blurb.
func (a *Article) Description() string { return a.description }

// Body returns the full article text.
func (a *Article) Body() string { return a.body }

// Author returns the byline.
func (a *Article) Author() string { return a.author }

// PublicationDate returns when the article was published.
func (a *Article) PublicationDate() time.Time { return a.publicationDate }

// IngestedAt returns when the article entered the index.
func (a *Article) IngestedAt() time.Time { return a.ingestedAt }

// WithID returns a copy with the given identifier set.
func (a *Article) WithID(id string) Article {
	c := *a
	c.id = id
	return c
}
