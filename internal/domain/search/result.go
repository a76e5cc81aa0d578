package search

import "github.com/kailas-cloud/pressdex/internal/domain/article"

// Hit is one matched article with its relevance score and any
// highlighted field fragments.
type Hit struct {
	Article    article.Article
	Score      float64
	Highlights map[string]string
}

// Page is one window of search results.
type Page struct {
	Total int
	From  int
	Size  int
	Hits  []Hit
}

// HasMore reports whether results exist beyond this window. The window
// size counts, not the number of hits actually returned, so a short
// final page never claims a successor.
func (p *Page) HasMore() bool {
	return p.Total > p.From+p.Size
}
