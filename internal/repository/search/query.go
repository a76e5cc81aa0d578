package search

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/pressdex/internal/db"
	domsearch "github.com/kailas-cloud/pressdex/internal/domain/search"
)

// minFuzzyRunes is the shortest token that gets fuzzy matching. Below
// this, a single edit distance matches too much noise.
const minFuzzyRunes = 3

// textFields are the free-text fields a term is matched against.
const textFields = "title|description|body|author"

// buildQueryString composes the FT query from a domain query: the
// fuzzy free-text clause AND-composed with the exact-author and
// publication-date filters. Blank everything means match-all.
func buildQueryString(q *domsearch.Query) string {
	var clauses []string

	if !q.MatchAll() {
		if c := fuzzyClause(q.Term()); c != "" {
			clauses = append(clauses, c)
		}
	}

	if q.Author() != "" {
		clauses = append(clauses, "@author_exact:{"+db.EscapeTagValue(q.Author())+"}")
	}

	if !q.DateFrom().IsZero() || !q.DateTo().IsZero() {
		clauses = append(clauses, dateClause(q))
	}

	if len(clauses) == 0 {
		return "*"
	}
	return strings.Join(clauses, " ")
}

// fuzzyClause builds an OR of the query tokens across all text fields.
// Tokens long enough get %fuzzy% matching; short ones match exactly.
func fuzzyClause(term string) string {
	tokens := strings.Fields(term)
	if len(tokens) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		escaped := db.EscapeQueryTerm(tok)
		if escaped == "" {
			continue
		}
		if len([]rune(tok)) >= minFuzzyRunes {
			parts = append(parts, "%"+escaped+"%")
		} else {
			parts = append(parts, escaped)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return "@" + textFields + ":(" + strings.Join(parts, "|") + ")"
}

func dateClause(q *domsearch.Query) string {
	lo, hi := "-inf", "+inf"
	if !q.DateFrom().IsZero() {
		lo = strconv.FormatInt(q.DateFrom().UnixMilli(), 10)
	}
	if !q.DateTo().IsZero() {
		hi = strconv.FormatInt(q.DateTo().UnixMilli(), 10)
	}
	return "@publication_date:[" + lo + " " + hi + "]"
}
