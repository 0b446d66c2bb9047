// Package research retrieves ranked text snippets for a finance topic.
// Stateless: no invariants, just fetch and rank.
package research

import "context"

// Result is one ranked search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher returns up to max ranked results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}
