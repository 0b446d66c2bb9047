// Package advisor produces free-text allocation suggestions from
// research and quote summaries. Purely advisory: nothing here feeds
// back into ledger correctness.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/research"
)

const systemPrompt = "You are a senior investment research assistant. " +
	"Combine the research findings and the quotes into a concise allocation suggestion."

// Advisor turns research results and quotes into an allocation
// suggestion for the given goal.
type Advisor interface {
	SuggestAllocation(ctx context.Context, goal string, results []research.Result, quotes []market.Quote) (string, error)
}

// buildPrompt flattens the inputs into one user message, mirroring the
// shape of the research/quote summary the model is asked to reason over.
func buildPrompt(goal string, results []research.Result, quotes []market.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s\n\nResearch summary:\n", goal)
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s — %s\n", i+1, r.Title, r.Snippet)
	}

	b.WriteString("\nQuotes:\n")
	for _, q := range quotes {
		if q.HasPrice() {
			fmt.Fprintf(&b, "%s (%s): %s %s\n", q.Symbol, q.Name, q.Price, q.Currency)
		} else {
			fmt.Fprintf(&b, "%s (%s): price unavailable\n", q.Symbol, q.Name)
		}
	}

	b.WriteString("\nGive an allocation approach and weight suggestions in under 200 words.")
	return b.String()
}
