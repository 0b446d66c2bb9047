package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/research"
)

// Gemini asks a Gemini model for the allocation suggestion. The client
// picks up credentials from the environment (GEMINI_API_KEY).
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(client *genai.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

func (g *Gemini) SuggestAllocation(ctx context.Context, goal string, results []research.Result, quotes []market.Quote) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature: genai.Ptr[float32](0.2),
	}

	chat, err := g.client.Chats.Create(ctx, g.model, cfg, nil)
	if err != nil {
		return "", err
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: buildPrompt(goal, results, quotes)})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", g.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
