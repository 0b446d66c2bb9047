package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/research"
)

// OllamaURL is the default local generate endpoint.
const OllamaURL = "http://localhost:11434/api/generate"

// Ollama asks a locally served model for the allocation suggestion.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOllama(model string) *Ollama {
	return NewOllamaWithURL(OllamaURL, model)
}

func NewOllamaWithURL(baseURL, model string) *Ollama {
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ollamaRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) SuggestAllocation(ctx context.Context, goal string, results []research.Result, quotes []market.Quote) (string, error) {
	// Ollama's generate endpoint takes one flat prompt, so the system
	// instruction is prepended to the user message.
	prompt := "system: " + systemPrompt + "\n\nuser: " + buildPrompt(goal, results, quotes)

	payload, err := json.Marshal(ollamaRequest{
		Model:       o.model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama status %d", resp.StatusCode)
	}

	var body ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Response, nil
}
