package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SerperURL is the google.serper.dev search endpoint.
const SerperURL = "https://google.serper.dev/search"

// Serper queries the Serper Google-search API. Needs an API key;
// preferred over scraping when one is configured.
type Serper struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSerper(apiKey string) *Serper {
	return NewSerperWithURL(SerperURL, apiKey)
}

func NewSerperWithURL(baseURL, apiKey string) *Serper {
	return &Serper{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (s *Serper) Search(ctx context.Context, query string, max int) ([]Result, error) {
	payload, err := json.Marshal(serperRequest{Q: query, Num: max, GL: "cn", HL: "zh-cn"})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper status %d", resp.StatusCode)
	}

	var body serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(body.Organic))
	for _, item := range body.Organic {
		out = append(out, Result{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out, nil
}
