package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DuckDuckGoURL is the no-JS HTML results endpoint.
const DuckDuckGoURL = "https://duckduckgo.com/html/"

const userAgent = "Mozilla/5.0"

// DuckDuckGo scrapes the HTML results page. No API key required, which
// makes it the default provider.
type DuckDuckGo struct {
	baseURL    string
	httpClient *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return NewDuckDuckGoWithURL(DuckDuckGoURL)
}

func NewDuckDuckGoWithURL(baseURL string) *DuckDuckGo {
	return &DuckDuckGo{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, max int) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("kh", "1")
	params.Set("kp", "-1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseDuckDuckGo(root, max), nil
}

// parseDuckDuckGo pulls results out of the DOM: each hit is a
// div.result containing a.result__a (title + link) and .result__snippet.
func parseDuckDuckGo(root *html.Node, max int) []Result {
	var out []Result

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if max > 0 && len(out) >= max {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			var r Result
			if a := findNode(n, "a", "result__a"); a != nil {
				r.Title = nodeText(a)
				r.URL = nodeAttr(a, "href")
			}
			if sn := findNode(n, "", "result__snippet"); sn != nil {
				r.Snippet = nodeText(sn)
			}
			if r.Title != "" && r.URL != "" {
				out = append(out, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// findNode returns the first descendant matching tag (any tag when "")
// and class.
func findNode(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && (tag == "" || n.Data == tag) && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
