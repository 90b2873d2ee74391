// Package diagram implements the DiagramEngine interface against a
// Kroki-compatible rendering service, plus the literal-text fallback
// used when the service rejects a diagram.
package diagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultKrokiURL = "https://kroki.io"
	renderTimeout   = 30 * time.Second
)

// ParseError is a rejection of the diagram text by the rendering
// service. It is non-fatal: callers fall back to literal display.
type ParseError struct {
	Status int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("diagram rejected (%d): %s", e.Status, e.Detail)
}

// Engine renders mermaid text to SVG via a Kroki-compatible service.
type Engine struct {
	baseURL string
	client  *http.Client
}

// NewEngine creates an Engine. An empty baseURL targets the public
// Kroki instance.
func NewEngine(baseURL string) *Engine {
	if baseURL == "" {
		baseURL = defaultKrokiURL
	}
	return &Engine{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: renderTimeout},
	}
}

// Render posts the normalized text to the service and returns tidied
// SVG markup with id stamped on the root element. A 4xx status means
// the service could not parse the diagram and comes back as *ParseError.
func (e *Engine) Render(ctx context.Context, id string, text string) (string, error) {
	url := e.baseURL + "/mermaid/svg"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("creating render request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling render service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading render response: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", &ParseError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render service returned %d", resp.StatusCode)
	}

	return tidySVG(string(body), id)
}

// tidySVG strips script and foreignObject elements from the returned
// markup and stamps the caller-chosen identifier on the root svg
// element.
func tidySVG(markup, id string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing rendered SVG: %w", err)
	}

	doc.Find("script").Remove()
	// The parser preserves foreignObject's mixed case, which tag
	// selectors (lowercased at compile time) cannot match.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(goquery.NodeName(s), "foreignobject") {
			s.Remove()
		}
	})

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return "", fmt.Errorf("render response contains no svg element")
	}
	if id != "" {
		root.SetAttr("id", id)
	}

	out, err := goquery.OuterHtml(root)
	if err != nil {
		return "", fmt.Errorf("serializing SVG: %w", err)
	}
	return out, nil
}
