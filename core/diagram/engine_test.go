package diagram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEngineRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/mermaid/svg" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "graph TD") {
			t.Errorf("diagram text not forwarded, got %q", body)
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(`<svg viewBox="0 0 100 100"><script>alert(1)</script><foreignObject><div>html label</div></foreignObject><g class="node"></g></svg>`))
	}))
	defer server.Close()

	engine := NewEngine(server.URL)
	markup, err := engine.Render(context.Background(), "diag-1", "graph TD\nA --> B")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(markup, `id="diag-1"`) {
		t.Errorf("identifier not stamped on root element: %q", markup)
	}
	if strings.Contains(markup, "script") {
		t.Errorf("script element survived tidying: %q", markup)
	}
	if strings.Contains(strings.ToLower(markup), "foreignobject") || strings.Contains(markup, "html label") {
		t.Errorf("foreignObject subtree survived tidying: %q", markup)
	}
	if !strings.Contains(markup, "node") {
		t.Errorf("svg content lost during tidying: %q", markup)
	}
}

func TestEngineRender_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Error 400: syntax error in graph"))
	}))
	defer server.Close()

	engine := NewEngine(server.URL)
	_, err := engine.Render(context.Background(), "diag-1", "graph TD\nA[unclosed")
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	if parseErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", parseErr.Status)
	}
	if !strings.Contains(parseErr.Detail, "syntax error") {
		t.Errorf("Detail = %q, want the service message", parseErr.Detail)
	}
}

func TestEngineRender_NoSVGInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>not an svg</body></html>`))
	}))
	defer server.Close()

	engine := NewEngine(server.URL)
	if _, err := engine.Render(context.Background(), "x", "graph TD"); err == nil {
		t.Fatal("expected an error for a response without an svg element")
	}
}
