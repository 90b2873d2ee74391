package diagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFallbackEscapesMarkup(t *testing.T) {
	t.Parallel()

	got := Fallback(`graph TD\nA["<&> 'label'"]`)

	for _, want := range []string{"&lt;", "&gt;", "&amp;", "&#34;", "&#39;"} {
		if !strings.Contains(got, want) {
			t.Errorf("Fallback output missing escape %q: %q", want, got)
		}
	}
	for _, forbidden := range []string{`<&`, `"label"`, `'label'`} {
		if strings.Contains(got, forbidden) {
			t.Errorf("Fallback output contains unescaped %q: %q", forbidden, got)
		}
	}
	if !strings.HasPrefix(got, "<pre") || !strings.HasSuffix(got, "</pre>") {
		t.Errorf("Fallback output not wrapped in <pre>: %q", got)
	}
}

func TestAttemptFallsBackOnRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("syntax error"))
	}))
	defer server.Close()

	source := "graph TD\nA[<broken] --> B"
	artifact, err := Attempt(context.Background(), NewEngine(server.URL), "diag-1", source)
	if err == nil {
		t.Fatal("expected the engine error to be reported")
	}
	if !artifact.Fallback {
		t.Error("artifact should be marked as fallback")
	}
	if artifact.Source != source {
		t.Errorf("Source = %q, want the attempted text", artifact.Source)
	}
	if !strings.Contains(artifact.Markup, "&lt;broken") {
		t.Errorf("fallback markup should contain the escaped source: %q", artifact.Markup)
	}
}

func TestAttemptSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<svg><g></g></svg>`))
	}))
	defer server.Close()

	artifact, err := Attempt(context.Background(), NewEngine(server.URL), "diag-1", "graph TD\nA --> B")
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if artifact.Fallback {
		t.Error("successful render should not be marked fallback")
	}
	if !strings.Contains(artifact.Markup, "<svg") {
		t.Errorf("Markup = %q, want svg", artifact.Markup)
	}
}
