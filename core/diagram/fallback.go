package diagram

import (
	"context"
	"html"

	"github.com/gaurav-prasanna/archgenie/core"
)

// Fallback wraps the diagram source in an escaped <pre> block so a
// diagram the engine rejected can still be shown as literal text. All
// five markup-significant characters are escaped, so the block is safe
// in both element and attribute positions.
func Fallback(source string) string {
	return `<pre class="diagram-fallback">` + html.EscapeString(source) + `</pre>`
}

// Attempt renders text through the engine and never fails: on any
// engine error it returns a fallback artifact carrying the escaped
// source, plus the error for the caller to report as a warning.
func Attempt(ctx context.Context, engine core.DiagramEngine, id, text string) (core.DiagramArtifact, error) {
	markup, err := engine.Render(ctx, id, text)
	if err != nil {
		return core.DiagramArtifact{
			Markup:   Fallback(text),
			Source:   text,
			Fallback: true,
		}, err
	}
	return core.DiagramArtifact{Markup: markup, Source: text}, nil
}
