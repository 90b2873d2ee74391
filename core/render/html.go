// Package render provides output renderers for the ArchGenie pipeline.
// This file implements the HTML report: the diagram (SVG or escaped
// fallback), the Terraform document, the cost table, and the docs.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/archgenie/core"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Meta.AppName}} — Architecture</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f5f5f5; padding: 1rem; overflow-x: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
.warning { color: #a15c00; background: #fff4e0; padding: 0.6rem 1rem; }
.muted { color: #666; }
</style>
</head>
<body>
<h1>{{.Meta.AppName}}</h1>
<p class="muted">Provider: {{.Meta.Provider}} · Region: {{.Meta.Region}} · Generated: {{.Meta.GeneratedAt}}</p>

<h2>Architecture Diagram</h2>
{{if .Diagram.Fallback}}<p class="warning">The diagram could not be rendered; showing its source instead.</p>{{end}}
{{.DiagramMarkup}}

<h2>Infrastructure Code</h2>
{{if .Result.Terraform}}<pre><code>{{.Result.Terraform}}</code></pre>{{else}}<p class="muted">No infrastructure code generated.</p>{{end}}

<h2>Estimated Monthly Cost</h2>
{{if .Result.Cost.Items}}
<table>
<tr><th>Cloud</th><th>Service</th><th>SKU</th><th>Region</th><th>Qty</th><th>Unit/mo</th><th>Monthly</th></tr>
{{range .Result.Cost.Items}}
<tr><td>{{.Cloud}}</td><td>{{.Service}}</td><td>{{.SKU}}</td><td>{{.Region}}</td><td>{{.Qty}}</td><td>{{printf "%.2f" .UnitMonthly}}</td><td>{{printf "%.2f" .Monthly}}</td></tr>
{{end}}
<tr><th colspan="6">Total ({{.Result.Cost.Currency}})</th><th>{{printf "%.2f" .Result.Cost.TotalEstimate}}</th></tr>
</table>
{{range .Result.Cost.Notes}}<p class="muted">{{.}}</p>{{end}}
{{else}}<p class="muted">No cost estimate available.</p>{{end}}

<h2>Documentation</h2>
{{if .DocsHTML}}{{.DocsHTML}}{{else}}<p class="muted">No documentation generated.</p>{{end}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("report").Parse(htmlPage))

// HTMLRenderer renders the full result as a standalone HTML page.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render builds the HTML report. The diagram markup is either tidied
// SVG from the engine or the already-escaped fallback block, so it is
// injected as trusted HTML; everything user-visible around it goes
// through the template's own escaping.
func (r *HTMLRenderer) Render(result *core.GenerateResult, diagram core.DiagramArtifact, meta core.GenerationMetadata) ([]byte, error) {
	var docs bytes.Buffer
	if result.Docs != "" {
		if err := r.md.Convert([]byte(result.Docs), &docs); err != nil {
			return nil, fmt.Errorf("rendering docs markdown: %w", err)
		}
	}

	data := struct {
		Meta          core.GenerationMetadata
		Result        *core.GenerateResult
		Diagram       core.DiagramArtifact
		DiagramMarkup template.HTML
		DocsHTML      template.HTML
	}{
		Meta:          meta,
		Result:        result,
		Diagram:       diagram,
		DiagramMarkup: template.HTML(diagram.Markup),
		DocsHTML:      template.HTML(docs.String()),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
