package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/archgenie/core"
	"github.com/gaurav-prasanna/archgenie/core/diagram"
)

func sampleResult() *core.GenerateResult {
	return &core.GenerateResult{
		Diagram:   "graph TD\nA[Web] --> B[DB]",
		Terraform: "resource \"azurerm_resource_group\" \"main\" {\n  name = \"rg\"\n}",
		Cost: core.CostBreakdown{
			Currency:      "USD",
			TotalEstimate: 103.5,
			Items: []core.CostItem{
				{Cloud: "azure", Service: "app_service", SKU: "S1", Qty: 1, Region: "eastus", UnitMonthly: 73.2, Monthly: 73.2},
				{Cloud: "azure", Service: "azure_sql", SKU: "S0", Qty: 1, Region: "eastus", UnitMonthly: 30.3, Monthly: 30.3},
			},
			Notes: []string{"No price found for azure:redis:basic in eastus (set $0)."},
		},
		Docs: "# Overview\n\nA web tier talking to a database.\n\n- scales to zero\n- cheap",
	}
}

func sampleMeta() core.GenerationMetadata {
	return core.GenerationMetadata{
		AppName:     "shop",
		Provider:    "azure",
		Region:      "eastus",
		GeneratedAt: "2026-08-31T12:00:00Z",
	}
}

func svgArtifact() core.DiagramArtifact {
	return core.DiagramArtifact{
		Markup:     `<svg id="diag-1"><g class="node"></g></svg>`,
		Source:     "graph TD\nA[Web] --> B[DB]",
		Normalized: "graph TD\nA[Web] --> B[DB]\nstyle A fill:#f9f",
	}
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewHTMLRenderer().Render(sampleResult(), svgArtifact(), sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, `<svg id="diag-1">`) {
		t.Error("svg markup not embedded")
	}
	// Terraform must be escaped, never raw markup.
	if !strings.Contains(page, "&#34;azurerm_resource_group&#34;") && !strings.Contains(page, "&quot;azurerm_resource_group&quot;") {
		t.Error("terraform quotes not escaped in page")
	}
	if !strings.Contains(page, "<td>app_service</td>") {
		t.Error("cost table row missing")
	}
	if !strings.Contains(page, "103.50") {
		t.Error("cost total missing")
	}
	if !strings.Contains(page, "<h1") || !strings.Contains(page, "web tier talking to a database") {
		t.Error("docs markdown not rendered to HTML")
	}
}

func TestHTMLRenderer_FallbackDiagram(t *testing.T) {
	t.Parallel()

	source := `graph TD\nA["<&>"] --> B`
	artifact := core.DiagramArtifact{
		Markup:   diagram.Fallback(source),
		Source:   source,
		Fallback: true,
	}

	out, err := NewHTMLRenderer().Render(sampleResult(), artifact, sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, "could not be rendered") {
		t.Error("fallback warning missing")
	}
	if !strings.Contains(page, "&lt;&amp;&gt;") {
		t.Error("literal diagram source not escaped in page")
	}
}

func TestMarkdownRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewMarkdownRenderer().Render(sampleResult(), svgArtifact(), sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	report := string(out)

	for _, want := range []string{
		"# shop",
		"```mermaid\ngraph TD\nA[Web] --> B[DB]\n```",
		"```hcl",
		"| azure | app_service | S1 | eastus | 1 | 73.20 | 73.20 |",
		"**Total (USD): 103.50**",
		"# Overview",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestMarkdownRenderer_EmptyFields(t *testing.T) {
	t.Parallel()

	out, err := NewMarkdownRenderer().Render(&core.GenerateResult{}, core.DiagramArtifact{}, sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	report := string(out)

	for _, want := range []string{
		"_No diagram generated._",
		"_No infrastructure code generated._",
		"_No cost estimate available._",
		"_No documentation generated._",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("placeholder missing: %q", want)
		}
	}
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewJSONRenderer().Render(sampleResult(), svgArtifact(), sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var archive map[string]json.RawMessage
	if err := json.Unmarshal(out, &archive); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"metadata", "diagram_source", "diagram", "terraform", "cost", "docs"} {
		if _, ok := archive[key]; !ok {
			t.Errorf("archive missing %q section", key)
		}
	}

	var source string
	if err := json.Unmarshal(archive["diagram_source"], &source); err != nil {
		t.Fatalf("diagram_source is not a string: %v", err)
	}
	if source != sampleResult().Diagram {
		t.Errorf("diagram_source = %q, want the raw backend text", source)
	}

	var artifact core.DiagramArtifact
	if err := json.Unmarshal(archive["diagram"], &artifact); err != nil {
		t.Fatalf("diagram section does not decode: %v", err)
	}
	if artifact.Normalized != svgArtifact().Normalized {
		t.Errorf("Normalized = %q, want the pre-filter normalized text", artifact.Normalized)
	}
}

func TestPDFRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewPDFRenderer().Render(sampleResult(), svgArtifact(), sampleMeta())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Errorf("output does not start with a PDF header: %q", string(out[:8]))
	}
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	cases := map[string]core.Renderer{
		".html": NewHTMLRenderer(),
		".md":   NewMarkdownRenderer(),
		".json": NewJSONRenderer(),
		".pdf":  NewPDFRenderer(),
	}
	for want, r := range cases {
		if got := r.Extension(); got != want {
			t.Errorf("Extension() = %q, want %q", got, want)
		}
	}
}
