// Package render — Markdown renderer. Produces a plain-text report with
// the diagram source in a mermaid fence, the Terraform in an hcl fence,
// a cost table, and the docs verbatim.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/archgenie/core"
)

// MarkdownRenderer writes the result as a Markdown report.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the Markdown report.
func (r *MarkdownRenderer) Render(result *core.GenerateResult, diagram core.DiagramArtifact, meta core.GenerationMetadata) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", meta.AppName)
	fmt.Fprintf(&b, "Provider: %s · Region: %s · Generated: %s\n\n", meta.Provider, meta.Region, meta.GeneratedAt)

	b.WriteString("## Architecture Diagram\n\n")
	if diagram.Fallback {
		b.WriteString("> The diagram could not be rendered; its source follows.\n\n")
	}
	if diagram.Source != "" {
		fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", diagram.Source)
	} else {
		b.WriteString("_No diagram generated._\n\n")
	}

	b.WriteString("## Infrastructure Code\n\n")
	if result.Terraform != "" {
		fmt.Fprintf(&b, "```hcl\n%s\n```\n\n", strings.TrimRight(result.Terraform, "\n"))
	} else {
		b.WriteString("_No infrastructure code generated._\n\n")
	}

	b.WriteString("## Estimated Monthly Cost\n\n")
	if len(result.Cost.Items) > 0 {
		b.WriteString("| Cloud | Service | SKU | Region | Qty | Unit/mo | Monthly |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, item := range result.Cost.Items {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %.2f | %.2f |\n",
				item.Cloud, item.Service, item.SKU, item.Region, item.Qty, item.UnitMonthly, item.Monthly)
		}
		fmt.Fprintf(&b, "\n**Total (%s): %.2f**\n\n", result.Cost.Currency, result.Cost.TotalEstimate)
		for _, note := range result.Cost.Notes {
			fmt.Fprintf(&b, "> %s\n", note)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("_No cost estimate available._\n\n")
	}

	b.WriteString("## Documentation\n\n")
	if result.Docs != "" {
		b.WriteString(strings.TrimRight(result.Docs, "\n"))
		b.WriteString("\n")
	} else {
		b.WriteString("_No documentation generated._\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
