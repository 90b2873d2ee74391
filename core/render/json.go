// Package render — JSON renderer. Archives the whole generation result
// as structured JSON: metadata, the diagram (source and rendered
// artifact), the Terraform, the cost breakdown, and the docs.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/archgenie/core"
)

// archiveJSON is the complete JSON output for a single generation.
// DiagramSource is the raw text as returned by the backend; the
// artifact carries the normalized and filtered forms alongside the
// rendered markup.
type archiveJSON struct {
	Metadata      core.GenerationMetadata `json:"metadata"`
	DiagramSource string                  `json:"diagram_source"`
	Diagram       core.DiagramArtifact    `json:"diagram"`
	Terraform     string                  `json:"terraform"`
	Cost          core.CostBreakdown      `json:"cost"`
	Docs          string                  `json:"docs"`
}

// JSONRenderer produces the structured JSON archive.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the result into indented JSON.
func (r *JSONRenderer) Render(result *core.GenerateResult, diagram core.DiagramArtifact, meta core.GenerationMetadata) ([]byte, error) {
	archive := archiveJSON{
		Metadata:      meta,
		DiagramSource: result.Diagram,
		Diagram:       diagram,
		Terraform:     result.Terraform,
		Cost:          result.Cost,
		Docs:          result.Docs,
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
