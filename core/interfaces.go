// Package core defines the pipeline types and interfaces for ArchGenie.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// ResourceHint is an optional structured hint sent alongside the prompt,
// letting the caller pin down resources the backend should price.
type ResourceHint struct {
	Cloud   string  `json:"cloud"`
	Service string  `json:"service"`
	SKU     string  `json:"sku"`
	Qty     int     `json:"qty,omitempty"`
	SizeGB  float64 `json:"size_gb,omitempty"`
}

// GenerateRequest is the payload sent to the generation backend.
type GenerateRequest struct {
	AppName   string         `json:"app_name"`
	Prompt    string         `json:"prompt,omitempty"`
	Region    string         `json:"region,omitempty"`
	Resources []ResourceHint `json:"resources,omitempty"`

	// Provider selects the backend endpoint (azure, aws, gcp).
	// Not part of the JSON body; it is routed into the URL path.
	Provider string `json:"-"`
}

// CostItem is one priced line of the cost breakdown.
type CostItem struct {
	Cloud       string   `json:"cloud"`
	Service     string   `json:"service"`
	SKU         string   `json:"sku"`
	Qty         int      `json:"qty"`
	Region      string   `json:"region"`
	SizeGB      *float64 `json:"size_gb,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	UnitMonthly float64  `json:"unit_monthly"`
	Monthly     float64  `json:"monthly"`
}

// CostBreakdown is the backend's best-effort monthly cost estimate.
type CostBreakdown struct {
	Currency      string     `json:"currency"`
	TotalEstimate float64    `json:"total_estimate"`
	Items         []CostItem `json:"items"`
	Notes         []string   `json:"notes,omitempty"`
}

// GenerateResult is the decoded backend response. Missing fields decode
// to their zero values; downstream stages treat empty strings as
// "nothing to show" rather than errors.
type GenerateResult struct {
	Diagram   string        `json:"diagram"`
	Terraform string        `json:"terraform"`
	Cost      CostBreakdown `json:"cost"`
	Docs      string        `json:"docs"`
}

// DiagramArtifact is the outcome of one render attempt. On success Markup
// holds SVG; on failure it holds the escaped literal source and Fallback
// is set. Source is always the text that was handed to the engine;
// Normalized is the layout-normalized text before pre-render filtering,
// the form exported as diagram source.
type DiagramArtifact struct {
	Markup     string `json:"markup"`
	Source     string `json:"source"`
	Normalized string `json:"normalized,omitempty"`
	Fallback   bool   `json:"fallback"`
}

// GenerationMetadata describes one generation run for report headers.
type GenerationMetadata struct {
	AppName     string `json:"app_name"`
	Provider    string `json:"provider"`
	Region      string `json:"region"`
	GeneratedAt string `json:"generated_at"` // ISO8601
}

// Generator produces an architecture from a request. The single
// implementation talks to the remote generation backend.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// Normalizer rewrites raw diagram text into a line-oriented layout the
// rendering engine can parse. It is total: every string input, including
// the empty string, yields a result, and the transform is idempotent.
type Normalizer interface {
	Normalize(raw string) string
}

// DiagramEngine renders normalized diagram text into vector-image markup.
// The id is a caller-chosen unique identifier stamped onto the result so
// multiple renders can coexist in one document. A rejected diagram comes
// back as an error; callers are expected to fall back rather than fail.
type DiagramEngine interface {
	Render(ctx context.Context, id string, text string) (string, error)
}

// Renderer converts a generation result (and its diagram artifact) into a
// final output format.
type Renderer interface {
	Render(result *GenerateResult, diagram DiagramArtifact, meta GenerationMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
