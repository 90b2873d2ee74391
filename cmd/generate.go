// Package cmd — generate command.
// This is the main command that orchestrates the pipeline:
// generate → normalize → render diagram (with fallback) → render → write.
//
// It handles flag validation, renderer selection, and bundle export.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/archgenie/core"
	"github.com/gaurav-prasanna/archgenie/core/backend"
	"github.com/gaurav-prasanna/archgenie/core/diagram"
	"github.com/gaurav-prasanna/archgenie/core/iac"
	"github.com/gaurav-prasanna/archgenie/core/mermaid"
	"github.com/gaurav-prasanna/archgenie/core/output"
	"github.com/gaurav-prasanna/archgenie/core/render"
)

// Flag variables.
var (
	flagApp      string
	flagPrompt   string
	flagRegion   string
	flagProvider string
	flagAPIKey   string
	flagBackend  string
	flagEngine   string
	flagCodeType string

	flagHTML     bool
	flagMarkdown bool
	flagJSON     bool
	flagPDF      bool

	flagOutputDir string
	flagBundle    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an architecture and render it to the specified format",
	Long: `Generate sends the application description to the generation service,
normalizes the returned diagram, renders it via the diagram engine (falling
back to literal source on a parse error), and writes the report.

Examples:
  archgenie generate --app "3-tier web app" --html
  archgenie generate --app shop --prompt "with redis cache" --region eastus2 --markdown
  archgenie generate --app shop --pdf --bundle --output_dir ./out`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Request flags.
	generateCmd.Flags().StringVar(&flagApp, "app", "", "Application name (required)")
	generateCmd.Flags().StringVar(&flagPrompt, "prompt", "", "Extra free-text requirements")
	generateCmd.Flags().StringVar(&flagRegion, "region", "", "Cloud region (e.g. eastus)")
	generateCmd.Flags().StringVar(&flagProvider, "provider", "azure", "Cloud provider (azure, aws, gcp)")

	// Service endpoints and credentials.
	generateCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Generation service API key (or ARCHGENIE_API_KEY)")
	generateCmd.Flags().StringVar(&flagBackend, "backend", "", "Generation service URL (or ARCHGENIE_BACKEND_URL)")
	generateCmd.Flags().StringVar(&flagEngine, "engine", "", "Diagram render service URL (default: public Kroki)")

	// Output format flags (mutually exclusive).
	generateCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML report")
	generateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output a Markdown report")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	generateCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF report")

	// Export options.
	generateCmd.Flags().StringVar(&flagCodeType, "code_type", "terraform", "IaC code type for bundle export (terraform, cloudformation, bicep, pulumi)")
	generateCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	generateCmd.Flags().BoolVar(&flagBundle, "bundle", false, "Also write a zip bundle with the split IaC files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	apiKey := flagAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("ARCHGENIE_API_KEY")
	}
	backendURL := flagBackend
	if backendURL == "" {
		backendURL = os.Getenv("ARCHGENIE_BACKEND_URL")
	}
	if backendURL == "" {
		return fmt.Errorf("generation service URL is required: set --backend or ARCHGENIE_BACKEND_URL")
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	generator := backend.New(backendURL, apiKey)
	normalizer := mermaid.New()
	engine := diagram.NewEngine(flagEngine)

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()
	req := core.GenerateRequest{
		AppName:  flagApp,
		Prompt:   flagPrompt,
		Region:   flagRegion,
		Provider: flagProvider,
	}

	// 1. Generate
	fmt.Fprintf(os.Stdout, "Generating architecture for %q...\n", flagApp)
	result, err := generator.Generate(ctx, req)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "✗ Generation failed (%d):\n%s\n", apiErr.Status, apiErr.Body)
			return fmt.Errorf("generation service error")
		}
		return fmt.Errorf("generate: %w", err)
	}

	// 2. Normalize and filter the diagram text
	normalized := normalizer.Normalize(result.Diagram)
	renderable := mermaid.StripUnsupported(normalized)

	// 3. Render the diagram; a rejected diagram degrades to literal
	// source and the run still counts as a success.
	artifact, renderErr := diagram.Attempt(ctx, engine, uuid.NewString(), renderable)
	if renderErr != nil {
		fmt.Fprintf(os.Stderr, "⚠ Diagram render failed, showing source instead: %v\n", renderErr)
	}
	artifact.Normalized = normalized

	meta := core.GenerationMetadata{
		AppName:     flagApp,
		Provider:    flagProvider,
		Region:      flagRegion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// 4. Render the report
	data, err := renderer.Render(result, artifact, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 5. Write
	path, err := writer.WriteReport(flagApp, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)

	if flagBundle {
		files := iac.New(flagCodeType).Split(result.Terraform)
		bundlePath, err := writer.WriteBundle(flagApp, data, renderer.Extension(), normalized, files)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Bundle: %s (%d IaC files)\n", bundlePath, len(files))
	}
	return nil
}

// validateFlags checks required inputs and that exactly one output
// format is chosen.
func validateFlags() error {
	if flagApp == "" {
		return fmt.Errorf("--app is required")
	}

	formatCount := 0
	if flagHTML {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagJSON {
		formatCount++
	}
	if flagPDF {
		formatCount++
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --html, --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagHTML:
		return render.NewHTMLRenderer(), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
