// Package output handles file naming and writing for ArchGenie outputs.
// Reports are named from the sanitized application name; bundle mode
// packs the report, the diagram source, and the split IaC files into a
// single zip for download-style export.
package output

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/archgenie/core/iac"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteReport writes the rendered report.
// Filename: sanitized app name plus the renderer extension.
func (w *Writer) WriteReport(appName string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, baseName(appName)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteBundle writes a zip containing the report, the normalized
// diagram source, and the per-block IaC files under iac/.
func (w *Writer) WriteBundle(appName string, report []byte, reportExt string, diagramSource string, files []iac.File) (string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("adding %s to bundle: %w", name, err)
		}
		_, err = f.Write(data)
		return err
	}

	base := baseName(appName)
	if err := add(base+reportExt, report); err != nil {
		return "", err
	}
	if strings.TrimSpace(diagramSource) != "" {
		if err := add(base+".mmd", []byte(diagramSource+"\n")); err != nil {
			return "", err
		}
	}
	for _, file := range files {
		if err := add("iac/"+file.Name, []byte(file.Content)); err != nil {
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalizing bundle: %w", err)
	}

	path := filepath.Join(w.OutputDir, base+"_bundle.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing bundle %s: %w", path, err)
	}
	return path, nil
}

// baseName converts an app name into a flat filename base.
func baseName(appName string) string {
	trimmed := strings.TrimSpace(appName)
	if trimmed == "" {
		return "architecture"
	}
	return iac.SanitizeName(strings.ToLower(trimmed))
}
