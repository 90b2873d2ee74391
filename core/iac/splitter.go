// Package iac splits a generated infrastructure-as-code document into
// per-block files for export. Terraform documents are split on top-level
// blocks; other code types are exported as a single file.
package iac

import (
	"fmt"
	"regexp"
	"strings"
)

// File is one exportable piece of the IaC document.
type File struct {
	Name    string
	Content string
}

// extensions maps a code type to its file extension.
var extensions = map[string]string{
	"terraform":      "tf",
	"cloudformation": "yml",
	"bicep":          "bicep",
	"pulumi":         "py",
}

// Extension returns the file extension for a code type, defaulting to txt.
func Extension(codeType string) string {
	if ext, ok := extensions[codeType]; ok {
		return ext
	}
	return "txt"
}

// namedBlock matches terraform blocks with two labels (resource, data).
var namedBlock = regexp.MustCompile(`^(resource|data)\s+"([^"]+)"\s+"([^"]+)"`)

// labeledBlock matches terraform blocks with one label.
var labeledBlock = regexp.MustCompile(`^(module|provider|variable|output)\s+"([^"]+)"`)

// bareBlock matches label-free top-level blocks.
var bareBlock = regexp.MustCompile(`^(terraform|locals)\s*\{`)

// Splitter splits an IaC document by its code type.
type Splitter struct {
	CodeType string
}

// New creates a Splitter for the given code type (terraform,
// cloudformation, bicep, pulumi).
func New(codeType string) *Splitter {
	if codeType == "" {
		codeType = "terraform"
	}
	return &Splitter{CodeType: codeType}
}

// Split breaks the document into files. Only terraform has a block
// grammar worth splitting on; every other code type returns a single
// main file. Empty documents return nothing.
func (s *Splitter) Split(document string) []File {
	if strings.TrimSpace(document) == "" {
		return nil
	}
	ext := Extension(s.CodeType)
	if s.CodeType != "terraform" {
		return []File{{Name: "main." + ext, Content: document}}
	}

	var files []File
	var current []string
	name := ""
	depth := 0
	used := map[string]int{}

	flush := func() {
		content := strings.TrimSpace(strings.Join(current, "\n"))
		if content == "" {
			current = nil
			return
		}
		base := name
		if base == "" {
			base = "main"
		}
		base = SanitizeName(base)
		// Duplicate block names get a numeric suffix.
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s_%d", base, n)
		}
		files = append(files, File{Name: base + "." + ext, Content: content + "\n"})
		current = nil
	}

	for _, line := range strings.Split(document, "\n") {
		trimmed := strings.TrimSpace(line)
		if depth == 0 {
			if blockName, ok := headerName(trimmed); ok {
				flush()
				name = blockName
			}
		}
		current = append(current, line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	flush()
	return files
}

// headerName extracts a filename base from a top-level block header.
func headerName(line string) (string, bool) {
	if m := namedBlock.FindStringSubmatch(line); m != nil {
		return m[2] + "_" + m[3], true
	}
	if m := labeledBlock.FindStringSubmatch(line); m != nil {
		return m[1] + "_" + m[2], true
	}
	if m := bareBlock.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

// sanitizeRe matches runs of characters not allowed in exported filenames.
var sanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9_\-.]+`)

// SanitizeName makes a string safe to use as a filename.
func SanitizeName(name string) string {
	s := sanitizeRe.ReplaceAllString(name, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "file"
	}
	return s
}
