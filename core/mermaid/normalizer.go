// Package mermaid implements the Normalizer interface.
// It rewrites raw diagram text, as returned by the generation backend,
// into a line-oriented layout the rendering engine can parse.
//
// The transform is an ordered list of named rewrite rules. Order matters:
// later rules depend on earlier ones having already broken the text into
// separable tokens. Every rule produces output it no longer matches, so
// the whole pass is idempotent.
package mermaid

import (
	"regexp"
	"strings"
)

// rule is a single named rewrite applied to the whole text.
type rule struct {
	name string
	re   *regexp.Regexp
	repl string
}

// layoutRules are applied in order by Normalize.
//
// Line breaks inserted by the isolate/split rules are hard separators:
// the whitespace rules at the end collapse horizontal whitespace only,
// never the inserted newlines.
var layoutRules = []rule{
	// Carriage returns from backends that emit CRLF.
	{"normalize-crlf", regexp.MustCompile(`\r\n?`), "\n"},

	// 1. Fence stripping: an optional ```mermaid opener and a trailing
	// closing fence, tolerant of surrounding whitespace and case.
	{"strip-open-fence", regexp.MustCompile("(?i)^\\s*```(?:mermaid)?[ \t]*\n?"), ""},
	{"strip-close-fence", regexp.MustCompile("\n?[ \t]*```\\s*$"), ""},

	// 2. Header isolation: a leading graph-type declaration must be
	// followed by a line break, not by the next token. Whitespace ahead
	// of the header (including what fence stripping leaves behind) is
	// swallowed so the rule still fires on the first pass.
	{"isolate-header", regexp.MustCompile(`(?i)^\s*((?:graph|flowchart)[ \t]+(?:TD|TB|BT|LR|RL))[ \t]+(\S)`), "$1\n$2"},

	// 3. Block delimiter isolation: subgraph, end, and direction each
	// get their own line. end is closed on both sides. A preceding
	// opening bracket means the keyword sits inside a node label and
	// must be left alone.
	{"break-before-subgraph", regexp.MustCompile(`([^\n\[\(])[ \t]*\bsubgraph\b`), "$1\nsubgraph"},
	{"break-before-direction", regexp.MustCompile(`([^\n\[\(])[ \t]*\b(direction[ \t]+(?:TD|TB|BT|LR|RL))\b`), "$1\n$2"},
	{"break-after-direction", regexp.MustCompile(`(^|\n)(direction[ \t]+(?:TD|TB|BT|LR|RL))[ \t]+([^\n])`), "$1$2\n$3"},
	// The trailing-character guard keeps node labels like [End] or
	// [backend] from being mistaken for the block-closing keyword.
	{"break-before-end", regexp.MustCompile(`([^\n])[ \t]*\bend([ \t\n]|$)`), "$1\nend$2"},
	{"break-after-end", regexp.MustCompile(`(^|\n)end[ \t]+([^\n \t])`), "${1}end\n$2"},

	// 4. Chain splitting: a closing bracket abutting the next node's
	// opening bracket means two definitions were emitted back-to-back
	// with no edge between them.
	{"split-chains", regexp.MustCompile(`([\]\)])[ \t]*([A-Za-z0-9_]+[\[\(])`), "$1\n$2"},

	// 5. Whitespace canonicalization: arrows padded to one space each
	// side, then horizontal whitespace collapsed.
	{"pad-arrows", regexp.MustCompile(`[ \t]*(-{2,}>|-\.+->|={2,}>)[ \t]*`), " $1 "},
	{"collapse-spaces", regexp.MustCompile(`[ \t]+`), " "},
}

// LayoutNormalizer rewrites compact diagram syntax into parseable layout.
type LayoutNormalizer struct{}

// New creates a LayoutNormalizer.
func New() *LayoutNormalizer {
	return &LayoutNormalizer{}
}

// Normalize applies the layout rules in order and trims the result.
// It is total over all string inputs; the empty string maps to itself.
func (n *LayoutNormalizer) Normalize(raw string) string {
	return Normalize(raw)
}

// Normalize is the package-level form of LayoutNormalizer.Normalize.
func Normalize(raw string) string {
	s := raw
	for _, r := range layoutRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}

	// Trim each line and drop blanks left behind by the break rules.
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// StripUnsupported removes style and classDef declarations before the
// text is handed to the rendering engine. The engine is invoked in a
// configuration that does not support these reliably; dropping them
// trades visual styling for render success.
func StripUnsupported(text string) string {
	if text == "" {
		return ""
	}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && (fields[0] == "style" || fields[0] == "classDef") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
