// Package output renders packed repositories into a single document in
// one of several styles: xml, markdown, plain, json.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/repopack/repopack/internal/pkg/errors"
)

// Styles.
const (
	StyleXML      = "xml"
	StyleMarkdown = "markdown"
	StylePlain    = "plain"
	StyleJSON     = "json"
)

// Truncation describes how a file's content was reduced.
type Truncation struct {
	Truncated          bool `json:"truncated"`
	OriginalLineCount  int  `json:"original_line_count"`
	TruncatedLineCount int  `json:"truncated_line_count"`
	LineLimit          int  `json:"line_limit"`
}

// FileEntry is one file in the rendered document.
type FileEntry struct {
	Path       string      `json:"path"`
	Language   string      `json:"language,omitempty"`
	Content    string      `json:"content"`
	Truncation *Truncation `json:"truncation,omitempty"`
}

// Summary aggregates pack statistics for the document header.
type Summary struct {
	TotalFiles     int       `json:"total_files"`
	TotalLines     int       `json:"total_lines"`
	TruncatedFiles int       `json:"truncated_files"`
	SkippedBinary  int       `json:"skipped_binary"`
	SkippedSecrets int       `json:"skipped_secrets"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Document is the complete input to a renderer.
type Document struct {
	RootName   string      `json:"root"`
	HeaderText string      `json:"header_text,omitempty"`
	Summary    Summary     `json:"summary"`
	Tree       string      `json:"tree,omitempty"`
	Files      []FileEntry `json:"files"`
}

// Renderer writes a document in one style.
type Renderer interface {
	Style() string
	Render(w io.Writer, doc *Document) error
}

// Options configures rendering shared by all styles.
type Options struct {
	ShowLineNumbers bool
	IncludeSummary  bool
}

// NewRenderer returns the renderer for a style name.
func NewRenderer(style string, opts Options) (Renderer, error) {
	switch style {
	case StyleXML:
		return &xmlRenderer{opts: opts}, nil
	case StyleMarkdown:
		return &markdownRenderer{opts: opts}, nil
	case StylePlain:
		return &plainRenderer{opts: opts}, nil
	case StyleJSON:
		return &jsonRenderer{opts: opts}, nil
	default:
		return nil, apperrors.ValidationError("unknown output style").
			WithDetail("style", style)
	}
}

// numberLines prefixes each line with its 1-based number, padded to the
// width of the last line.
func numberLines(content string) string {
	lines := strings.Split(content, "\n")
	width := len(fmt.Sprintf("%d", len(lines)))

	var b strings.Builder
	b.Grow(len(content) + len(lines)*(width+2))
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d: %s", width, i+1, line)
	}
	return b.String()
}

// truncationNote is the single-line annotation styles embed next to a
// truncated file.
func truncationNote(t *Truncation) string {
	if t == nil || !t.Truncated {
		return ""
	}
	return fmt.Sprintf("truncated: %d of %d lines (limit %d)",
		t.TruncatedLineCount, t.OriginalLineCount, t.LineLimit)
}
