// Package limit selects the most useful lines of a source file when it
// exceeds a caller-supplied line budget: declarations and signatures
// first, then the structurally densest functions, then entry points.
package limit

import "time"

// Section classifies a selected line.
type Section string

// Sections.
const (
	SectionHeader Section = "header"
	SectionCore   Section = "core"
	SectionFooter Section = "footer"
)

// Importance assigned per section. Core lines carry their function's
// complexity score instead.
const (
	headerImportance = 0.9
	footerImportance = 0.7
)

// SourceLine is a line chosen for the limited output. Never mutated
// after creation; the final sequence is sorted ascending by Number.
type SourceLine struct {
	Number     int     // 0-based line number in the original file
	Content    string
	Section    Section
	Importance float64 // in [0,1]
	NodeType   string
}

// FunctionAnalysis describes one function-like construct.
type FunctionAnalysis struct {
	Name       string
	StartLine  int // 0-based, StartLine <= EndLine
	EndLine    int
	Complexity float64 // in [0,1]
	LineCount  int
	Selected   bool // set by the processor, never by a strategy
}

// Allocation splits a line budget across the three sections.
// The parts intentionally need not sum to the limit; the final
// selection is hard-capped separately.
type Allocation struct {
	Header int
	Core   int
	Footer int
}

// AllocationFor computes the fixed 30/60/10 split with floor rounding.
func AllocationFor(limit int) Allocation {
	if limit <= 0 {
		return Allocation{}
	}
	return Allocation{
		Header: limit * 3 / 10,
		Core:   limit * 6 / 10,
		Footer: limit / 10,
	}
}

// TruncationIndicator marks omitted content. At most one is emitted
// per file, appended after the last selected line.
type TruncationIndicator struct {
	Position    int // 1-based insertion line
	Type        string
	Description string
}

// Metadata describes how a result was produced.
type Metadata struct {
	Algorithm         string
	Language          string
	Allocation        Allocation
	FunctionsAnalyzed int
	FunctionsSelected int
	Elapsed           time.Duration
}

// Truncation is the record downstream renderers embed in their output.
type Truncation struct {
	Truncated          bool `json:"truncated"`
	OriginalLineCount  int  `json:"original_line_count"`
	TruncatedLineCount int  `json:"truncated_line_count"`
	LineLimit          int  `json:"line_limit"`
}

// Result is the externally visible artifact of one Apply call.
// Immutable once returned.
type Result struct {
	OriginalLineCount int
	LimitedLineCount  int
	Lines             []SourceLine
	Indicators        []TruncationIndicator
	Metadata          Metadata
}

// Truncation returns the truncation record for this result.
func (r *Result) Truncation(limit int) Truncation {
	return Truncation{
		Truncated:          r.OriginalLineCount > limit && r.LimitedLineCount < r.OriginalLineCount,
		OriginalLineCount:  r.OriginalLineCount,
		TruncatedLineCount: r.LimitedLineCount,
		LineLimit:          limit,
	}
}

// Text reassembles the selected lines, appending indicator text last.
func (r *Result) Text() string {
	total := 0
	for _, l := range r.Lines {
		total += len(l.Content) + 1
	}

	out := make([]byte, 0, total)
	for i, l := range r.Lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, l.Content...)
	}
	for _, ind := range r.Indicators {
		out = append(out, '\n')
		out = append(out, ind.Description...)
	}
	return string(out)
}
