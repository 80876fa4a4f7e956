package limit

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/repopack/repopack/internal/ast"
	"github.com/repopack/repopack/internal/lang"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
	"github.com/repopack/repopack/internal/pkg/logger"
)

// stubStrategy returns canned classifications so processor tests do not
// depend on grammar availability.
type stubStrategy struct {
	language  string
	headers   []int
	functions []FunctionAnalysis
	footers   []int
}

func (s *stubStrategy) Language() string { return s.language }

func (s *stubStrategy) IdentifyHeaderLines([]string, *ast.Node) []int { return s.headers }

func (s *stubStrategy) AnalyzeFunctions([]string, *ast.Node) []FunctionAnalysis {
	out := make([]FunctionAnalysis, len(s.functions))
	copy(out, s.functions)
	return out
}

func (s *stubStrategy) IdentifyFooterLines([]string, *ast.Node) []int { return s.footers }

func (s *stubStrategy) CalculateComplexity(*ast.Node) float64 { return heuristicComplexity }

func testProcessor(t *testing.T, opts Options, stub *stubStrategy) *Processor {
	t.Helper()
	registry := NewEmptyRegistry()
	if stub != nil {
		registry.Register(stub)
	}
	p := NewProcessorWithRegistry(opts, registry, logger.Discard())
	t.Cleanup(func() { p.Close() })
	return p
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return strings.Join(lines, "\n")
}

func TestApplyUnderLimitPassesThrough(t *testing.T) {
	p := testProcessor(t, DefaultOptions(), nil)

	content := "a\nb\nc"
	got, err := p.Apply(context.Background(), content, "main.go", 10)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.Metadata.Algorithm != AlgorithmNoLimit {
		t.Errorf("Algorithm = %s, want %s", got.Metadata.Algorithm, AlgorithmNoLimit)
	}
	if got.OriginalLineCount != 3 || got.LimitedLineCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", got.OriginalLineCount, got.LimitedLineCount)
	}
	if len(got.Indicators) != 0 {
		t.Errorf("indicators = %v, want none", got.Indicators)
	}
	if got.Text() != content {
		t.Errorf("Text() = %q, want original content", got.Text())
	}
	if got.Truncation(10).Truncated {
		t.Error("pass-through marked truncated")
	}
}

func TestApplyUnderLimitSkipsLanguageDetection(t *testing.T) {
	// Short files never reach detection, so unknown extensions pass.
	p := testProcessor(t, DefaultOptions(), nil)

	got, err := p.Apply(context.Background(), "hello\nworld", "notes.xyz", 100)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.LimitedLineCount != 2 {
		t.Errorf("LimitedLineCount = %d, want 2", got.LimitedLineCount)
	}
}

func TestApplyUnsupportedLanguage(t *testing.T) {
	p := testProcessor(t, DefaultOptions(), nil)

	_, err := p.Apply(context.Background(), numberedLines(20), "data.xyz", 5)
	if !apperrors.IsUnsupportedLanguage(err) {
		t.Fatalf("Apply() error = %v, want unsupported language", err)
	}
}

func TestApplyNoStrategyRegistered(t *testing.T) {
	// Known extension but empty registry: same hard error, no silent
	// fallback.
	p := testProcessor(t, DefaultOptions(), nil)

	_, err := p.Apply(context.Background(), numberedLines(20), "main.go", 5)
	if !apperrors.IsUnsupportedLanguage(err) {
		t.Fatalf("Apply() error = %v, want unsupported language", err)
	}
}

func TestApplyInvalidLimit(t *testing.T) {
	p := testProcessor(t, DefaultOptions(), nil)

	for _, limit := range []int{0, -1} {
		_, err := p.Apply(context.Background(), "x", "main.go", limit)
		if !apperrors.IsValidation(err) {
			t.Errorf("Apply(limit=%d) error = %v, want validation", limit, err)
		}
	}
}

func TestApplyClosedProcessor(t *testing.T) {
	p := testProcessor(t, DefaultOptions(), nil)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := p.Apply(context.Background(), "x", "main.go", 10)
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Fatalf("Apply() after Close error = %v, want internal", err)
	}
}

func TestApplyHeadTruncation(t *testing.T) {
	opts := DefaultOptions()
	opts.PreserveStructure = false
	p := testProcessor(t, opts, &stubStrategy{language: lang.Go})

	got, err := p.Apply(context.Background(), numberedLines(100), "main.go", 10)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.Metadata.Algorithm != AlgorithmHead {
		t.Errorf("Algorithm = %s, want %s", got.Metadata.Algorithm, AlgorithmHead)
	}
	if got.LimitedLineCount != 10 {
		t.Fatalf("LimitedLineCount = %d, want 10", got.LimitedLineCount)
	}
	for i, line := range got.Lines {
		if line.Number != i {
			t.Errorf("Lines[%d].Number = %d, want %d", i, line.Number, i)
		}
	}
	if len(got.Indicators) != 1 || !strings.Contains(got.Indicators[0].Description, "90 lines omitted") {
		t.Errorf("indicators = %v", got.Indicators)
	}
}

func TestApplyStructuralSelection(t *testing.T) {
	stub := &stubStrategy{
		language: lang.JavaScript,
		headers:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		functions: []FunctionAnalysis{
			{Name: "tiny0", StartLine: 30, EndLine: 32, Complexity: 0.1, LineCount: 3},
			{Name: "tiny1", StartLine: 40, EndLine: 42, Complexity: 0.1, LineCount: 3},
			{Name: "handleRequest", StartLine: 100, EndLine: 140, Complexity: 0.9, LineCount: 41},
			{Name: "tiny2", StartLine: 150, EndLine: 152, Complexity: 0.1, LineCount: 3},
		},
		footers: []int{195, 196, 197, 198, 199},
	}
	p := testProcessor(t, DefaultOptions(), stub)

	got, err := p.Apply(context.Background(), numberedLines(200), "app.js", 50)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.Metadata.Algorithm != AlgorithmStructural {
		t.Errorf("Algorithm = %s, want %s", got.Metadata.Algorithm, AlgorithmStructural)
	}
	if got.Metadata.Language != lang.JavaScript {
		t.Errorf("Language = %s", got.Metadata.Language)
	}
	if got.Metadata.Allocation != (Allocation{Header: 15, Core: 30, Footer: 5}) {
		t.Errorf("Allocation = %+v", got.Metadata.Allocation)
	}
	if got.LimitedLineCount != 50 || len(got.Lines) != 50 {
		t.Fatalf("LimitedLineCount = %d, want 50", got.LimitedLineCount)
	}

	// Ascending order, no duplicates, content matches line numbers.
	seen := make(map[int]bool)
	for i, line := range got.Lines {
		if i > 0 && line.Number <= got.Lines[i-1].Number {
			t.Fatalf("Lines not strictly ascending at %d: %v then %v", i, got.Lines[i-1].Number, line.Number)
		}
		if seen[line.Number] {
			t.Fatalf("duplicate line %d", line.Number)
		}
		seen[line.Number] = true
		if want := fmt.Sprintf("line %d", line.Number); line.Content != want {
			t.Fatalf("Lines[%d].Content = %q, want %q", i, line.Content, want)
		}
	}

	// Header budget: exactly the first 15 header lines.
	for i := 0; i < 15; i++ {
		if !seen[i] {
			t.Errorf("header line %d not selected", i)
		}
		if got.Lines[i].Section != SectionHeader {
			t.Errorf("Lines[%d].Section = %s, want header", i, got.Lines[i].Section)
		}
	}
	if seen[15] {
		t.Error("header line 15 selected past the section budget")
	}

	// Core: the complex function dominates and fills the whole budget.
	coreInComplex := 0
	for _, line := range got.Lines {
		if line.Section == SectionCore {
			if line.Number < 100 || line.Number > 140 {
				t.Errorf("core line %d outside handleRequest", line.Number)
			}
			if line.Importance != 0.9 {
				t.Errorf("core line %d importance = %f, want 0.9", line.Number, line.Importance)
			}
			coreInComplex++
		}
	}
	if coreInComplex != 30 {
		t.Errorf("core lines = %d, want 30", coreInComplex)
	}
	if got.Metadata.FunctionsAnalyzed != 4 {
		t.Errorf("FunctionsAnalyzed = %d, want 4", got.Metadata.FunctionsAnalyzed)
	}
	if got.Metadata.FunctionsSelected != 1 {
		t.Errorf("FunctionsSelected = %d, want 1", got.Metadata.FunctionsSelected)
	}

	// Footer budget.
	for i := 195; i <= 199; i++ {
		if !seen[i] {
			t.Errorf("footer line %d not selected", i)
		}
	}

	if len(got.Indicators) != 1 {
		t.Fatalf("indicators = %v, want one", got.Indicators)
	}
	ind := got.Indicators[0]
	if ind.Description != "... 150 lines omitted ..." {
		t.Errorf("indicator description = %q", ind.Description)
	}
	if ind.Position != 201 {
		t.Errorf("indicator position = %d, want 201", ind.Position)
	}
	if ind.Type != "omitted-lines" {
		t.Errorf("indicator type = %q", ind.Type)
	}

	tr := got.Truncation(50)
	if !tr.Truncated || tr.OriginalLineCount != 200 || tr.TruncatedLineCount != 50 || tr.LineLimit != 50 {
		t.Errorf("Truncation = %+v", tr)
	}
}

func TestApplySectionOverlapDeduplicates(t *testing.T) {
	// Header, core and footer claims overlap; each line appears once,
	// attributed to the first section that claimed it.
	stub := &stubStrategy{
		language: lang.Python,
		headers:  []int{0, 1, 2},
		functions: []FunctionAnalysis{
			{Name: "work", StartLine: 2, EndLine: 5, Complexity: 0.5, LineCount: 4},
		},
		footers: []int{5, 6},
	}
	p := testProcessor(t, DefaultOptions(), stub)

	got, err := p.Apply(context.Background(), numberedLines(12), "job.py", 10)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	counts := make(map[int]int)
	sections := make(map[int]Section)
	for _, line := range got.Lines {
		counts[line.Number]++
		sections[line.Number] = line.Section
	}
	for num, c := range counts {
		if c > 1 {
			t.Errorf("line %d selected %d times", num, c)
		}
	}
	if sections[2] != SectionHeader {
		t.Errorf("line 2 section = %s, want header", sections[2])
	}
	if sections[5] != SectionCore {
		t.Errorf("line 5 section = %s, want core", sections[5])
	}
	if sections[6] != SectionFooter {
		t.Errorf("line 6 section = %s, want footer", sections[6])
	}
	if got.LimitedLineCount > 10 {
		t.Errorf("LimitedLineCount = %d exceeds limit", got.LimitedLineCount)
	}
}

func TestApplyCoreBudgetIgnoresHeaderOverlap(t *testing.T) {
	// A function spanning header-claimed lines still fills its full core
	// budget with fresh lines; duplicates cost nothing.
	stub := &stubStrategy{
		language: lang.Go,
		headers:  []int{0, 1, 2},
		functions: []FunctionAnalysis{
			{Name: "main", StartLine: 0, EndLine: 11, Complexity: 0.9, LineCount: 12},
		},
	}
	p := testProcessor(t, DefaultOptions(), stub)

	got, err := p.Apply(context.Background(), numberedLines(12), "main.go", 10)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var core []int
	for _, line := range got.Lines {
		if line.Section == SectionCore {
			core = append(core, line.Number)
		}
	}
	if len(core) != 6 {
		t.Fatalf("core lines = %v, want 6 lines", core)
	}
	for i, num := range core {
		if want := i + 3; num != want {
			t.Errorf("core[%d] = %d, want %d", i, num, want)
		}
	}
}

func TestApplyNeverExceedsLimit(t *testing.T) {
	stub := &stubStrategy{
		language: lang.Go,
		headers:  []int{0, 1},
		functions: []FunctionAnalysis{
			{Name: "a", StartLine: 3, EndLine: 9, Complexity: 0.6, LineCount: 7},
			{Name: "b", StartLine: 10, EndLine: 16, Complexity: 0.4, LineCount: 7},
		},
		footers: []int{18, 19},
	}
	p := testProcessor(t, DefaultOptions(), stub)

	for limit := 1; limit <= 15; limit++ {
		got, err := p.Apply(context.Background(), numberedLines(20), "main.go", limit)
		if err != nil {
			t.Fatalf("Apply(limit=%d) error = %v", limit, err)
		}
		if got.LimitedLineCount > limit {
			t.Errorf("Apply(limit=%d) selected %d lines", limit, got.LimitedLineCount)
		}
		if got.LimitedLineCount != len(got.Lines) {
			t.Errorf("LimitedLineCount %d != len(Lines) %d", got.LimitedLineCount, len(got.Lines))
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := testProcessor(t, DefaultOptions(), nil)
	if err := p.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
