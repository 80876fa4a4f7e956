package limit

import (
	"regexp"
	"sort"
	"strings"

	"github.com/repopack/repopack/internal/ast"
)

// Strategy classifies the lines of one language. Implementations are
// stateless and shared across files. Every operation must return a
// usable (possibly empty) result even for a nil or malformed tree.
type Strategy interface {
	Language() string

	// IdentifyHeaderLines returns sorted unique 0-based line numbers of
	// imports, package declarations and declaration signatures.
	IdentifyHeaderLines(lines []string, root *ast.Node) []int

	// AnalyzeFunctions enumerates function-like constructs in traversal
	// order. Ranking by complexity is the processor's job.
	AnalyzeFunctions(lines []string, root *ast.Node) []FunctionAnalysis

	// IdentifyFooterLines returns sorted unique line numbers of the entry
	// point (unconditional) and trailing top-level statements (only at or
	// after 80% of the file).
	IdentifyFooterLines(lines []string, root *ast.Node) []int

	// CalculateComplexity scores a node in [1/20, 1].
	CalculateComplexity(n *ast.Node) float64
}

const (
	// signatureWindow bounds the scan from a declaration's start line to
	// its signature terminator, so malformed input cannot run away.
	signatureWindow = 10

	// complexityNorm is the shared normalization divisor: ~19+ weighted
	// points saturate at 1.0.
	complexityNorm = 20.0

	// heuristicComplexity is assigned to functions found by regex
	// fallback, where no structure is available to score.
	heuristicComplexity = 0.5

	// footerStart gates trailing-statement detection to the last 20%
	// of the file. Entry points are exempt.
	footerStart = 0.8
)

// languageProfile is the data that specializes the generic strategy to
// one language: tree node kinds for the structural path and regex
// tables for the heuristic path.
type languageProfile struct {
	id string

	// Structural path.
	headerKinds    []string           // full node span is header (imports, package decls)
	signatureKinds []string           // start line through signature terminator
	functionKinds  []string           // function-like nodes
	controlKinds   []string           // +1 complexity each
	footerKinds    []string           // trailing top-level statement kinds
	bonusKinds     map[string]float64 // language-specific complexity signals
	paramListKinds []string           // parameter list container kinds
	paramKinds     []string           // parameter kinds counted when no container exists
	entryNames     []string           // function names marking the entry point
	sigTerminators []string           // substrings ending a signature; empty = start line only

	// Heuristic path.
	headerPattern    *regexp.Regexp
	functionPatterns []*regexp.Regexp // first non-empty capture = name
	footerPattern    *regexp.Regexp
	entryPattern     *regexp.Regexp // matched per line, position-exempt
}

type genericStrategy struct {
	profile   languageProfile
	header    map[string]struct{}
	signature map[string]struct{}
	function  map[string]struct{}
	control   map[string]struct{}
	footer    map[string]struct{}
	bonus     map[string]float64
	paramList map[string]struct{}
	param     map[string]struct{}
	entry     map[string]struct{}
}

func newStrategy(p languageProfile) *genericStrategy {
	return &genericStrategy{
		profile:   p,
		header:    kindSet(p.headerKinds),
		signature: kindSet(p.signatureKinds),
		function:  kindSet(p.functionKinds),
		control:   kindSet(p.controlKinds),
		footer:    kindSet(p.footerKinds),
		bonus:     p.bonusKinds,
		paramList: kindSet(p.paramListKinds),
		param:     kindSet(p.paramKinds),
		entry:     kindSet(p.entryNames),
	}
}

func kindSet(kinds []string) map[string]struct{} {
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

func (s *genericStrategy) Language() string {
	return s.profile.id
}

func (s *genericStrategy) IdentifyHeaderLines(lines []string, root *ast.Node) (result []int) {
	defer func() {
		if recover() != nil {
			result = s.headerHeuristic(lines)
		}
	}()

	if root == nil {
		return s.headerHeuristic(lines)
	}

	seen := make(map[int]struct{})
	root.Walk(func(n *ast.Node) bool {
		if _, ok := s.header[n.Type]; ok {
			markRange(seen, n.StartLine, n.EndLine, len(lines))
			return false
		}
		if _, ok := s.signature[n.Type]; ok {
			markRange(seen, n.StartLine, s.signatureEnd(lines, n), len(lines))
			// Descend: class bodies contain method signatures.
			return true
		}
		return true
	})
	return sortedLines(seen)
}

// signatureEnd finds the last line of a declaration's signature: the
// first line containing a terminator token, within a bounded window.
func (s *genericStrategy) signatureEnd(lines []string, n *ast.Node) int {
	if len(s.profile.sigTerminators) == 0 {
		return n.StartLine
	}

	end := n.StartLine + signatureWindow
	if n.EndLine < end {
		end = n.EndLine
	}
	if last := len(lines) - 1; last < end {
		end = last
	}

	for ln := n.StartLine; ln <= end; ln++ {
		if ln < 0 || ln >= len(lines) {
			break
		}
		text := strings.TrimRight(lines[ln], " \t")
		for _, term := range s.profile.sigTerminators {
			if strings.Contains(text, term) {
				return ln
			}
		}
	}
	return n.StartLine
}

func (s *genericStrategy) AnalyzeFunctions(lines []string, root *ast.Node) (result []FunctionAnalysis) {
	defer func() {
		if recover() != nil {
			result = s.functionHeuristic(lines)
		}
	}()

	if root == nil {
		return s.functionHeuristic(lines)
	}

	root.Walk(func(n *ast.Node) bool {
		if _, ok := s.function[n.Type]; ok {
			name := n.Name
			if name == "" {
				name = "anonymous"
			}
			result = append(result, FunctionAnalysis{
				Name:       name,
				StartLine:  n.StartLine,
				EndLine:    n.EndLine,
				Complexity: s.CalculateComplexity(n),
				LineCount:  n.EndLine - n.StartLine + 1,
			})
		}
		return true
	})
	return result
}

func (s *genericStrategy) IdentifyFooterLines(lines []string, root *ast.Node) (result []int) {
	defer func() {
		if recover() != nil {
			result = s.footerHeuristic(lines)
		}
	}()

	if root == nil {
		return s.footerHeuristic(lines)
	}

	seen := make(map[int]struct{})

	// Entry-point functions, anywhere in the tree, any position.
	root.Walk(func(n *ast.Node) bool {
		if _, ok := s.function[n.Type]; ok {
			if _, isEntry := s.entry[n.Name]; isEntry {
				markRange(seen, n.StartLine, n.EndLine, len(lines))
			}
		}
		return true
	})

	threshold := int(float64(len(lines)) * footerStart)

	// Top-level statements: entry guards anywhere, the rest only in the
	// trailing portion of the file.
	for _, child := range root.Children {
		if s.profile.entryPattern != nil &&
			child.StartLine >= 0 && child.StartLine < len(lines) &&
			s.profile.entryPattern.MatchString(lines[child.StartLine]) {
			markRange(seen, child.StartLine, child.EndLine, len(lines))
			continue
		}
		if _, ok := s.footer[child.Type]; ok && child.StartLine >= threshold {
			markRange(seen, child.StartLine, child.EndLine, len(lines))
		}
	}
	return sortedLines(seen)
}

func (s *genericStrategy) CalculateComplexity(n *ast.Node) (score float64) {
	defer func() {
		if recover() != nil {
			score = 1.0 / complexityNorm
		}
	}()

	if n == nil {
		return 1.0 / complexityNorm
	}

	raw := 1.0
	for _, child := range n.Children {
		child.Walk(func(d *ast.Node) bool {
			if _, ok := s.control[d.Type]; ok {
				raw++
			}
			if _, ok := s.function[d.Type]; ok {
				raw += 2
			}
			if bonus, ok := s.bonus[d.Type]; ok {
				raw += bonus
			}
			return true
		})
	}
	raw += s.parameterScore(n)

	if raw > complexityNorm {
		return 1
	}
	return raw / complexityNorm
}

// parameterScore contributes up to 1 point: min(paramCount/5, 1).
func (s *genericStrategy) parameterScore(n *ast.Node) float64 {
	count := 0

	if len(s.paramList) > 0 {
		for _, child := range n.Children {
			if _, ok := s.paramList[child.Type]; !ok {
				continue
			}
			for _, item := range child.Children {
				switch item.Type {
				case "(", ")", ",":
				default:
					count++
				}
			}
			break
		}
	} else if len(s.param) > 0 {
		for _, child := range n.Children {
			if _, ok := s.param[child.Type]; ok {
				count++
			}
			for _, grandchild := range child.Children {
				if _, ok := s.param[grandchild.Type]; ok {
					count++
				}
			}
		}
	}

	score := float64(count) / 5
	if score > 1 {
		return 1
	}
	return score
}

// Heuristic fallbacks. These operate purely on line text and are the
// degraded path when no tree is available; they never fail.

func (s *genericStrategy) headerHeuristic(lines []string) []int {
	if s.profile.headerPattern == nil {
		return nil
	}
	var result []int
	for i, line := range lines {
		if s.profile.headerPattern.MatchString(line) {
			result = append(result, i)
		}
	}
	return result
}

func (s *genericStrategy) functionHeuristic(lines []string) []FunctionAnalysis {
	var result []FunctionAnalysis
	for i, line := range lines {
		for _, pattern := range s.profile.functionPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := "anonymous"
			for _, group := range m[1:] {
				if group != "" {
					name = group
					break
				}
			}
			result = append(result, FunctionAnalysis{
				Name:       name,
				StartLine:  i,
				EndLine:    i,
				Complexity: heuristicComplexity,
				LineCount:  1,
			})
			break
		}
	}
	return result
}

func (s *genericStrategy) footerHeuristic(lines []string) []int {
	seen := make(map[int]struct{})
	threshold := int(float64(len(lines)) * footerStart)

	for i, line := range lines {
		if s.profile.entryPattern != nil && s.profile.entryPattern.MatchString(line) {
			seen[i] = struct{}{}
			continue
		}
		if i >= threshold && s.profile.footerPattern != nil && s.profile.footerPattern.MatchString(line) {
			seen[i] = struct{}{}
		}
	}
	return sortedLines(seen)
}

func markRange(seen map[int]struct{}, start, end, lineCount int) {
	if start < 0 {
		start = 0
	}
	if end >= lineCount {
		end = lineCount - 1
	}
	for ln := start; ln <= end; ln++ {
		seen[ln] = struct{}{}
	}
}

func sortedLines(seen map[int]struct{}) []int {
	result := make([]int, 0, len(seen))
	for ln := range seen {
		result = append(result, ln)
	}
	sort.Ints(result)
	return result
}
