package limit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/repopack/repopack/internal/ast"
	"github.com/repopack/repopack/internal/lang"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
	"github.com/repopack/repopack/internal/pkg/logger"
)

// Algorithm tags recorded in result metadata.
const (
	AlgorithmNoLimit    = "no-limit"
	AlgorithmHead       = "head-truncation"
	AlgorithmStructural = "structural-selection"
)

// Options configures a processor.
type Options struct {
	// ShowTruncationIndicators appends a marker describing omitted lines.
	ShowTruncationIndicators bool

	// PreserveStructure enables structural selection. When false, files
	// are cut to their first N lines instead.
	PreserveStructure bool

	// EnableCaching reuses parse trees for identical content.
	EnableCaching bool

	// CacheTTL bounds cached tree staleness. Zero uses the default.
	CacheTTL time.Duration
}

// DefaultOptions returns the standard processor configuration.
func DefaultOptions() Options {
	return Options{
		ShowTruncationIndicators: true,
		PreserveStructure:        true,
		EnableCaching:            true,
		CacheTTL:                 ast.DefaultCacheTTL,
	}
}

// Processor applies line limits to single files. It owns its parser
// and cache; Close must be called to release them. A processor is not
// safe for concurrent use — concurrent pipelines create one per worker.
type Processor struct {
	opts     Options
	registry *Registry
	parser   ast.Parser
	cache    *ast.Cache
	log      *logger.Logger
	closed   bool
}

// NewProcessor creates a processor with all built-in language strategies.
func NewProcessor(opts Options, log *logger.Logger) *Processor {
	return NewProcessorWithRegistry(opts, NewRegistry(), log)
}

// NewProcessorWithRegistry creates a processor using a caller-supplied
// registry. Used by tests to inject stub strategies.
func NewProcessorWithRegistry(opts Options, registry *Registry, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Default()
	}

	p := &Processor{
		opts:     opts,
		registry: registry,
		parser:   ast.NewParser(),
		log:      log,
	}
	if opts.EnableCaching {
		p.cache = ast.NewCache(opts.CacheTTL)
	}
	return p
}

// Close releases the parser handle and clears the cache.
func (p *Processor) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.cache != nil {
		p.cache.Clear()
	}
	return p.parser.Close()
}

// Apply reduces content to at most limit lines, preserving headers,
// complex functions and entry points. Content at or under the limit is
// returned unchanged. Errors carry the file path and attempted limit;
// callers are expected to fall back to the original content.
func (p *Processor) Apply(ctx context.Context, content, filePath string, limit int) (*Result, error) {
	start := time.Now()

	if p.closed {
		return nil, apperrors.InternalError("processor is closed", nil).
			WithDetail("path", filePath)
	}
	if limit <= 0 {
		return nil, apperrors.ValidationError("line limit must be positive").
			WithDetail("path", filePath).
			WithDetail("limit", strconv.Itoa(limit))
	}

	lines := strings.Split(content, "\n")

	// Short-circuit: nothing to do, no parsing occurs.
	if len(lines) <= limit {
		return passThroughResult(lines, start), nil
	}

	language := lang.Detect(filePath)
	if language == lang.Unknown {
		return nil, apperrors.UnsupportedLanguageError(language).
			WithDetail("path", filePath).
			WithDetail("limit", strconv.Itoa(limit))
	}

	strategy := p.registry.Get(language)
	if strategy == nil {
		return nil, apperrors.UnsupportedLanguageError(language).
			WithDetail("path", filePath).
			WithDetail("limit", strconv.Itoa(limit))
	}

	if !p.opts.PreserveStructure {
		return p.headResult(lines, language, limit, start), nil
	}

	root, err := p.parse(ctx, []byte(content), filePath, language)
	if err != nil {
		return nil, err
	}

	alloc := AllocationFor(limit)
	selected := make([]SourceLine, 0, limit)
	seen := make(map[int]struct{}, limit)

	// Header: ascending order until the section budget runs out.
	headerNums := strategy.IdentifyHeaderLines(lines, root)
	taken := 0
	for _, num := range headerNums {
		if taken >= alloc.Header {
			break
		}
		if _, dup := seen[num]; dup {
			continue
		}
		seen[num] = struct{}{}
		selected = append(selected, SourceLine{
			Number:     num,
			Content:    lines[num],
			Section:    SectionHeader,
			Importance: headerImportance,
			NodeType:   "header",
		})
		taken++
	}

	// Core: most complex functions first.
	functions := strategy.AnalyzeFunctions(lines, root)
	coreLines, functionsSelected := selectCore(functions, lines, alloc.Core, seen)
	selected = append(selected, coreLines...)

	// Footer.
	footerNums := strategy.IdentifyFooterLines(lines, root)
	taken = 0
	for _, num := range footerNums {
		if taken >= alloc.Footer {
			break
		}
		if _, dup := seen[num]; dup {
			continue
		}
		seen[num] = struct{}{}
		selected = append(selected, SourceLine{
			Number:     num,
			Content:    lines[num],
			Section:    SectionFooter,
			Importance: footerImportance,
			NodeType:   "footer",
		})
		taken++
	}

	// Section budgets are soft guides; the limit is the hard invariant.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Number < selected[j].Number
	})
	if len(selected) > limit {
		selected = selected[:limit]
	}

	result := &Result{
		OriginalLineCount: len(lines),
		LimitedLineCount:  len(selected),
		Lines:             selected,
		Metadata: Metadata{
			Algorithm:         AlgorithmStructural,
			Language:          language,
			Allocation:        alloc,
			FunctionsAnalyzed: len(functions),
			FunctionsSelected: functionsSelected,
			Elapsed:           time.Since(start),
		},
	}
	p.addIndicator(result)

	p.log.WithFile(filePath).WithLanguage(language).Debug("applied line limit",
		"original", result.OriginalLineCount,
		"selected", result.LimitedLineCount,
		"functions", len(functions),
	)
	return result, nil
}

// parse resolves a tree through the cache. A missing grammar is not an
// error: strategies degrade to heuristics on a nil tree. An actual
// parse failure is fatal to this call.
func (p *Processor) parse(ctx context.Context, content []byte, filePath, language string) (*ast.Node, error) {
	if p.cache != nil {
		if root, ok := p.cache.Get(filePath, content); ok {
			return root, nil
		}
	}

	root, err := p.parser.Parse(ctx, content, language)
	if err != nil {
		if errors.Is(err, ast.ErrParserUnavailable) {
			return nil, nil
		}
		return nil, apperrors.ParseError("structural parse failed", err).
			WithDetail("path", filePath).
			WithDetail("language", language)
	}

	if p.cache != nil {
		p.cache.Set(filePath, content, root)
	}
	return root, nil
}

// selectCore picks functions by descending complexity (stable, so
// traversal order breaks ties) until either the function budget of
// roughly one function per ten core lines or the line budget runs out.
func selectCore(functions []FunctionAnalysis, lines []string, budget int, seen map[int]struct{}) ([]SourceLine, int) {
	if budget <= 0 || len(functions) == 0 {
		return nil, 0
	}

	ranked := make([]int, len(functions))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return functions[ranked[a]].Complexity > functions[ranked[b]].Complexity
	})

	maxFunctions := (budget + 9) / 10
	remaining := budget
	var selected []SourceLine
	count := 0

	for _, idx := range ranked {
		if count >= maxFunctions || remaining <= 0 {
			break
		}
		fn := &functions[idx]

		// Lines already claimed by another section do not count against
		// the budget; the function still gets up to take fresh lines.
		take := fn.LineCount
		if take > remaining {
			take = remaining
		}
		start := fn.StartLine
		if start < 0 {
			start = 0
		}
		for num := start; num <= fn.EndLine && num < len(lines) && take > 0; num++ {
			if _, dup := seen[num]; dup {
				continue
			}
			seen[num] = struct{}{}
			take--
			remaining--
			selected = append(selected, SourceLine{
				Number:     num,
				Content:    lines[num],
				Section:    SectionCore,
				Importance: fn.Complexity,
				NodeType:   "function",
			})
		}
		fn.Selected = true
		count++
	}
	return selected, count
}

func (p *Processor) addIndicator(r *Result) {
	if !p.opts.ShowTruncationIndicators || r.LimitedLineCount >= r.OriginalLineCount {
		return
	}

	position := 1
	if n := len(r.Lines); n > 0 {
		// 1-based line just after the last selected original line.
		position = r.Lines[n-1].Number + 2
	}
	omitted := r.OriginalLineCount - r.LimitedLineCount
	r.Indicators = append(r.Indicators, TruncationIndicator{
		Position:    position,
		Type:        "omitted-lines",
		Description: fmt.Sprintf("... %d lines omitted ...", omitted),
	})
}

func passThroughResult(lines []string, start time.Time) *Result {
	selected := make([]SourceLine, len(lines))
	for i, content := range lines {
		selected[i] = SourceLine{
			Number:     i,
			Content:    content,
			Section:    SectionCore,
			Importance: 1.0,
			NodeType:   "line",
		}
	}
	return &Result{
		OriginalLineCount: len(lines),
		LimitedLineCount:  len(lines),
		Lines:             selected,
		Metadata: Metadata{
			Algorithm: AlgorithmNoLimit,
			Elapsed:   time.Since(start),
		},
	}
}

func (p *Processor) headResult(lines []string, language string, limit int, start time.Time) *Result {
	selected := make([]SourceLine, limit)
	for i := 0; i < limit; i++ {
		selected[i] = SourceLine{
			Number:     i,
			Content:    lines[i],
			Section:    SectionCore,
			Importance: 1.0,
			NodeType:   "line",
		}
	}
	result := &Result{
		OriginalLineCount: len(lines),
		LimitedLineCount:  limit,
		Lines:             selected,
		Metadata: Metadata{
			Algorithm: AlgorithmHead,
			Language:  language,
			Elapsed:   time.Since(start),
		},
	}
	p.addIndicator(result)
	return result
}
