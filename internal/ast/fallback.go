//go:build !cgo

package ast

import (
	"context"
	"log/slog"
)

// stubParser is used when tree-sitter is unavailable (CGO disabled).
// Every parse reports ErrParserUnavailable so callers run their
// regex heuristics instead.
type stubParser struct{}

// NewParser creates the no-cgo stub parser.
func NewParser() Parser {
	slog.Warn("tree-sitter not available (CGO disabled), structural analysis degraded to heuristics")
	return &stubParser{}
}

func (p *stubParser) Parse(ctx context.Context, content []byte, language string) (*Node, error) {
	return nil, ErrParserUnavailable
}

func (p *stubParser) SupportsLanguage(language string) bool {
	return false
}

func (p *stubParser) Close() error {
	return nil
}
