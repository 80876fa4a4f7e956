// Package transform applies optional content rewrites to files before
// they are limited and rendered: comment removal and empty-line
// removal.
package transform

import (
	"strings"

	"github.com/repopack/repopack/internal/lang"
)

// commentSyntax describes one language's comment markers. Line-anchored
// blocks (Ruby's =begin/=end) only open and close at column zero.
type commentSyntax struct {
	line          []string
	blockOpen     string
	blockClose    string
	blockAnchored bool
}

var slashSyntax = commentSyntax{line: []string{"//"}, blockOpen: "/*", blockClose: "*/"}

var syntaxes = map[string]commentSyntax{
	lang.TypeScript: slashSyntax,
	lang.JavaScript: slashSyntax,
	lang.Java:       slashSyntax,
	lang.Go:         slashSyntax,
	lang.C:          slashSyntax,
	lang.CPP:        slashSyntax,
	lang.CSharp:     slashSyntax,
	lang.Rust:       slashSyntax,
	lang.Swift:      slashSyntax,
	lang.Kotlin:     slashSyntax,
	lang.Dart:       slashSyntax,
	lang.PHP:        {line: []string{"//", "#"}, blockOpen: "/*", blockClose: "*/"},
	lang.Python:     {line: []string{"#"}},
	lang.Ruby:       {line: []string{"#"}, blockOpen: "=begin", blockClose: "=end", blockAnchored: true},
}

// RemoveComments strips comments for the given language. Unknown
// languages are returned unchanged. Markers inside single, double or
// backtick quotes are preserved; string state resets per line, so
// comment markers at the start of a line inside a multi-line string
// are a known limitation. Lines reduced to nothing stay as empty
// lines; RemoveEmptyLines cleans those up when enabled.
func RemoveComments(content, language string) string {
	syn, ok := syntaxes[language]
	if !ok {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inBlock := false

	for _, line := range lines {
		if syn.blockAnchored {
			if inBlock {
				if strings.HasPrefix(line, syn.blockClose) {
					inBlock = false
				}
				continue
			}
			if strings.HasPrefix(line, syn.blockOpen) {
				inBlock = true
				continue
			}
			out = append(out, stripLine(line, syn))
			continue
		}

		kept, nowInBlock := stripLineWithBlocks(line, syn, inBlock)
		inBlock = nowInBlock
		out = append(out, kept)
	}
	return strings.Join(out, "\n")
}

// RemoveEmptyLines drops lines that are empty or whitespace-only.
func RemoveEmptyLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// stripLine removes line comments only, respecting quotes.
func stripLine(line string, syn commentSyntax) string {
	kept, _ := stripLineWithBlocks(line, commentSyntax{line: syn.line}, false)
	return kept
}

// stripLineWithBlocks scans one line, dropping line comments and block
// comment spans. Returns the kept text and whether a block comment is
// still open at end of line.
func stripLineWithBlocks(line string, syn commentSyntax, inBlock bool) (string, bool) {
	var b strings.Builder
	var quote byte

	i := 0
	for i < len(line) {
		if inBlock {
			idx := strings.Index(line[i:], syn.blockClose)
			if idx < 0 {
				return strings.TrimRight(b.String(), " \t"), true
			}
			i += idx + len(syn.blockClose)
			inBlock = false
			continue
		}

		c := line[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				b.WriteByte(line[i+1])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}

		if c == '\'' || c == '"' || c == '`' {
			quote = c
			b.WriteByte(c)
			i++
			continue
		}
		if syn.blockOpen != "" && strings.HasPrefix(line[i:], syn.blockOpen) {
			inBlock = true
			i += len(syn.blockOpen)
			continue
		}
		if marker := matchLineMarker(line[i:], syn.line); marker != "" {
			return strings.TrimRight(b.String(), " \t"), false
		}

		b.WriteByte(c)
		i++
	}
	return strings.TrimRight(b.String(), " \t"), false
}

func matchLineMarker(s string, markers []string) string {
	for _, m := range markers {
		if strings.HasPrefix(s, m) {
			return m
		}
	}
	return ""
}
