package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// defaultPatterns are excluded unless the caller disables them. They
// cover VCS metadata, dependency trees and build artifacts that never
// belong in packed output.
var defaultPatterns = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"__pycache__",
	"*.pyc",
	".DS_Store",
	"*.lock",
	"*.log",
	"vendor",
	"dist",
	"build",
	"target",
	".idea",
	".vscode",
	"*.min.js",
	"*.map",
}

// IgnoreFilter decides which paths are excluded from a scan. Patterns
// come from the built-in defaults, the repository's .gitignore, a
// .repopackignore file, and explicit configuration, in that order.
// Matching is last-match-wins, so later negations reinstate paths.
type IgnoreFilter struct {
	root     string
	patterns []gitignore.Pattern
	matcher  gitignore.Matcher
}

// IgnoreOptions selects the pattern sources for an IgnoreFilter.
type IgnoreOptions struct {
	UseDefaults  bool
	UseGitignore bool
	Extra        []string // config-supplied patterns, gitignore syntax
}

// NewIgnoreFilter builds the filter for one repository root.
func NewIgnoreFilter(root string, opts IgnoreOptions) *IgnoreFilter {
	f := &IgnoreFilter{root: root}

	if opts.UseDefaults {
		for _, p := range defaultPatterns {
			f.patterns = append(f.patterns, gitignore.ParsePattern(p, nil))
		}
	}

	if opts.UseGitignore {
		f.loadPatternFile(filepath.Join(root, ".gitignore"))
	}

	// .repopackignore always applies; its whole purpose is this tool.
	f.loadPatternFile(filepath.Join(root, ".repopackignore"))

	for _, p := range opts.Extra {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f.patterns = append(f.patterns, gitignore.ParsePattern(p, nil))
	}

	f.matcher = gitignore.NewMatcher(f.patterns)
	return f
}

func (f *IgnoreFilter) loadPatternFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f.patterns = append(f.patterns, gitignore.ParsePattern(line, nil))
	}
}

// ShouldIgnore reports whether a root-relative slash path is excluded.
func (f *IgnoreFilter) ShouldIgnore(relPath string, isDir bool) bool {
	return f.matcher.Match(strings.Split(relPath, "/"), isDir)
}
