// Package scan discovers the files of a repository that belong in
// packed output, honoring gitignore semantics, include globs and size
// limits.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/repopack/repopack/internal/config"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
	"github.com/repopack/repopack/internal/pkg/logger"
	"github.com/repopack/repopack/internal/pkg/security"
)

// File is one discovered file. Path is root-relative with forward
// slashes regardless of platform.
type File struct {
	Path    string
	AbsPath string
	Size    int64
}

// Scanner walks one repository root.
type Scanner struct {
	root    string
	cfg     config.ScanConfig
	ignore  *IgnoreFilter
	include []string
	log     *logger.Logger
}

// New creates a scanner for root. Include patterns are validated up
// front so a bad glob fails before any walking happens.
func New(root string, cfg config.ScanConfig, log *logger.Logger) (*Scanner, error) {
	if log == nil {
		log = logger.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.ScanError("resolving scan root", err).
			WithDetail("root", root)
	}

	for _, p := range cfg.IncludePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, apperrors.ValidationError("invalid include pattern").
				WithDetail("pattern", p)
		}
	}

	return &Scanner{
		root: abs,
		cfg:  cfg,
		ignore: NewIgnoreFilter(abs, IgnoreOptions{
			UseDefaults:  cfg.UseDefaultIgnore,
			UseGitignore: cfg.UseGitignore,
			Extra:        cfg.IgnorePatterns,
		}),
		include: cfg.IncludePatterns,
		log:     log,
	}, nil
}

// Scan walks the root and returns matching files sorted by path.
func (s *Scanner) Scan(ctx context.Context) ([]File, error) {
	var files []File
	skipped := 0

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if s.ignore.ShouldIgnore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.ignore.ShouldIgnore(rel, false) {
			return nil
		}
		if !s.matchesInclude(rel) {
			return nil
		}
		// Paths that would break downstream consumers (reserved device
		// names, overlong paths) are dropped rather than packed.
		if err := security.ValidatePath(rel); err != nil {
			s.log.Warn("skipping invalid path", "file", security.SanitizeForLog(rel), "error", err)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > s.cfg.MaxFileSize {
			s.log.Warn("skipping oversized file", "file", rel, "size", info.Size())
			skipped++
			return nil
		}

		files = append(files, File{Path: rel, AbsPath: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, apperrors.ScanError("walking repository", err).
			WithDetail("root", s.root)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	s.log.Debug("scan complete", "root", s.root, "files", len(files), "oversized", skipped)
	return files, nil
}

// matchesInclude applies include globs; an empty set includes all.
func (s *Scanner) matchesInclude(rel string) bool {
	if len(s.include) == 0 {
		return true
	}
	for _, p := range s.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
