// Package pack orchestrates a full run: scan the repository, read and
// filter files, apply line limits, and assemble the output document.
package pack

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/repopack/repopack/internal/config"
	"github.com/repopack/repopack/internal/lang"
	"github.com/repopack/repopack/internal/limit"
	"github.com/repopack/repopack/internal/output"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
	"github.com/repopack/repopack/internal/pkg/logger"
	"github.com/repopack/repopack/internal/pkg/security"
	"github.com/repopack/repopack/internal/scan"
	"github.com/repopack/repopack/internal/transform"
)

// Stats summarizes one pack run.
type Stats struct {
	TotalFiles     int
	TotalLines     int
	TruncatedFiles int
	SkippedBinary  int
	SkippedSecrets int
	Elapsed        time.Duration
}

// Packer runs the pipeline for one repository.
type Packer struct {
	cfg *config.Config
	log *logger.Logger
}

// New creates a packer.
func New(cfg *config.Config, log *logger.Logger) *Packer {
	if log == nil {
		log = logger.Default()
	}
	return &Packer{cfg: cfg, log: log}
}

type fileResult struct {
	entry         *output.FileEntry
	lines         int
	truncated     bool
	skippedBinary bool
	skippedSecret bool
}

// Run scans root and produces the document plus run statistics.
func (p *Packer) Run(ctx context.Context, root string) (*output.Document, *Stats, error) {
	start := time.Now()

	scanner, err := scan.New(root, p.cfg.Scan, p.log)
	if err != nil {
		return nil, nil, err
	}
	files, err := scanner.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}
	p.log.Info("scan complete", "files", len(files))

	results := make([]fileResult, len(files))
	secrets := security.NewScanner()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Processors are not concurrency-safe, one per worker. Progress
	// logging is throttled so large repos do not flood the output.
	progress := rate.NewLimiter(rate.Every(200*time.Millisecond), 1)
	workers := p.cfg.Scan.Workers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			proc := limit.NewProcessor(limit.Options{
				ShowTruncationIndicators: p.cfg.Limit.TruncationIndicators,
				PreserveStructure:        p.cfg.Limit.PreserveStructure,
				EnableCaching:            p.cfg.Limit.EnableCaching,
				CacheTTL:                 p.cfg.CacheTTLDuration(),
			}, p.log)
			defer proc.Close()

			for idx := range jobs {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				res, err := p.processFile(gctx, proc, secrets, files[idx])
				if err != nil {
					return err
				}
				results[idx] = res
				if progress.Allow() {
					p.log.Debug("packing", "file", files[idx].Path)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	doc := &output.Document{
		RootName:   filepath.Base(root),
		HeaderText: p.cfg.Output.HeaderText,
	}
	stats := &Stats{}
	var paths []string

	for _, res := range results {
		switch {
		case res.skippedBinary:
			stats.SkippedBinary++
		case res.skippedSecret:
			stats.SkippedSecrets++
		case res.entry != nil:
			doc.Files = append(doc.Files, *res.entry)
			paths = append(paths, res.entry.Path)
			stats.TotalFiles++
			stats.TotalLines += res.lines
			if res.truncated {
				stats.TruncatedFiles++
			}
		}
	}

	stats.Elapsed = time.Since(start)
	if p.cfg.Output.IncludeTree {
		doc.Tree = output.BuildTree(paths)
	}
	doc.Summary = output.Summary{
		TotalFiles:     stats.TotalFiles,
		TotalLines:     stats.TotalLines,
		TruncatedFiles: stats.TruncatedFiles,
		SkippedBinary:  stats.SkippedBinary,
		SkippedSecrets: stats.SkippedSecrets,
		GeneratedAt:    time.Now().UTC(),
	}

	p.log.Info("pack complete",
		"files", stats.TotalFiles,
		"lines", stats.TotalLines,
		"truncated", stats.TruncatedFiles,
		"elapsed", stats.Elapsed,
	)
	return doc, stats, nil
}

func (p *Packer) processFile(ctx context.Context, proc *limit.Processor, secrets *security.Scanner, f scan.File) (fileResult, error) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return fileResult{}, apperrors.IOError("reading file", err).
			WithDetail("path", f.Path)
	}
	content := string(data)
	flog := p.log.WithFile(security.SanitizeForLog(f.Path))

	if security.IsBinaryContent(content) {
		flog.Debug("skipping binary file")
		return fileResult{skippedBinary: true}, nil
	}
	if err := security.ValidateContent(content, int(p.cfg.Scan.MaxFileSize)); err != nil {
		flog.WithError(err).Warn("skipping non-text file")
		return fileResult{skippedBinary: true}, nil
	}

	if p.cfg.Security.EnableCheck && !p.securityExcluded(f.Path) {
		if findings := secrets.Scan(f.Path, content); len(findings) > 0 {
			flog.Warn("skipping file with suspected secrets",
				"rule", findings[0].Rule,
				"line", findings[0].Line,
			)
			return fileResult{skippedSecret: true}, nil
		}
	}

	language := lang.Detect(f.Path)
	if p.cfg.Output.RemoveComments {
		content = transform.RemoveComments(content, language)
	}
	if p.cfg.Output.RemoveEmptyLines {
		content = transform.RemoveEmptyLines(content)
	}

	entry := output.FileEntry{
		Path:     f.Path,
		Language: language,
		Content:  content,
	}
	if entry.Language == lang.Unknown {
		entry.Language = ""
	}
	lineCount := strings.Count(content, "\n") + 1

	if p.cfg.LimitEnabled() {
		res, err := proc.Apply(ctx, content, f.Path, p.cfg.Limit.LineLimit)
		switch {
		case err == nil:
			tr := res.Truncation(p.cfg.Limit.LineLimit)
			entry.Content = res.Text()
			entry.Truncation = &output.Truncation{
				Truncated:          tr.Truncated,
				OriginalLineCount:  tr.OriginalLineCount,
				TruncatedLineCount: tr.TruncatedLineCount,
				LineLimit:          tr.LineLimit,
			}
			lineCount = res.LimitedLineCount
			return fileResult{entry: &entry, lines: lineCount, truncated: tr.Truncated}, nil
		case apperrors.IsUnsupportedLanguage(err) || apperrors.IsParse(err):
			// Degrade to the untruncated original rather than dropping
			// the file.
			flog.WithError(err).Warn("line limit not applied, keeping full content")
		default:
			return fileResult{}, err
		}
	}

	return fileResult{entry: &entry, lines: lineCount}, nil
}

func (p *Packer) securityExcluded(path string) bool {
	for _, pattern := range p.cfg.Security.ExcludePattern {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
