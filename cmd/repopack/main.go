package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/repopack/repopack/internal/config"
	"github.com/repopack/repopack/internal/lang"
	"github.com/repopack/repopack/internal/limit"
	"github.com/repopack/repopack/internal/output"
	"github.com/repopack/repopack/internal/pack"
	apperrors "github.com/repopack/repopack/internal/pkg/errors"
	"github.com/repopack/repopack/internal/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := packCmd()
	rootCmd.AddCommand(
		languagesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func packCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repopack [directory]",
		Short: "Pack a repository into a single AI-friendly document",
		Long: `Repopack scans a repository, filters out binaries and suspected
secrets, optionally reduces each file to its most informative lines,
and renders everything into one document.

Run 'repopack .' to pack the current directory.
Run 'repopack --help' for available options.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runPack,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "config file path")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cmd.Flags().StringP("output", "o", "", "output file path (- for stdout)")
	cmd.Flags().String("style", "", "output style (xml, markdown, plain, json)")
	cmd.Flags().Int("line-limit", -1, "max lines kept per file (0 disables)")
	cmd.Flags().StringArray("include", nil, "include glob pattern (repeatable)")
	cmd.Flags().StringArray("ignore", nil, "extra ignore pattern (repeatable)")
	cmd.Flags().Bool("copy", false, "also copy output to the clipboard")
	cmd.Flags().Bool("no-security-check", false, "disable secret scanning")
	cmd.Flags().Bool("no-cache", false, "disable the parse cache")
	cmd.Flags().Bool("line-numbers", false, "prefix content lines with numbers")
	cmd.Flags().Bool("remove-comments", false, "strip comments from packed files")
	cmd.Flags().Bool("remove-empty-lines", false, "strip empty lines from packed files")
	cmd.Flags().Bool("no-file-summary", false, "omit the summary section")
	cmd.Flags().Bool("no-directory-structure", false, "omit the directory tree section")

	return cmd
}

func runPack(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if cfg.IsDevelopment() {
		log.Debug("effective configuration",
			"style", cfg.Output.Style,
			"line_limit", cfg.Limit.LineLimit,
			"workers", cfg.Scan.Workers,
			"security_check", cfg.Security.EnableCheck,
		)
	}

	p := pack.New(cfg, log)
	doc, stats, err := p.Run(cmd.Context(), root)
	if err != nil {
		return err
	}

	renderer, err := output.NewRenderer(cfg.Output.Style, output.Options{
		ShowLineNumbers: cfg.Output.ShowLineNumbers,
		IncludeSummary:  cfg.Output.IncludeSummary,
	})
	if err != nil {
		return err
	}

	writer := buildWriter(cfg)
	if err := writer.Write(renderer, doc); err != nil {
		return err
	}

	if cfg.Output.Path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Packed %d files (%d lines, %d truncated) into %s\n",
			stats.TotalFiles, stats.TotalLines, stats.TruncatedFiles, cfg.Output.Path)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Path = v
	}
	if v, _ := cmd.Flags().GetString("style"); v != "" {
		cfg.Output.Style = v
	}
	if v, _ := cmd.Flags().GetInt("line-limit"); v >= 0 {
		cfg.Limit.LineLimit = v
	}
	if v, _ := cmd.Flags().GetStringArray("include"); len(v) > 0 {
		cfg.Scan.IncludePatterns = append(cfg.Scan.IncludePatterns, v...)
	}
	if v, _ := cmd.Flags().GetStringArray("ignore"); len(v) > 0 {
		cfg.Scan.IgnorePatterns = append(cfg.Scan.IgnorePatterns, v...)
	}
	if v, _ := cmd.Flags().GetBool("copy"); v {
		cfg.Output.CopyToClipboard = true
	}
	if v, _ := cmd.Flags().GetBool("no-security-check"); v {
		cfg.Security.EnableCheck = false
	}
	if v, _ := cmd.Flags().GetBool("no-cache"); v {
		cfg.Limit.EnableCaching = false
	}
	if v, _ := cmd.Flags().GetBool("line-numbers"); v {
		cfg.Output.ShowLineNumbers = true
	}
	if v, _ := cmd.Flags().GetBool("remove-comments"); v {
		cfg.Output.RemoveComments = true
	}
	if v, _ := cmd.Flags().GetBool("remove-empty-lines"); v {
		cfg.Output.RemoveEmptyLines = true
	}
	if v, _ := cmd.Flags().GetBool("no-file-summary"); v {
		cfg.Output.IncludeSummary = false
	}
	if v, _ := cmd.Flags().GetBool("no-directory-structure"); v {
		cfg.Output.IncludeTree = false
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Log.Level = "debug"
	}
}

func buildWriter(cfg *config.Config) pack.Writer {
	var writers []pack.Writer

	if cfg.Output.Path == "-" {
		writers = append(writers, &pack.StreamWriter{Out: os.Stdout})
	} else {
		writers = append(writers, &pack.FileWriter{Path: cfg.Output.Path})
	}
	if cfg.Output.CopyToClipboard {
		writers = append(writers, &pack.ClipboardWriter{})
	}

	if len(writers) == 1 {
		return writers[0]
	}
	return &pack.MultiWriter{Writers: writers}
}

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages [alias...]",
		Short: "List languages with structural line-limit support",
		Long: `Without arguments, lists every language with a registered
line-limit strategy. With arguments, resolves each alias (js, golang,
c++) to its canonical id, failing on unsupported languages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				ids := limit.NewRegistry().Languages()
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			}
			for _, arg := range args {
				id := lang.Normalize(arg)
				if !lang.IsSupported(id) {
					return apperrors.UnsupportedLanguageError(arg)
				}
				fmt.Println(id)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repopack %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}
