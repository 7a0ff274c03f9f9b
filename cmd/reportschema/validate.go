package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportschema/internal/prompt"
	"github.com/goliatone/go-reportschema/internal/watch"
	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// fileReport is the outcome of checking one template file.
type fileReport struct {
	Path       string             `json:"path"`
	Validation *validation.Result `json:"validation,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func (r fileReport) failed() bool {
	return r.Error != "" || (r.Validation != nil && r.Validation.Blocking())
}

func checkFile(ctx context.Context, v validation.Validator, path string) fileReport {
	report := fileReport{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	imported, err := codec.Import(data,
		codec.WithSource(path),
		codec.WithValidator(v),
		codec.WithContext(ctx),
	)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Validation = &imported.Validation
	return report
}

func printReport(w io.Writer, report fileReport) {
	switch {
	case report.Error != "":
		fmt.Fprintf(w, "%s: %s\n", report.Path, report.Error)
	case len(report.Validation.Issues()) == 0:
		fmt.Fprintf(w, "%s: ok\n", report.Path)
	default:
		counts := report.Validation.Counts()
		fmt.Fprintf(w, "%s: %d error(s), %d warning(s), %d suggestion(s)\n", report.Path,
			counts[validation.SeverityError], counts[validation.SeverityWarning], counts[validation.SeverityInfo])
		for _, issue := range report.Validation.Issues() {
			fmt.Fprintf(w, "  %s\n", prompt.FormatIssue(issue))
		}
	}
}

// checkFiles validates every path and prints the results. It returns
// errIssuesFound when any file failed.
func (a *app) checkFiles(cmd *cobra.Command, paths []string, asJSON bool) error {
	v := a.validator()
	reports := make([]fileReport, 0, len(paths))
	failed := false
	for _, path := range paths {
		report := checkFile(cmd.Context(), v, path)
		failed = failed || report.failed()
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			printReport(out, report)
		}
	}
	if failed {
		return errIssuesFound
	}
	return nil
}

func (a *app) validateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate template files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.checkFiles(cmd, args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}

// expandPatterns resolves doublestar globs to a sorted, de-duplicated list of
// template files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !codec.IsTemplateFile(match) {
				continue
			}
			if info, err := os.Stat(match); err != nil || info.IsDir() {
				continue
			}
			clean := filepath.Clean(match)
			if _, dup := seen[clean]; dup {
				continue
			}
			seen[clean] = struct{}{}
			out = append(out, clean)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (a *app) lintCmd() *cobra.Command {
	var (
		asJSON   bool
		watchDir string
	)
	cmd := &cobra.Command{
		Use:   "lint PATTERN...",
		Short: "Validate every template matching the glob patterns (supports **)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && watchDir == "" {
				return fmt.Errorf("lint needs at least one pattern or --watch")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var lintErr error
			if len(args) > 0 {
				paths, err := expandPatterns(args)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no template files match %v", args)
				}
				lintErr = a.checkFiles(cmd, paths, asJSON)
			}
			if watchDir == "" {
				return lintErr
			}
			return a.watch(cmd, watchDir)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	cmd.Flags().StringVar(&watchDir, "watch", "", "Keep re-validating templates under DIR as they change")
	return cmd
}

func (a *app) watch(cmd *cobra.Command, dir string) error {
	w, err := watch.New(dir, watch.DefaultConfig(), a.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx := cmd.Context()
	if err := w.Start(ctx); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "watching %s for template changes\n", dir)

	err = watch.Run(ctx, w, a.validator(), func(r watch.Report) {
		if r.Op == watch.OpDelete {
			fmt.Fprintf(out, "%s: removed\n", r.Path)
			return
		}
		report := fileReport{Path: r.Path}
		if r.Err != nil {
			report.Error = r.Err.Error()
		} else {
			result := r.Validation
			report.Validation = &result
		}
		printReport(out, report)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
