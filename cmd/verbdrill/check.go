package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/verbdrill/internal/platform"
	changes "github.com/aretw0/verbdrill/pkg/adapters/lifecycle"
	"github.com/aretw0/verbdrill/pkg/adapters/source"
	"github.com/aretw0/verbdrill/pkg/integrity"
	"github.com/aretw0/verbdrill/pkg/mutation"
)

var (
	checkFormat string
	checkWatch  bool
	checkRules  []string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report forms the dictionary is missing",
	Long: `Apply every mutation rule to every dictionary entry and list the targets that have
no row. Exits with status 1 when anything is missing. With --watch, the audit is re-run
whenever the dictionary files change.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, pattern := loadConfig(cmd)

		kinds, err := mutation.ParseList(checkRules)
		if err != nil {
			fatal("Error reading --rules", err)
		}
		opts, err := platform.FromConfig(cfg)
		if err != nil {
			fatal("Error reading settings", err)
		}
		opts = append(opts, platform.WithLogger(slog.Default()))

		audit := func() (integrity.Report, error) {
			d, err := platform.LoadDictionary(pattern, opts...)
			if err != nil {
				return integrity.Report{}, err
			}
			slog.Debug("dictionary loaded", "pattern", pattern, "type", d.ComponentType(), "state", d.State())
			return integrity.Audit(d, kinds...)
		}

		if !checkWatch {
			report, err := audit()
			if err != nil {
				fatal("Error checking dictionary", err)
			}
			if err := printReport(os.Stdout, report, checkFormat); err != nil {
				fatal("Error writing report", err)
			}
			if !report.OK() {
				os.Exit(1)
			}
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watched, err := platform.Loader(opts...).Watch(ctx, pattern, source.DefaultDebounce)
		if err != nil {
			fatal("Error watching dictionary", err)
		}
		src := changes.NewSource(watched)
		if err := src.Start(ctx); err != nil {
			fatal("Error watching dictionary", err)
		}

		rerun := func() {
			report, err := audit()
			if err != nil {
				slog.Error("audit failed", "error", err)
				return
			}
			if err := printReport(os.Stdout, report, checkFormat); err != nil {
				slog.Error("failed to write report", "error", err)
			}
		}

		rerun()
		slog.Info("watching dictionary", "pattern", pattern)
		for e := range src.Events() {
			slog.Info("dictionary changed", "event", e.String())
			rerun()
		}
	},
}

func printReport(w io.Writer, r integrity.Report, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(r)
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintf(w, "Entries: %d (%d lemmas)\n", r.Entries, r.Lemmas)
	fmt.Fprintf(w, "Rules: %s\n", strings.Join(r.Mutations, ", "))
	fmt.Fprintf(w, "Applied: %d, not applicable: %d\n", r.Applied, r.Invalid)
	for _, f := range r.Findings {
		fmt.Fprintf(w, "  %s (%s) needs %s\n", f.Word, f.Mutation, f.Missing)
	}
	if r.OK() {
		fmt.Fprintln(w, "OK")
	} else {
		fmt.Fprintf(w, "Missing: %d forms (%d findings)\n", len(r.MissingForms()), len(r.Findings))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text, json or yaml")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-run the audit when dictionary files change")
	checkCmd.Flags().StringSliceVar(&checkRules, "rules", nil, "Rules to audit (default: all seven)")
}
