package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zx0223winner/peppro/internal/database"
	"github.com/zx0223winner/peppro/internal/sample"
	"github.com/zx0223winner/peppro/internal/service"
	"github.com/zx0223winner/peppro/internal/ui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [sample_name...]",
	Short: "Resolve samples into pipeline commands",
	Long: `Resolve each sample in a sheet into a fully-expanded pipeline command.

With sample names as arguments, only those samples are resolved. Samples
missing required attributes are reported and skipped; registry assets that
fail to resolve are omitted from the command and surfaced as warnings in
verbose mode.`,
	Example: `  peppro resolve --sheet samples.csv
  peppro resolve --sheet samples.csv K562_pro_1
  peppro resolve --sheet samples.csv --format json --record`,
	RunE: runResolve,
}

var (
	resolveSheet   string
	resolveGenomes string
	resolveProfile string
	resolveFormat  string
	resolveRecord  bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveSheet, "sheet", "s", "", "Sample sheet (csv, tsv, or yaml)")
	resolveCmd.Flags().StringVarP(&resolveGenomes, "genome-config", "g", "", "Genome config file (default: from runner config)")
	resolveCmd.Flags().StringVar(&resolveProfile, "profile", "", "Compute profile (default: from runner config)")
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "shell", "Output format (shell|json)")
	resolveCmd.Flags().BoolVar(&resolveRecord, "record", false, "Record invocations in the run log")
	resolveCmd.MarkFlagRequired("sheet")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg, resolveGenomes)
	if err != nil {
		return err
	}

	samples, err := sample.LoadSheet(resolveSheet)
	if err != nil {
		return err
	}
	samples = filterSamples(samples, args)
	if len(samples) == 0 {
		return fmt.Errorf("no matching samples in %s", resolveSheet)
	}

	var db *database.DB
	if resolveRecord {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		db, err = database.Initialize(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	svc := service.NewResolveService(cfg, reg, db)

	var spinner *ui.Spinner
	if !quiet && isTerminal() && len(samples) > 1 {
		spinner = ui.NewSpinner("Resolving samples", len(samples))
		spinner.Start()
	}

	failed := 0
	for _, s := range samples {
		if spinner != nil {
			spinner.Advance("Resolving " + s.Name())
		}
		resp, err := svc.ResolveSample(context.Background(), s, resolveProfile, resolveRecord)
		if err != nil {
			failed++
			printError("%s: %v", describeSample(s), err)
			continue
		}
		printResolution(resp)
	}
	if spinner != nil {
		spinner.Stop("")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d samples failed to resolve", failed, len(samples))
	}
	return nil
}

func printResolution(resp *service.ResolveResponse) {
	switch resolveFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			printError("failed to encode response: %v", err)
		}
	default:
		fmt.Println(shellJoin(resp.Argv))
	}

	if verbose {
		for _, d := range resp.Diagnostics {
			printWarning("%s: %s", resp.SampleName, d)
		}
	}
}

func filterSamples(samples []*sample.Sample, names []string) []*sample.Sample {
	if len(names) == 0 {
		return samples
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []*sample.Sample
	for _, s := range samples {
		if wanted[s.Name()] {
			out = append(out, s)
		}
	}
	return out
}

func describeSample(s *sample.Sample) string {
	if name := s.Name(); name != "" {
		return name
	}
	return "(unnamed sample)"
}
