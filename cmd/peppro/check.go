package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zx0223winner/peppro/internal/sample"
	"github.com/zx0223winner/peppro/internal/service"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a sample sheet without emitting commands",
	Long: `Check every sample in a sheet for missing required attributes and for
registry assets that would fail to resolve.

Missing required attributes are fatal for that sample. Unresolvable
optional assets are reported as warnings only: the corresponding flags
would simply be omitted from the command.`,
	Example: `  peppro check --sheet samples.csv
  peppro check --sheet samples.csv --genome-config genomes.yaml`,
	RunE: runCheck,
}

var (
	checkSheet   string
	checkGenomes string
	checkProfile string
)

func init() {
	checkCmd.Flags().StringVarP(&checkSheet, "sheet", "s", "", "Sample sheet (csv, tsv, or yaml)")
	checkCmd.Flags().StringVarP(&checkGenomes, "genome-config", "g", "", "Genome config file (default: from runner config)")
	checkCmd.Flags().StringVar(&checkProfile, "profile", "", "Compute profile (default: from runner config)")
	checkCmd.MarkFlagRequired("sheet")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg, checkGenomes)
	if err != nil {
		return err
	}

	samples, err := sample.LoadSheet(checkSheet)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples in %s", checkSheet)
	}

	svc := service.NewResolveService(cfg, reg, nil)

	fatal := 0
	warned := 0
	for _, s := range samples {
		if missing := s.MissingRequired(); missing != nil {
			fatal++
			printError("%s: missing required attributes: %v", describeSample(s), missing)
			continue
		}

		resp, err := svc.ResolveSample(context.Background(), s, checkProfile, false)
		if err != nil {
			fatal++
			printError("%s: %v", s.Name(), err)
			continue
		}
		if len(resp.Diagnostics) > 0 {
			warned++
			for _, d := range resp.Diagnostics {
				printWarning("%s: %s", s.Name(), d)
			}
		} else {
			printSuccess("%s resolves cleanly", s.Name())
		}
	}

	if warned > 0 {
		printInfo("%d of %d samples resolve with omitted optional flags", warned, len(samples))
	}
	if fatal > 0 {
		return fmt.Errorf("%d of %d samples cannot be run", fatal, len(samples))
	}
	printSuccess("all %d samples are runnable", len(samples))
	return nil
}
