package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var genomesCmd = &cobra.Command{
	Use:   "genomes [genome]",
	Short: "List genomes and assets from the registry",
	Long: `List the genomes known to the asset registry and their asset categories.

With a genome argument, every asset attribute and its path is shown.`,
	Example: `  peppro genomes
  peppro genomes hg38
  peppro genomes --genome-config genomes.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenomes,
}

var genomesConfig string

func init() {
	genomesCmd.Flags().StringVarP(&genomesConfig, "genome-config", "g", "", "Genome config file (default: from runner config)")
}

func runGenomes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg, genomesConfig)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(args) == 1 {
		genome := args[0]
		assets := reg.Assets(genome)
		if assets == nil {
			return fmt.Errorf("genome %q not in registry", genome)
		}
		fmt.Fprintln(w, "CATEGORY\tATTRIBUTE\tPATH")
		for _, category := range reg.Categories(genome) {
			for attr, path := range assets[category] {
				fmt.Fprintf(w, "%s\t%s\t%s\n", category, attr, path)
			}
		}
		return nil
	}

	genomes := reg.Genomes()
	if len(genomes) == 0 {
		printInfo("registry is empty")
		return nil
	}
	fmt.Fprintln(w, "GENOME\tCATEGORIES")
	for _, g := range genomes {
		fmt.Fprintf(w, "%s\t%s\n", g, strings.Join(reg.Categories(g), ", "))
	}
	return nil
}
