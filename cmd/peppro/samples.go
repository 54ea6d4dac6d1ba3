package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zx0223winner/peppro/internal/sample"
	"github.com/zx0223winner/peppro/internal/search"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List, index, and search samples",
}

var samplesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List samples from a sheet",
	Example: `  peppro samples list --sheet samples.csv`,
	RunE:    runSamplesList,
}

var samplesIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the sample search index from a sheet",
	Long: `Index every sample in a sheet into the Bleve search index, so samples
can be located by attribute without re-reading sheets. Re-indexing a sheet
replaces earlier entries with the same sample name.`,
	Example: `  peppro samples index --sheet samples.csv`,
	RunE:    runSamplesIndex,
}

var samplesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed samples",
	Long: `Search the sample index. The query syntax supports bare terms and
field-scoped terms such as genome:hg38 or read_type:paired.`,
	Example: `  peppro samples search hg38
  peppro samples search "genome:hg38 read_type:paired" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSamplesSearch,
}

var (
	samplesSheet     string
	samplesIndexPath string
	samplesLimit     int
)

func init() {
	samplesListCmd.Flags().StringVarP(&samplesSheet, "sheet", "s", "", "Sample sheet (csv, tsv, or yaml)")
	samplesListCmd.MarkFlagRequired("sheet")

	samplesIndexCmd.Flags().StringVarP(&samplesSheet, "sheet", "s", "", "Sample sheet (csv, tsv, or yaml)")
	samplesIndexCmd.Flags().StringVar(&samplesIndexPath, "index-path", "", "Path to search index (default: from runner config)")
	samplesIndexCmd.MarkFlagRequired("sheet")

	samplesSearchCmd.Flags().StringVar(&samplesIndexPath, "index-path", "", "Path to search index (default: from runner config)")
	samplesSearchCmd.Flags().IntVarP(&samplesLimit, "limit", "l", 0, "Maximum results to return")
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	samples, err := sample.LoadSheet(samplesSheet)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "SAMPLE\tGENOME\tREAD_TYPE\tREAD1")
	for _, s := range samples {
		readType, _ := s.Get("read_type")
		read1, _ := s.Get("read1")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", describeSample(s), s.Genome(), readType, read1)
	}
	return nil
}

func runSamplesIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Search.Enabled {
		return fmt.Errorf("sample search is disabled in the runner config")
	}

	samples, err := sample.LoadSheet(samplesSheet)
	if err != nil {
		return err
	}

	ix, err := openIndex(cfg.Search.IndexPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.IndexSamples(samples, cfg.Search.BatchSize); err != nil {
		return err
	}
	count, err := ix.Count()
	if err != nil {
		return err
	}
	printSuccess("indexed %d samples (%d total in index)", len(samples), count)
	return nil
}

func runSamplesSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := samplesLimit
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}

	ix, err := openIndex(cfg.Search.IndexPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	results, err := ix.Search(args[0], limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printInfo("no samples match %q", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "SAMPLE\tGENOME\tREAD_TYPE\tSCORE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n",
			r.SampleName, r.Fields["genome"], r.Fields["read_type"], r.Score)
	}
	return nil
}

func openIndex(defaultPath string) (*search.Index, error) {
	path := samplesIndexPath
	if path == "" {
		path = defaultPath
	}
	printDebug("opening sample index at %s", path)
	return search.Open(path)
}
