package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zx0223winner/peppro/internal/database"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the recorded run log",
}

var runsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recorded invocations",
	Example: `  peppro runs list --limit 20`,
	RunE:    runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show one recorded invocation",
	Example: `  peppro runs show 42`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRunsShow,
}

var (
	runsLimit  int
	runsOffset int
	runsFormat string
)

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "l", 50, "Maximum results to return")
	runsListCmd.Flags().IntVar(&runsOffset, "offset", 0, "Number of results to skip")
	runsShowCmd.Flags().StringVarP(&runsFormat, "format", "f", "shell", "Output format (shell|json)")
}

func openRunLog() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("run log not found at %s (resolve with --record first)", cfg.Database.Path)
	}
	return database.Initialize(cfg.Database.Path)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := openRunLog()
	if err != nil {
		return err
	}
	defer db.Close()

	invs, err := db.ListInvocations(runsLimit, runsOffset)
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		printInfo("run log is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tSAMPLE\tGENOME\tWARNINGS\tRECORDED")
	for _, inv := range invs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			inv.ID, inv.SampleName, inv.Genome, len(inv.Diagnostics),
			inv.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	db, err := openRunLog()
	if err != nil {
		return err
	}
	defer db.Close()

	inv, err := db.GetInvocation(id)
	if err != nil {
		return err
	}

	if runsFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	}

	fmt.Println(shellJoin(inv.Argv))
	for _, d := range inv.Diagnostics {
		printWarning("%s", d)
	}
	return nil
}
