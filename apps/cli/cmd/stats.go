package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/testglow/testglow/packages/replay"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Summarize timing and outcomes of a recorded run",
	Long: `Read a recorded event log and print counts plus the test
wall-duration distribution.

Examples:
  testglow stats run.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: statsCommand,
}

func statsCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	stats := replay.NewStats()
	badLines, err := stats.Collect(f)
	if err != nil {
		return err
	}
	if badLines > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %d undecodable lines\n", badLines)
	}

	stats.Summary().Format(cmd.OutOrStdout())
	return nil
}
