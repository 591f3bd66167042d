package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/testglow/testglow/packages/replay"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an event log against the event schema",
	Long: `Validate a recorded event log without rendering it. Each line is
checked against the event schema; failures are reported with line numbers.

Examples:
  testglow validate run.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	failures, err := replay.ValidateLog(f)
	if err != nil {
		return err
	}

	if len(failures) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", args[0])
		return nil
	}

	for _, failure := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], failure)
	}
	return fmt.Errorf("validation failed: %s", countIssues(len(failures)))
}

func countIssues(n int) string {
	if n == 1 {
		return "1 problem"
	}
	return fmt.Sprintf("%d problems", n)
}
