package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/pders01/knowsync/internal/engine"
	"github.com/pders01/knowsync/internal/models"
	"github.com/pders01/knowsync/internal/vcs"
)

var (
	statusAllowDeletions bool
	statusNewOnly        bool
	statusJSON           bool
	statusToon           bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show classified changes and the staging plan",
	Long: `Classify working-tree changes and show what a sync would do
under the effective policy, without touching anything.

Examples:
  knowsync status
  knowsync status --allow-deletions
  knowsync status --json`,
	RunE: runStatus,
}

// statusReport is the structured output of the status command.
type statusReport struct {
	Mode    models.SyncMode        `json:"mode"`
	Changes models.ChangeSet       `json:"changes"`
	Plan    models.StagingDecision `json:"plan"`
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusAllowDeletions, "allow-deletions", false, "Plan as if deletions were staged")
	statusCmd.Flags().BoolVar(&statusNewOnly, "new-only", false, "Plan as if only untracked files were staged")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&statusToon, "toon", false, "Output as Toon format (for LLMs)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	mode, err := effectiveMode(statusAllowDeletions, statusNewOnly)
	if err != nil {
		return err
	}

	client, err := vcs.Open(vcs.Options{})
	if err != nil {
		return err
	}

	cs, err := client.Status(context.Background())
	if err != nil {
		return err
	}

	report := statusReport{
		Mode:    mode,
		Changes: cs,
		Plan:    engine.Decide(cs, mode),
	}

	// Output JSON if requested
	if statusJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if statusToon {
		output, err := gotoon.Encode(report)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if cs.IsEmpty() {
		fmt.Println("Working tree clean")
		return nil
	}

	fmt.Printf("Policy: %s\n", mode)
	fmt.Println()

	printPaths := func(header string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Println(header)
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}

	printPaths("Added:", cs.Added)
	printPaths("Modified:", cs.Modified)
	printPaths("Deleted:", cs.Deleted)
	fmt.Println()
	printPaths("Would stage:", report.Plan.Stage)
	printPaths("Would restore:", report.Plan.Restore)
	printPaths("Would leave untouched:", report.Plan.Skip)

	return nil
}
