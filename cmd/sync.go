package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/knowsync/internal/config"
	"github.com/pders01/knowsync/internal/engine"
	"github.com/pders01/knowsync/internal/logging"
	"github.com/pders01/knowsync/internal/models"
	"github.com/pders01/knowsync/internal/ollama"
	"github.com/pders01/knowsync/internal/vcs"
)

var (
	syncAllowDeletions bool
	syncNewOnly        bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [message]",
	Short: "Stage changes per the sync policy, then commit and push",
	Long: `Classify working-tree changes and sync them to the remote.

Without a mode flag the configured default policy applies
(preserve-deletions unless overridden in config). The optional
positional argument is the commit message; when omitted, a timestamped
message is generated.

Examples:
  knowsync sync
  knowsync sync "Reorganize docker notes"
  knowsync sync --allow-deletions
  knowsync sync --new-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncAllowDeletions, "allow-deletions", false, "Stage deletions instead of preserving deleted files")
	syncCmd.Flags().BoolVar(&syncNewOnly, "new-only", false, "Stage only untracked files")
}

// effectiveMode resolves the mode flags, falling back to the configured
// default when neither is set.
func effectiveMode(allowDeletions, newOnly bool) (models.SyncMode, error) {
	if allowDeletions && newOnly {
		return "", fmt.Errorf("--allow-deletions and --new-only are mutually exclusive")
	}
	if allowDeletions {
		return models.ModeAllowDeletions, nil
	}
	if newOnly {
		return models.ModeNewFilesOnly, nil
	}
	if s := string(config.GetDefaultMode()); s != "" {
		return models.ParseSyncMode(s)
	}
	return models.ModePreserveDeletions, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mode, err := effectiveMode(syncAllowDeletions, syncNewOnly)
	if err != nil {
		return err
	}

	client, err := vcs.Open(vcs.Options{
		AuthorName:  config.GetAuthorName(),
		AuthorEmail: config.GetAuthorEmail(),
	})
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Setup(config.GetLogFile())
	if err != nil {
		return err
	}
	defer closeLog()

	eng := engine.New(client, log, engine.Config{
		Remote: config.GetRemote(),
		Branch: config.GetBranch(),
	})

	message := ""
	if len(args) > 0 {
		message = args[0]
	}
	if message == "" && config.GetOllamaEnabled() {
		message = draftMessage(ctx, client, mode)
	}

	res, err := eng.Sync(ctx, mode, message)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case models.OutcomeNoChanges:
		fmt.Println("Nothing to sync")
	case models.OutcomeCommitted:
		fmt.Printf("✓ Synced %d file(s)\n", len(res.Staged))
		if len(res.Decision.Restore) > 0 {
			fmt.Printf("  Restored %d deleted file(s)\n", len(res.Decision.Restore))
		}
		if len(res.Decision.Skip) > 0 {
			fmt.Printf("  Left %d change(s) unstaged\n", len(res.Decision.Skip))
		}
		fmt.Printf("  Commit: %s\n", res.Commit)
		fmt.Printf("  Message: %s\n", res.Message)
	}

	return nil
}

// draftMessage asks a local Ollama model for a commit message. Any
// failure falls back to the generated timestamp message with a warning.
func draftMessage(ctx context.Context, client vcs.Client, mode models.SyncMode) string {
	if !ollama.IsAvailable(config.GetOllamaURL()) {
		fmt.Fprintln(os.Stderr, "Warning: Ollama not reachable, using generated message")
		return ""
	}

	cs, err := client.Status(ctx)
	if err != nil || cs.IsEmpty() {
		return ""
	}
	decision := engine.Decide(cs, mode)

	oc, err := ollama.NewClient(config.GetOllamaURL(), config.GetOllamaModel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using generated message\n", err)
		return ""
	}

	deleted := cs.Deleted
	if mode != models.ModeAllowDeletions {
		deleted = nil
	}
	message, err := oc.GenerateCommitMessage(ctx, cs.Added, intersect(cs.Modified, decision.Stage), deleted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to draft commit message: %v\n", err)
		return ""
	}

	return message
}

// intersect keeps the elements of a that also appear in b.
func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
