package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/knowsync/internal/config"
	"github.com/pders01/knowsync/internal/engine"
	"github.com/pders01/knowsync/internal/logging"
	"github.com/pders01/knowsync/internal/vcs"
)

var restoreCmd = &cobra.Command{
	Use:   "restore-deleted",
	Short: "Restore all locally deleted tracked files",
	Long: `Restore every tracked file deleted from the working tree back
from the last commit. No commit or push is performed.`,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	client, err := vcs.Open(vcs.Options{})
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

	restored, err := eng.RestoreDeleted(context.Background())
	if err != nil {
		return err
	}

	if len(restored) == 0 {
		fmt.Println("No deleted files to restore")
		return nil
	}

	fmt.Printf("✓ Restored %d file(s)\n", len(restored))
	for _, path := range restored {
		fmt.Printf("  %s\n", path)
	}

	return nil
}
