package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pders01/knowsync/internal/vcs"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default knowsync configuration",
	Long: `Create a default config file if it doesn't exist.

Run this once to set up knowsync; edit the file to change the remote,
branch, default policy, log destination or commit author.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := vcs.Open(vcs.Options{}); err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "knowsync")
	configPath := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `[sync]
remote = "origin"
branch = ""
default_mode = "preserve-deletions"

[log]
file = ""

[commit]
author_name = "knowsync"
author_email = "knowsync@localhost"

[ollama]
enabled = false
url = "http://localhost:11434"
model = "qwen2.5-coder:3b"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("✓ Created default config: %s\n", configPath)
	fmt.Println("  You can now use: knowsync sync")

	return nil
}
