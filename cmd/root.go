package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/knowsync/internal/models"
	"github.com/pders01/knowsync/internal/vcs"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "knowsync",
	Short: "Selective sync for git-backed knowledge repositories",
	Long: `knowsync classifies working-tree changes (added, modified, deleted),
stages them according to a sync policy, then commits and pushes.

Policies:
  preserve-deletions (default) - stage additions and modifications;
                                 restore locally deleted files so the
                                 remote never receives a deletion
  allow-deletions              - stage everything, deletions included
  new-files-only               - stage only untracked files`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/knowsync/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "knowsync")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("sync.remote", "origin")
	viper.SetDefault("sync.branch", "")
	viper.SetDefault("sync.default_mode", string(models.ModePreserveDeletions))
	viper.SetDefault("log.file", "")
	viper.SetDefault("commit.author_name", vcs.DefaultAuthorName)
	viper.SetDefault("commit.author_email", vcs.DefaultAuthorEmail)
	viper.SetDefault("ollama.enabled", false)
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "qwen2.5-coder:3b")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
