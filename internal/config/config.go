package config

import (
	"github.com/spf13/viper"

	"github.com/pders01/knowsync/internal/models"
)

// GetRemote returns the remote name pushed to after a commit.
func GetRemote() string {
	return viper.GetString("sync.remote")
}

// GetBranch returns the branch to push. Empty means the current branch.
func GetBranch() string {
	return viper.GetString("sync.branch")
}

// GetDefaultMode returns the sync mode used when no mode flag is given.
func GetDefaultMode() models.SyncMode {
	mode := viper.GetString("sync.default_mode")
	return models.SyncMode(mode)
}

// GetLogFile returns the run log destination. Empty means stderr.
func GetLogFile() string {
	return viper.GetString("log.file")
}

// GetAuthorName returns the configured commit author name.
func GetAuthorName() string {
	return viper.GetString("commit.author_name")
}

// GetAuthorEmail returns the configured commit author email.
func GetAuthorEmail() string {
	return viper.GetString("commit.author_email")
}

// GetOllamaEnabled reports whether commit messages may be drafted by a
// local Ollama model when none is provided.
func GetOllamaEnabled() bool {
	return viper.GetBool("ollama.enabled")
}

// GetOllamaURL returns the Ollama API endpoint.
func GetOllamaURL() string {
	return viper.GetString("ollama.url")
}

// GetOllamaModel returns the model used for commit message drafts.
func GetOllamaModel() string {
	return viper.GetString("ollama.model")
}
