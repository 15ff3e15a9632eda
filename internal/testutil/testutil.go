package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempGitRepo creates a temporary git repository for testing
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a new temporary git repository with an initial commit
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "knowsync-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	repo := &TempGitRepo{Path: tmpDir, T: t}

	repo.git("init", "-b", "main")
	repo.git("config", "user.name", "Test User")
	repo.git("config", "user.email", "test@example.com")

	// Create initial commit
	repo.CreateFile("README.md", "# Test Repository\n")
	repo.git("add", ".")
	repo.git("commit", "-m", "Initial commit")

	return repo
}

// Cleanup removes the temporary git repository
func (r *TempGitRepo) Cleanup() {
	r.T.Helper()
	if err := os.RemoveAll(r.Path); err != nil {
		r.T.Errorf("failed to cleanup temp repo: %v", err)
	}
}

// git runs a git command in the repository and fails the test on error
func (r *TempGitRepo) git(args ...string) string {
	r.T.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.T.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return string(output)
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// RemoveFile deletes a file from the working tree
func (r *TempGitRepo) RemoveFile(name string) {
	r.T.Helper()
	if err := os.Remove(filepath.Join(r.Path, name)); err != nil {
		r.T.Fatalf("failed to remove file: %v", err)
	}
}

// FileExists checks if a file exists in the working tree
func (r *TempGitRepo) FileExists(name string) bool {
	r.T.Helper()
	_, err := os.Stat(filepath.Join(r.Path, name))
	return err == nil
}

// Commit stages and commits all changes
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.git("add", "-A")
	r.git("commit", "-m", message)
}

// SetupBareRemote creates a bare sibling repository and registers it as
// origin, so pushes have a real target without any network
func (r *TempGitRepo) SetupBareRemote() string {
	r.T.Helper()

	remoteDir, err := os.MkdirTemp("", "knowsync-remote-*")
	if err != nil {
		r.T.Fatalf("failed to create remote dir: %v", err)
	}
	r.T.Cleanup(func() { os.RemoveAll(remoteDir) })

	cmd := exec.Command("git", "init", "--bare", "-b", "main")
	cmd.Dir = remoteDir
	if output, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("failed to init bare remote: %v\n%s", err, output)
	}

	r.git("remote", "add", "origin", remoteDir)
	r.git("push", "origin", "main")

	return remoteDir
}

// TrackedAtHead checks if a file is tracked in the local HEAD commit
func (r *TempGitRepo) TrackedAtHead(name string) bool {
	r.T.Helper()
	return r.trackedIn(r.Path, "HEAD", name)
}

// TrackedAtRemote checks if a file is tracked at the remote's main branch
func (r *TempGitRepo) TrackedAtRemote(remoteDir, name string) bool {
	r.T.Helper()
	return r.trackedIn(remoteDir, "main", name)
}

func (r *TempGitRepo) trackedIn(dir, rev, name string) bool {
	r.T.Helper()

	cmd := exec.Command("git", "ls-tree", "-r", "--name-only", rev)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}

// LastCommitMessage returns the subject of the most recent commit
func (r *TempGitRepo) LastCommitMessage() string {
	r.T.Helper()
	return strings.TrimSpace(r.git("log", "-1", "--pretty=%s"))
}

// CommitCount returns the number of commits on the current branch
func (r *TempGitRepo) CommitCount() int {
	r.T.Helper()
	out := strings.TrimSpace(r.git("rev-list", "--count", "HEAD"))
	n := 0
	for _, ch := range out {
		n = n*10 + int(ch-'0')
	}
	return n
}

// StatusPorcelain returns the raw porcelain status, for cross-checking
// the structured classification against real git
func (r *TempGitRepo) StatusPorcelain() string {
	r.T.Helper()
	return r.git("status", "--porcelain")
}
