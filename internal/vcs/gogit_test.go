package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/knowsync/internal/testutil"
)

func openTestClient(t *testing.T, repo *testutil.TempGitRepo) *GitClient {
	t.Helper()

	client, err := Open(Options{Path: repo.Path})
	require.NoError(t, err)
	return client
}

func TestOpenOutsideRepository(t *testing.T) {
	_, err := Open(Options{Path: t.TempDir()})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestStatusClassification(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("docs/notes.md", "notes\n")
	repo.Commit("Add notes")

	repo.CreateFile("new.md", "new\n")
	repo.CreateFile("docs/notes.md", "edited notes\n")
	repo.RemoveFile("README.md")

	client := openTestClient(t, repo)
	cs, err := client.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"new.md"}, cs.Added)
	assert.Equal(t, []string{"docs/notes.md"}, cs.Modified)
	assert.Equal(t, []string{"README.md"}, cs.Deleted)
}

func TestStatusCleanTree(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := openTestClient(t, repo)
	cs, err := client.Status(context.Background())

	require.NoError(t, err)
	assert.True(t, cs.IsEmpty())
}

func TestStatusFinalStateWins(t *testing.T) {
	// Deleting and re-creating a tracked file with identical content is a
	// clean tree; with different content it is a modification, never a
	// deletion.
	repo := testutil.NewTempGitRepo(t)

	repo.RemoveFile("README.md")
	repo.CreateFile("README.md", "# Rewritten\n")

	client := openTestClient(t, repo)
	cs, err := client.Status(context.Background())

	require.NoError(t, err)
	assert.Empty(t, cs.Deleted)
	assert.Equal(t, []string{"README.md"}, cs.Modified)
}

func TestAddAndStaged(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("a.md", "a\n")
	repo.CreateFile("b.md", "b\n")

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Add(ctx, "a.md"))

	staged, err := client.Staged(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, staged, "only the added path may be staged")
}

func TestAddStagesDeletion(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.RemoveFile("README.md")

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Add(ctx, "README.md"))

	staged, err := client.Staged(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, staged)
}

func TestRestoreUndoesDeletion(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("b.md", "content\n")
	repo.Commit("Add b.md")

	repo.RemoveFile("b.md")
	require.False(t, repo.FileExists("b.md"))

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Restore(ctx, "b.md"))

	assert.True(t, repo.FileExists("b.md"), "restore must bring the file back")

	cs, err := client.Status(ctx)
	require.NoError(t, err)
	assert.True(t, cs.IsEmpty(), "tree must be clean after restore, got %+v", cs)
}

func TestRestoreNoPathsIsNoop(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := openTestClient(t, repo)
	require.NoError(t, client.Restore(context.Background()))
}

func TestCommit(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("a.md", "a\n")

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Add(ctx, "a.md"))

	hash, err := client.Commit(ctx, "Add a.md")
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	assert.Equal(t, "Add a.md", repo.LastCommitMessage())
	assert.True(t, repo.TrackedAtHead("a.md"))
}

func TestCommitNothingStaged(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := openTestClient(t, repo)
	_, err := client.Commit(context.Background(), "Empty")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestCommitEmptyMessage(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := openTestClient(t, repo)
	_, err := client.Commit(context.Background(), "")

	require.Error(t, err)
}

func TestPush(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	remoteDir := repo.SetupBareRemote()

	repo.CreateFile("a.md", "a\n")

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Add(ctx, "a.md"))
	_, err := client.Commit(ctx, "Add a.md")
	require.NoError(t, err)

	require.NoError(t, client.Push(ctx, "origin", "main"))
	assert.True(t, repo.TrackedAtRemote(remoteDir, "a.md"))
}

func TestPushAlreadyUpToDate(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.SetupBareRemote()

	client := openTestClient(t, repo)
	err := client.Push(context.Background(), "origin", "main")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyUpToDate)
}

func TestPushNoRemote(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("a.md", "a\n")

	client := openTestClient(t, repo)
	ctx := context.Background()

	require.NoError(t, client.Add(ctx, "a.md"))
	_, err := client.Commit(ctx, "Add a.md")
	require.NoError(t, err)

	err = client.Push(ctx, "origin", "main")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyUpToDate)
}

func TestAuthorFromOptions(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.CreateFile("a.md", "a\n")

	client, err := Open(Options{
		Path:        repo.Path,
		AuthorName:  "Sync Bot",
		AuthorEmail: "bot@example.com",
	})
	require.NoError(t, err)

	name, email := client.author()
	assert.Equal(t, "Sync Bot", name)
	assert.Equal(t, "bot@example.com", email)
}

func TestAuthorFromRepoConfig(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := openTestClient(t, repo)
	name, email := client.author()

	assert.Equal(t, "Test User", name)
	assert.Equal(t, "test@example.com", email)
}
