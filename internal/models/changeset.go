package models

import "sort"

// ChangeSet classifies the current working-tree differences relative to
// the last commit. The three categories are disjoint: a path appears in
// exactly one of them, according to its final status in the snapshot.
type ChangeSet struct {
	Added    []string `json:"added"`
	Modified []string `json:"modified"`
	Deleted  []string `json:"deleted"`
}

// IsEmpty reports whether the working tree is clean.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Deleted) == 0
}

// Len returns the total number of changed paths.
func (c ChangeSet) Len() int {
	return len(c.Added) + len(c.Modified) + len(c.Deleted)
}

// Sort orders each category lexicographically so runs are deterministic.
func (c *ChangeSet) Sort() {
	sort.Strings(c.Added)
	sort.Strings(c.Modified)
	sort.Strings(c.Deleted)
}

// StagingDecision records what the sync policy will do with each changed
// path: stage it for the next commit, restore it from the last committed
// revision, or leave it untouched and only report it.
type StagingDecision struct {
	Stage   []string `json:"stage"`
	Restore []string `json:"restore,omitempty"`
	Skip    []string `json:"skip,omitempty"`
}

// IsEmpty reports whether the decision requires no action at all.
func (d StagingDecision) IsEmpty() bool {
	return len(d.Stage) == 0 && len(d.Restore) == 0
}
