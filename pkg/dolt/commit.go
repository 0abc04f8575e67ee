package dolt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doltops/godolt/pkg/logger"
	"github.com/pkg/errors"
)

// ErrMergeConflict is returned when a merge hits a conflict. The merge is
// aborted before returning; interactive conflict resolution does not make
// sense when scripting.
var ErrMergeConflict = errors.New("merge conflict, merge aborted")

// Commit creates a commit from the staged changes in the working set.
func (d *Dolt) Commit(ctx context.Context, message string, opts CommitOptions) error {
	args := []string{"commit", "-m", message}

	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if !opts.Date.IsZero() {
		args = append(args, "--date", opts.Date.Format(time.RFC3339))
	}

	_, err := d.exec(ctx, args...)
	return err
}

// MergeOptions control how a merge commit is created.
type MergeOptions struct {
	// Message is used for the merge commit. Empty means a generated message.
	Message string
	// Squash merges changes into the working set without a merge commit.
	Squash bool
}

// Merge merges the named branch into the current branch. The working set must
// be clean and the branch must exist. Fast-forward merges complete without a
// commit; a conflicting merge is aborted and ErrMergeConflict returned.
func (d *Dolt) Merge(ctx context.Context, branch string, opts MergeOptions) error {
	current, branches, err := d.Branches(ctx)
	if err != nil {
		return err
	}

	status, err := d.Status(ctx)
	if err != nil {
		return err
	}
	if !status.Clean {
		return errors.Errorf("changes in the working set, commit before merging %s into %s", branch, current.Name)
	}

	found := false
	for _, b := range branches {
		if b.Name == branch {
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("cannot merge non-existent branch %s into %s", branch, current.Name)
	}

	logger.G(ctx).WithField("branch", branch).WithField("into", current.Name).Info("merging")

	args := []string{"merge"}
	if opts.Squash {
		args = append(args, "--squash")
	}
	args = append(args, branch)

	out, err := d.exec(ctx, args...)
	if err != nil {
		return err
	}
	lines := strings.Split(out, "\n")

	if len(lines) == 3 && strings.Contains(lines[1], "Fast-forward") {
		logger.G(ctx).WithField("branch", branch).Debug("fast-forward merge complete")
		return nil
	}

	if len(lines) == 5 && strings.HasPrefix(lines[2], "CONFLICT") {
		logger.G(ctx).WithField("conflict", lines[2]).Warn("aborting conflicted merge")
		if _, abortErr := d.exec(ctx, "merge", "--abort"); abortErr != nil {
			return errors.Wrap(abortErr, "failed to abort conflicted merge")
		}
		return ErrMergeConflict
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Merged %s into %s", branch, current.Name)
	}

	status, err = d.Status(ctx)
	if err != nil {
		return err
	}
	var changed []string
	for table := range status.AddedTables {
		changed = append(changed, table)
	}
	for table := range status.ModifiedTables {
		changed = append(changed, table)
	}
	if len(changed) > 0 {
		if _, err := d.Add(ctx, changed...); err != nil {
			return err
		}
	}

	return d.Commit(ctx, message, CommitOptions{})
}

// LogOptions narrow what Log returns.
type LogOptions struct {
	// Number limits how many commits are returned. Zero means no limit.
	Number int
	// Commit restricts the log to a single commit hash.
	Commit string
}

// Log returns commit metadata for the current branch, newest first. It reads
// the dolt_log system table joined against dolt_commit_ancestors so merge
// commits carry both parents.
func (d *Dolt) Log(ctx context.Context, opts LogOptions) ([]*Commit, error) {
	rows, err := d.Query(ctx, logQuery(opts))
	if err != nil {
		return nil, err
	}
	return parseLogRows(ctx, rows)
}

func logQuery(opts LogOptions) string {
	var b strings.Builder
	b.WriteString(`select
    dc.commit_hash as commit_hash,
    dca.parent_hash as parent_hash,
    committer as committer,
    email as email,
    date as date,
    message as message
from
    dolt_log as dc
    left outer join dolt_commit_ancestors as dca
        on dc.commit_hash = dca.commit_hash`)

	if opts.Commit != "" {
		fmt.Fprintf(&b, "\nwhere dc.commit_hash = '%s'", opts.Commit)
	}
	b.WriteString("\norder by date desc")
	if opts.Number > 0 {
		fmt.Fprintf(&b, "\nlimit %d", opts.Number)
	}

	return b.String()
}

// parseLogRows folds the joined log rows into ordered commits. A hash that
// appears twice is a merge commit; the second row contributes the other
// parent.
func parseLogRows(ctx context.Context, rows []Row) ([]*Commit, error) {
	var ordered []*Commit
	byRef := map[string]*Commit{}

	for _, row := range rows {
		ref := row["commit_hash"]
		if existing, ok := byRef[ref]; ok {
			if err := appendMergeParent(ctx, existing, row["parent_hash"]); err != nil {
				return nil, err
			}
			continue
		}

		commit := &Commit{
			Ref:       ref,
			Timestamp: row["date"],
			Author:    row["committer"],
			Email:     row["email"],
			Message:   row["message"],
		}
		if parent := row["parent_hash"]; parent != "" {
			commit.Parents = []string{parent}
		}
		byRef[ref] = commit
		ordered = append(ordered, commit)
	}

	return ordered, nil
}

func appendMergeParent(ctx context.Context, commit *Commit, parent string) error {
	switch len(commit.Parents) {
	case 0:
		logger.G(ctx).WithField("ref", commit.Ref).Warn("no merge parents set")
		return nil
	case 1:
		commit.Parents = append(commit.Parents, parent)
		commit.Merge = true
		return nil
	default:
		return errors.Errorf("commit %s already has a merge parent set", commit.Ref)
	}
}
