package dolt

import (
	"context"

	"github.com/pkg/errors"
)

// Branches returns the active branch and all local branches, read from the
// dolt_branches system table.
func (d *Dolt) Branches(ctx context.Context) (*Branch, []*Branch, error) {
	rows, err := d.Query(ctx, "select * from dolt_branches")
	if err != nil {
		return nil, nil, err
	}

	branches := make([]*Branch, 0, len(rows))
	for _, row := range rows {
		branches = append(branches, branchFromRow(row))
	}

	activeRows, err := d.Query(ctx, "select * from dolt_branches where name = (select active_branch())")
	if err != nil {
		return nil, nil, err
	}
	if len(activeRows) != 1 {
		return nil, nil, errors.Errorf("expected exactly one active branch, found %d", len(activeRows))
	}

	return branchFromRow(activeRows[0]), branches, nil
}

func branchFromRow(row Row) *Branch {
	return &Branch{
		Name:                 row["name"],
		Hash:                 row["hash"],
		LatestCommitter:      row["latest_committer"],
		LatestCommitterEmail: row["latest_committer_email"],
		LatestCommitDate:     row["latest_commit_date"],
		LatestCommitMessage:  row["latest_commit_message"],
	}
}

// BranchOptions qualify branch creation and mutation.
type BranchOptions struct {
	// StartPoint is the commit the new branch points at. Empty means HEAD.
	StartPoint string
	// Force overwrites an existing branch.
	Force bool
}

// CreateBranch creates a branch without checking it out.
func (d *Dolt) CreateBranch(ctx context.Context, name string, opts BranchOptions) error {
	if name == "" {
		return errors.New("branch name is required")
	}

	args := []string{"branch"}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, name)
	if opts.StartPoint != "" {
		args = append(args, opts.StartPoint)
	}

	_, err := d.exec(ctx, args...)
	return err
}

// DeleteBranch deletes a branch.
func (d *Dolt) DeleteBranch(ctx context.Context, name string, force bool) error {
	if name == "" {
		return errors.New("branch name is required")
	}

	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, "--delete", name)

	_, err := d.exec(ctx, args...)
	return err
}

// CopyBranch copies a branch. When src is empty the current branch is copied.
func (d *Dolt) CopyBranch(ctx context.Context, src, dst string, force bool) error {
	if dst == "" {
		return errors.New("destination branch name is required")
	}

	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, "--copy")
	if src != "" {
		args = append(args, src)
	}
	args = append(args, dst)

	_, err := d.exec(ctx, args...)
	return err
}

// MoveBranch renames a branch. When src is empty the current branch is moved.
func (d *Dolt) MoveBranch(ctx context.Context, src, dst string, force bool) error {
	if dst == "" {
		return errors.New("destination branch name is required")
	}

	args := []string{"branch"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, "--move")
	if src != "" {
		args = append(args, src)
	}
	args = append(args, dst)

	_, err := d.exec(ctx, args...)
	return err
}

// CheckoutOptions control what a checkout touches. Branch and Tables are
// mutually exclusive.
type CheckoutOptions struct {
	// Branch to check out.
	Branch string
	// CreateBranch creates the branch first (checkout -b).
	CreateBranch bool
	// StartPoint is the tip of a newly created branch.
	StartPoint string
	// Track sets the upstream branch to track.
	Track string
	// Tables restricts the checkout to the given tables.
	Tables []string
}

// Checkout checks out a branch, optionally creating it, or restores tables in
// the working set.
func (d *Dolt) Checkout(ctx context.Context, opts CheckoutOptions) error {
	if opts.Branch != "" && len(opts.Tables) > 0 {
		return errors.New("tables may not be provided when checking out a branch")
	}

	args := []string{"checkout"}

	if opts.Branch != "" {
		if opts.CreateBranch {
			args = append(args, "-b")
		}
		args = append(args, opts.Branch)
		if opts.StartPoint != "" {
			args = append(args, opts.StartPoint)
		}
	}

	args = append(args, opts.Tables...)

	if opts.Track != "" {
		args = append(args, "--track", opts.Track)
	}

	_, err := d.exec(ctx, args...)
	return err
}
