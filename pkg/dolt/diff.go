package dolt

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// DiffOptions narrow what a diff covers. At most one of Data, Schema, Summary
// may be set.
type DiffOptions struct {
	// Commit diffs against the tip of the current branch.
	Commit string
	// OtherCommit diffs two specific commits.
	OtherCommit string
	// Tables restricts the diff to the given tables.
	Tables []string
	// Data diffs only data.
	Data bool
	// Schema diffs only schema.
	Schema bool
	// Summary summarizes the data changes.
	Summary bool
	// SQL renders the diff as SQL statements.
	SQL bool
	// Where applies a filter to data diffs.
	Where string
	// Limit caps the number of rows shown in a data diff.
	Limit int
}

// Diff returns the textual diff of the working set or between commits.
func (d *Dolt) Diff(ctx context.Context, opts DiffOptions) (string, error) {
	modes := 0
	for _, set := range []bool{opts.Data, opts.Schema, opts.Summary} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return "", errors.New("at most one of data, schema, summary may be set")
	}

	args := []string{"diff"}
	if opts.Data {
		if opts.Where != "" {
			args = append(args, "--where", opts.Where)
		}
		if opts.Limit > 0 {
			args = append(args, "--limit", strconv.Itoa(opts.Limit))
		}
	}
	if opts.Summary {
		args = append(args, "--summary")
	}
	if opts.Schema {
		args = append(args, "--schema")
	}
	if opts.SQL {
		args = append(args, "--sql")
	}
	if opts.Commit != "" {
		args = append(args, opts.Commit)
	}
	if opts.OtherCommit != "" {
		args = append(args, opts.OtherCommit)
	}
	args = append(args, opts.Tables...)

	return d.exec(ctx, args...)
}

// Blame returns the per-row authorship table for the last change to each row.
func (d *Dolt) Blame(ctx context.Context, table, rev string) (string, error) {
	if table == "" {
		return "", errors.New("table is required")
	}

	args := []string{"blame"}
	if rev != "" {
		args = append(args, rev)
	}
	args = append(args, table)

	return d.exec(ctx, args...)
}
