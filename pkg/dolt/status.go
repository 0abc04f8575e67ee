package dolt

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Status parses the current state of the working set.
func (d *Dolt) Status(ctx context.Context) (*Status, error) {
	out, err := d.exec(ctx, "status")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

func parseStatus(output string) *Status {
	status := &Status{
		ModifiedTables: map[string]bool{},
		AddedTables:    map[string]bool{},
	}

	if strings.Contains(output, "clean") {
		status.Clean = true
		return status
	}

	staged := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Changes to be committed"):
			staged = true
		case strings.HasPrefix(line, "Changes not staged for commit"):
			staged = false
		case strings.HasPrefix(line, "Untracked files"):
			staged = false
		case strings.HasPrefix(line, "modified"):
			status.ModifiedTables[tableNameFromStatusLine(line)] = staged
		case strings.HasPrefix(line, "new table"):
			status.AddedTables[tableNameFromStatusLine(line)] = staged
		}
	}

	return status
}

func tableNameFromStatusLine(line string) string {
	_, name, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}

// Add stages the given tables and returns the resulting status.
func (d *Dolt) Add(ctx context.Context, tables ...string) (*Status, error) {
	if len(tables) == 0 {
		return nil, errors.New("at least one table is required")
	}

	args := append([]string{"add"}, tables...)
	if _, err := d.exec(ctx, args...); err != nil {
		return nil, err
	}
	return d.Status(ctx)
}

// ResetOptions control what a reset touches. Hard, Soft, and Tables are
// mutually exclusive; a zero value resets the staging area (soft).
type ResetOptions struct {
	Hard   bool
	Soft   bool
	Tables []string
}

// Reset moves tables with changes in the working set back to their value at
// the tip of the current branch.
func (d *Dolt) Reset(ctx context.Context, opts ResetOptions) error {
	if opts.Hard && opts.Soft {
		return errors.New("specify at most one of hard, soft")
	}
	if (opts.Hard || opts.Soft) && len(opts.Tables) > 0 {
		return errors.New("specify either a hard/soft reset or tables to reset")
	}

	args := []string{"reset"}
	switch {
	case opts.Hard:
		args = append(args, "--hard")
	case opts.Soft, len(opts.Tables) == 0:
		args = append(args, "--soft")
	default:
		args = append(args, opts.Tables...)
	}

	_, err := d.exec(ctx, args...)
	return err
}
