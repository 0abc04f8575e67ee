package dolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doltops/godolt/pkg/logger"
	"github.com/pkg/errors"
)

// EnsureOptions control where EnsureCloned materializes a database.
type EnsureOptions struct {
	// Path is the local directory. Empty means a fresh temp directory.
	Path string
	// Remote to pull from when the database already exists locally.
	// Defaults to origin.
	Remote string
	// Tables, when set, fetches only those tables (dolt read-tables) instead
	// of a full clone.
	Tables []string
	// Committish names the branch or commit read-tables reads at.
	// Defaults to main.
	Committish string
}

// EnsureCloned returns a handle to a local copy of the named database
// ("owner/db"). An existing local copy is pulled; otherwise the database is
// cloned, or read table-by-table when a table subset is given.
func EnsureCloned(ctx context.Context, database string, opts EnsureOptions, handleOpts ...Option) (*Dolt, error) {
	name, err := databaseName(database)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		tmp, err := os.MkdirTemp("", "godolt-")
		if err != nil {
			return nil, errors.Wrap(err, "failed to create temp directory")
		}
		path = filepath.Join(tmp, name)
	}

	if d, err := Open(path, handleOpts...); err == nil {
		remote := opts.Remote
		if remote == "" {
			remote = "origin"
		}
		logger.G(ctx).WithField("path", path).WithField("remote", remote).Info("database found locally, pulling")
		if err := d.Pull(ctx, remote, ""); err != nil {
			return nil, err
		}
		return d, nil
	}

	if len(opts.Tables) > 0 {
		committish := opts.Committish
		if committish == "" {
			committish = "main"
		}
		logger.G(ctx).WithField("database", database).Info("reading tables into a fresh copy")
		return ReadTables(ctx, database, committish, opts.Tables, CloneOptions{Dir: path}, handleOpts...)
	}

	logger.G(ctx).WithField("database", database).Info("cloning")
	return Clone(ctx, database, CloneOptions{Dir: path}, handleOpts...)
}

func databaseName(database string) (string, error) {
	parts := strings.Split(database, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", errors.Errorf("invalid database name %q, expected owner/database", database)
	}
	return parts[1], nil
}

// WithDetachedHead checks out the commit, runs fn, and restores the previous
// branch. When no branch points at the commit, a temporary branch named
// detached_HEAD_at_<prefix> is created at it.
func WithDetachedHead(ctx context.Context, d *Dolt, commit string, fn func() error) error {
	active, _, err := d.Branches(ctx)
	if err != nil {
		return err
	}

	switched := false
	query := fmt.Sprintf("select name, hash from dolt_branches where hash = '%s'", commit)
	rows, err := d.Query(ctx, query)
	if err != nil {
		return err
	}

	if len(rows) > 0 {
		if active.Hash != rows[0]["hash"] {
			if err := d.Checkout(ctx, CheckoutOptions{Branch: rows[0]["name"]}); err != nil {
				return err
			}
			switched = true
		}
	} else {
		prefix := commit
		if len(prefix) > 5 {
			prefix = prefix[:5]
		}
		tmpBranch := "detached_HEAD_at_" + prefix
		if err := d.Checkout(ctx, CheckoutOptions{Branch: tmpBranch, CreateBranch: true, StartPoint: commit}); err != nil {
			return err
		}
		switched = true
	}

	fnErr := fn()

	if switched {
		if err := d.Checkout(ctx, CheckoutOptions{Branch: active.Name}); err != nil {
			if fnErr != nil {
				return fnErr
			}
			return errors.Wrapf(err, "failed to restore branch %s", active.Name)
		}
	}
	return fnErr
}
