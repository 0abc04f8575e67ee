// Package dolt is a client library for the Dolt version-controlled SQL
// database. It wraps the dolt command-line binary: every operation builds an
// argument list, shells out, and parses the textual, CSV, or JSON output into
// typed records. Commands that only make sense interactively (the bare
// `dolt sql` shell) are not exposed.
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

// Dolt is a handle to a local Dolt repository.
type Dolt struct {
	repoDir string
	runner  Runner
}

// Option configures a Dolt handle.
type Option func(*Dolt)

// WithBinaryPath overrides the dolt executable used by this handle.
func WithBinaryPath(path string) Option {
	return func(d *Dolt) {
		if r, ok := d.runner.(*cliRunner); ok {
			r.binary = path
		}
	}
}

// WithRunner substitutes the subprocess layer, primarily for tests.
func WithRunner(r Runner) Option {
	return func(d *Dolt) {
		d.runner = r
	}
}

func newHandle(repoDir string, opts ...Option) *Dolt {
	d := &Dolt{
		repoDir: repoDir,
		runner:  &cliRunner{binary: DefaultBinary},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open returns a handle to an existing Dolt repository at dir.
func Open(dir string, opts ...Option) (*Dolt, error) {
	if _, err := os.Stat(filepath.Join(dir, ".dolt")); err != nil {
		return nil, errors.Errorf("%s is not a valid Dolt repository", dir)
	}
	return newHandle(dir, opts...), nil
}

// Init creates a new Dolt repository at dir, creating the directory if
// needed, and returns a handle to it. Initializing a directory that is
// already a repository is not an error; the existing repository is opened.
func Init(ctx context.Context, dir string, opts ...Option) (*Dolt, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		dir = cwd
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	d := newHandle(dir, opts...)
	logger.G(ctx).WithField("dir", dir).Info("initializing Dolt repository")

	if _, err := d.exec(ctx, "init"); err != nil {
		if existing, openErr := Open(dir, opts...); openErr == nil {
			logger.G(ctx).WithField("dir", dir).Debug("directory already initialized")
			return existing, nil
		}
		return nil, errors.Wrapf(err, "failed to initialize repository at %s", dir)
	}
	return d, nil
}

// Execute runs an arbitrary dolt subcommand in the repository directory,
// passing args exactly as they would appear on the command line after the
// binary name, and returns stdout.
func (d *Dolt) Execute(ctx context.Context, args ...string) (string, error) {
	return d.exec(ctx, args...)
}

// RepoDir returns the repository directory this handle operates on.
func (d *Dolt) RepoDir() string {
	return d.repoDir
}

// RepoName returns the database name Dolt derives from the repository
// directory: the base name with dashes replaced by underscores.
func (d *Dolt) RepoName() string {
	base := filepath.Base(filepath.Clean(d.repoDir))
	return strings.ReplaceAll(base, "-", "_")
}

// Head returns the commit hash at the tip of the current branch.
func (d *Dolt) Head(ctx context.Context) (string, error) {
	rows, err := d.Query(ctx, "select HASHOF('HEAD') as hash")
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0]["hash"] == "" {
		return "", errors.New("head not found")
	}
	return rows[0]["hash"], nil
}

// Working returns the working set hash.
func (d *Dolt) Working(ctx context.Context) (string, error) {
	query := fmt.Sprintf("select @@%s_working as working", d.RepoName())
	rows, err := d.Query(ctx, query)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0]["working"] == "" {
		return "", errors.New("working head not found")
	}
	return rows[0]["working"], nil
}

// ActiveBranch returns the name of the currently checked out branch.
func (d *Dolt) ActiveBranch(ctx context.Context) (string, error) {
	rows, err := d.Query(ctx, "select active_branch() as branch")
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0]["branch"] == "" {
		return "", errors.New("active branch not found")
	}
	return rows[0]["branch"], nil
}

// Version returns the version of the dolt binary, e.g. "1.42.0".
func Version(ctx context.Context, opts ...Option) (string, error) {
	d := newHandle("", opts...)
	out, err := d.exec(ctx, "version")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return "", errors.Errorf("unexpected version output: %q", strings.TrimSpace(out))
	}
	return fields[2], nil
}
