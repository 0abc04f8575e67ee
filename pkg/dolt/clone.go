package dolt

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// CloneOptions control where and what Clone checks out.
type CloneOptions struct {
	// Dir is the target directory. When empty it is inferred from the last
	// segment of the remote URL, under the current working directory.
	Dir string
	// Remote names the remote to track, defaulting to origin.
	Remote string
	// Branch checks out a specific branch after cloning.
	Branch string
}

// Clone clones the database at remoteURL into a new local directory and
// returns a handle to it.
func Clone(ctx context.Context, remoteURL string, opts CloneOptions, handleOpts ...Option) (*Dolt, error) {
	args := []string{"clone", remoteURL}

	if opts.Remote != "" {
		args = append(args, "--remote", opts.Remote)
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}

	inferFrom := ""
	if opts.Dir == "" {
		inferFrom = remoteURL
	}
	cloneDir, err := cloneDir(opts.Dir, inferFrom)
	if err != nil {
		return nil, err
	}
	args = append(args, cloneDir)

	d := newHandle("", handleOpts...)
	if _, err := d.exec(ctx, args...); err != nil {
		return nil, errors.Wrapf(err, "failed to clone %s", remoteURL)
	}

	return Open(cloneDir, handleOpts...)
}

// ReadTables creates a new local database containing the given tables (or all
// tables when none are named) from the database at remoteURL, at the commit
// or branch provided.
func ReadTables(ctx context.Context, remoteURL, committish string, tables []string, opts CloneOptions, handleOpts ...Option) (*Dolt, error) {
	inferFrom := ""
	if opts.Dir == "" {
		inferFrom = remoteURL
	}
	cloneDir, err := cloneDir(opts.Dir, inferFrom)
	if err != nil {
		return nil, err
	}

	args := []string{"read-tables", "--dir", cloneDir, remoteURL, committish}
	args = append(args, tables...)

	d := newHandle("", handleOpts...)
	if _, err := d.exec(ctx, args...); err != nil {
		return nil, errors.Wrapf(err, "failed to read tables from %s", remoteURL)
	}

	return Open(cloneDir, handleOpts...)
}

// cloneDir resolves the directory a clone lands in. With a remote URL the
// last URL segment is appended to newDir (or the current directory), and the
// result must not already exist. With only newDir, it is used as given.
func cloneDir(newDir, remoteURL string) (string, error) {
	switch {
	case newDir == "" && remoteURL == "":
		return "", errors.New("provide either a target directory or a remote URL")
	case remoteURL != "":
		base := newDir
		if base == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", errors.Wrap(err, "failed to determine working directory")
			}
			base = cwd
		}
		segments := strings.Split(remoteURL, "/")
		inferred := filepath.Join(base, segments[len(segments)-1])
		if _, err := os.Stat(inferred); err == nil {
			return "", errors.Errorf("path already exists: %s", inferred)
		}
		return inferred, nil
	default:
		return newDir, nil
	}
}
