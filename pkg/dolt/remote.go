package dolt

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/doltops/godolt/pkg/logger"
	"github.com/pkg/errors"
)

const (
	syncAttempts     = 3
	syncInitialDelay = 500 * time.Millisecond
	syncMaxDelay     = 5 * time.Second
)

// Remotes lists the remotes configured for this repository.
func (d *Dolt) Remotes(ctx context.Context) ([]*Remote, error) {
	out, err := d.exec(ctx, "remote", "--verbose")
	if err != nil {
		return nil, err
	}

	var remotes []*Remote
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		remotes = append(remotes, &Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes, nil
}

// AddRemote adds a remote to this repository.
func (d *Dolt) AddRemote(ctx context.Context, name, url string) error {
	if name == "" || url == "" {
		return errors.New("name and url are required")
	}
	_, err := d.exec(ctx, "remote", "add", name, url)
	return err
}

// RemoveRemote removes a remote from this repository.
func (d *Dolt) RemoveRemote(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	_, err := d.exec(ctx, "remote", "remove", name)
	return err
}

// PushOptions control how a branch is pushed.
type PushOptions struct {
	// Refspec optionally names the branch to push.
	Refspec string
	// SetUpstream adds an upstream reference for every pushed branch.
	SetUpstream bool
	// Force overwrites the upstream history.
	Force bool
}

// Push pushes to the given remote, retrying transient failures.
func (d *Dolt) Push(ctx context.Context, remote string, opts PushOptions) error {
	args := []string{"push"}
	if opts.SetUpstream {
		args = append(args, "--set-upstream")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	if opts.Refspec != "" {
		args = append(args, opts.Refspec)
	}

	return d.syncWithRetry(ctx, "push", args)
}

// Pull pulls the latest changes from the given remote, defaulting to origin.
// An empty branch pulls the tracked branch.
func (d *Dolt) Pull(ctx context.Context, remote, branch string) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"pull", remote}
	if branch != "" {
		args = append(args, branch)
	}

	return d.syncWithRetry(ctx, "pull", args)
}

// FetchOptions control what a fetch brings down.
type FetchOptions struct {
	// Refspecs are the branches to fetch; empty fetches the default refspecs.
	Refspecs []string
	// Force overrides local history with the remote's.
	Force bool
}

// Fetch fetches from the given remote, defaulting to origin, retrying
// transient failures.
func (d *Dolt) Fetch(ctx context.Context, remote string, opts FetchOptions) error {
	if remote == "" {
		remote = "origin"
	}

	args := []string{"fetch"}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, remote)
	args = append(args, opts.Refspecs...)

	return d.syncWithRetry(ctx, "fetch", args)
}

// syncWithRetry runs a network-facing dolt command with exponential backoff.
// Only subprocess failures are retried; argument errors surface immediately.
func (d *Dolt) syncWithRetry(ctx context.Context, op string, args []string) error {
	err := retry.Do(
		func() error {
			_, execErr := d.exec(ctx, args...)
			return execErr
		},
		retry.RetryIf(func(err error) bool {
			var cmdErr *CommandError
			return errors.As(err, &cmdErr)
		}),
		retry.Attempts(syncAttempts),
		retry.Delay(syncInitialDelay),
		retry.MaxDelay(syncMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithField("attempt", n+1).Warnf("retrying dolt %s", op)
		}),
	)
	return errors.Wrapf(err, "failed to %s", op)
}
