package dolt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/doltops/godolt/pkg/logger"
	"github.com/pkg/errors"
)

// DefaultBinary is the dolt executable resolved from PATH when no explicit
// path is configured.
const DefaultBinary = "dolt"

// CommandError is returned when the dolt binary exits non-zero. It carries
// the full invocation and both output streams for diagnosis.
type CommandError struct {
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("dolt %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("dolt %s exited with status %d: %s", strings.Join(e.Args, " "), e.ExitCode, msg)
}

// Runner executes dolt with the given args in cwd. When outfile is
// non-empty, stdout is streamed into that file and the returned string is
// empty. Implementations other than the default are mostly useful in tests.
type Runner interface {
	Run(ctx context.Context, cwd, outfile string, args ...string) (string, error)
}

// cliRunner shells out to the dolt binary.
type cliRunner struct {
	binary string
}

func (r *cliRunner) Run(ctx context.Context, cwd, outfile string, args ...string) (string, error) {
	logger.G(ctx).WithField("cwd", cwd).Debugf("dolt %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stderr = &stderr

	if outfile != "" {
		f, err := os.Create(outfile)
		if err != nil {
			return "", errors.Wrapf(err, "failed to create output file %s", outfile)
		}
		defer f.Close()
		cmd.Stdout = f
	} else {
		cmd.Stdout = &stdout
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			cmdErr := &CommandError{
				Args:     args,
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
			logger.G(ctx).WithError(cmdErr).Debug("dolt command failed")
			return "", cmdErr
		}
		return "", errors.Wrapf(err, "failed to run %s %s", r.binary, strings.Join(args, " "))
	}

	return stdout.String(), nil
}

// exec runs dolt inside the repository directory and returns stdout.
func (d *Dolt) exec(ctx context.Context, args ...string) (string, error) {
	return d.runner.Run(ctx, d.repoDir, "", args...)
}

// execToFile runs dolt inside the repository directory, streaming stdout into outfile.
func (d *Dolt) execToFile(ctx context.Context, outfile string, args ...string) error {
	_, err := d.runner.Run(ctx, d.repoDir, outfile, args...)
	return err
}
