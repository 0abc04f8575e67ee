package dolt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		expected string
	}{
		{
			name:     "stderr preferred",
			err:      &CommandError{Args: []string{"status"}, Stdout: "partial", Stderr: "fatal: not a repo\n", ExitCode: 1},
			expected: "dolt status exited with status 1: fatal: not a repo",
		},
		{
			name:     "falls back to stdout",
			err:      &CommandError{Args: []string{"pull", "origin"}, Stdout: "remote unreachable\n", ExitCode: 1},
			expected: "dolt pull origin exited with status 1: remote unreachable",
		},
		{
			name:     "no output at all",
			err:      &CommandError{Args: []string{"gc"}, ExitCode: 2},
			expected: "dolt gc exited with status 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCliRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		r := &cliRunner{binary: "echo"}
		out, err := r.Run(ctx, t.TempDir(), "", "hello", "world")
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", out)
	})

	t.Run("streams stdout into outfile", func(t *testing.T) {
		r := &cliRunner{binary: "echo"}
		outfile := filepath.Join(t.TempDir(), "out.txt")

		out, err := r.Run(ctx, t.TempDir(), outfile, "streamed")
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(outfile)
		require.NoError(t, err)
		assert.Equal(t, "streamed\n", string(data))
	})

	t.Run("non-zero exit becomes CommandError", func(t *testing.T) {
		r := &cliRunner{binary: "false"}
		_, err := r.Run(ctx, t.TempDir(), "")
		require.Error(t, err)

		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, 1, cmdErr.ExitCode)
	})

	t.Run("missing binary is not a CommandError", func(t *testing.T) {
		r := &cliRunner{binary: "godolt-no-such-binary"}
		_, err := r.Run(ctx, t.TempDir(), "")
		require.Error(t, err)

		var cmdErr *CommandError
		assert.False(t, errors.As(err, &cmdErr))
	})
}

func TestExecRunsInRepoDir(t *testing.T) {
	f := newFakeRunner("ok")
	d := fakeHandle(f)

	out, err := d.exec(context.Background(), "status")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"status"}, f.lastCall())
	assert.Equal(t, "/repo", f.cwds[0])
}
