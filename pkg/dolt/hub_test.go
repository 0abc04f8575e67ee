package dolt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		database string
		expected string
		wantErr  bool
	}{
		{database: "dolthub/us-jails", expected: "us-jails"},
		{database: "plain", wantErr: true},
		{database: "a/b/c", wantErr: true},
		{database: "/db", wantErr: true},
		{database: "owner/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.database, func(t *testing.T) {
			name, err := databaseName(tt.database)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestEnsureCloned(t *testing.T) {
	ctx := context.Background()

	t.Run("existing local copy is pulled", func(t *testing.T) {
		path := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(path, ".dolt"), 0o755))

		f := newFakeRunner("")
		d, err := EnsureCloned(ctx, "dolthub/us-jails", EnsureOptions{Path: path}, WithRunner(f))
		require.NoError(t, err)
		assert.Equal(t, path, d.RepoDir())
		assert.Equal(t, []string{"pull", "origin"}, f.lastCall())
	})

	t.Run("missing copy is cloned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "us-jails")

		f := newFakeRunner("")
		f.hook = func(args []string) {
			if args[0] == "clone" {
				require.NoError(t, os.MkdirAll(filepath.Join(path, ".dolt"), 0o755))
			}
		}

		d, err := EnsureCloned(ctx, "dolthub/us-jails", EnsureOptions{Path: path}, WithRunner(f))
		require.NoError(t, err)
		assert.Equal(t, path, d.RepoDir())
		assert.Equal(t, []string{"clone", "dolthub/us-jails", path}, f.lastCall())
	})

	t.Run("table subset uses read-tables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "us-jails")

		f := newFakeRunner("")
		f.hook = func(args []string) {
			if args[0] == "read-tables" {
				require.NoError(t, os.MkdirAll(filepath.Join(path, ".dolt"), 0o755))
			}
		}

		opts := EnsureOptions{Path: path, Tables: []string{"inmates"}}
		d, err := EnsureCloned(ctx, "dolthub/us-jails", opts, WithRunner(f))
		require.NoError(t, err)
		assert.Equal(t, path, d.RepoDir())
		assert.Equal(t, []string{"read-tables", "--dir", path, "dolthub/us-jails", "main", "inmates"}, f.lastCall())
	})
}

func TestWithDetachedHead(t *testing.T) {
	ctx := context.Background()

	active := branchesCSV("main,h1,Ada,ada@example.com,2024-03-01,first")
	all := branchesCSV(
		"main,h1,Ada,ada@example.com,2024-03-01,first",
		"feature,h2,Ada,ada@example.com,2024-03-02,second",
	)

	t.Run("existing branch at the commit", func(t *testing.T) {
		f := newFakeRunner(
			all,
			active,
			branchesCSV("feature,h2,Ada,ada@example.com,2024-03-02,second"),
			"",
			"",
		)
		d := fakeHandle(f)

		ran := false
		err := WithDetachedHead(ctx, d, "h2", func() error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.Equal(t, []string{"checkout", "feature"}, f.calls[3])
		assert.Equal(t, []string{"checkout", "main"}, f.lastCall())
	})

	t.Run("already on the commit", func(t *testing.T) {
		f := newFakeRunner(
			all,
			active,
			branchesCSV("main,h1,Ada,ada@example.com,2024-03-01,first"),
		)
		d := fakeHandle(f)

		err := WithDetachedHead(ctx, d, "h1", func() error { return nil })
		require.NoError(t, err)
		assert.Len(t, f.calls, 3)
	})

	t.Run("no branch at the commit creates a temporary one", func(t *testing.T) {
		f := newFakeRunner(
			all,
			active,
			branchesCSV(),
			"",
			"",
		)
		d := fakeHandle(f)

		err := WithDetachedHead(ctx, d, "abcdef123", func() error { return nil })
		require.NoError(t, err)
		assert.Equal(t, []string{"checkout", "-b", "detached_HEAD_at_abcde", "abcdef123"}, f.calls[3])
		assert.Equal(t, []string{"checkout", "main"}, f.lastCall())
	})
}
