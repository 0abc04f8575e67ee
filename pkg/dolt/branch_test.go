package dolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranches(t *testing.T) {
	ctx := context.Background()

	t.Run("lists branches and finds the active one", func(t *testing.T) {
		f := newFakeRunner(
			branchesCSV(
				"main,h1,Ada,ada@example.com,2024-03-01,first",
				"feature,h2,Grace,grace@example.com,2024-03-02,wip",
			),
			branchesCSV("feature,h2,Grace,grace@example.com,2024-03-02,wip"),
		)
		d := fakeHandle(f)

		active, branches, err := d.Branches(ctx)
		require.NoError(t, err)
		require.Len(t, branches, 2)
		assert.Equal(t, "feature", active.Name)
		assert.Equal(t, "h2", active.Hash)
		assert.Equal(t, "Grace", active.LatestCommitter)
		assert.Equal(t, "main", branches[0].Name)
		assert.Equal(t, "wip", branches[1].LatestCommitMessage)
	})

	t.Run("no active branch is an error", func(t *testing.T) {
		f := newFakeRunner(
			branchesCSV("main,h1,Ada,ada@example.com,2024-03-01,first"),
			branchesCSV(),
		)
		d := fakeHandle(f)

		_, _, err := d.Branches(ctx)
		assert.Error(t, err)
	})
}

func TestBranchCommands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func(d *Dolt) error
		expected []string
		wantErr  bool
	}{
		{
			name:     "create",
			run:      func(d *Dolt) error { return d.CreateBranch(ctx, "feature", BranchOptions{}) },
			expected: []string{"branch", "feature"},
		},
		{
			name:     "create forced from start point",
			run:      func(d *Dolt) error { return d.CreateBranch(ctx, "feature", BranchOptions{StartPoint: "h1", Force: true}) },
			expected: []string{"branch", "--force", "feature", "h1"},
		},
		{
			name:    "create requires a name",
			run:     func(d *Dolt) error { return d.CreateBranch(ctx, "", BranchOptions{}) },
			wantErr: true,
		},
		{
			name:     "delete",
			run:      func(d *Dolt) error { return d.DeleteBranch(ctx, "feature", false) },
			expected: []string{"branch", "--delete", "feature"},
		},
		{
			name:     "force delete",
			run:      func(d *Dolt) error { return d.DeleteBranch(ctx, "feature", true) },
			expected: []string{"branch", "--force", "--delete", "feature"},
		},
		{
			name:     "copy current branch",
			run:      func(d *Dolt) error { return d.CopyBranch(ctx, "", "backup", false) },
			expected: []string{"branch", "--copy", "backup"},
		},
		{
			name:     "copy named branch",
			run:      func(d *Dolt) error { return d.CopyBranch(ctx, "main", "backup", false) },
			expected: []string{"branch", "--copy", "main", "backup"},
		},
		{
			name:     "move",
			run:      func(d *Dolt) error { return d.MoveBranch(ctx, "old", "new", false) },
			expected: []string{"branch", "--move", "old", "new"},
		},
		{
			name:    "move requires a destination",
			run:     func(d *Dolt) error { return d.MoveBranch(ctx, "old", "", false) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRunner("")
			d := fakeHandle(f)

			err := tt.run(d)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, f.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.lastCall())
		})
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("branch and tables are exclusive", func(t *testing.T) {
		d := fakeHandle(newFakeRunner())
		err := d.Checkout(ctx, CheckoutOptions{Branch: "feature", Tables: []string{"users"}})
		assert.Error(t, err)
	})

	t.Run("new branch from start point", func(t *testing.T) {
		f := newFakeRunner("")
		d := fakeHandle(f)

		require.NoError(t, d.Checkout(ctx, CheckoutOptions{Branch: "feature", CreateBranch: true, StartPoint: "h1"}))
		assert.Equal(t, []string{"checkout", "-b", "feature", "h1"}, f.lastCall())
	})

	t.Run("restore tables", func(t *testing.T) {
		f := newFakeRunner("")
		d := fakeHandle(f)

		require.NoError(t, d.Checkout(ctx, CheckoutOptions{Tables: []string{"users", "orders"}}))
		assert.Equal(t, []string{"checkout", "users", "orders"}, f.lastCall())
	})

	t.Run("track an upstream branch", func(t *testing.T) {
		f := newFakeRunner("")
		d := fakeHandle(f)

		require.NoError(t, d.Checkout(ctx, CheckoutOptions{Branch: "feature", Track: "origin/feature"}))
		assert.Equal(t, []string{"checkout", "feature", "--track", "origin/feature"}, f.lastCall())
	})
}
