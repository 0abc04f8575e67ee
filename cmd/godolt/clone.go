package main

import (
	"github.com/doltops/godolt/pkg/dolt"
	"github.com/doltops/godolt/pkg/presenter"
	"github.com/spf13/cobra"
)

var (
	cloneRemote string
	cloneBranch string
)

var cloneCmd = &cobra.Command{
	Use:   "clone <remote-url> [dir]",
	Short: "Clone a Dolt database into a new directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := dolt.CloneOptions{
			Remote: cloneRemote,
			Branch: cloneBranch,
		}
		if len(args) == 2 {
			opts.Dir = args[1]
		}

		db, err := dolt.Clone(cmd.Context(), args[0], opts, handleOptions()...)
		if err != nil {
			return err
		}

		presenter.Success("Cloned " + args[0] + " into " + db.RepoDir())
		return nil
	},
}

func init() {
	cloneCmd.Flags().StringVar(&cloneRemote, "remote", "", "Name of the remote to track")
	cloneCmd.Flags().StringVar(&cloneBranch, "branch", "", "Branch to check out after cloning")
}
