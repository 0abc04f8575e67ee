package main

import (
	"github.com/doltops/godolt/pkg/dolt"
	"github.com/doltops/godolt/pkg/presenter"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a new Dolt repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}

		db, err := dolt.Init(cmd.Context(), dir, handleOptions()...)
		if err != nil {
			return err
		}

		presenter.Success("Initialized Dolt repository at " + db.RepoDir())
		return nil
	},
}
