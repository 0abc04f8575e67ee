package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/doltops/godolt/pkg/presenter"
)

var remoteJSON bool

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "List configured remotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		remotes, err := db.Remotes(cmd.Context())
		if err != nil {
			return err
		}

		if remoteJSON {
			return printJSON(remotes)
		}

		for _, remote := range remotes {
			fmt.Printf("%s\t%s\n", remote.Name, remote.URL)
		}
		return nil
	},
}

var remoteAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a remote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		if err := db.AddRemote(cmd.Context(), args[0], args[1]); err != nil {
			return errors.Wrapf(err, "adding remote %s", args[0])
		}
		presenter.Success(fmt.Sprintf("Added remote %s -> %s", args[0], args[1]))
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a remote",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		if err := db.RemoveRemote(cmd.Context(), args[0]); err != nil {
			return errors.Wrapf(err, "removing remote %s", args[0])
		}
		presenter.Success(fmt.Sprintf("Removed remote %s", args[0]))
		return nil
	},
}

func init() {
	remoteCmd.Flags().BoolVar(&remoteJSON, "json", false, "Print remotes as JSON")
	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
}
