package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var branchJSON bool

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "List branches",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		active, branches, err := db.Branches(cmd.Context())
		if err != nil {
			return err
		}

		if branchJSON {
			return printJSON(struct {
				Active   string `json:"active"`
				Branches any    `json:"branches"`
			}{Active: active.Name, Branches: branches})
		}

		for _, branch := range branches {
			marker := " "
			if branch.Name == active.Name {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n", marker, branch.Name, branch.Hash)
		}
		return nil
	},
}

func init() {
	branchCmd.Flags().BoolVar(&branchJSON, "json", false, "Print branches as JSON")
}
