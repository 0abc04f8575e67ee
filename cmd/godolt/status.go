package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the working set",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		status, err := db.Status(cmd.Context())
		if err != nil {
			return err
		}

		if statusJSON {
			return printJSON(status)
		}

		if status.Clean {
			fmt.Println("working set clean")
			return nil
		}
		printTableChanges("modified", status.ModifiedTables)
		printTableChanges("new table", status.AddedTables)
		return nil
	},
}

func printTableChanges(kind string, tables map[string]bool) {
	for name, staged := range tables {
		state := "unstaged"
		if staged {
			state = "staged"
		}
		fmt.Printf("%s: %s (%s)\n", kind, name, state)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print status as JSON")
}
