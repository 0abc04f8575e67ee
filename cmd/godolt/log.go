package main

import (
	"fmt"

	"github.com/doltops/godolt/pkg/dolt"
	"github.com/spf13/cobra"
)

var (
	logNumber int
	logCommit string
	logJSON   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		commits, err := db.Log(cmd.Context(), dolt.LogOptions{
			Number: logNumber,
			Commit: logCommit,
		})
		if err != nil {
			return err
		}

		if logJSON {
			return printJSON(commits)
		}

		for _, commit := range commits {
			fmt.Printf("%s: %s @ %s, %s\n", commit.Ref, commit.Author, commit.Timestamp, commit.Message)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logNumber, "number", "n", 0, "Limit the number of commits shown")
	logCmd.Flags().StringVar(&logCommit, "commit", "", "Show a single commit by hash")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "Print commits as JSON")
}
