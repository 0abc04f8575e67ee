package main

import (
	"fmt"

	"github.com/doltops/godolt/pkg/dolt"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

var (
	lsAll    bool
	lsSystem bool
	lsFilter string
	lsJSON   bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tables in the working set",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openRepo()
		if err != nil {
			return err
		}

		tables, err := db.Ls(cmd.Context(), dolt.LsOptions{All: lsAll, System: lsSystem})
		if err != nil {
			return err
		}

		if lsFilter != "" {
			tables, err = filterTables(tables, lsFilter)
			if err != nil {
				return err
			}
		}

		if lsJSON {
			return printJSON(tables)
		}

		for _, table := range tables {
			if table.System {
				fmt.Printf("%s (system)\n", table.Name)
				continue
			}
			fmt.Printf("%s %s %d\n", table.Name, table.Root, table.Rows)
		}
		return nil
	},
}

func filterTables(tables []*dolt.Table, pattern string) ([]*dolt.Table, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	filtered := make([]*dolt.Table, 0, len(tables))
	for _, table := range tables {
		if g.Match(table.Name) {
			filtered = append(filtered, table)
		}
	}
	return filtered, nil
}

func init() {
	lsCmd.Flags().BoolVar(&lsAll, "all", false, "Include every table dolt knows about")
	lsCmd.Flags().BoolVar(&lsSystem, "system", false, "Include system tables")
	lsCmd.Flags().StringVar(&lsFilter, "filter", "", "Only list tables matching this glob pattern")
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "Print tables as JSON")
}
