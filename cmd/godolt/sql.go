package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/doltops/godolt/pkg/dolt"
)

var (
	sqlQuery  string
	sqlFormat string
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Run a SQL query against the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sqlQuery == "" {
			return errors.New("a query must be provided with -q")
		}

		db, err := openRepo()
		if err != nil {
			return err
		}

		switch sqlFormat {
		case "json":
			result, err := db.QueryJSON(cmd.Context(), sqlQuery)
			if err != nil {
				return err
			}
			return printJSON(result.Rows)
		case "csv":
			rows, err := db.Query(cmd.Context(), sqlQuery)
			if err != nil {
				return err
			}
			printCSVRows(rows)
			return nil
		default:
			return errors.Errorf("unsupported result format %q", sqlFormat)
		}
	},
}

func printCSVRows(rows []dolt.Row) {
	if len(rows) == 0 {
		return
	}

	headers := make([]string, 0, len(rows[0]))
	for key := range rows[0] {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	fmt.Println(strings.Join(headers, ","))

	for _, row := range rows {
		values := make([]string, 0, len(headers))
		for _, key := range headers {
			values = append(values, row[key])
		}
		fmt.Println(strings.Join(values, ","))
	}
}

func init() {
	sqlCmd.Flags().StringVarP(&sqlQuery, "query", "q", "", "SQL query to execute")
	sqlCmd.Flags().StringVar(&sqlFormat, "format", "csv", "Result format (csv or json)")
}
