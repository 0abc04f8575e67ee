// Package tabular moves row- and column-shaped data in and out of Dolt
// tables. Reads go through SQL with CSV results; writes stage the data in a
// temporary CSV file and drive `dolt table import`.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/doltops/godolt/pkg/dolt"
	"github.com/doltops/godolt/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ImportMode selects how an import treats the target table.
type ImportMode string

const (
	// ModeCreate creates a new table.
	ModeCreate ImportMode = "create"
	// ModeForceCreate drops and recreates an existing table.
	ModeForceCreate ImportMode = "force_create"
	// ModeReplace replaces the table contents.
	ModeReplace ImportMode = "replace"
	// ModeUpdate updates rows in an existing table.
	ModeUpdate ImportMode = "update"
)

var importModeFlags = map[ImportMode][]string{
	ModeCreate:      {"-c"},
	ModeForceCreate: {"-f", "-c"},
	ModeReplace:     {"-r"},
	ModeUpdate:      {"-u"},
}

// ReadRows returns all rows of a table, optionally as of a commit or branch.
func ReadRows(ctx context.Context, db *dolt.Dolt, table, asOf string) ([]dolt.Row, error) {
	return ReadRowsSQL(ctx, db, readTableQuery(table, asOf))
}

// ReadColumns returns a table in column-major shape, optionally as of a
// commit or branch.
func ReadColumns(ctx context.Context, db *dolt.Dolt, table, asOf string) (map[string][]string, error) {
	return ReadColumnsSQL(ctx, db, readTableQuery(table, asOf))
}

// ReadRowsSQL returns the rows produced by an arbitrary query.
func ReadRowsSQL(ctx context.Context, db *dolt.Dolt, query string) ([]dolt.Row, error) {
	return db.Query(ctx, query)
}

// ReadColumnsSQL returns the result of an arbitrary query in column-major shape.
func ReadColumnsSQL(ctx context.Context, db *dolt.Dolt, query string) (map[string][]string, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return RowsToColumns(rows), nil
}

func readTableQuery(table, asOf string) string {
	query := fmt.Sprintf("SELECT * FROM `%s`", table)
	if asOf != "" {
		query = fmt.Sprintf("%s AS OF '%s'", query, asOf)
	}
	return query
}

// WriteOptions control how staged data is imported and whether the result is
// committed.
type WriteOptions struct {
	// Mode selects the import behavior. Empty infers Update when the table
	// exists and Create otherwise.
	Mode ImportMode
	// PrimaryKey columns, required when creating a table.
	PrimaryKey []string
	// Continue keeps importing past bad rows.
	Continue bool
	// Commit stages and commits the table after importing.
	Commit bool
	// CommitMessage overrides the generated commit message.
	CommitMessage string
	// CommitDate overrides the commit timestamp.
	CommitDate time.Time
}

// WriteRows imports row-shaped data into a table. Column order in the staged
// file follows the sorted union of the row keys; rows missing a column get an
// empty value.
func WriteRows(ctx context.Context, db *dolt.Dolt, table string, rows []dolt.Row, opts WriteOptions) error {
	if len(rows) == 0 {
		return errors.New("no rows to write")
	}

	fieldSet := map[string]struct{}{}
	for _, row := range rows {
		for name := range row {
			fieldSet[name] = struct{}{}
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for name := range fieldSet {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return stageAndImport(ctx, db, table, opts, func(path string) error {
		return writeCSV(path, fields, func(w *csv.Writer) error {
			record := make([]string, len(fields))
			for _, row := range rows {
				for i, name := range fields {
					record[i] = row[name]
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// WriteColumns imports column-major data into a table. All columns must have
// the same length.
func WriteColumns(ctx context.Context, db *dolt.Dolt, table string, columns map[string][]string, opts WriteOptions) error {
	if len(columns) == 0 {
		return errors.New("no columns to write")
	}

	length := -1
	for _, values := range columns {
		if length == -1 {
			length = len(values)
			continue
		}
		if len(values) != length {
			return errors.New("columns must have identical length")
		}
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	return stageAndImport(ctx, db, table, opts, func(path string) error {
		return writeCSV(path, names, func(w *csv.Writer) error {
			record := make([]string, len(names))
			for i := 0; i < length; i++ {
				for j, name := range names {
					record[j] = columns[name][i]
				}
				if err := w.Write(record); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// WriteFile imports an existing CSV file into a table.
func WriteFile(ctx context.Context, db *dolt.Dolt, table, file string, opts WriteOptions) error {
	if file == "" {
		return errors.New("file is required")
	}
	if _, err := os.Stat(file); err != nil {
		return errors.Wrapf(err, "cannot import %s", file)
	}
	return runImport(ctx, db, table, file, opts)
}

func writeCSV(path string, header []string, writeRecords func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if err := writeRecords(w); err != nil {
		return errors.Wrap(err, "failed to write records")
	}
	w.Flush()
	return errors.Wrap(w.Error(), "failed to flush records")
}

func stageAndImport(ctx context.Context, db *dolt.Dolt, table string, opts WriteOptions, stage func(path string) error) error {
	path := filepath.Join(os.TempDir(), "godolt-"+uuid.NewString()+".csv")
	defer os.Remove(path)

	if err := stage(path); err != nil {
		return err
	}
	return runImport(ctx, db, table, path, opts)
}

func runImport(ctx context.Context, db *dolt.Dolt, table, file string, opts WriteOptions) error {
	mode, err := resolveImportMode(ctx, db, table, opts.Mode)
	if err != nil {
		return err
	}

	logger.G(ctx).WithField("table", table).WithField("mode", string(mode)).Info("importing table data")

	args := append([]string{"table", "import", table}, importModeFlags[mode]...)
	if len(opts.PrimaryKey) > 0 {
		args = append(args, "--pk="+strings.Join(opts.PrimaryKey, ","))
	}
	if opts.Continue {
		args = append(args, "--continue")
	}
	args = append(args, file)

	if _, err := db.Execute(ctx, args...); err != nil {
		return err
	}

	if opts.Commit {
		message := opts.CommitMessage
		if message == "" {
			message = fmt.Sprintf("Committing write to table %s in %s mode", table, mode)
		}
		if _, err := db.Add(ctx, table); err != nil {
			return err
		}
		return db.Commit(ctx, message, dolt.CommitOptions{Date: opts.CommitDate})
	}
	return nil
}

func resolveImportMode(ctx context.Context, db *dolt.Dolt, table string, mode ImportMode) (ImportMode, error) {
	if mode != "" {
		if _, ok := importModeFlags[mode]; !ok {
			return "", errors.Errorf("invalid import mode %q", mode)
		}
		return mode, nil
	}

	tables, err := db.Ls(ctx, dolt.LsOptions{})
	if err != nil {
		return "", err
	}
	for _, t := range tables {
		if t.Name == table {
			logger.G(ctx).WithField("table", table).Debug("table exists, importing in update mode")
			return ModeUpdate, nil
		}
	}
	logger.G(ctx).WithField("table", table).Debug("table does not exist, importing in create mode")
	return ModeCreate, nil
}

// ColumnsToRows converts column-major data to rows. All columns must have the
// same length.
func ColumnsToRows(columns map[string][]string) ([]dolt.Row, error) {
	length := -1
	for _, values := range columns {
		if length == -1 {
			length = len(values)
			continue
		}
		if len(values) != length {
			return nil, errors.New("columns must have identical length")
		}
	}
	if length <= 0 {
		return []dolt.Row{}, nil
	}

	rows := make([]dolt.Row, length)
	for i := range rows {
		rows[i] = dolt.Row{}
	}
	for name, values := range columns {
		for i, value := range values {
			rows[i][name] = value
		}
	}
	return rows, nil
}

// RowsToColumns converts rows to column-major data.
func RowsToColumns(rows []dolt.Row) map[string][]string {
	columns := map[string][]string{}
	for _, row := range rows {
		for name, value := range row {
			columns[name] = append(columns[name], value)
		}
	}
	return columns
}
