package dolt

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SQLResult is the envelope Dolt emits for JSON-formatted query results.
type SQLResult struct {
	Rows []map[string]any `json:"rows"`
}

// ExecOptions control statement execution.
type ExecOptions struct {
	// Batch executes statements one after the other, delimited by semicolons.
	Batch bool
	// MultiDBDir treats each Dolt repository under the directory as a database.
	MultiDBDir string
}

// Exec runs a SQL statement and discards any output.
func (d *Dolt) Exec(ctx context.Context, query string) error {
	return d.ExecWith(ctx, query, ExecOptions{})
}

// ExecWith runs a SQL statement with explicit execution options.
func (d *Dolt) ExecWith(ctx context.Context, query string, opts ExecOptions) error {
	if query == "" {
		return errors.New("query is required")
	}

	args := []string{"sql"}
	if opts.MultiDBDir != "" {
		args = append(args, "--multi-db-dir", opts.MultiDBDir)
	}
	if opts.Batch {
		args = append(args, "--batch")
	}
	args = append(args, "--query", query)

	_, err := d.exec(ctx, args...)
	return err
}

// Query runs a SQL query and returns the result rows parsed from Dolt's CSV
// output. All values are strings; use QueryJSON when type information
// matters.
func (d *Dolt) Query(ctx context.Context, query string) ([]Row, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}

	tmp := filepath.Join(os.TempDir(), "godolt-"+uuid.NewString()+".csv")
	defer os.Remove(tmp)

	if err := d.execToFile(ctx, tmp, "sql", "--query", query, "--result-format", "csv"); err != nil {
		return nil, err
	}
	return readCSVRows(tmp)
}

// QueryJSON runs a SQL query with JSON result formatting, preserving the
// value types Dolt reports.
func (d *Dolt) QueryJSON(ctx context.Context, query string) (*SQLResult, error) {
	if query == "" {
		return nil, errors.New("query is required")
	}

	tmp := filepath.Join(os.TempDir(), "godolt-"+uuid.NewString()+".json")
	defer os.Remove(tmp)

	if err := d.execToFile(ctx, tmp, "sql", "--query", query, "--result-format", "json"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tmp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read query result")
	}

	result := &SQLResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, errors.Wrap(err, "failed to decode query result")
	}
	return result, nil
}

// QueryToFile runs a SQL query and streams the CSV result into path.
func (d *Dolt) QueryToFile(ctx context.Context, query, path string) error {
	if query == "" {
		return errors.New("query is required")
	}
	return d.execToFile(ctx, path, "sql", "--query", query, "--result-format", "csv")
}

// SaveQuery stores a named query in the dolt_query_catalog table.
func (d *Dolt) SaveQuery(ctx context.Context, query, name, message string) error {
	if query == "" || name == "" {
		return errors.New("query and name are required")
	}

	args := []string{"sql", "--query", query, "--save", name}
	if message != "" {
		args = append(args, "--message", message)
	}
	_, err := d.exec(ctx, args...)
	return err
}

// ExecuteSaved runs a previously saved query and returns its raw output.
func (d *Dolt) ExecuteSaved(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errors.New("name is required")
	}
	return d.exec(ctx, "sql", "--execute", name)
}

// ListSavedQueries returns the raw listing of saved queries.
func (d *Dolt) ListSavedQueries(ctx context.Context) (string, error) {
	return d.exec(ctx, "sql", "--list-saved")
}

func readCSVRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open query result")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return []Row{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read result header")
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read result row")
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
