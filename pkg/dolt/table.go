package dolt

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LsOptions widen what Ls lists.
type LsOptions struct {
	// System includes system tables.
	System bool
	// All includes every table dolt knows about.
	All bool
}

// Ls lists the tables in the working set, parsing each name, root hash, and
// row count. System tables carry only a name.
func (d *Dolt) Ls(ctx context.Context, opts LsOptions) ([]*Table, error) {
	args := []string{"ls", "--verbose"}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.System {
		args = append(args, "--system")
	}

	out, err := d.exec(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseTableListing(out)
}

func parseTableListing(output string) ([]*Table, error) {
	tables := []*Table{}
	lines := strings.Split(output, "\n")

	if len(lines) > 0 && strings.HasPrefix(lines[0], "No tables in working set") {
		return tables, nil
	}

	systemSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "Tables"):
			continue
		case strings.HasPrefix(trimmed, "System"):
			systemSection = true
		case systemSection:
			tables = append(tables, &Table{Name: trimmed, System: true})
		default:
			fields := strings.Fields(trimmed)
			if len(fields) < 3 {
				return nil, errors.Errorf("unexpected table listing line: %q", trimmed)
			}
			rows, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "unexpected row count in table listing line: %q", trimmed)
			}
			tables = append(tables, &Table{Name: fields[0], Root: fields[1], Rows: rows})
		}
	}

	return tables, nil
}

// TableImportOptions control how a data file becomes a table. Exactly one of
// Create, Update, Replace must be set.
type TableImportOptions struct {
	Create  bool
	Update  bool
	Replace bool
	// PrimaryKey columns are required for create and replace.
	PrimaryKey []string
	// FileType overrides the type inferred from the file extension.
	FileType string
	// MappingFile maps column names in the file to new names.
	MappingFile string
	// Delimiter used in the file being imported.
	Delimiter string
	// Continue keeps importing past bad rows.
	Continue bool
	// Force overwrites existing data.
	Force bool
}

// TableImport imports a data file into a table.
func (d *Dolt) TableImport(ctx context.Context, table, filename string, opts TableImportOptions) error {
	modes := 0
	for _, set := range []bool{opts.Create, opts.Update, opts.Replace} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return errors.New("exactly one of create, update, replace must be set")
	}
	if (opts.Create || opts.Replace) && len(opts.PrimaryKey) == 0 {
		return errors.New("a primary key is required to create or replace a table")
	}

	args := []string{"table", "import"}
	switch {
	case opts.Create:
		args = append(args, "--create-table")
	case opts.Update:
		args = append(args, "--update-table")
	case opts.Replace:
		args = append(args, "--replace-table")
	}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	if len(opts.PrimaryKey) > 0 {
		args = append(args, "--pk", strings.Join(opts.PrimaryKey, ","))
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if opts.Delimiter != "" {
		args = append(args, "--delim", opts.Delimiter)
	}
	if opts.Continue {
		args = append(args, "--continue")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, table, filename)

	_, err := d.exec(ctx, args...)
	return err
}

// TableExportOptions control how a table is written to a file.
type TableExportOptions struct {
	Force       bool
	Continue    bool
	Schema      string
	MappingFile string
	PrimaryKey  []string
	FileType    string
}

// TableExport exports a table to a file.
func (d *Dolt) TableExport(ctx context.Context, table, filename string, opts TableExportOptions) error {
	args := []string{"table", "export"}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.Continue {
		args = append(args, "--continue")
	}
	if opts.Schema != "" {
		args = append(args, "--schema", opts.Schema)
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if len(opts.PrimaryKey) > 0 {
		args = append(args, "--pk", strings.Join(opts.PrimaryKey, ","))
	}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	args = append(args, table, filename)

	_, err := d.exec(ctx, args...)
	return err
}

// TableMv renames a table.
func (d *Dolt) TableMv(ctx context.Context, oldTable, newTable string, force bool) error {
	args := []string{"table", "mv"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, oldTable, newTable)

	_, err := d.exec(ctx, args...)
	return err
}

// TableCp copies a table, optionally at a given commit.
func (d *Dolt) TableCp(ctx context.Context, oldTable, newTable, commit string, force bool) error {
	args := []string{"table", "cp"}
	if force {
		args = append(args, "--force")
	}
	if commit != "" {
		args = append(args, commit)
	}
	args = append(args, oldTable, newTable)

	_, err := d.exec(ctx, args...)
	return err
}

// TableRm removes tables from the working set.
func (d *Dolt) TableRm(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return errors.New("at least one table is required")
	}
	args := append([]string{"table", "rm"}, tables...)

	_, err := d.exec(ctx, args...)
	return err
}
