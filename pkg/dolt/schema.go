package dolt

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SchemaShow returns the schema of the given tables, optionally at a commit.
func (d *Dolt) SchemaShow(ctx context.Context, tables []string, commit string) (string, error) {
	if len(tables) == 0 {
		return "", errors.New("at least one table is required")
	}

	args := []string{"schema", "show"}
	if commit != "" {
		args = append(args, commit)
	}
	args = append(args, tables...)

	return d.exec(ctx, args...)
}

// SchemaExport exports the schema of a table. With a filename the schema is
// written to that file; otherwise it is returned.
func (d *Dolt) SchemaExport(ctx context.Context, table, filename string) (string, error) {
	args := []string{"schema", "export", table}
	if filename != "" {
		args = append(args, "--filename", filename)
	}
	return d.exec(ctx, args...)
}

// SchemaImportOptions control schema inference from a data file. Exactly one
// of Create, Update, Replace must be set.
type SchemaImportOptions struct {
	Create  bool
	Update  bool
	Replace bool
	// PrimaryKey columns are required for create and replace.
	PrimaryKey []string
	// DryRun prints the SQL that would run without executing it.
	DryRun bool
	// KeepTypes keeps the current type of columns that already exist.
	KeepTypes bool
	// FileType overrides the type inferred from the file extension.
	FileType string
	// MappingFile maps column names in the file to new names.
	MappingFile string
	// FloatThreshold is the minimum fractional component a value must have to
	// be inferred as a float.
	FloatThreshold float64
	// Delimiter used in the file being inferred from.
	Delimiter string
}

// SchemaImport infers a table schema from a data file.
func (d *Dolt) SchemaImport(ctx context.Context, table, filename string, opts SchemaImportOptions) error {
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

	args := []string{"schema", "import"}
	switch {
	case opts.Create:
		args = append(args, "--create")
	case opts.Update:
		args = append(args, "--update")
	case opts.Replace:
		args = append(args, "--replace")
	}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.KeepTypes {
		args = append(args, "--keep-types")
	}
	if opts.FileType != "" {
		args = append(args, "--file-type", opts.FileType)
	}
	if len(opts.PrimaryKey) > 0 {
		args = append(args, "--pks", strings.Join(opts.PrimaryKey, ","))
	}
	if opts.MappingFile != "" {
		args = append(args, "--map", opts.MappingFile)
	}
	if opts.FloatThreshold > 0 {
		args = append(args, "--float-threshold", fmt.Sprintf("%g", opts.FloatThreshold))
	}
	if opts.Delimiter != "" {
		args = append(args, "--delim", opts.Delimiter)
	}
	args = append(args, table, filename)

	_, err := d.exec(ctx, args...)
	return err
}
