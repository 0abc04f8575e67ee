package dolt

import (
	"context"

	"github.com/pkg/errors"
)

// Tags lists the tags in this repository, read from the dolt_tags system
// table.
func (d *Dolt) Tags(ctx context.Context) ([]*Tag, error) {
	rows, err := d.Query(ctx, "select tag_name, tag_hash, message from dolt_tags")
	if err != nil {
		return nil, err
	}

	tags := make([]*Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, &Tag{
			Name:    row["tag_name"],
			Ref:     row["tag_hash"],
			Message: row["message"],
		})
	}
	return tags, nil
}

// CreateTag tags a commit. An empty ref tags HEAD.
func (d *Dolt) CreateTag(ctx context.Context, name, ref, message string) error {
	if name == "" {
		return errors.New("tag name is required")
	}

	args := []string{"tag"}
	if message != "" {
		args = append(args, "-m", message)
	}
	args = append(args, name)
	if ref != "" {
		args = append(args, ref)
	}

	_, err := d.exec(ctx, args...)
	return err
}

// DeleteTag deletes a tag.
func (d *Dolt) DeleteTag(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("tag name is required")
	}
	_, err := d.exec(ctx, "tag", "--delete", name)
	return err
}
