package dolt

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ConfigGlobal reads the global dolt configuration as a name/value map.
func ConfigGlobal(ctx context.Context, opts ...Option) (map[string]string, error) {
	d := newHandle("", opts...)
	return d.config(ctx, "--global", []string{"--list"})
}

// SetConfigGlobal sets a name/value pair in the global dolt configuration.
func SetConfigGlobal(ctx context.Context, name, value string, opts ...Option) error {
	if name == "" || value == "" {
		return errors.New("name and value are required")
	}
	d := newHandle("", opts...)
	_, err := d.config(ctx, "--global", []string{"--add", name, value})
	return err
}

// UnsetConfigGlobal removes a name from the global dolt configuration.
func UnsetConfigGlobal(ctx context.Context, name string, opts ...Option) error {
	if name == "" {
		return errors.New("name is required")
	}
	d := newHandle("", opts...)
	_, err := d.config(ctx, "--global", []string{"--unset", name})
	return err
}

// ConfigLocal reads the repository-local configuration as a name/value map.
func (d *Dolt) ConfigLocal(ctx context.Context) (map[string]string, error) {
	return d.config(ctx, "--local", []string{"--list"})
}

// GetConfigLocal returns a single repository-local configuration value.
func (d *Dolt) GetConfigLocal(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errors.New("name is required")
	}
	out, err := d.exec(ctx, "config", "--local", "--get", name)
	if err != nil {
		return "", err
	}
	if value, ok := parseConfig(out)[name]; ok {
		return value, nil
	}
	// dolt prints the bare value for --get
	value := strings.TrimSpace(out)
	if value == "" {
		return "", errors.Errorf("config %s not set", name)
	}
	return value, nil
}

// SetConfigLocal sets a name/value pair in the repository-local configuration.
func (d *Dolt) SetConfigLocal(ctx context.Context, name, value string) error {
	if name == "" || value == "" {
		return errors.New("name and value are required")
	}
	_, err := d.config(ctx, "--local", []string{"--add", name, value})
	return err
}

// UnsetConfigLocal removes a name from the repository-local configuration.
func (d *Dolt) UnsetConfigLocal(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	_, err := d.config(ctx, "--local", []string{"--unset", name})
	return err
}

func (d *Dolt) config(ctx context.Context, scope string, args []string) (map[string]string, error) {
	out, err := d.exec(ctx, append([]string{"config", scope}, args...)...)
	if err != nil {
		return nil, err
	}
	return parseConfig(out), nil
}

// parseConfig reads "name = value" lines as printed by dolt config.
func parseConfig(output string) map[string]string {
	config := map[string]string{}
	for _, line := range strings.Split(output, "\n") {
		name, value, found := strings.Cut(line, " = ")
		if !found {
			continue
		}
		config[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return config
}
