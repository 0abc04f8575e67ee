package dolt

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// NewCreds creates a new credential key pair and returns the public key when
// it can be found in the output.
func (d *Dolt) NewCreds(ctx context.Context) (string, error) {
	out, err := d.exec(ctx, "creds", "new")
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, found := strings.CutPrefix(line, "pub key:"); found {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", nil
}

// RemoveCreds removes the key pair identified by the given public key.
func (d *Dolt) RemoveCreds(ctx context.Context, publicKey string) error {
	if publicKey == "" {
		return errors.New("public key is required")
	}

	out, err := d.exec(ctx, "creds", "rm", publicKey)
	if err != nil {
		return err
	}
	if strings.HasPrefix(strings.TrimSpace(out), "failed") {
		return errors.Errorf("failed to remove credentials for %s", publicKey)
	}
	return nil
}

// ListCreds parses the key pairs known to this dolt installation. The active
// pair is marked by dolt with a leading asterisk.
func (d *Dolt) ListCreds(ctx context.Context) ([]*KeyPair, error) {
	out, err := d.exec(ctx, "creds", "ls", "--verbose")
	if err != nil {
		return nil, err
	}

	var creds []*KeyPair
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		active := false
		if rest, found := strings.CutPrefix(line, "*"); found {
			active = true
			line = strings.TrimSpace(rest)
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		creds = append(creds, &KeyPair{
			PublicKey: fields[0],
			KeyID:     fields[1],
			Active:    active,
		})
	}
	return creds, nil
}

// CheckCreds verifies that credentials authenticate against the endpoint.
// Empty endpoint and creds use dolt's defaults.
func (d *Dolt) CheckCreds(ctx context.Context, endpoint, creds string) (bool, error) {
	args := []string{"creds", "check"}
	if endpoint != "" {
		args = append(args, "--endpoint", endpoint)
	}
	if creds != "" {
		args = append(args, "--creds", creds)
	}

	out, err := d.exec(ctx, args...)
	if err != nil {
		return false, err
	}

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "error") {
			return false, nil
		}
	}
	return true, nil
}

// UseCreds switches the active credentials to the key pair with the given ID.
func (d *Dolt) UseCreds(ctx context.Context, keyID string) error {
	if keyID == "" {
		return errors.New("key ID is required")
	}

	out, err := d.exec(ctx, "creds", "use", keyID)
	if err != nil {
		return err
	}
	if strings.HasPrefix(strings.TrimSpace(out), "error") {
		return errors.Errorf("failed to use credentials %s", keyID)
	}
	return nil
}
