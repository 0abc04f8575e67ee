package dolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreds(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the public key", func(t *testing.T) {
		f := newFakeRunner("Credentials created successfully.\npub key: fake9nl4j0s6cvt4e8cmqz71hx1u19wgmpg1lf9dkfgbvm\n")
		d := fakeHandle(f)

		key, err := d.NewCreds(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fake9nl4j0s6cvt4e8cmqz71hx1u19wgmpg1lf9dkfgbvm", key)
		assert.Equal(t, []string{"creds", "new"}, f.lastCall())
	})

	t.Run("missing key line yields empty", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("some unexpected output\n"))
		key, err := d.NewCreds(ctx)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestRemoveCreds(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a public key", func(t *testing.T) {
		d := fakeHandle(newFakeRunner())
		assert.Error(t, d.RemoveCreds(ctx, ""))
	})

	t.Run("failure output becomes an error", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("failed to find credentials\n"))
		assert.Error(t, d.RemoveCreds(ctx, "pubkey"))
	})

	t.Run("success", func(t *testing.T) {
		f := newFakeRunner("")
		d := fakeHandle(f)

		require.NoError(t, d.RemoveCreds(ctx, "pubkey"))
		assert.Equal(t, []string{"creds", "rm", "pubkey"}, f.lastCall())
	})
}

func TestListCreds(t *testing.T) {
	f := newFakeRunner("  pubkey1  keyid1\n* pubkey2  keyid2\n\n")
	d := fakeHandle(f)

	creds, err := d.ListCreds(context.Background())
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, "pubkey1", creds[0].PublicKey)
	assert.Equal(t, "keyid1", creds[0].KeyID)
	assert.False(t, creds[0].Active)
	assert.Equal(t, "pubkey2", creds[1].PublicKey)
	assert.True(t, creds[1].Active)
	assert.Equal(t, []string{"creds", "ls", "--verbose"}, f.lastCall())
}

func TestCheckCreds(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		f := newFakeRunner("requesting update\nsuccess\n")
		d := fakeHandle(f)

		ok, err := d.CheckCreds(ctx, "doltremoteapi.dolthub.com:443", "keyid")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"creds", "check", "--endpoint", "doltremoteapi.dolthub.com:443", "--creds", "keyid"}, f.lastCall())
	})

	t.Run("error line means invalid", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("requesting update\nerror: unauthorized\n"))
		ok, err := d.CheckCreds(ctx, "", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUseCreds(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a key ID", func(t *testing.T) {
		d := fakeHandle(newFakeRunner())
		assert.Error(t, d.UseCreds(ctx, ""))
	})

	t.Run("switches the active pair", func(t *testing.T) {
		f := newFakeRunner("")
		d := fakeHandle(f)

		require.NoError(t, d.UseCreds(ctx, "keyid"))
		assert.Equal(t, []string{"creds", "use", "keyid"}, f.lastCall())
	})

	t.Run("error output becomes an error", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("error: no such credentials\n"))
		assert.Error(t, d.UseCreds(ctx, "keyid"))
	})
}
