package dolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	output := `user.name = Ada Lovelace
user.email = ada@example.com

malformed line
`
	config := parseConfig(output)
	assert.Equal(t, map[string]string{
		"user.name":  "Ada Lovelace",
		"user.email": "ada@example.com",
	}, config)
}

func TestConfigGlobal(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		f := newFakeRunner("user.name = Ada\n")
		config, err := ConfigGlobal(ctx, WithRunner(f))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user.name": "Ada"}, config)
		assert.Equal(t, []string{"config", "--global", "--list"}, f.lastCall())
	})

	t.Run("set", func(t *testing.T) {
		f := newFakeRunner("")
		require.NoError(t, SetConfigGlobal(ctx, "user.name", "Ada", WithRunner(f)))
		assert.Equal(t, []string{"config", "--global", "--add", "user.name", "Ada"}, f.lastCall())
	})

	t.Run("set requires name and value", func(t *testing.T) {
		assert.Error(t, SetConfigGlobal(ctx, "", "v", WithRunner(newFakeRunner())))
		assert.Error(t, SetConfigGlobal(ctx, "n", "", WithRunner(newFakeRunner())))
	})

	t.Run("unset", func(t *testing.T) {
		f := newFakeRunner("")
		require.NoError(t, UnsetConfigGlobal(ctx, "user.name", WithRunner(f)))
		assert.Equal(t, []string{"config", "--global", "--unset", "user.name"}, f.lastCall())
	})
}

func TestConfigLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		f := newFakeRunner("core.remote = origin\n")
		d := fakeHandle(f)

		config, err := d.ConfigLocal(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"core.remote": "origin"}, config)
		assert.Equal(t, []string{"config", "--local", "--list"}, f.lastCall())
	})

	t.Run("get from name = value output", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("user.name = Ada\n"))
		value, err := d.GetConfigLocal(ctx, "user.name")
		require.NoError(t, err)
		assert.Equal(t, "Ada", value)
	})

	t.Run("get from bare value output", func(t *testing.T) {
		d := fakeHandle(newFakeRunner("Ada\n"))
		value, err := d.GetConfigLocal(ctx, "user.name")
		require.NoError(t, err)
		assert.Equal(t, "Ada", value)
	})

	t.Run("get unset name", func(t *testing.T) {
		d := fakeHandle(newFakeRunner(""))
		_, err := d.GetConfigLocal(ctx, "user.name")
		assert.Error(t, err)
	})

	t.Run("set and unset", func(t *testing.T) {
		f := newFakeRunner("", "")
		d := fakeHandle(f)

		require.NoError(t, d.SetConfigLocal(ctx, "user.name", "Ada"))
		assert.Equal(t, []string{"config", "--local", "--add", "user.name", "Ada"}, f.calls[0])

		require.NoError(t, d.UnsetConfigLocal(ctx, "user.name"))
		assert.Equal(t, []string{"config", "--local", "--unset", "user.name"}, f.calls[1])
	})
}
