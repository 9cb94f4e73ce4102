package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--database", dsn}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestAdminGrantLifecycle(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dsn := filepath.Join(t.TempDir(), "ctl.db")

	out, err := execute(t, dsn, "user", "create", "--email", "Owner@DecodersHQ.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "created owner@decodershq.com")

	out, err = execute(t, dsn, "admin", "grant", "owner@decodershq.com")
	require.NoError(t, err)
	assert.Contains(t, out, "granted owner@decodershq.com")

	_, err = execute(t, dsn, "admin", "grant", "owner@decodershq.com")
	assert.Error(t, err)

	out, err = execute(t, dsn, "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "owner@decodershq.com")

	_, err = execute(t, dsn, "admin", "revoke", "owner@decodershq.com")
	require.NoError(t, err)
	out, err = execute(t, dsn, "admin", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "owner@decodershq.com")

	_, err = execute(t, dsn, "admin", "revoke", "owner@decodershq.com")
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dsn := filepath.Join(t.TempDir(), "ctl.db")

	out, err := execute(t, dsn, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 of 3 posts")

	out, err = execute(t, dsn, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 of 3 posts")

	out, err = execute(t, dsn, "sessions", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "pruned sessions=0")
}
