package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultancy/internal/backend/gormstore"
	"consultancy/internal/database/dbtest"
)

func TestGrantRepository(t *testing.T) {
	repo := NewGrantRepository(gormstore.New(dbtest.Open(t, &Grant{})))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Grant{ID: "u1", Email: "A@X.com"}))
	require.NoError(t, repo.Create(ctx, &Grant{Email: "pending@x.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &Grant{ID: "u7", Email: "a@x.com"}), ErrGrantExists)

	ok, err := repo.ExistsByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	grants, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, grants, 2)

	require.NoError(t, repo.DeleteByEmail(ctx, "pending@x.com"))
	assert.ErrorIs(t, repo.DeleteByEmail(ctx, "pending@x.com"), ErrGrantNotFound)
}

func TestGuard_AgainstStore(t *testing.T) {
	repo := NewGrantRepository(gormstore.New(dbtest.Open(t, &Grant{})))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &Grant{ID: "u1", Email: "a@x.com"}))

	g := NewGuard(repo, 0, nil)
	assert.Equal(t, Granted, g.Decide(ctx, identity("u2", "a@x.com")).Outcome)
	assert.Equal(t, Denied, g.Decide(ctx, identity("u3", "b@x.com")).Outcome)
}
