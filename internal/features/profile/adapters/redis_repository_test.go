package adapters

import (
	"context"
	"testing"

	"crafts-market/internal/core/store"
	"crafts-market/internal/features/profile/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*RedisProfileRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := store.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisProfileRepository(adapter), mr
}

func TestProfileRepository_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	profile := domain.DefaultProfile()
	profile.FullName = "Jane Potter"
	require.NoError(t, repo.Save(ctx, "s1", profile))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Potter", got.FullName)
	assert.Len(t, got.PaymentMethods, 1)
}

func TestProfileRepository_MissingYieldsNil(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileRepository_CorruptRecordYieldsNil(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("profile:s1", "{not json"))

	got, err := repo.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileRepository_UnknownSchemaYieldsNil(t *testing.T) {
	repo, mr := newTestRepo(t)
	require.NoError(t, mr.Set("profile:s1", `{"schema_version":99,"profile":{}}`))

	got, err := repo.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileRepository_LoggedInFlag(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	loggedIn, err := repo.LoadLoggedIn(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loggedIn)

	require.NoError(t, repo.SaveLoggedIn(ctx, "s1", true))
	loggedIn, err = repo.LoadLoggedIn(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loggedIn)

	require.NoError(t, repo.SaveLoggedIn(ctx, "s1", false))
	loggedIn, err = repo.LoadLoggedIn(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestProfileRepository_StoreDown(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()

	_, err := repo.Load(context.Background(), "s1")
	assert.Error(t, err)
}
