package page_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bramble/internal/models"
	"bramble/internal/page"
	"bramble/internal/store"
)

func newTestService(t *testing.T) *page.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	pages := store.NewCollection[models.Page]("pages", rdb, store.NewMemory[models.Page]())
	return page.NewService(pages)
}

func TestSaveAssignsVersions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "/home", "Home", "v1", "alice")
	require.NoError(t, err)
	require.Equal(t, 1, saved.Version)

	saved, err = svc.Save(ctx, "/home", "Home", "v2", "alice")
	require.NoError(t, err)
	require.Equal(t, 2, saved.Version)

	got, err := svc.Get(ctx, "/home")
	require.NoError(t, err)
	require.Equal(t, 2, got.Version)
	require.Equal(t, "v2", got.Content)
}

func TestSaveRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "/notes/go", "Go Notes", "some text", "alice")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "/notes/go")
	require.NoError(t, err)
	require.Equal(t, "Go Notes", got.Subject)
	require.Equal(t, "some text", got.Content)
}

func TestSaveAllowsEmptyContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "/stub", "Stub", "", "alice")
	require.NoError(t, err)
	require.Equal(t, 1, saved.Version)

	got, err := svc.Get(ctx, "/stub")
	require.NoError(t, err)
	require.Empty(t, got.Content)
}

func TestGetIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "/home", "Home", "hello", "alice")
	require.NoError(t, err)

	first, err := svc.Get(ctx, "/home")
	require.NoError(t, err)
	second, err := svc.Get(ctx, "/home")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGetMissingPage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "/nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEditsPreserveCreation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Save(ctx, "/home", "Home", "v1", "alice")
	require.NoError(t, err)

	second, err := svc.Save(ctx, "/home", "Home", "v2", "bob")
	require.NoError(t, err)

	// Attribution and creation time stick from the first insert; later
	// editors do not take them over.
	require.Equal(t, "alice", second.CreatedBy)
	require.Equal(t, first.Created, second.Created)
	require.False(t, second.LastEdited.Before(first.LastEdited))
}

func TestCreateDoesNotPersist(t *testing.T) {
	svc := newTestService(t)

	stub := svc.Create("/draft", "draft", "", "alice")
	require.Equal(t, "/draft", stub.URL)
	require.Zero(t, stub.Version)

	_, err := svc.Get(context.Background(), "/draft")
	require.ErrorIs(t, err, store.ErrNotFound)
}
