package watch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/billyfs"
	"github.com/gwangyi/vfsx/watch"
)

func TestChangesNext(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", watch.Created|watch.Removed, w)
	require.NoError(t, err)
	defer func() { _ = changes.Close() }()

	require.NoError(t, w.Mkdir("/dir", 0o755))
	require.NoError(t, w.Remove("/dir"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev, ok := changes.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, watch.Created, ev.Kind)
	assert.Equal(t, "/dir", ev.Path)

	ev, ok = changes.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, watch.Removed, ev.Kind)
	assert.Equal(t, "/dir", ev.Path)
}

func TestChangesBlocksUntilEvent(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", 0, w)
	require.NoError(t, err)
	defer func() { _ = changes.Close() }()

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = w.Mkdir("/late", 0o755)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev, ok := changes.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, watch.Created, ev.Kind)
	assert.Equal(t, "/late", ev.Path)
}

func TestChangesContextCancel(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", 0, w)
	require.NoError(t, err)
	defer func() { _ = changes.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok := changes.Next(ctx)
	assert.False(t, ok)
}

func TestChangesCloseWakesNext(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", 0, w)
	require.NoError(t, err)

	done := make(chan bool, 1)
	go func() {
		_, ok := changes.Next(context.Background())
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, changes.Close())

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Next did not return after Close")
	}

	// Closing again is a no-op.
	require.NoError(t, changes.Close())
}

func TestChangesFilesystemClosed(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", 0, w)
	require.NoError(t, err)

	require.NoError(t, w.Close())

	// The Closed event is the last thing the stream carries for that
	// filesystem, and the subscription detaches itself.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev, ok := changes.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, watch.Closed, ev.Kind)

	require.NoError(t, changes.Close())
}

func TestChangesEndsWhenNothingWatched(t *testing.T) {
	w := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", 0, w)
	require.NoError(t, err)
	defer func() { _ = changes.Close() }()

	require.NoError(t, w.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev, ok := changes.Next(ctx)
	require.True(t, ok)
	require.Equal(t, watch.Closed, ev.Kind)

	// With the Closed event consumed and no subscriptions left there is
	// nothing more to wait for: the stream ends instead of blocking.
	ev, ok = changes.Next(context.Background())
	assert.False(t, ok)
	assert.Zero(t, ev)
}

func TestChangesMultipleFilesystems(t *testing.T) {
	a := watch.Wrap(billyfs.NewMemory())
	b := watch.Wrap(billyfs.NewMemory())
	changes, err := watch.NewChanges("/", watch.Created, a, b)
	require.NoError(t, err)
	defer func() { _ = changes.Close() }()

	require.NoError(t, a.Mkdir("/from-a", 0o755))
	require.NoError(t, b.Mkdir("/from-b", 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := map[string]vfsx.FS{}
	for range 2 {
		ev, ok := changes.Next(ctx)
		require.True(t, ok)
		seen[ev.Path] = ev.FS
	}
	assert.Equal(t, vfsx.FS(a), seen["/from-a"])
	assert.Equal(t, vfsx.FS(b), seen["/from-b"])
}
