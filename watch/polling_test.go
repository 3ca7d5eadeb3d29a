package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/billyfs"
	"github.com/gwangyi/vfsx/osfs"
	"github.com/gwangyi/vfsx/watch"
)

func newPolling(t *testing.T) (*watch.PollingFS, string, *recorder) {
	t.Helper()
	dir := t.TempDir()
	inner, err := osfs.New(dir)
	require.NoError(t, err)
	p := watch.NewPolling(inner, 20*time.Millisecond, watch.WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(func() { _ = p.Close() })

	rec := &recorder{}
	_, err = p.AddWatcher(rec.record, "/", 0, true)
	require.NoError(t, err)
	return p, dir, rec
}

// settle waits two full polling passes: one to be sure a pass that was
// already in flight has finished, one that definitely started after the
// out-of-band change.
func settle(t *testing.T, p *watch.PollingFS) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, p.WaitForPoll(ctx))
	require.NoError(t, p.WaitForPoll(ctx))
}

func TestPollingOutOfBandCreate(t *testing.T) {
	p, dir, rec := newPolling(t)
	settle(t, p)

	// The file appears behind the wrapper's back.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("0123456789"), 0o644))
	settle(t, p)

	assert.Equal(t, 1, rec.count(watch.Created, "/f.txt"))
}

func TestPollingOutOfBandModify(t *testing.T) {
	p, dir, rec := newPolling(t)
	host := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(host, []byte("0123456789"), 0o644))
	settle(t, p)
	require.Equal(t, 1, rec.count(watch.Created, "/f.txt"))

	// Growing the file out of band is exactly one modification, even
	// across several subsequent passes.
	require.NoError(t, os.WriteFile(host, []byte("01234567890123456789"), 0o644))
	settle(t, p)
	settle(t, p)

	assert.Equal(t, 1, rec.count(watch.Modified, "/f.txt"))
	for _, ev := range rec.all() {
		if ev.Kind == watch.Modified && ev.Path == "/f.txt" {
			assert.True(t, ev.DataChanged)
		}
	}
}

func TestPollingOutOfBandRemove(t *testing.T) {
	p, dir, rec := newPolling(t)
	host := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(host, []byte("x"), 0o644))
	settle(t, p)

	require.NoError(t, os.Remove(host))
	settle(t, p)
	settle(t, p)

	assert.Equal(t, 1, rec.count(watch.Removed, "/f.txt"))
}

func TestPollingOutOfBandSubdirectory(t *testing.T) {
	p, dir, rec := newPolling(t)
	settle(t, p)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "b", "f.txt"), []byte("x"), 0o644))
	settle(t, p)

	assert.Equal(t, 1, rec.count(watch.Created, "/a"))
	assert.Equal(t, 1, rec.count(watch.Created, "/a/b"))
	assert.Equal(t, 1, rec.count(watch.Created, "/a/b/f.txt"))
}

func TestPollingInterceptionNotDuplicated(t *testing.T) {
	p, _, rec := newPolling(t)
	settle(t, p)

	// A change made through the wrapper is reported immediately; the
	// next pass must not report it again.
	require.NoError(t, vfsx.WriteFile(p, "/g.txt", []byte("x"), 0o644))
	require.Equal(t, 1, rec.count(watch.Created, "/g.txt"))
	settle(t, p)
	settle(t, p)

	assert.Equal(t, 1, rec.count(watch.Created, "/g.txt"))
	assert.Equal(t, 1, rec.count(watch.Modified, "/g.txt"))
}

func TestPollingFirstPass(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre.txt"), []byte("x"), 0o644))
	inner, err := osfs.New(dir)
	require.NoError(t, err)

	p := watch.NewPolling(inner, 20*time.Millisecond)
	defer func() { _ = p.Close() }()
	rec := &recorder{}
	_, err = p.AddWatcher(rec.record, "/", watch.Created, true)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, p.WaitForPoll(ctx))
	require.NoError(t, p.WaitForPoll(ctx))

	// Pre-existing entries surface as Created on the first pass. The
	// watcher races the first pass, so all that can be asserted is that
	// repeats never happen.
	assert.LessOrEqual(t, rec.count(watch.Created, "/pre.txt"), 1)
}

func TestPollingClose(t *testing.T) {
	dir := t.TempDir()
	inner, err := osfs.New(dir)
	require.NoError(t, err)
	p := watch.NewPolling(inner, 20*time.Millisecond)

	rec := &recorder{}
	_, err = p.AddWatcher(rec.record, "/", 0, true)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.Equal(t, 1, rec.count(watch.Closed, ""))

	err = p.WaitForPoll(context.Background())
	assert.True(t, vfsx.IsKind(err, vfsx.KindClosed))

	// Closing again is harmless.
	require.NoError(t, p.Close())
}

func TestWaitForPollContext(t *testing.T) {
	dir := t.TempDir()
	inner, err := osfs.New(dir)
	require.NoError(t, err)
	// An hour-long interval guarantees no pass completes during the
	// short wait below once the immediate first pass is done.
	p := watch.NewPolling(inner, time.Hour)
	defer func() { _ = p.Close() }()
	time.Sleep(100 * time.Millisecond)

	short, cancelShort := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelShort()
	err = p.WaitForPoll(short)
	assert.True(t, vfsx.IsKind(err, vfsx.KindTimeout))
}

func TestEnsureWatchable(t *testing.T) {
	t.Run("AlreadyWatchable", func(t *testing.T) {
		w := watch.Wrap(billyfs.NewMemory())
		got := watch.EnsureWatchable(w, time.Minute)
		assert.Equal(t, watch.Watchable(w), got)
	})
	t.Run("PollingFallback", func(t *testing.T) {
		// A memory filesystem has no host paths, so polling is the
		// only option.
		got := watch.EnsureWatchable(billyfs.NewMemory(), 20*time.Millisecond)
		defer func() { _ = got.Close() }()
		_, ok := got.(*watch.PollingFS)
		assert.True(t, ok)
	})
	t.Run("Native", func(t *testing.T) {
		inner, err := osfs.New(t.TempDir())
		require.NoError(t, err)
		got := watch.EnsureWatchable(inner, time.Minute)
		defer func() { _ = got.Close() }()
		_, ok := got.(*watch.PollingFS)
		assert.False(t, ok, "host-backed filesystems take the native path")
	})
}
