package watch_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/watch"
)

// recorder collects delivered events for later inspection.
type recorder struct {
	mu     sync.Mutex
	events []watch.Event
}

func (r *recorder) record(ev watch.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []watch.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]watch.Event(nil), r.events...)
}

// paths returns the paths of recorded events matching the kind mask, in
// delivery order.
func (r *recorder) paths(mask watch.EventKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		if ev.Kind&mask != 0 {
			out = append(out, ev.Path)
		}
	}
	return out
}

func (r *recorder) count(mask watch.EventKind, path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind&mask != 0 && ev.Path == path {
			n++
		}
	}
	return n
}

func TestRegistryDispatch(t *testing.T) {
	tests := []struct {
		name      string
		watchPath string
		recursive bool
		eventPath string
		want      bool
	}{
		{name: "exact path", watchPath: "/a", eventPath: "/a", want: true},
		{name: "direct child", watchPath: "/a", eventPath: "/a/b", want: true},
		{name: "grandchild not delivered", watchPath: "/a", eventPath: "/a/b/c", want: false},
		{name: "sibling not delivered", watchPath: "/a", eventPath: "/x", want: false},
		{name: "prefix is not ancestry", watchPath: "/a", eventPath: "/ab", want: false},
		{name: "recursive grandchild", watchPath: "/a", recursive: true, eventPath: "/a/b/c", want: true},
		{name: "recursive exact", watchPath: "/a", recursive: true, eventPath: "/a", want: true},
		{name: "recursive sibling not delivered", watchPath: "/a", recursive: true, eventPath: "/x", want: false},
		{name: "root recursive sees everything", watchPath: "/", recursive: true, eventPath: "/a/b/c", want: true},
		{name: "root non-recursive sees children", watchPath: "/", eventPath: "/a", want: true},
		{name: "root non-recursive misses deeper", watchPath: "/", eventPath: "/a/b", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := watch.NewRegistry()
			rec := &recorder{}
			_, err := reg.Add(rec.record, tt.watchPath, 0, tt.recursive)
			require.NoError(t, err)

			reg.Notify(watch.Event{Kind: watch.Created, Path: tt.eventPath})

			if tt.want {
				assert.Equal(t, []string{tt.eventPath}, rec.paths(watch.AllEvents))
			} else {
				assert.Empty(t, rec.all())
			}
		})
	}
}

func TestRegistryFilter(t *testing.T) {
	reg := watch.NewRegistry()
	rec := &recorder{}
	_, err := reg.Add(rec.record, "/", watch.Created|watch.Removed, true)
	require.NoError(t, err)

	reg.Notify(watch.Event{Kind: watch.Created, Path: "/a"})
	reg.Notify(watch.Event{Kind: watch.Modified, Path: "/a"})
	reg.Notify(watch.Event{Kind: watch.Accessed, Path: "/a"})
	reg.Notify(watch.Event{Kind: watch.Removed, Path: "/a"})

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, watch.Created, events[0].Kind)
	assert.Equal(t, watch.Removed, events[1].Kind)
}

func TestRegistryDel(t *testing.T) {
	reg := watch.NewRegistry()
	rec := &recorder{}
	w, err := reg.Add(rec.record, "/", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	reg.Notify(watch.Event{Kind: watch.Created, Path: "/a"})
	reg.Del(w)
	assert.Equal(t, 0, reg.Len())
	reg.Notify(watch.Event{Kind: watch.Created, Path: "/b"})

	assert.Equal(t, []string{"/a"}, rec.paths(watch.AllEvents))

	// Deleting again is a no-op.
	reg.Del(w)
	reg.Del(nil)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryClose(t *testing.T) {
	reg := watch.NewRegistry()
	recA, recB := &recorder{}, &recorder{}
	_, err := reg.Add(recA.record, "/a", 0, false)
	require.NoError(t, err)
	_, err = reg.Add(recB.record, "/b/c", 0, true)
	require.NoError(t, err)

	reg.Close(nil)

	// Closed reaches every watcher regardless of its path, exactly once.
	for _, rec := range []*recorder{recA, recB} {
		events := rec.all()
		require.Len(t, events, 1)
		assert.Equal(t, watch.Closed, events[0].Kind)
	}
	assert.Equal(t, 0, reg.Len())

	// The registry stays closed.
	reg.Close(nil)
	_, err = reg.Add(recA.record, "/", 0, true)
	assert.True(t, vfsx.IsKind(err, vfsx.KindClosed))
}

func TestRegistryPanicRecovery(t *testing.T) {
	reg := watch.NewRegistry(watch.WithLogger(zaptest.NewLogger(t)))
	rec := &recorder{}
	_, err := reg.Add(func(watch.Event) { panic("broken consumer") }, "/", 0, true)
	require.NoError(t, err)
	_, err = reg.Add(rec.record, "/", 0, true)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		reg.Notify(watch.Event{Kind: watch.Created, Path: "/a"})
	})
	assert.Equal(t, []string{"/a"}, rec.paths(watch.AllEvents))
}

func TestWatcherAccessors(t *testing.T) {
	reg := watch.NewRegistry()
	w, err := reg.Add(func(watch.Event) {}, "a//b/", watch.Created, true)
	require.NoError(t, err)
	assert.Equal(t, "/a/b", w.Path())
	assert.Equal(t, watch.Created, w.Filter())
	assert.True(t, w.Recursive())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, `<created "/a">`, watch.Event{Kind: watch.Created, Path: "/a"}.String())
	assert.Equal(t, `<moved_from "/a" to "/b">`,
		watch.Event{Kind: watch.MovedFrom, Path: "/a", Destination: "/b"}.String())
	assert.Equal(t, `<moved_to "/b" from "/a">`,
		watch.Event{Kind: watch.MovedTo, Path: "/b", Source: "/a"}.String())
	assert.Equal(t, "<closed>", watch.Event{Kind: watch.Closed}.String())
	assert.Equal(t, "created|removed", (watch.Created | watch.Removed).String())
	assert.Equal(t, "none", watch.EventKind(0).String())
}
