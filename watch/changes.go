package watch

import (
	"context"
	"sync"

	"github.com/gwangyi/vfsx"
	"github.com/hashicorp/go-multierror"
)

// Changes turns watcher callbacks into a pull-style stream: it
// registers one recursive watcher per filesystem and queues everything
// they deliver for Next. When a watched filesystem closes, its Closed
// event is queued and the subscription is detached automatically.
type Changes struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool

	watchers map[*Watcher]Watchable
}

// NewChanges subscribes to every given filesystem under path with the
// given filter. A zero filter means AllEvents.
func NewChanges(path string, filter EventKind, fsys ...Watchable) (*Changes, error) {
	c := &Changes{watchers: make(map[*Watcher]Watchable, len(fsys))}
	c.cond = sync.NewCond(&c.mu)
	for _, f := range fsys {
		w, err := f.AddWatcher(c.push, path, filter, true)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.watchers[w] = f
	}
	return c, nil
}

func (c *Changes) push(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.queue = append(c.queue, ev)
	if ev.Kind == Closed {
		// The filesystem is gone; its watcher is already dead.
		for w, f := range c.watchers {
			if f == ev.FS {
				delete(c.watchers, w)
			}
		}
	}
	c.cond.Signal()
}

// Next blocks until an event is available, the stream is closed, or
// the context ends. It returns false when no more events will come.
func (c *Changes) Next(ctx context.Context) (Event, bool) {
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.cond.Broadcast()
		})
		defer stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 {
		if c.closed || len(c.watchers) == 0 || ctx.Err() != nil {
			return Event{}, false
		}
		c.cond.Wait()
	}
	ev := c.queue[0]
	c.queue = c.queue[1:]
	return ev, true
}

// Close detaches every remaining subscription and wakes any blocked
// Next call. It is safe to call more than once.
func (c *Changes) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	watchers := c.watchers
	c.watchers = nil
	c.cond.Broadcast()
	c.mu.Unlock()

	var errs *multierror.Error
	for w, f := range watchers {
		if err := f.DelWatcher(w); err != nil && !vfsx.IsKind(err, vfsx.KindClosed) {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}
