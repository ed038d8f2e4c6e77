package share

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is reported when work is posted to a loop that has exited.
var ErrLoopStopped = errors.New("share: loop stopped")

// Dispatcher runs closures on the goroutine that owns a buffer.
type Dispatcher interface {
	// Post queues fn. It reports false if fn will never run.
	Post(fn func()) bool
}

// Loop is a Dispatcher whose owning goroutine is the caller of Run.
// Post and shutdown are serialized: a closure Post accepted always runs,
// either during Run or while Run drains the queue on its way out.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	backlog int
	closed  bool
}

// NewLoop returns a loop that queues at most backlog closures; Post blocks
// while the queue is full. A backlog below 1 means 1.
func NewLoop(backlog int) *Loop {
	l := &Loop{backlog: max(backlog, 1)}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for !l.closed && len(l.queue) >= l.backlog {
		l.cond.Wait()
	}
	if l.closed {
		return false
	}
	l.queue = append(l.queue, fn)
	l.cond.Broadcast()
	return true
}

// Run executes posted closures one at a time until ctx is done. It then
// refuses new work, runs what was already queued and returns ctx.Err().
// A loop runs once; later calls return ErrLoopStopped.
func (l *Loop) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	for {
		l.mu.Lock()
		if l.closed {
			l.mu.Unlock()
			return ErrLoopStopped
		}
		for len(l.queue) == 0 && ctx.Err() == nil {
			l.cond.Wait()
		}
		if ctx.Err() != nil {
			l.closed = true
			pending := l.queue
			l.queue = nil
			l.cond.Broadcast()
			l.mu.Unlock()
			for _, fn := range pending {
				fn()
			}
			return ctx.Err()
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.cond.Broadcast()
		l.mu.Unlock()
		fn()
	}
}

// Share resolves obj in the background and then, in one closure posted to
// d, inserts every word at the anchor. done (optional) receives the
// outcome on the owning goroutine; if d refuses the closure, done gets
// ErrLoopStopped on the background goroutine instead.
func Share(ctx context.Context, d Dispatcher, e Editable, at InsertAt, obj Object, done func(error)) {
	if done == nil {
		done = func(error) {}
	}
	go func() {
		words, err := obj.Words(ctx)
		posted := d.Post(func() {
			if err == nil {
				err = InsertAll(e, at, words)
			}
			done(err)
		})
		if !posted {
			done(ErrLoopStopped)
		}
	}()
}
