package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/roach88/dq/internal/question"
)

// Observer receives guard-level events. Implementations must be safe for
// concurrent use.
type Observer interface {
	// ObserveOperation is called after every Users, All, Get or Set call.
	ObserveOperation(op string, elapsed time.Duration, err error)

	// ObservePoisoned is called once, when the guard becomes poisoned.
	ObservePoisoned()
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, time.Duration, error) {}
func (nopObserver) ObservePoisoned()                              {}

// Guard is the store-wide reader/writer lock around one Store.
//
// Any number of readers may hold the guard at once; a writer holds it
// exclusively. If a Write callback does not return normally (it panics or
// calls runtime.Goexit), the guard is poisoned: the lock is released, the
// fault continues to propagate, and every later Read or Write returns
// ErrPoisoned without running its callback. A poisoned guard is never reset.
type Guard struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
	store    *Store
	observer Observer
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithObserver attaches an Observer to the guard.
func WithObserver(o Observer) GuardOption {
	return func(g *Guard) {
		if o != nil {
			g.observer = o
		}
	}
}

// NewGuard wraps s. Callers must not use s directly afterwards.
func NewGuard(s *Store, opts ...GuardOption) *Guard {
	g := &Guard{store: s, observer: nopObserver{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Poisoned reports whether a writer has faulted while holding the guard.
func (g *Guard) Poisoned() bool {
	return g.poisoned.Load()
}

// Read runs fn with shared access to the store.
// A fault in fn releases the lock but does not poison the guard.
func (g *Guard) Read(fn func(*Store) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Checked after acquiring so waiters queued behind a faulting writer fail too.
	if g.poisoned.Load() {
		return &Error{Kind: KindPoisoned, Op: "read"}
	}
	return fn(g.store)
}

// Write runs fn with exclusive access to the store.
func (g *Guard) Write(fn func(*Store) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned.Load() {
		return &Error{Kind: KindPoisoned, Op: "write"}
	}

	completed := false
	defer func() {
		if !completed {
			g.poisoned.Store(true)
			g.observer.ObservePoisoned()
		}
	}()

	err := fn(g.store)
	completed = true
	return err
}

// Users lists users under a read guard.
func (g *Guard) Users(ctx context.Context) (users []string, err error) {
	defer g.observe("users", time.Now(), &err)
	err = g.Read(func(s *Store) error {
		users, err = s.GetUsers(ctx)
		return err
	})
	return users, err
}

// All lists every question under a read guard.
func (g *Guard) All(ctx context.Context) (qs []question.Question, err error) {
	defer g.observe("all", time.Now(), &err)
	err = g.Read(func(s *Store) error {
		qs, err = s.GetAllQuestions(ctx)
		return err
	})
	return qs, err
}

// Get reads one partition under a read guard.
func (g *Guard) Get(ctx context.Context, user string, week uint8) (qs []question.Question, err error) {
	defer g.observe("get", time.Now(), &err)
	err = g.Read(func(s *Store) error {
		qs, err = s.GetQuestions(ctx, user, week)
		return err
	})
	return qs, err
}

// Set replaces one partition under the write guard.
func (g *Guard) Set(ctx context.Context, user string, week uint8, qs []question.Question) (err error) {
	defer g.observe("set", time.Now(), &err)
	return g.Write(func(s *Store) error {
		return s.SetQuestions(ctx, user, week, qs)
	})
}

func (g *Guard) observe(op string, start time.Time, err *error) {
	g.observer.ObserveOperation(op, time.Since(start), *err)
}
