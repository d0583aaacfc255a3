package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
)

// DraftStore is the persistence substrate for drafts. The Redis repository
// satisfies it in production; tests may substitute an in-memory fake.
type DraftStore interface {
	Save(ctx context.Context, userID, projectID string, d *domain.Draft) error
	Load(ctx context.Context, userID, projectID string) (*domain.Draft, error)
	Discard(ctx context.Context, userID, projectID string) error
}

// Timer is a scheduled write that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

// Scheduler schedules a single delayed function call. The production
// implementation wraps time.AfterFunc; tests inject a manual one so debounce
// behavior can be exercised without wall-clock waits.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewScheduler returns the wall-clock scheduler.
func NewScheduler() Scheduler {
	return realScheduler{}
}

// AutosaveManager debounces draft writes so a burst of keystroke-level saves
// collapses into a single store write holding the last payload. Exactly one
// draft exists per (user, project) scope; a newer save supersedes and cancels
// any pending write for the same scope. Store failures are swallowed: this is
// a recovery cache, not a system of record.
type AutosaveManager struct {
	store DraftStore
	quiet time.Duration
	sched Scheduler
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingWrite
	closed  bool
}

type pendingWrite struct {
	timer Timer
}

// Option configures an AutosaveManager.
type Option func(*AutosaveManager)

// WithQuietInterval overrides the debounce quiet interval.
func WithQuietInterval(d time.Duration) Option {
	return func(m *AutosaveManager) { m.quiet = d }
}

// WithScheduler substitutes the timer implementation.
func WithScheduler(s Scheduler) Option {
	return func(m *AutosaveManager) { m.sched = s }
}

// WithClock substitutes the time source used for lastSaved stamps.
func WithClock(now func() time.Time) Option {
	return func(m *AutosaveManager) { m.now = now }
}

// NewAutosaveManager creates a manager with a 1s quiet interval by default.
func NewAutosaveManager(store DraftStore, opts ...Option) *AutosaveManager {
	m := &AutosaveManager{
		store:   store,
		quiet:   time.Second,
		sched:   NewScheduler(),
		now:     time.Now,
		pending: make(map[string]*pendingWrite),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save schedules a debounced write of the draft for (userID, projectID).
// Calling again within the quiet interval cancels the previously scheduled
// write and replaces it, so only the last payload in a burst is persisted.
// Progress is display-only and expected to be clamped by the caller.
func (m *AutosaveManager) Save(userID, projectID, method string, data map[string]interface{}, progress float64) {
	key := scopeKey(userID, projectID)

	draft := &domain.Draft{
		Method:   method,
		Data:     data,
		Progress: progress,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	if prev, ok := m.pending[key]; ok {
		prev.timer.Stop()
	}

	pw := &pendingWrite{}
	pw.timer = m.sched.AfterFunc(m.quiet, func() {
		m.flush(key, userID, projectID, pw, draft)
	})
	m.pending[key] = pw
}

// flush performs the actual store write once the quiet interval has elapsed.
func (m *AutosaveManager) flush(key, userID, projectID string, pw *pendingWrite, draft *domain.Draft) {
	m.mu.Lock()
	if m.pending[key] != pw {
		// Superseded or discarded after the timer fired; drop the write.
		m.mu.Unlock()
		return
	}
	delete(m.pending, key)
	m.mu.Unlock()

	draft.LastSaved = m.now()

	if err := m.store.Save(context.Background(), userID, projectID, draft); err != nil {
		// Best-effort cache: the in-memory state is still correct, the user
		// just loses crash recovery for this burst.
		recordDraftWriteError()
		log.Printf("[warn] draft autosave failed user=%s project=%s: %v", userID, projectID, err)
		return
	}
	recordDraftWrite()
}

// Saving reports whether a debounced write is pending for the scope, for the
// "auto-saving..." indicator.
func (m *AutosaveManager) Saving(userID, projectID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pending[scopeKey(userID, projectID)]
	return ok
}

// Load returns the recoverable draft for the scope, or nil when there is
// none. Corrupt or unreadable records are deleted by the store and degrade to
// nil; no failure on this path reaches the caller.
func (m *AutosaveManager) Load(ctx context.Context, userID, projectID string) *domain.Draft {
	d, err := m.store.Load(ctx, userID, projectID)
	if err != nil {
		if err != domain.ErrDraftNotFound {
			log.Printf("[warn] draft load failed user=%s project=%s: %v", userID, projectID, err)
		}
		return nil
	}
	return d
}

// Discard cancels any pending write for the scope and deletes the stored
// draft. It is idempotent and must be called after the entity is successfully
// created server-side, or on an explicit "start fresh".
func (m *AutosaveManager) Discard(ctx context.Context, userID, projectID string) {
	key := scopeKey(userID, projectID)

	m.mu.Lock()
	if pw, ok := m.pending[key]; ok {
		pw.timer.Stop()
		delete(m.pending, key)
	}
	m.mu.Unlock()

	if err := m.store.Discard(ctx, userID, projectID); err != nil {
		log.Printf("[warn] draft discard failed user=%s project=%s: %v", userID, projectID, err)
	}
}

// Close cancels all pending writes. Used on shutdown so a debounced write
// never races service teardown.
func (m *AutosaveManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for key, pw := range m.pending {
		pw.timer.Stop()
		delete(m.pending, key)
	}
}

func scopeKey(userID, projectID string) string {
	return userID + "/" + projectID
}
