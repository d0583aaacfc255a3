package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
	"github.com/fablecraft/fablecraft-backend/internal/drafts/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	active := !t.stopped
	t.stopped = true
	return active
}

// fakeScheduler collects timers and fires them on demand, so debounce
// behavior is tested without wall-clock waits.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) service.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs every timer that has not been stopped.
func (s *fakeScheduler) fire() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()

	for _, t := range timers {
		t.mu.Lock()
		skip := t.stopped
		t.stopped = true
		t.mu.Unlock()
		if !skip {
			t.f()
		}
	}
}

type savedCall struct {
	userID    string
	projectID string
	draft     domain.Draft
}

type fakeStore struct {
	mu       sync.Mutex
	saves    []savedCall
	discards int
	saveErr  error
}

func (s *fakeStore) Save(ctx context.Context, userID, projectID string, d *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, savedCall{userID: userID, projectID: projectID, draft: *d})
	return nil
}

func (s *fakeStore) Load(ctx context.Context, userID, projectID string) (*domain.Draft, error) {
	return nil, domain.ErrDraftNotFound
}

func (s *fakeStore) Discard(ctx context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discards++
	return nil
}

func (s *fakeStore) savedCalls() []savedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]savedCall, len(s.saves))
	copy(out, s.saves)
	return out
}

func newTestManager(t *testing.T) (*service.AutosaveManager, *fakeStore, *fakeScheduler) {
	t.Helper()
	store := &fakeStore{}
	sched := &fakeScheduler{}
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := service.NewAutosaveManager(store,
		service.WithScheduler(sched),
		service.WithClock(func() time.Time { return stamp }),
	)
	return mgr, store, sched
}

func TestAutosave_BurstCollapsesToOneWrite(t *testing.T) {
	mgr, store, sched := newTestManager(t)
	defer mgr.Close()

	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{"name": "A"}, 10)
	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{"name": "Ar"}, 15)
	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{"name": "Aria"}, 20)

	sched.fire()

	saves := store.savedCalls()
	require.Len(t, saves, 1, "a burst must collapse to one write")
	assert.Equal(t, "u1", saves[0].userID)
	assert.Equal(t, "p1", saves[0].projectID)
	assert.Equal(t, "Aria", saves[0].draft.Data["name"])
	assert.Equal(t, float64(20), saves[0].draft.Progress)
	assert.False(t, saves[0].draft.LastSaved.IsZero())
}

func TestAutosave_SavingFlagLifecycle(t *testing.T) {
	mgr, _, sched := newTestManager(t)
	defer mgr.Close()

	assert.False(t, mgr.Saving("u1", "p1"))

	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{}, 0)
	assert.True(t, mgr.Saving("u1", "p1"))
	assert.False(t, mgr.Saving("u1", "p2"), "scopes are independent")

	sched.fire()
	assert.False(t, mgr.Saving("u1", "p1"))
}

func TestAutosave_ScopesDoNotInterfere(t *testing.T) {
	mgr, store, sched := newTestManager(t)
	defer mgr.Close()

	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{"name": "A"}, 1)
	mgr.Save("u1", "p2", domain.MethodAI, map[string]interface{}{"name": "B"}, 2)
	mgr.Save("u2", "p1", domain.MethodUpload, map[string]interface{}{"name": "C"}, 3)

	sched.fire()

	require.Len(t, store.savedCalls(), 3)
}

func TestAutosave_DiscardCancelsPendingWrite(t *testing.T) {
	mgr, store, sched := newTestManager(t)
	defer mgr.Close()

	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{}, 0)
	mgr.Discard(context.Background(), "u1", "p1")

	assert.False(t, mgr.Saving("u1", "p1"))

	sched.fire()
	assert.Empty(t, store.savedCalls(), "discard must cancel the scheduled write")
	assert.Equal(t, 1, store.discards)

	// Idempotent.
	mgr.Discard(context.Background(), "u1", "p1")
	assert.Equal(t, 2, store.discards)
}

func TestAutosave_CloseCancelsAllPending(t *testing.T) {
	mgr, store, sched := newTestManager(t)

	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{}, 0)
	mgr.Save("u2", "p2", domain.MethodAI, map[string]interface{}{}, 0)
	mgr.Close()

	sched.fire()
	assert.Empty(t, store.savedCalls())

	// Saves after Close are ignored.
	mgr.Save("u3", "p3", domain.MethodGuided, map[string]interface{}{}, 0)
	assert.False(t, mgr.Saving("u3", "p3"))
}

func TestAutosave_StoreFailureIsSwallowed(t *testing.T) {
	mgr, store, sched := newTestManager(t)
	defer mgr.Close()
	service.ResetMetrics()

	store.saveErr = errors.New("redis down")
	mgr.Save("u1", "p1", domain.MethodGuided, map[string]interface{}{}, 0)
	sched.fire()

	assert.False(t, mgr.Saving("u1", "p1"))
	m := service.GetMetrics()
	assert.Equal(t, int64(1), m.DraftWriteErrors)
}

func TestAutosave_LastSavedUsesInjectedClock(t *testing.T) {
	store := &fakeStore{}
	sched := &fakeScheduler{}
	stamp := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	mgr := service.NewAutosaveManager(store,
		service.WithScheduler(sched),
		service.WithClock(func() time.Time { return stamp }),
	)
	defer mgr.Close()

	mgr.Save("u1", "p1", domain.MethodTemplate, map[string]interface{}{}, 50)
	sched.fire()

	saves := store.savedCalls()
	require.Len(t, saves, 1)
	assert.Equal(t, stamp, saves[0].draft.LastSaved)
}

func TestAutosave_LoadDegradesToNil(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	defer mgr.Close()

	assert.Nil(t, mgr.Load(context.Background(), "u1", "p1"))
}
