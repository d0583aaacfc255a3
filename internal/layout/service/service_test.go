package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fablecraft/fablecraft-backend/internal/layout/domain"
	"github.com/fablecraft/fablecraft-backend/internal/layout/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	records map[string][]domain.Item
	saves   int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]domain.Item)}
}

func (s *memStore) Load(ctx context.Context, userID, group string) ([]domain.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.records[userID+"/"+group]
	if !ok {
		return nil, false, nil
	}
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out, true, nil
}

func (s *memStore) Save(ctx context.Context, userID, group string, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.Item, len(items))
	copy(stored, items)
	s.records[userID+"/"+group] = stored
	s.saves++
	return nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func orderOf(t *testing.T, items []domain.Item, id string) int {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it.Order
		}
	}
	t.Fatalf("item %q not found", id)
	return -1
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestLayout_DefaultsWithoutWriting(t *testing.T) {
	store := newMemStore()
	svc := service.NewService(store)

	items, err := svc.Load(context.Background(), "u1", domain.GroupDashboardSections)
	require.NoError(t, err)

	assert.Equal(t, []string{"hero", "project-grid", "widget-grid", "recent-activity"}, ids(items))
	assert.Equal(t, 0, store.saveCount(), "default fallback must not persist anything")
}

func TestLayout_UnknownGroup(t *testing.T) {
	svc := service.NewService(newMemStore())

	_, err := svc.Load(context.Background(), "u1", "sidebar")
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)

	_, err = svc.Reorder(context.Background(), "u1", "sidebar", "a", "b")
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)
}

func TestLayout_ReorderSwapsOrderValues(t *testing.T) {
	store := newMemStore()
	svc := service.NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Unlock("u1", domain.GroupDashboardSections))

	items, err := svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "widget-grid")
	require.NoError(t, err)

	// Dragged and target exchange order values; everything else stays put.
	assert.Equal(t, 2, orderOf(t, items, "hero"))
	assert.Equal(t, 0, orderOf(t, items, "widget-grid"))
	assert.Equal(t, 1, orderOf(t, items, "project-grid"))
	assert.Equal(t, 3, orderOf(t, items, "recent-activity"))

	assert.Equal(t, []string{"widget-grid", "project-grid", "hero", "recent-activity"}, ids(items))
	assert.Equal(t, 1, store.saveCount(), "reorder persists immediately")
}

func TestLayout_ReorderSurvivesReload(t *testing.T) {
	store := newMemStore()
	svc := service.NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Unlock("u1", domain.GroupDashboardWidgets))
	_, err := svc.Reorder(ctx, "u1", domain.GroupDashboardWidgets, "daily-inspiration", "quick-tasks")
	require.NoError(t, err)

	// A fresh service sees the persisted ordering.
	svc2 := service.NewService(store)
	items, err := svc2.Load(ctx, "u1", domain.GroupDashboardWidgets)
	require.NoError(t, err)
	assert.Equal(t, []string{"quick-tasks", "recent-project", "writing-progress", "daily-inspiration"}, ids(items))
}

func TestLayout_ReorderNoOps(t *testing.T) {
	store := newMemStore()
	svc := service.NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Unlock("u1", domain.GroupDashboardSections))

	t.Run("dragged equals target", func(t *testing.T) {
		items, err := svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "hero")
		require.NoError(t, err)
		assert.Equal(t, []string{"hero", "project-grid", "widget-grid", "recent-activity"}, ids(items))
		assert.Equal(t, 0, store.saveCount(), "no-op must not write")
	})

	t.Run("unknown dragged id", func(t *testing.T) {
		items, err := svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "ghost", "hero")
		require.NoError(t, err)
		assert.Equal(t, []string{"hero", "project-grid", "widget-grid", "recent-activity"}, ids(items))
		assert.Equal(t, 0, store.saveCount())
	})

	t.Run("unknown target id", func(t *testing.T) {
		_, err := svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "ghost")
		require.NoError(t, err)
		assert.Equal(t, 0, store.saveCount())
	})
}

func TestLayout_ReorderRequiresUnlock(t *testing.T) {
	store := newMemStore()
	svc := service.NewService(store)
	ctx := context.Background()

	_, err := svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "widget-grid")
	assert.ErrorIs(t, err, domain.ErrLayoutLocked)
	assert.Equal(t, 0, store.saveCount())

	require.NoError(t, svc.Unlock("u1", domain.GroupDashboardSections))
	_, err = svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "widget-grid")
	require.NoError(t, err)

	// Locking again refuses further reorders.
	require.NoError(t, svc.Lock("u1", domain.GroupDashboardSections))
	_, err = svc.Reorder(ctx, "u1", domain.GroupDashboardSections, "hero", "widget-grid")
	assert.ErrorIs(t, err, domain.ErrLayoutLocked)
}

func TestLayout_UnlockIsPerUserAndGroup(t *testing.T) {
	svc := service.NewService(newMemStore())

	require.NoError(t, svc.Unlock("u1", domain.GroupDashboardSections))

	assert.True(t, svc.IsUnlocked("u1", domain.GroupDashboardSections))
	assert.False(t, svc.IsUnlocked("u1", domain.GroupDashboardWidgets))
	assert.False(t, svc.IsUnlocked("u2", domain.GroupDashboardSections))
}

func TestLayout_ReconcileStaleIDs(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	// A stored record from an older build: one id that no longer exists, one
	// current id missing, custom order for the rest.
	store.records["u1/"+domain.GroupDashboardSections] = []domain.Item{
		{ID: "retired-banner", DisplayName: "Banner", Order: 0},
		{ID: "widget-grid", DisplayName: "Widgets", Order: 1},
		{ID: "hero", DisplayName: "Old Name", Order: 2},
		{ID: "project-grid", DisplayName: "Projects", Order: 3},
	}

	svc := service.NewService(store)
	items, err := svc.Load(ctx, "u1", domain.GroupDashboardSections)
	require.NoError(t, err)

	// Stale id dropped, missing id appended, orders renumbered contiguously.
	assert.Equal(t, []string{"widget-grid", "hero", "project-grid", "recent-activity"}, ids(items))
	for i, it := range items {
		assert.Equal(t, i, it.Order)
	}

	// Display names are refreshed from code.
	for _, it := range items {
		if it.ID == "hero" {
			assert.Equal(t, "Welcome", it.DisplayName)
		}
	}

	// The reconciled ordering was persisted.
	assert.Equal(t, 1, store.saveCount())

	// A second load finds nothing left to fix.
	_, err = svc.Load(ctx, "u1", domain.GroupDashboardSections)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saveCount())
}

func TestLayout_ReconcileDropsDuplicates(t *testing.T) {
	store := newMemStore()
	store.records["u1/"+domain.GroupDashboardWidgets] = []domain.Item{
		{ID: "quick-tasks", Order: 0},
		{ID: "quick-tasks", Order: 1},
		{ID: "daily-inspiration", Order: 2},
		{ID: "recent-project", Order: 3},
		{ID: "writing-progress", Order: 4},
	}

	svc := service.NewService(store)
	items, err := svc.Load(context.Background(), "u1", domain.GroupDashboardWidgets)
	require.NoError(t, err)

	assert.Len(t, items, 4)
	assert.Equal(t, []string{"quick-tasks", "daily-inspiration", "recent-project", "writing-progress"}, ids(items))
}
