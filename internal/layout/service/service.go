package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fablecraft/fablecraft-backend/internal/layout/domain"
)

// LayoutStore is the persistence substrate for orderings.
type LayoutStore interface {
	Load(ctx context.Context, userID, group string) ([]domain.Item, bool, error)
	Save(ctx context.Context, userID, group string, items []domain.Item) error
}

// Service applies the dashboard customization rules: default seeding, swap
// reordering, and edit-mode gating. Reorders are only honored while the user
// has explicitly unlocked the group; outside edit mode the operation is
// refused, not merely hidden.
type Service struct {
	store LayoutStore

	mu       sync.Mutex
	unlocked map[string]bool
}

func NewService(store LayoutStore) *Service {
	return &Service{
		store:    store,
		unlocked: make(map[string]bool),
	}
}

// Load returns the user's ordering for a group, sorted by order ascending.
// Without a stored record the hard-coded defaults are returned as-is and
// nothing is written. A stored record is reconciled against the current item
// set: ids no longer in code are dropped, newly introduced ids appended in
// default position, and orders renumbered to stay a contiguous permutation.
func (s *Service) Load(ctx context.Context, userID, group string) ([]domain.Item, error) {
	defaults := domain.DefaultItems(group)
	if defaults == nil {
		return nil, domain.ErrUnknownGroup
	}

	stored, found, err := s.store.Load(ctx, userID, group)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaults, nil
	}

	items, changed := reconcile(stored, defaults)
	if changed {
		if err := s.store.Save(ctx, userID, group, items); err != nil {
			return nil, err
		}
	}

	sortByOrder(items)
	return items, nil
}

// Reorder swaps the order values of the dragged and target items and
// persists the result immediately. Unknown ids or dragged == target are
// no-ops: the stored ordering is left untouched. The group must be unlocked.
func (s *Service) Reorder(ctx context.Context, userID, group, draggedID, targetID string) ([]domain.Item, error) {
	if !domain.IsValidGroup(group) {
		return nil, domain.ErrUnknownGroup
	}
	if !s.IsUnlocked(userID, group) {
		return nil, domain.ErrLayoutLocked
	}

	items, err := s.Load(ctx, userID, group)
	if err != nil {
		return nil, err
	}

	if draggedID == targetID {
		return items, nil
	}

	di := indexOf(items, draggedID)
	ti := indexOf(items, targetID)
	if di < 0 || ti < 0 {
		return items, nil
	}

	// Positional swap of the two order values only. Items in between keep
	// their order: each drag gesture targets exactly one drop slot, so an
	// insertion-style shift would change regions the user never touched.
	items[di].Order, items[ti].Order = items[ti].Order, items[di].Order

	if err := s.store.Save(ctx, userID, group, items); err != nil {
		return nil, fmt.Errorf("failed to persist reorder: %w", err)
	}

	sortByOrder(items)
	return items, nil
}

// Unlock enters edit mode for (userID, group).
func (s *Service) Unlock(userID, group string) error {
	if !domain.IsValidGroup(group) {
		return domain.ErrUnknownGroup
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked[modeKey(userID, group)] = true
	return nil
}

// Lock leaves edit mode. Groups start locked.
func (s *Service) Lock(userID, group string) error {
	if !domain.IsValidGroup(group) {
		return domain.ErrUnknownGroup
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unlocked, modeKey(userID, group))
	return nil
}

func (s *Service) IsUnlocked(userID, group string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked[modeKey(userID, group)]
}

// reconcile merges a stored ordering with the item set currently in code.
// Surviving items keep their stored relative order; new items are appended in
// default relative order; orders are renumbered to 0..N-1.
func reconcile(stored, defaults []domain.Item) ([]domain.Item, bool) {
	known := make(map[string]domain.Item, len(defaults))
	for _, d := range defaults {
		known[d.ID] = d
	}

	kept := make([]domain.Item, 0, len(defaults))
	seen := make(map[string]bool, len(stored))
	dropped := false
	for _, it := range stored {
		d, ok := known[it.ID]
		if !ok || seen[it.ID] {
			dropped = true
			continue
		}
		seen[it.ID] = true
		// Display names come from code, not from the stored record.
		it.DisplayName = d.DisplayName
		kept = append(kept, it)
	}

	sortByOrder(kept)

	added := false
	for _, d := range defaults {
		if !seen[d.ID] {
			kept = append(kept, d)
			added = true
		}
	}

	renumbered := false
	for i := range kept {
		if kept[i].Order != i {
			kept[i].Order = i
			renumbered = true
		}
	}

	return kept, dropped || added || renumbered
}

func sortByOrder(items []domain.Item) {
	// Ties are not expected, but a stable sort preserves relative order if
	// they ever occur.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

func indexOf(items []domain.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func modeKey(userID, group string) string {
	return userID + "/" + group
}
