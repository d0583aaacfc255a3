package domain

import "errors"

// Item is one reorderable UI region. Order values within a group are always
// a contiguous permutation of 0..N-1.
type Item struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Order       int    `json:"order"`
}

// Layout groups, one per independently orderable collection of UI regions.
const (
	GroupDashboardSections = "dashboard-sections"
	GroupDashboardWidgets  = "dashboard-widgets"
)

var (
	ErrUnknownGroup = errors.New("unknown layout group")
	ErrLayoutLocked = errors.New("layout is locked")
)

var defaultSections = []Item{
	{ID: "hero", DisplayName: "Welcome", Order: 0},
	{ID: "project-grid", DisplayName: "Projects", Order: 1},
	{ID: "widget-grid", DisplayName: "Widgets", Order: 2},
	{ID: "recent-activity", DisplayName: "Recent Activity", Order: 3},
}

var defaultWidgets = []Item{
	{ID: "daily-inspiration", DisplayName: "Daily Inspiration", Order: 0},
	{ID: "recent-project", DisplayName: "Recent Project", Order: 1},
	{ID: "writing-progress", DisplayName: "Writing Progress", Order: 2},
	{ID: "quick-tasks", DisplayName: "Quick Tasks", Order: 3},
}

// DefaultItems returns a fresh copy of the hard-coded default ordering for a
// group, or nil for an unknown group.
func DefaultItems(group string) []Item {
	var src []Item
	switch group {
	case GroupDashboardSections:
		src = defaultSections
	case GroupDashboardWidgets:
		src = defaultWidgets
	default:
		return nil
	}

	out := make([]Item, len(src))
	copy(out, src)
	return out
}

func IsValidGroup(group string) bool {
	return group == GroupDashboardSections || group == GroupDashboardWidgets
}
