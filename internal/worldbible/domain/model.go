package domain

import (
	"errors"
	"time"
)

// Entity is one world-bible record. All entity types share a shape: a name
// plus a type-specific JSON payload validated only at the edges, so the
// creation wizards can stay schema-light.
type Entity struct {
	ID         string                 `json:"id"`
	ProjectID  string                 `json:"project_id"`
	EntityType string                 `json:"entity_type"`
	Name       string                 `json:"name"`
	Data       map[string]interface{} `json:"data"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// World-bible entity types.
const (
	TypeFaction       = "faction"
	TypeLocation      = "location"
	TypeTimelineEvent = "timeline-event"
	TypeMagicSystem   = "magic-system"
	TypeCreature      = "creature"
)

var (
	ErrEntityNotFound    = errors.New("world entity not found")
	ErrUnknownEntityType = errors.New("unknown entity type")
)

func IsValidType(entityType string) bool {
	switch entityType {
	case TypeFaction, TypeLocation, TypeTimelineEvent, TypeMagicSystem, TypeCreature:
		return true
	}
	return false
}
