package domain

import (
	"errors"
	"time"
)

// Character is a world-bible character. The structured columns cover what
// list views and generation context need; everything else the wizards
// collect (the long-tail field set) lives in Details.
type Character struct {
	ID          string                 `json:"id"`
	ProjectID   string                 `json:"project_id"`
	Name        string                 `json:"name"`
	Role        string                 `json:"role"`
	OneLine     string                 `json:"one_line"`
	Description string                 `json:"description"`
	Tags        []string               `json:"tags"`
	Details     map[string]interface{} `json:"details"`
	PortraitURL string                 `json:"portrait_url,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

var ErrCharacterNotFound = errors.New("character not found")
