package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fablecraft/fablecraft-backend/internal/characters/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CharacterRepository handles PostgreSQL operations for characters
type CharacterRepository struct {
	db *sql.DB
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character for a project
func (r *CharacterRepository) Create(ch *domain.Character) error {
	if ch.ID == "" {
		ch.ID = uuid.New().String()
	}
	if ch.Tags == nil {
		ch.Tags = []string{}
	}

	detailsJSON, err := json.Marshal(ch.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	query := `
		INSERT INTO characters (
			id, project_id, name, role, one_line, description, tags, details, portrait_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, nullif($9,''))
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(
		query,
		ch.ID,
		ch.ProjectID,
		ch.Name,
		ch.Role,
		ch.OneLine,
		ch.Description,
		pq.Array(ch.Tags),
		detailsJSON,
		ch.PortraitURL,
	).Scan(&ch.CreatedAt, &ch.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// GetByID retrieves a character by its ID
func (r *CharacterRepository) GetByID(id string) (*domain.Character, error) {
	query := `
		SELECT id, project_id, name, role, one_line, description, tags, details,
		       coalesce(portrait_url,''), created_at, updated_at
		FROM characters
		WHERE id = $1
	`

	ch, err := scanCharacter(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCharacterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return ch, nil
}

// ListByProject retrieves all characters of a project
func (r *CharacterRepository) ListByProject(projectID string) ([]domain.Character, error) {
	query := `
		SELECT id, project_id, name, role, one_line, description, tags, details,
		       coalesce(portrait_url,''), created_at, updated_at
		FROM characters
		WHERE project_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Character, 0, 16)
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		out = append(out, *ch)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a character
func (r *CharacterRepository) Update(ch *domain.Character) error {
	if ch.Tags == nil {
		ch.Tags = []string{}
	}

	detailsJSON, err := json.Marshal(ch.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	query := `
		UPDATE characters
		SET name = $2, role = $3, one_line = $4, description = $5,
		    tags = $6, details = $7, portrait_url = nullif($8,''), updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(
		query,
		ch.ID,
		ch.Name,
		ch.Role,
		ch.OneLine,
		ch.Description,
		pq.Array(ch.Tags),
		detailsJSON,
		ch.PortraitURL,
	).Scan(&ch.CreatedAt, &ch.UpdatedAt)

	if err == sql.ErrNoRows {
		return domain.ErrCharacterNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	return nil
}

// Delete removes a character
func (r *CharacterRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if n == 0 {
		return domain.ErrCharacterNotFound
	}

	return nil
}

// SetPortraitURL records the stored portrait location for a character
func (r *CharacterRepository) SetPortraitURL(id, url string) error {
	res, err := r.db.Exec(
		`UPDATE characters SET portrait_url = $2, updated_at = NOW() WHERE id = $1`,
		id, url,
	)
	if err != nil {
		return fmt.Errorf("failed to set portrait url: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set portrait url: %w", err)
	}
	if n == 0 {
		return domain.ErrCharacterNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var ch domain.Character
	var detailsJSON []byte
	var tags pq.StringArray

	err := row.Scan(
		&ch.ID,
		&ch.ProjectID,
		&ch.Name,
		&ch.Role,
		&ch.OneLine,
		&ch.Description,
		&tags,
		&detailsJSON,
		&ch.PortraitURL,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	ch.Tags = []string(tags)
	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &ch.Details); err != nil {
			ch.Details = map[string]interface{}{}
		}
	}
	if ch.Details == nil {
		ch.Details = map[string]interface{}{}
	}

	return &ch, nil
}
