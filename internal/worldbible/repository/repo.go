package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fablecraft/fablecraft-backend/internal/worldbible/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, e *domain.Entity) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	dataJSON, err := json.Marshal(e.Data)
	if err != nil {
		dataJSON = []byte("{}")
	}

	const q = `
insert into world_entities (id, project_id, entity_type, name, data)
values ($1, $2, $3, $4, $5)
returning created_at, updated_at;
`
	err = r.db.QueryRow(ctx, q, e.ID, e.ProjectID, e.EntityType, e.Name, dataJSON).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	const q = `
select id, project_id, entity_type, name, data, created_at, updated_at
from world_entities
where id = $1;
`
	var e domain.Entity
	var dataJSON []byte
	err := r.db.QueryRow(ctx, q, id).
		Scan(&e.ID, &e.ProjectID, &e.EntityType, &e.Name, &dataJSON, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &e.Data); err != nil {
		e.Data = map[string]interface{}{}
	}
	return &e, nil
}

func (r *Repo) ListByProject(ctx context.Context, projectID, entityType string) ([]domain.Entity, error) {
	const q = `
select id, project_id, entity_type, name, data, created_at, updated_at
from world_entities
where project_id = $1 and entity_type = $2
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Entity, 0, 16)
	for rows.Next() {
		var e domain.Entity
		var dataJSON []byte
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.EntityType, &e.Name, &dataJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(dataJSON, &e.Data); err != nil {
			e.Data = map[string]interface{}{}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, e *domain.Entity) error {
	dataJSON, err := json.Marshal(e.Data)
	if err != nil {
		dataJSON = []byte("{}")
	}

	const q = `
update world_entities
set name = $2, data = $3, updated_at = now()
where id = $1
returning created_at, updated_at;
`
	err = r.db.QueryRow(ctx, q, e.ID, e.Name, dataJSON).Scan(&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `delete from world_entities where id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}
