package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	PublicID    string    `json:"public_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // novel or screenplay
	Description string    `json:"description"`
	Synopsis    string    `json:"synopsis"`
	Genre       []string  `json:"genre"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProject carries the PATCH-able fields; nil means "leave unchanged".
type UpdateProject struct {
	Name        *string
	Description *string
	Synopsis    *string
	Genre       []string
}

func (r *Repo) Create(ctx context.Context, userDBID, name, projectType string, genre []string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	if genre == nil {
		genre = []string{}
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("fable")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, user_id, name, type, genre)
values ($1, $2::uuid, $3, $4, $5)
returning public_id, name, type, coalesce(description,''), coalesce(synopsis,''), genre, created_at, updated_at;
`
		var p Project
		err = r.db.QueryRow(ctx, q, publicID, userDBID, name, projectType, genre).
			Scan(&p.PublicID, &p.Name, &p.Type, &p.Description, &p.Synopsis, &p.Genre, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	const q = `
select public_id, name, type, coalesce(description,''), coalesce(synopsis,''), genre, created_at, updated_at
from projects
where user_id = $1::uuid and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.PublicID, &p.Name, &p.Type, &p.Description, &p.Synopsis, &p.Genre, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Project, error) {
	const q = `
select public_id, name, type, coalesce(description,''), coalesce(synopsis,''), genre, created_at, updated_at
from projects
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID).
		Scan(&p.PublicID, &p.Name, &p.Type, &p.Description, &p.Synopsis, &p.Genre, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, userDBID, publicID string, upd UpdateProject) (*Project, error) {
	const q = `
update projects
set name = coalesce($3, name),
    description = coalesce($4, description),
    synopsis = coalesce($5, synopsis),
    genre = coalesce($6, genre),
    updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null
returning public_id, name, type, coalesce(description,''), coalesce(synopsis,''), genre, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID, upd.Name, upd.Description, upd.Synopsis, upd.Genre).
		Scan(&p.PublicID, &p.Name, &p.Type, &p.Description, &p.Synopsis, &p.Genre, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
