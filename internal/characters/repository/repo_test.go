package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fablecraft/fablecraft-backend/internal/characters/domain"
	"github.com/fablecraft/fablecraft-backend/internal/characters/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCharacterRepo(t *testing.T) (*repository.CharacterRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewCharacterRepository(db)
	return repo, mock, db
}

func characterColumns() []string {
	return []string{
		"id", "project_id", "name", "role", "one_line", "description",
		"tags", "details", "portrait_url", "created_at", "updated_at",
	}
}

func TestCharacterRepository_Create(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	t.Run("creates character and assigns id", func(t *testing.T) {
		ch := &domain.Character{
			ProjectID:   "fable-00001-0001",
			Name:        "Aria Voss",
			Role:        "protagonist",
			OneLine:     "A cartographer who maps places that do not exist yet",
			Description: "Stubborn, curious, afraid of open water.",
			Tags:        []string{"pov", "book-1"},
			Details: map[string]interface{}{
				"age":        29,
				"archetype":  "explorer",
				"motivation": "finish her mother's unfinished atlas",
			},
		}

		mock.ExpectQuery(`INSERT INTO characters`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"fable-00001-0001",
				"Aria Voss",
				"protagonist",
				ch.OneLine,
				ch.Description,
				sqlmock.AnyArg(), // tags array
				sqlmock.AnyArg(), // details JSONB
				"",               // portrait_url
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		err := repo.Create(ch)
		require.NoError(t, err)
		assert.NotEmpty(t, ch.ID)
		assert.False(t, ch.CreatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps caller-provided id", func(t *testing.T) {
		ch := &domain.Character{
			ID:        "existing-uuid",
			ProjectID: "fable-00001-0001",
			Name:      "Kel",
		}

		mock.ExpectQuery(`INSERT INTO characters`).
			WithArgs(
				"existing-uuid",
				"fable-00001-0001",
				"Kel",
				"", "", "",
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
				"",
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		require.NoError(t, repo.Create(ch))
		assert.Equal(t, "existing-uuid", ch.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCharacterRepository_GetByID(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	t.Run("returns character with parsed details", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT .+ FROM characters`).
			WithArgs("char-1").
			WillReturnRows(sqlmock.NewRows(characterColumns()).
				AddRow("char-1", "fable-00001-0001", "Aria", "protagonist",
					"one line", "desc", "{pov,book-1}", []byte(`{"age":29}`),
					"https://cdn.example.com/portraits/char-1.png", now, now))

		ch, err := repo.GetByID("char-1")
		require.NoError(t, err)
		assert.Equal(t, "Aria", ch.Name)
		assert.Equal(t, []string{"pov", "book-1"}, ch.Tags)
		assert.Equal(t, float64(29), ch.Details["age"])
		assert.Equal(t, "https://cdn.example.com/portraits/char-1.png", ch.PortraitURL)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM characters`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCharacterRepository_ListByProject(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM characters`).
		WithArgs("fable-00001-0001").
		WillReturnRows(sqlmock.NewRows(characterColumns()).
			AddRow("c1", "fable-00001-0001", "Aria", "protagonist", "", "", "{}", []byte(`{}`), "", now, now).
			AddRow("c2", "fable-00001-0001", "Kel", "antagonist", "", "", "{}", nil, "", now, now))

	chars, err := repo.ListByProject("fable-00001-0001")
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, "Aria", chars[0].Name)
	assert.NotNil(t, chars[1].Details, "details default to an empty map")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCharacterRepository_Update(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	t.Run("updates mutable fields", func(t *testing.T) {
		ch := &domain.Character{
			ID:   "char-1",
			Name: "Aria Voss",
			Role: "deuteragonist",
			Tags: []string{"pov"},
		}

		mock.ExpectQuery(`UPDATE characters`).
			WithArgs("char-1", "Aria Voss", "deuteragonist", "", "",
				sqlmock.AnyArg(), sqlmock.AnyArg(), "").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now().Add(-time.Hour), time.Now()))

		require.NoError(t, repo.Update(ch))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing character", func(t *testing.T) {
		ch := &domain.Character{ID: "missing"}

		mock.ExpectQuery(`UPDATE characters`).
			WillReturnError(sql.ErrNoRows)

		err := repo.Update(ch)
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCharacterRepository_Delete(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	t.Run("deletes existing character", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM characters`).
			WithArgs("char-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete("char-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing character", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM characters`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete("missing")
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCharacterRepository_SetPortraitURL(t *testing.T) {
	repo, mock, db := setupCharacterRepo(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE characters SET portrait_url`).
		WithArgs("char-1", "https://cdn.example.com/portraits/char-1.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetPortraitURL("char-1", "https://cdn.example.com/portraits/char-1.png"))
	require.NoError(t, mock.ExpectationsWereMet())
}
