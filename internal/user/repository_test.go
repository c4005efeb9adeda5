package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusmart-be/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumns() []string {
	return []string{"id", "first_name", "last_name", "email", "age", "contact_number", "password", "created_at", "updated_at"}
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	input := RegisterInput{
		FirstName: "Alice",
		LastName:  "Kumar",
		Email:     "alice@iiit.ac.in",
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alice", "Kumar", "alice@iiit.ac.in", nil, nil, "hash", time.Now(), time.Now())

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Alice", "Kumar", "alice@iiit.ac.in", nil, nil, "hash").
			WillReturnRows(rows)

		u, err := repo.Create(ctx, input, "hash")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "alice@iiit.ac.in", u.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, input, "hash")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("db down"))

		_, err := repo.Create(ctx, input, "hash")
		assert.Error(t, err)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alice", "Kumar", "alice@iiit.ac.in", nil, nil, "hash", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("alice@iiit.ac.in").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "alice@iiit.ac.in")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("ghost@iiit.ac.in").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		_, err := repo.FindByEmail(ctx, "ghost@iiit.ac.in")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alice", "Kumar", "alice@iiit.ac.in", nil, nil, "hash", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs("u1").
			WillReturnRows(rows)

		u, err := repo.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice@iiit.ac.in", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		first := "Alicia"
		rows := sqlmock.NewRows(userColumns()).
			AddRow("u1", "Alicia", "Kumar", "alice@iiit.ac.in", nil, nil, "hash", time.Now(), time.Now())

		mock.ExpectQuery(`UPDATE users`).
			WithArgs(&first, nil, nil, nil, nil, "u1").
			WillReturnRows(rows)

		u, err := repo.UpdateProfile(ctx, "u1", UpdateProfileParams{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", u.FirstName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users`).
			WillReturnRows(sqlmock.NewRows(userColumns()))

		_, err := repo.UpdateProfile(ctx, "missing", UpdateProfileParams{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE users`).
			WillReturnError(&pq.Error{Code: "23505"})

		taken := "taken@iiit.ac.in"
		_, err := repo.UpdateProfile(ctx, "u1", UpdateProfileParams{Email: &taken})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}
