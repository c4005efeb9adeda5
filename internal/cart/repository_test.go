package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_UpsertItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO cart_items .* ON CONFLICT \(user_id, product_id\)`).
			WithArgs(sqlmock.AnyArg(), "u1", "p1", 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertItem(ctx, AddItemParams{UserID: "u1", ProductID: "p1", Quantity: 2})
		assert.NoError(t, err)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO cart_items`).
			WillReturnError(errors.New("db down"))

		err := repo.UpsertItem(ctx, AddItemParams{UserID: "u1", ProductID: "p1", Quantity: 1})
		assert.Error(t, err)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM cart_items`).
			WithArgs("u1", "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemoveItem(ctx, "u1", "p1"))
	})

	t.Run("AbsentProductIsNoOp", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM cart_items`).
			WithArgs("u1", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.RemoveItem(ctx, "u1", "ghost"))
	})
}

func TestRepository_Clear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.Clear(context.Background(), "u1"))
}

func TestRepository_GetItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	columns := []string{
		"id", "user_id", "quantity", "created_at", "updated_at",
		"product_id", "seller_id", "name", "price", "description", "category",
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("c1", "u1", 2, time.Now(), time.Now(), "p1", "s1", "Lamp", 120.0, "warm", "electronics")

		mock.ExpectQuery(`SELECT .* FROM cart_items c JOIN products p`).
			WithArgs("u1").
			WillReturnRows(rows)

		items, err := repo.GetItems(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].Product.ID)
		assert.Equal(t, 120.0, items[0].Product.Price)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM cart_items c JOIN products p`).
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows(columns))

		items, err := repo.GetItems(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
