package cart

import (
	"context"
	"database/sql"

	"campusmart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// UpsertItem atomically inserts a cart line or accumulates quantity
	// onto an existing one. A single statement, so concurrent adds for
	// the same (user, product) cannot lose an update.
	UpsertItem(ctx context.Context, params AddItemParams) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	GetItems(ctx context.Context, userID string) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertItem(ctx context.Context, params AddItemParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
	`, uuid.NewString(), params.UserID, params.ProductID, params.Quantity)

	if err != nil {
		log.Error("failed to upsert cart item", zap.Error(err))
		return err
	}

	log.Debug("cart item upserted", zap.Int("quantity", params.Quantity))
	return nil
}

// RemoveItem deletes a cart line. Removing an absent product is a no-op.
func (r *repository) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

// Clear empties the user's cart. Clearing an empty cart is a no-op.
func (r *repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *repository) GetItems(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.quantity, c.created_at, c.updated_at,
		       p.id, p.seller_id, p.name, p.price, p.description, p.category
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
			&it.Product.ID, &it.Product.SellerID, &it.Product.Name,
			&it.Product.Price, &it.Product.Description, &it.Product.Category,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
