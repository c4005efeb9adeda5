package order

import (
	"context"
	"database/sql"
	"fmt"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrdersTx persists all drafts and clears the buyer's cart in
	// one transaction. Either every order exists and the cart is empty,
	// or nothing changed, so a retried checkout cannot duplicate orders.
	CreateOrdersTx(ctx context.Context, buyerID string, drafts []draft) ([]Order, error)
	GetByID(ctx context.Context, orderID string) (Order, error)
	UpdateOTPHash(ctx context.Context, orderID, hash string) error
	// MarkCompleted performs the terminal transition as a single
	// conditional write. Returns false when the order was already
	// Completed (a concurrent attempt won).
	MarkCompleted(ctx context.Context, orderID string) (bool, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Order, error)
	ListToDeliver(ctx context.Context, sellerID string) ([]Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrdersTx(ctx context.Context, buyerID string, drafts []draft) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrdersTx"),
		zap.String("buyer_id", buyerID),
		zap.Int("order_count", len(drafts)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	orders := make([]Order, 0, len(drafts))
	for _, d := range drafts {
		o := Order{
			ID:            uuid.NewString(),
			TransactionID: d.TransactionID,
			BuyerID:       buyerID,
			SellerID:      d.SellerID,
			Items:         []LineItem{d.Item},
			TotalPrice:    d.TotalPrice,
			Status:        StatusPending,
			OTPHash:       d.OTPHash,
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (id, transaction_id, buyer_id, seller_id, total_price, status, otp_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`, o.ID, o.TransactionID, o.BuyerID, o.SellerID, o.TotalPrice, o.Status, o.OTPHash).
			Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			log.Error("failed to insert order", zap.Error(err))
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), o.ID, d.Item.ProductID, d.Item.ProductName, d.Item.Quantity, d.Item.PriceAtPurchase)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}

		orders = append(orders, o)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, buyerID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("checkout committed")
	return orders, nil
}

const orderSelect = `
	SELECT o.id, o.transaction_id, o.buyer_id,
	       COALESCE(b.first_name || ' ' || b.last_name, ''),
	       o.seller_id, o.total_price, o.status, o.otp_hash,
	       o.created_at, o.updated_at,
	       i.product_id, i.product_name, i.quantity, i.price_at_purchase
	FROM orders o
	JOIN order_items i ON i.order_id = o.id
	LEFT JOIN users b ON o.buyer_id = b.id
`

func (r *repository) GetByID(ctx context.Context, orderID string) (Order, error) {
	orders, err := r.queryOrders(ctx, orderSelect+` WHERE o.id = $1`, orderID)
	if err != nil {
		return Order{}, err
	}
	if len(orders) == 0 {
		return Order{}, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	return orders[0], nil
}

func (r *repository) UpdateOTPHash(ctx context.Context, orderID, hash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET otp_hash = $1, updated_at = NOW()
		WHERE id = $2
	`, hash, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}

func (r *repository) MarkCompleted(ctx context.Context, orderID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $1
	`, StatusCompleted, orderID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	return r.queryOrders(ctx, orderSelect+`
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC, o.id
	`, buyerID)
}

func (r *repository) ListBySeller(ctx context.Context, sellerID string) ([]Order, error) {
	return r.queryOrders(ctx, orderSelect+`
		WHERE o.seller_id = $1
		ORDER BY o.created_at DESC, o.id
	`, sellerID)
}

func (r *repository) ListToDeliver(ctx context.Context, sellerID string) ([]Order, error) {
	return r.queryOrders(ctx, orderSelect+`
		WHERE o.seller_id = $1 AND o.status IN ($2, $3)
		ORDER BY o.created_at DESC, o.id
	`, sellerID, StatusPending, StatusProcessed)
}

// queryOrders scans joined order/item rows and folds consecutive rows of
// the same order into one Order with multiple line items.
func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		var item LineItem
		if err := rows.Scan(
			&o.ID, &o.TransactionID, &o.BuyerID, &o.BuyerName,
			&o.SellerID, &o.TotalPrice, &o.Status, &o.OTPHash,
			&o.CreatedAt, &o.UpdatedAt,
			&item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtPurchase,
		); err != nil {
			return nil, err
		}

		if n := len(orders); n > 0 && orders[n-1].ID == o.ID {
			orders[n-1].Items = append(orders[n-1].Items, item)
			continue
		}

		o.Items = []LineItem{item}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
