package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, sellerID string, input NewProductInput) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, category string) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productSelect = `
	SELECT p.id, p.seller_id, COALESCE(u.first_name || ' ' || u.last_name, 'UNKNOWN'),
	       p.name, p.price, p.description, p.category, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN users u ON p.seller_id = u.id
`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.SellerID, &p.SellerName,
		&p.Name, &p.Price, &p.Description, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *repository) Create(ctx context.Context, sellerID string, input NewProductInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("seller_id", sellerID),
	)

	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, seller_id, name, price, description, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, seller_id, name, price, description, category, created_at, updated_at
	`, uuid.NewString(), sellerID, input.Name, input.Price, input.Description, input.Category).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Description, &p.Category, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	return p, err
}

func (r *repository) List(ctx context.Context, category string) ([]Product, error) {
	where := []string{}
	args := []any{}

	if category != "" {
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)+1))
		args = append(args, category)
	}

	query := productSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY p.created_at DESC`

	return r.queryProducts(ctx, query, args...)
}

func (r *repository) ListBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	return r.queryProducts(ctx, productSelect+` WHERE p.seller_id = $1 ORDER BY p.created_at DESC`, sellerID)
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}
