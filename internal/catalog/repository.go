package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("catalog item not found")
	ErrAlreadyExists = errors.New("catalog item already exists")
)

// Repository persists catalog items in PostgreSQL.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, req ListItemsRequest) ([]Item, int, error)
	Create(ctx context.Context, item Item) error
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Prices travel as text so numeric columns round-trip into decimals without
// float conversion.
const itemColumns = `id, kind, code, name, cost_price::text, sell_price::text, stock, sector, image, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var (
		item       Item
		cost, sell string
	)
	err := row.Scan(&item.ID, &item.Kind, &item.Code, &item.Name, &cost, &sell,
		&item.Stock, &item.Sector, &item.Image, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.CostPrice, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("catalog: parse cost price: %w", err)
	}
	if item.SellPrice, err = decimal.NewFromString(sell); err != nil {
		return nil, fmt.Errorf("catalog: parse sell price: %w", err)
	}
	return &item, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM catalog_items WHERE id = $1`, id)
	return scanItem(row)
}

func (r *repository) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	var conditions []string
	var args []any

	if req.Kind != nil {
		args = append(args, string(*req.Kind))
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if req.Sector != nil && *req.Sector != "" {
		args = append(args, *req.Sector)
		conditions = append(conditions, fmt.Sprintf("sector = $%d", len(args)))
	}
	if req.Search != nil && *req.Search != "" {
		args = append(args, "%"+*req.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	for i, cond := range conditions {
		if i == 0 {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_items `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT %s FROM catalog_items %s ORDER BY name LIMIT $%d OFFSET $%d`,
		itemColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, item Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO catalog_items (id, kind, code, name, cost_price, sell_price, stock, sector, image, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())`,
		item.ID, string(item.Kind), item.Code, item.Name, item.CostPrice.String(), item.SellPrice.String(),
		item.Stock, item.Sector, item.Image)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *repository) Update(ctx context.Context, item Item) error {
	tag, err := r.pool.Exec(ctx, `UPDATE catalog_items SET kind=$2, code=$3, name=$4, cost_price=$5, sell_price=$6,
stock=$7, sector=$8, image=$9, updated_at=NOW() WHERE id=$1`,
		item.ID, string(item.Kind), item.Code, item.Name, item.CostPrice.String(), item.SellPrice.String(),
		item.Stock, item.Sector, item.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	var stock int64
	err := r.pool.QueryRow(ctx, `UPDATE catalog_items SET stock = stock + $2, updated_at = NOW()
WHERE id = $1 AND kind = 'product' RETURNING stock`, id, delta).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return stock, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
