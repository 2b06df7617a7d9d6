package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/platform/db"
	"github.com/orcamenta/orcamenta/internal/pricing"
)

// ErrNotFound indicates a missing quote.
var ErrNotFound = errors.New("quote not found")

// Repository persists quotes in PostgreSQL.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id uuid.UUID) (*Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
}

// TxRepository groups the operations that must share one transaction: quote
// rows and the stock levels they deduct. Either everything commits together
// or nothing does.
type TxRepository interface {
	GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error)
	InsertQuote(ctx context.Context, quote Quote) error
	DeleteQuote(ctx context.Context, id uuid.UUID) error
	StockLevelsForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	UpdateStockLevels(ctx context.Context, levels map[uuid.UUID]int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const quoteColumns = `id, client_id, client_name, notes, discount_kind, discount_amount::text,
products_subtotal::text, services_subtotal::text, subtotal::text, discount_value::text, final_total::text, created_at`

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q                                                      Quote
		discountAmount, products, services, subtotal, discount string
		final                                                  string
		discountKind                                           string
	)
	err := row.Scan(&q.ID, &q.ClientID, &q.ClientName, &q.Notes, &discountKind, &discountAmount,
		&products, &services, &subtotal, &discount, &final, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	q.Discount.Kind = pricing.DiscountKind(discountKind)
	if q.Discount.Amount, err = decimal.NewFromString(discountAmount); err != nil {
		return nil, fmt.Errorf("quotes: parse discount amount: %w", err)
	}
	for _, pair := range []struct {
		raw    string
		target *decimal.Decimal
	}{
		{products, &q.Totals.ProductsSubtotal},
		{services, &q.Totals.ServicesSubtotal},
		{subtotal, &q.Totals.Subtotal},
		{discount, &q.Totals.DiscountAmount},
		{final, &q.Totals.FinalTotal},
	} {
		if *pair.target, err = decimal.NewFromString(pair.raw); err != nil {
			return nil, fmt.Errorf("quotes: parse total: %w", err)
		}
	}
	return &q, nil
}

func loadLines(ctx context.Context, q queryer, quote *Quote) error {
	rows, err := q.Query(ctx, `SELECT item_id, code, name, kind, unit_price::text, quantity
FROM quote_lines WHERE quote_id = $1 ORDER BY line_order`, quote.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line        LineItem
			kind, price string
		)
		if err := rows.Scan(&line.ItemID, &line.Code, &line.Name, &kind, &price, &line.Quantity); err != nil {
			return err
		}
		line.Kind = catalog.ItemKind(kind)
		if line.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("quotes: parse unit price: %w", err)
		}
		quote.Lines = append(quote.Lines, line)
	}
	return rows.Err()
}

func getQuote(ctx context.Context, q queryer, id uuid.UUID) (*Quote, error) {
	quote, err := scanQuote(q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := loadLines(ctx, q, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return getQuote(ctx, r.pool, id)
}

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var conditions []string
	var args []any

	if req.ClientID != nil {
		args = append(args, *req.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if req.From != nil {
		args = append(args, *req.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if req.To != nil {
		args = append(args, *req.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
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
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM quotes %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		quoteColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	quotes := []Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range quotes {
		if err := loadLines(ctx, r.pool, &quotes[i]); err != nil {
			return nil, 0, err
		}
	}
	return quotes, total, nil
}

func (t *txRepository) GetQuote(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return getQuote(ctx, t.tx, id)
}

func (t *txRepository) InsertQuote(ctx context.Context, quote Quote) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO quotes (id, client_id, client_name, notes, discount_kind, discount_amount,
products_subtotal, services_subtotal, subtotal, discount_value, final_total, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		quote.ID, quote.ClientID, quote.ClientName, quote.Notes,
		string(quote.Discount.Kind), quote.Discount.Amount.String(),
		quote.Totals.ProductsSubtotal.String(), quote.Totals.ServicesSubtotal.String(),
		quote.Totals.Subtotal.String(), quote.Totals.DiscountAmount.String(),
		quote.Totals.FinalTotal.String(), quote.CreatedAt)
	if err != nil {
		return err
	}
	for i, line := range quote.Lines {
		_, err := t.tx.Exec(ctx, `INSERT INTO quote_lines (quote_id, line_order, item_id, code, name, kind, unit_price, quantity)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			quote.ID, i+1, line.ItemID, line.Code, line.Name, string(line.Kind), line.UnitPrice.String(), line.Quantity)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *txRepository) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM quote_lines WHERE quote_id = $1`, id); err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StockLevelsForUpdate row-locks the affected products, serialising
// concurrent commits that touch the same items.
func (t *txRepository) StockLevelsForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	levels := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return levels, nil
	}
	rows, err := t.tx.Query(ctx, `SELECT id, stock FROM catalog_items WHERE id = ANY($1) FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			stock int64
		)
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, err
		}
		levels[id] = stock
	}
	return levels, rows.Err()
}

func (t *txRepository) UpdateStockLevels(ctx context.Context, levels map[uuid.UUID]int64) error {
	for id, stock := range levels {
		if _, err := t.tx.Exec(ctx, `UPDATE catalog_items SET stock = $2, updated_at = NOW() WHERE id = $1`, id, stock); err != nil {
			return err
		}
	}
	return nil
}
