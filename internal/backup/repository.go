package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orcamenta/orcamenta/internal/platform/db"
)

// Repository replaces the whole database content from a snapshot.
type Repository interface {
	Replace(ctx context.Context, snap *Snapshot) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Replace wipes and reloads every table inside one transaction so a failed
// restore leaves the previous data untouched. Tables empty in reference
// order: lines first, settings last.
func (r *repository) Replace(ctx context.Context, snap *Snapshot) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"quote_lines", "quotes", "catalog_items", "clients", "settings"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, c := range snap.Clients {
			_, err := tx.Exec(ctx, `INSERT INTO clients (id, kind, name, cpf, cnpj, state_registration, address, city, zip_code, phone, email, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
				c.ID, string(c.Kind), c.Name, c.CPF, c.CNPJ, c.StateRegistration,
				c.Address, c.City, c.ZipCode, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
			if err != nil {
				return fmt.Errorf("restore client %s: %w", c.ID, err)
			}
		}

		for _, item := range snap.Items {
			_, err := tx.Exec(ctx, `INSERT INTO catalog_items (id, kind, code, name, cost_price, sell_price, stock, sector, image, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
				item.ID, string(item.Kind), item.Code, item.Name,
				item.CostPrice.String(), item.SellPrice.String(), item.Stock,
				item.Sector, item.Image, item.CreatedAt, item.UpdatedAt)
			if err != nil {
				return fmt.Errorf("restore item %s: %w", item.ID, err)
			}
		}

		for _, q := range snap.Quotes {
			_, err := tx.Exec(ctx, `INSERT INTO quotes (id, client_id, client_name, notes, discount_kind, discount_amount,
products_subtotal, services_subtotal, subtotal, discount_value, final_total, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
				q.ID, q.ClientID, q.ClientName, q.Notes,
				string(q.Discount.Kind), q.Discount.Amount.String(),
				q.Totals.ProductsSubtotal.String(), q.Totals.ServicesSubtotal.String(),
				q.Totals.Subtotal.String(), q.Totals.DiscountAmount.String(),
				q.Totals.FinalTotal.String(), q.CreatedAt)
			if err != nil {
				return fmt.Errorf("restore quote %s: %w", q.ID, err)
			}
			for i, line := range q.Lines {
				_, err := tx.Exec(ctx, `INSERT INTO quote_lines (quote_id, line_order, item_id, code, name, kind, unit_price, quantity)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
					q.ID, i+1, line.ItemID, line.Code, line.Name, string(line.Kind),
					line.UnitPrice.String(), line.Quantity)
				if err != nil {
					return fmt.Errorf("restore quote %s line %d: %w", q.ID, i+1, err)
				}
			}
		}

		if err := upsertDoc(ctx, tx, "quote_settings", snap.QuoteSettings); err != nil {
			return err
		}
		if snap.CompanyInfo != nil {
			if err := upsertDoc(ctx, tx, "company_info", snap.CompanyInfo); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertDoc(ctx context.Context, tx pgx.Tx, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode settings %s: %w", key, err)
	}
	_, err = tx.Exec(ctx, `INSERT INTO settings (key, doc, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`, key, raw)
	if err != nil {
		return fmt.Errorf("restore settings %s: %w", key, err)
	}
	return nil
}
