package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/pricing"
	"github.com/orcamenta/orcamenta/internal/stock"
)

// LineItem is a catalog item snapshot plus a quantity inside a quote. The
// snapshot keeps saved quotes stable when the catalog changes later.
type LineItem struct {
	ItemID    uuid.UUID        `json:"item_id"`
	Code      string           `json:"code,omitempty"`
	Name      string           `json:"name"`
	Kind      catalog.ItemKind `json:"kind"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int64            `json:"quantity"`
}

// Quote is a committed quote with frozen totals. Commit is terminal: totals
// are never recomputed and deleting a quote does not return stock.
type Quote struct {
	ID         uuid.UUID            `json:"id"`
	ClientID   uuid.UUID            `json:"client_id"`
	ClientName string               `json:"client_name"`
	Lines      []LineItem           `json:"lines"`
	Notes      string               `json:"notes,omitempty"`
	Discount   pricing.DiscountSpec `json:"discount"`
	Totals     pricing.Totals       `json:"totals"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Draft is an in-progress quote held in the volatile draft slot. A draft
// carries raw user input; totals are derived on demand and frozen only at
// commit.
type Draft struct {
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	Lines          []LineItem `json:"lines"`
	Notes          string     `json:"notes,omitempty"`
	DiscountKind   string     `json:"discount_kind,omitempty"`
	DiscountAmount string     `json:"discount_amount,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (q *Quote) pricingLines() []pricing.LineItem {
	lines := make([]pricing.LineItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, pricing.LineItem{Kind: l.Kind, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return lines
}

func (q *Quote) stockLines() []stock.LineItem {
	lines := make([]stock.LineItem, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, stock.LineItem{ItemID: l.ItemID, Name: l.Name, Kind: l.Kind, Quantity: l.Quantity})
	}
	return lines
}

func (q *Quote) productIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, l := range q.Lines {
		if l.Kind.TracksStock() {
			ids = append(ids, l.ItemID)
		}
	}
	return ids
}
