package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes stocked products from services.
type ItemKind string

const (
	// KindProduct is a physical item with a stock level and a cost price.
	KindProduct ItemKind = "product"
	// KindService is labour or other non-stocked work.
	KindService ItemKind = "service"
)

// TracksStock reports whether items of this kind participate in stock
// reconciliation. Services never do.
func (k ItemKind) TracksStock() bool {
	return k == KindProduct
}

// Valid reports whether the kind is one of the known variants.
func (k ItemKind) Valid() bool {
	return k == KindProduct || k == KindService
}

// Item is a catalog entry offered on quotes.
type Item struct {
	ID        uuid.UUID       `json:"id"`
	Kind      ItemKind        `json:"kind"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Stock     int64           `json:"stock"`
	Sector    *string         `json:"sector,omitempty"`
	Image     *string         `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
