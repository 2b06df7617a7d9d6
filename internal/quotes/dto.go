package quotes

import (
	"time"

	"github.com/google/uuid"
)

type CommitLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int64     `json:"quantity" validate:"required,gte=1"`
}

// CommitQuoteRequest turns the current draft into a saved quote. Unit prices
// and item kinds are resolved server-side from the catalog at commit time.
type CommitQuoteRequest struct {
	ClientID uuid.UUID           `json:"client_id" validate:"required"`
	Lines    []CommitLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes    string              `json:"notes" validate:"max=2000"`
	// Discount amount travels as a string; non-numeric and negative values
	// normalise to zero rather than failing the commit.
	DiscountKind   string `json:"discount_kind" validate:"omitempty,oneof=fixed percent"`
	DiscountAmount string `json:"discount_amount"`
}

type ListQuotesRequest struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Limit    int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset   int        `json:"offset" validate:"gte=0"`
}

// SaveDraftRequest is the autosave payload. Drafts are not validated beyond
// shape; partial or inconsistent drafts are expected while the user types.
type SaveDraftRequest struct {
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	Lines          []LineItem `json:"lines"`
	Notes          string     `json:"notes"`
	DiscountKind   string     `json:"discount_kind" validate:"omitempty,oneof=fixed percent"`
	DiscountAmount string     `json:"discount_amount"`
}
