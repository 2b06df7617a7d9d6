// Package stock validates and applies inventory deduction for quote commits.
// The functions here are pure: they read and return in-memory level maps, and
// the caller is responsible for persisting the result atomically with the
// quote itself. Applying a deduction twice double-deducts; callers must
// invoke it exactly once per committed quote.
package stock

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/orcamenta/orcamenta/internal/catalog"
)

// ErrInvalidQuantity indicates a line with quantity below one.
var ErrInvalidQuantity = errors.New("stock: quantity must be at least 1")

// LineItem is the stock view of a quote line.
type LineItem struct {
	ItemID   uuid.UUID
	Name     string
	Kind     catalog.ItemKind
	Quantity int64
}

// Shortfall records one product whose requested quantity exceeds the
// available stock.
type Shortfall struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
}

// Decision is the outcome of validating a candidate quote against current
// stock levels.
type Decision struct {
	Accepted   bool        `json:"accepted"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`
}

// InsufficientStockError carries the shortfall list of a rejected decision.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock: insufficient stock for %d item(s)", len(e.Shortfalls))
}

// Err returns nil for accepted decisions and an InsufficientStockError
// otherwise.
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return &InsufficientStockError{Shortfalls: d.Shortfalls}
}

// Policy is the single configuration point for stock behaviour. AllowNegative
// lets commits drive levels below zero; RestoreOnEdit returns deducted stock
// when a saved quote is reopened for editing.
type Policy struct {
	AllowNegative bool
	RestoreOnEdit bool
}

// Validate checks the candidate lines against the level map. Service lines
// are exempt. Requested quantities are summed per item first, so duplicate
// lines for the same product are judged by their aggregate, not one by one.
// With Policy.AllowNegative set, shortfalls are not recorded and the decision
// is always accepted. Items missing from the map are treated as having zero
// stock.
func Validate(lines []LineItem, levels map[uuid.UUID]int64, policy Policy) (Decision, error) {
	for _, line := range lines {
		if line.Quantity < 1 {
			return Decision{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, line.Name)
		}
	}
	if policy.AllowNegative {
		return Decision{Accepted: true}, nil
	}
	requested := make(map[uuid.UUID]int64, len(lines))
	for _, line := range lines {
		if !line.Kind.TracksStock() {
			continue
		}
		requested[line.ItemID] += line.Quantity
	}
	var shortfalls []Shortfall
	seen := make(map[uuid.UUID]bool, len(requested))
	for _, line := range lines {
		if !line.Kind.TracksStock() || seen[line.ItemID] {
			continue
		}
		seen[line.ItemID] = true
		available := levels[line.ItemID]
		if total := requested[line.ItemID]; total > available {
			shortfalls = append(shortfalls, Shortfall{
				ItemID:    line.ItemID,
				Name:      line.Name,
				Requested: total,
				Available: available,
			})
		}
	}
	return Decision{Accepted: len(shortfalls) == 0, Shortfalls: shortfalls}, nil
}

// Deduct returns a new level map with each product line's quantity removed.
// Service lines leave the map untouched. Levels may go negative only when
// validation was bypassed via Policy.AllowNegative.
func Deduct(lines []LineItem, levels map[uuid.UUID]int64) map[uuid.UUID]int64 {
	updated := make(map[uuid.UUID]int64, len(levels))
	for id, qty := range levels {
		updated[id] = qty
	}
	for _, line := range lines {
		if !line.Kind.TracksStock() {
			continue
		}
		updated[line.ItemID] -= line.Quantity
	}
	return updated
}

// Restore is the inverse of Deduct, used when the restore-on-edit policy is
// enabled.
func Restore(lines []LineItem, levels map[uuid.UUID]int64) map[uuid.UUID]int64 {
	updated := make(map[uuid.UUID]int64, len(levels))
	for id, qty := range levels {
		updated[id] = qty
	}
	for _, line := range lines {
		if !line.Kind.TracksStock() {
			continue
		}
		updated[line.ItemID] += line.Quantity
	}
	return updated
}
