// Package pricing computes quote totals. All arithmetic is fixed-point
// decimal; rounding to two places happens only when amounts are presented.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/orcamenta/orcamenta/internal/catalog"
)

// DiscountKind selects how a discount amount is interpreted.
type DiscountKind string

const (
	// DiscountFixed subtracts a flat amount, clamped to the subtotal.
	DiscountFixed DiscountKind = "fixed"
	// DiscountPercent subtracts a percentage of the subtotal, clamped to 100%.
	DiscountPercent DiscountKind = "percent"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountSpec describes the discount applied to a quote.
type DiscountSpec struct {
	Kind   DiscountKind    `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// ParseDiscount builds a DiscountSpec from raw user input. Unknown kinds fall
// back to fixed, and non-numeric or negative amounts normalise to zero rather
// than failing.
func ParseDiscount(kind, amount string) DiscountSpec {
	k := DiscountKind(kind)
	if k != DiscountFixed && k != DiscountPercent {
		k = DiscountFixed
	}
	value, err := decimal.NewFromString(amount)
	if err != nil || value.IsNegative() {
		value = decimal.Zero
	}
	return DiscountSpec{Kind: k, Amount: value}
}

// LineItem is the pricing view of a quote line.
type LineItem struct {
	Kind      catalog.ItemKind
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Total returns UnitPrice multiplied by Quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Totals holds the derived amounts of a quote. Values are computed once at
// commit and frozen into the saved record.
type Totals struct {
	ProductsSubtotal decimal.Decimal `json:"products_subtotal"`
	ServicesSubtotal decimal.Decimal `json:"services_subtotal"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	FinalTotal       decimal.Decimal `json:"final_total"`
}

// Subtotals sums line totals partitioned by item kind. Service lines
// contribute only to the services subtotal.
func Subtotals(lines []LineItem) (products, services decimal.Decimal) {
	products, services = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Kind == catalog.KindService {
			services = services.Add(line.Total())
			continue
		}
		products = products.Add(line.Total())
	}
	return products, services
}

// DiscountAmount derives the discount value for the given subtotal. The
// result never exceeds the subtotal, so the final total cannot go negative:
// fixed discounts clamp to the subtotal and percentages clamp to 100.
func DiscountAmount(subtotal decimal.Decimal, spec DiscountSpec) decimal.Decimal {
	amount := spec.Amount
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	switch spec.Kind {
	case DiscountPercent:
		if amount.GreaterThan(oneHundred) {
			amount = oneHundred
		}
		return subtotal.Mul(amount).Div(oneHundred)
	default:
		if amount.GreaterThan(subtotal) {
			return subtotal
		}
		return amount
	}
}

// FinalTotal subtracts the discount from the subtotal.
func FinalTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount)
}

// Compute derives the full set of totals for a quote draft.
func Compute(lines []LineItem, spec DiscountSpec) Totals {
	products, services := Subtotals(lines)
	subtotal := products.Add(services)
	discount := DiscountAmount(subtotal, spec)
	return Totals{
		ProductsSubtotal: products,
		ServicesSubtotal: services,
		Subtotal:         subtotal,
		DiscountAmount:   discount,
		FinalTotal:       FinalTotal(subtotal, discount),
	}
}
