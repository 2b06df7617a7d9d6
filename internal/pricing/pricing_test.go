package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orcamenta/orcamenta/internal/catalog"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleLines() []LineItem {
	return []LineItem{
		{Kind: catalog.KindProduct, UnitPrice: dec("10"), Quantity: 3},
		{Kind: catalog.KindService, UnitPrice: dec("50"), Quantity: 1},
	}
}

func TestSubtotalsPartitionByKind(t *testing.T) {
	products, services := Subtotals(sampleLines())
	require.True(t, products.Equal(dec("30")))
	require.True(t, services.Equal(dec("50")))
}

func TestComputeFixedDiscount(t *testing.T) {
	totals := Compute(sampleLines(), DiscountSpec{Kind: DiscountFixed, Amount: dec("5")})
	require.True(t, totals.ProductsSubtotal.Equal(dec("30")))
	require.True(t, totals.ServicesSubtotal.Equal(dec("50")))
	require.True(t, totals.Subtotal.Equal(dec("80")))
	require.True(t, totals.DiscountAmount.Equal(dec("5")))
	require.True(t, totals.FinalTotal.Equal(dec("75")))
}

func TestSubtotalIdentity(t *testing.T) {
	cases := [][]LineItem{
		nil,
		sampleLines(),
		{{Kind: catalog.KindService, UnitPrice: dec("19.90"), Quantity: 4}},
		{
			{Kind: catalog.KindProduct, UnitPrice: dec("0.10"), Quantity: 7},
			{Kind: catalog.KindProduct, UnitPrice: dec("123.45"), Quantity: 2},
			{Kind: catalog.KindService, UnitPrice: dec("80"), Quantity: 1},
		},
	}
	for _, lines := range cases {
		totals := Compute(lines, DiscountSpec{Kind: DiscountFixed, Amount: decimal.Zero})
		require.True(t, totals.ProductsSubtotal.Add(totals.ServicesSubtotal).Equal(totals.Subtotal))
	}
}

func TestFixedDiscountClampsToSubtotal(t *testing.T) {
	subtotal := dec("80")
	require.True(t, DiscountAmount(subtotal, DiscountSpec{Kind: DiscountFixed, Amount: dec("500")}).Equal(subtotal))

	totals := Compute(sampleLines(), DiscountSpec{Kind: DiscountFixed, Amount: dec("500")})
	require.True(t, totals.FinalTotal.IsZero())
}

func TestPercentDiscount(t *testing.T) {
	subtotal := dec("80")
	require.True(t, DiscountAmount(subtotal, DiscountSpec{Kind: DiscountPercent, Amount: dec("10")}).Equal(dec("8")))
	require.True(t, DiscountAmount(subtotal, DiscountSpec{Kind: DiscountPercent, Amount: dec("100")}).Equal(subtotal))
}

func TestPercentDiscountOvershootClamps(t *testing.T) {
	// 110% of 80 would exceed the subtotal; the percentage clamps to 100 so
	// the final total bottoms out at zero.
	totals := Compute(sampleLines(), DiscountSpec{Kind: DiscountPercent, Amount: dec("110")})
	require.True(t, totals.DiscountAmount.Equal(dec("80")))
	require.True(t, totals.FinalTotal.IsZero())
}

func TestNegativeDiscountNormalisesToZero(t *testing.T) {
	require.True(t, DiscountAmount(dec("80"), DiscountSpec{Kind: DiscountFixed, Amount: dec("-10")}).IsZero())
	require.True(t, DiscountAmount(dec("80"), DiscountSpec{Kind: DiscountPercent, Amount: dec("-10")}).IsZero())
}

func TestParseDiscount(t *testing.T) {
	spec := ParseDiscount("percent", "12.5")
	require.Equal(t, DiscountPercent, spec.Kind)
	require.True(t, spec.Amount.Equal(dec("12.5")))

	spec = ParseDiscount("fixed", "not-a-number")
	require.Equal(t, DiscountFixed, spec.Kind)
	require.True(t, spec.Amount.IsZero())

	spec = ParseDiscount("percent", "-3")
	require.True(t, spec.Amount.IsZero())

	spec = ParseDiscount("bogus", "10")
	require.Equal(t, DiscountFixed, spec.Kind)
}

func TestFinalTotalNeverNegative(t *testing.T) {
	lines := sampleLines()
	specs := []DiscountSpec{
		{Kind: DiscountFixed, Amount: dec("0")},
		{Kind: DiscountFixed, Amount: dec("80")},
		{Kind: DiscountFixed, Amount: dec("10000")},
		{Kind: DiscountPercent, Amount: dec("0")},
		{Kind: DiscountPercent, Amount: dec("55.5")},
		{Kind: DiscountPercent, Amount: dec("100")},
		{Kind: DiscountPercent, Amount: dec("250")},
	}
	for _, spec := range specs {
		totals := Compute(lines, spec)
		require.False(t, totals.FinalTotal.IsNegative(), "spec %+v", spec)
	}
}
