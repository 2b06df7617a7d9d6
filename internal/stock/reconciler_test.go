package stock

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/orcamenta/orcamenta/internal/catalog"
)

func TestValidateAccepted(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{
		{ItemID: productID, Name: "Cabo 2.5mm", Kind: catalog.KindProduct, Quantity: 3},
		{ItemID: uuid.New(), Name: "Instalação", Kind: catalog.KindService, Quantity: 1},
	}
	levels := map[uuid.UUID]int64{productID: 5}

	decision, err := Validate(lines, levels, Policy{})
	require.NoError(t, err)
	require.True(t, decision.Accepted)
	require.Empty(t, decision.Shortfalls)
	require.NoError(t, decision.Err())
}

func TestValidateRejectedWithShortfall(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{{ItemID: productID, Name: "Disjuntor", Kind: catalog.KindProduct, Quantity: 10}}
	levels := map[uuid.UUID]int64{productID: 5}

	decision, err := Validate(lines, levels, Policy{})
	require.NoError(t, err)
	require.False(t, decision.Accepted)
	require.Len(t, decision.Shortfalls, 1)
	require.Equal(t, int64(10), decision.Shortfalls[0].Requested)
	require.Equal(t, int64(5), decision.Shortfalls[0].Available)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, decision.Err(), &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
}

func TestValidateServiceExempt(t *testing.T) {
	lines := []LineItem{{ItemID: uuid.New(), Name: "Mão de obra", Kind: catalog.KindService, Quantity: 99}}

	decision, err := Validate(lines, map[uuid.UUID]int64{}, Policy{})
	require.NoError(t, err)
	require.True(t, decision.Accepted)
}

func TestValidateUnknownItemHasZeroStock(t *testing.T) {
	lines := []LineItem{{ItemID: uuid.New(), Name: "Fantasma", Kind: catalog.KindProduct, Quantity: 1}}

	decision, err := Validate(lines, map[uuid.UUID]int64{}, Policy{})
	require.NoError(t, err)
	require.False(t, decision.Accepted)
	require.Equal(t, int64(0), decision.Shortfalls[0].Available)
}

func TestValidateAggregatesDuplicateLines(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{
		{ItemID: productID, Name: "Luminária", Kind: catalog.KindProduct, Quantity: 3},
		{ItemID: productID, Name: "Luminária", Kind: catalog.KindProduct, Quantity: 3},
	}
	levels := map[uuid.UUID]int64{productID: 5}

	decision, err := Validate(lines, levels, Policy{})
	require.NoError(t, err)
	require.False(t, decision.Accepted)
	require.Len(t, decision.Shortfalls, 1)
	require.Equal(t, int64(6), decision.Shortfalls[0].Requested)
	require.Equal(t, int64(5), decision.Shortfalls[0].Available)

	// Within stock in aggregate, the same duplicates pass.
	levels[productID] = 6
	decision, err = Validate(lines, levels, Policy{})
	require.NoError(t, err)
	require.True(t, decision.Accepted)
}

func TestValidateAllowNegativeBypasses(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{{ItemID: productID, Name: "Tomada", Kind: catalog.KindProduct, Quantity: 10}}

	decision, err := Validate(lines, map[uuid.UUID]int64{productID: 1}, Policy{AllowNegative: true})
	require.NoError(t, err)
	require.True(t, decision.Accepted)
	require.Empty(t, decision.Shortfalls)
}

func TestValidateInvalidQuantity(t *testing.T) {
	lines := []LineItem{{ItemID: uuid.New(), Name: "Cabo", Kind: catalog.KindProduct, Quantity: 0}}

	_, err := Validate(lines, map[uuid.UUID]int64{}, Policy{})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// Quantity checks apply to services too; a zero-quantity line is a bad
	// draft regardless of kind.
	lines[0].Kind = catalog.KindService
	_, err = Validate(lines, map[uuid.UUID]int64{}, Policy{AllowNegative: true})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestDeduct(t *testing.T) {
	productID := uuid.New()
	serviceID := uuid.New()
	lines := []LineItem{
		{ItemID: productID, Kind: catalog.KindProduct, Quantity: 3},
		{ItemID: serviceID, Kind: catalog.KindService, Quantity: 2},
	}
	levels := map[uuid.UUID]int64{productID: 5, serviceID: 7}

	updated := Deduct(lines, levels)
	require.Equal(t, int64(2), updated[productID])
	require.Equal(t, int64(7), updated[serviceID])
	// Input map stays untouched.
	require.Equal(t, int64(5), levels[productID])
}

func TestDeductMayGoNegative(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{{ItemID: productID, Kind: catalog.KindProduct, Quantity: 10}}

	updated := Deduct(lines, map[uuid.UUID]int64{productID: 4})
	require.Equal(t, int64(-6), updated[productID])
}

func TestDeductTwiceDoubleDeducts(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{{ItemID: productID, Kind: catalog.KindProduct, Quantity: 2}}
	levels := map[uuid.UUID]int64{productID: 10}

	once := Deduct(lines, levels)
	twice := Deduct(lines, once)
	require.Equal(t, int64(6), twice[productID])
}

func TestRestoreInvertsDeduct(t *testing.T) {
	productID := uuid.New()
	lines := []LineItem{
		{ItemID: productID, Kind: catalog.KindProduct, Quantity: 3},
		{ItemID: uuid.New(), Kind: catalog.KindService, Quantity: 1},
	}
	levels := map[uuid.UUID]int64{productID: 5}

	roundTrip := Restore(lines, Deduct(lines, levels))
	require.Equal(t, levels[productID], roundTrip[productID])
}
