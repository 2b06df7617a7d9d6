package quotes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/pricing"
	"github.com/orcamenta/orcamenta/internal/settings"
)

type fakeSettingsSource struct {
	quote   settings.QuoteSettings
	company settings.CompanyInfo
}

func (f *fakeSettingsSource) QuoteSettings(ctx context.Context) (settings.QuoteSettings, error) {
	return f.quote, nil
}

func (f *fakeSettingsSource) CompanyInfo(ctx context.Context) (settings.CompanyInfo, error) {
	if f.company.Name == "" {
		return settings.CompanyInfo{}, settings.ErrNotFound
	}
	return f.company, nil
}

func sampleQuote(clientID uuid.UUID) *Quote {
	q := &Quote{
		ID:         uuid.New(),
		ClientID:   clientID,
		ClientName: "Oficina do Zé",
		Lines: []LineItem{
			{ItemID: uuid.New(), Name: "Filtro de óleo", Kind: catalog.KindProduct, UnitPrice: decimal.NewFromInt(30), Quantity: 2},
			{ItemID: uuid.New(), Name: "Troca de óleo", Kind: catalog.KindService, UnitPrice: decimal.NewFromInt(50), Quantity: 1},
		},
		Discount:  pricing.DiscountSpec{Kind: pricing.DiscountFixed, Amount: decimal.NewFromInt(5)},
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	q.Totals = pricing.Compute(q.pricingLines(), q.Discount)
	return q
}

func TestWhatsAppExport(t *testing.T) {
	clientID := uuid.New()
	dir := &fakeClients{m: map[uuid.UUID]clients.Client{
		clientID: {ID: clientID, Name: "Oficina do Zé", Phone: "(41) 98888-7777"},
	}}
	src := &fakeSettingsSource{
		quote:   settings.QuoteSettings{ShowDiscount: true},
		company: settings.CompanyInfo{Name: "Auto Peças Silva"},
	}
	exporter := NewWhatsAppExporter(dir, src)

	msg, err := exporter.Export(context.Background(), sampleQuote(clientID))
	require.NoError(t, err)

	require.Equal(t, "5541988887777", msg.Phone)
	require.Contains(t, msg.Message, "Olá *Oficina do Zé*")
	require.Contains(t, msg.Message, "(15/03/2026)")
	require.Contains(t, msg.Message, "• 2x Filtro de óleo: R$ 60,00")
	require.Contains(t, msg.Message, "• 1x Troca de óleo: R$ 50,00")
	require.Contains(t, msg.Message, "Subtotal: R$ 110,00")
	require.Contains(t, msg.Message, "Desconto: - R$ 5,00")
	require.Contains(t, msg.Message, "*Total: R$ 105,00*")
	require.Contains(t, msg.Message, "Att, *Auto Peças Silva*")

	require.True(t, strings.HasPrefix(msg.URL, "https://wa.me/5541988887777?text="))
	require.NotContains(t, msg.URL, "+")
	require.Contains(t, msg.URL, "%20")
}

func TestWhatsAppHidesDiscountWhenDisabled(t *testing.T) {
	clientID := uuid.New()
	dir := &fakeClients{m: map[uuid.UUID]clients.Client{
		clientID: {ID: clientID, Name: "Oficina do Zé", Phone: "41988887777"},
	}}
	src := &fakeSettingsSource{quote: settings.QuoteSettings{ShowDiscount: false}}
	exporter := NewWhatsAppExporter(dir, src)

	msg, err := exporter.Export(context.Background(), sampleQuote(clientID))
	require.NoError(t, err)

	require.NotContains(t, msg.Message, "Subtotal")
	require.NotContains(t, msg.Message, "Desconto")
	require.Contains(t, msg.Message, "*Total: R$ 105,00*")
	require.NotContains(t, msg.Message, "Att,")
}

func TestWhatsAppRequiresPhone(t *testing.T) {
	clientID := uuid.New()
	dir := &fakeClients{m: map[uuid.UUID]clients.Client{
		clientID: {ID: clientID, Name: "Sem Telefone"},
	}}
	exporter := NewWhatsAppExporter(dir, &fakeSettingsSource{})

	_, err := exporter.Export(context.Background(), sampleQuote(clientID))
	require.ErrorIs(t, err, ErrClientHasNoPhone)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"(41) 98888-7777", "5541988887777"},
		{"41 3222-1000", "554132221000"},
		{"+55 41 98888-7777", "5541988887777"},
	}
	for _, tc := range cases {
		got, err := normalizePhone(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, tc.in)
	}
}
