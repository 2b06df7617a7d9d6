package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	docs map[string][]byte
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: make(map[string][]byte)}
}

func (r *memoryRepo) Load(ctx context.Context, key string, target any) error {
	raw, ok := r.docs[key]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, target)
}

func (r *memoryRepo) Save(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	r.docs[key] = raw
	return nil
}

func TestQuoteSettingsDefaults(t *testing.T) {
	svc := NewService(newMemoryRepo())

	qs, err := svc.QuoteSettings(context.Background())
	require.NoError(t, err)
	require.True(t, qs.AllowQuoteWithoutStock)
	require.True(t, qs.ShowDiscount)
	require.Equal(t, "sans-serif", qs.FontFamily)
	require.NotNil(t, qs.Sectors)
}

func TestQuoteSettingsRoundTrip(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	qs := DefaultQuoteSettings()
	qs.AllowQuoteWithoutStock = false
	qs.Sectors = []string{"Elétrica", "Hidráulica"}
	require.NoError(t, svc.SaveQuoteSettings(ctx, qs))

	loaded, err := svc.QuoteSettings(ctx)
	require.NoError(t, err)
	require.False(t, loaded.AllowQuoteWithoutStock)
	require.Equal(t, []string{"Elétrica", "Hidráulica"}, loaded.Sectors)
}

func TestCompanyInfoMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CompanyInfo(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCompanyInfoRoundTrip(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	info := CompanyInfo{Name: "Orcamenta Ltda", City: "São Paulo", Phone: "(11) 98888-7777"}
	require.NoError(t, svc.SaveCompanyInfo(ctx, info))

	loaded, err := svc.CompanyInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, info, loaded)
}
