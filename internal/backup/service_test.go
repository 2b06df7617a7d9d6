package backup

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
)

type fakeClientSource struct {
	all []clients.Client
}

func (f *fakeClientSource) List(ctx context.Context, req clients.ListClientsRequest) ([]clients.Client, int, error) {
	return slicePage(f.all, req.Limit, req.Offset), len(f.all), nil
}

type fakeItemSource struct {
	all []catalog.Item
}

func (f *fakeItemSource) List(ctx context.Context, req catalog.ListItemsRequest) ([]catalog.Item, int, error) {
	return slicePage(f.all, req.Limit, req.Offset), len(f.all), nil
}

type fakeQuoteSource struct {
	all []quotes.Quote
}

func (f *fakeQuoteSource) List(ctx context.Context, req quotes.ListQuotesRequest) ([]quotes.Quote, int, error) {
	return slicePage(f.all, req.Limit, req.Offset), len(f.all), nil
}

func slicePage[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

type fakeSettingsSource struct {
	company *settings.CompanyInfo
}

func (f *fakeSettingsSource) QuoteSettings(ctx context.Context) (settings.QuoteSettings, error) {
	return settings.DefaultQuoteSettings(), nil
}

func (f *fakeSettingsSource) CompanyInfo(ctx context.Context) (settings.CompanyInfo, error) {
	if f.company == nil {
		return settings.CompanyInfo{}, settings.ErrNotFound
	}
	return *f.company, nil
}

type memoryRestore struct {
	restored *Snapshot
}

func (m *memoryRestore) Replace(ctx context.Context, snap *Snapshot) error {
	m.restored = snap
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExportAssemblesSnapshot(t *testing.T) {
	cs := &fakeClientSource{all: []clients.Client{{ID: uuid.New(), Name: "Maria"}}}
	is := &fakeItemSource{all: []catalog.Item{
		{ID: uuid.New(), Kind: catalog.KindProduct, Name: "Filtro", SellPrice: decimal.NewFromInt(30), Stock: 5},
	}}
	qs := &fakeQuoteSource{}
	ss := &fakeSettingsSource{company: &settings.CompanyInfo{Name: "Auto Peças Silva"}}

	svc := NewService(cs, is, qs, ss, &memoryRestore{}, testLogger())
	snap, err := svc.Export(context.Background())
	require.NoError(t, err)

	require.Equal(t, snapshotVersion, snap.Version)
	require.Len(t, snap.Clients, 1)
	require.Len(t, snap.Items, 1)
	require.Empty(t, snap.Quotes)
	require.NotNil(t, snap.CompanyInfo)
	require.Equal(t, "Auto Peças Silva", snap.CompanyInfo.Name)
	require.True(t, snap.QuoteSettings.AllowQuoteWithoutStock)
}

func TestExportWithoutCompanyInfo(t *testing.T) {
	svc := NewService(&fakeClientSource{}, &fakeItemSource{}, &fakeQuoteSource{}, &fakeSettingsSource{}, &memoryRestore{}, testLogger())
	snap, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap.CompanyInfo)
	require.NotNil(t, snap.Clients)
	require.NotNil(t, snap.Quotes)
}

func TestExportPagesLargeTables(t *testing.T) {
	all := make([]clients.Client, 2500)
	for i := range all {
		all[i] = clients.Client{ID: uuid.New(), Name: "Cliente"}
	}
	svc := NewService(&fakeClientSource{all: all}, &fakeItemSource{}, &fakeQuoteSource{}, &fakeSettingsSource{}, &memoryRestore{}, testLogger())

	snap, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Clients, 2500)
}

func TestRestoreRejectsVersionMismatch(t *testing.T) {
	repo := &memoryRestore{}
	svc := NewService(&fakeClientSource{}, &fakeItemSource{}, &fakeQuoteSource{}, &fakeSettingsSource{}, repo, testLogger())

	err := svc.Restore(context.Background(), &Snapshot{Version: 99})
	require.ErrorIs(t, err, ErrVersionMismatch)
	require.Nil(t, repo.restored)
}

func TestRestorePassesSnapshotThrough(t *testing.T) {
	repo := &memoryRestore{}
	svc := NewService(&fakeClientSource{}, &fakeItemSource{}, &fakeQuoteSource{}, &fakeSettingsSource{}, repo, testLogger())

	snap := &Snapshot{Version: snapshotVersion, Quotes: []quotes.Quote{{ID: uuid.New()}}}
	require.NoError(t, svc.Restore(context.Background(), snap))
	require.Same(t, snap, repo.restored)
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(&fakeClientSource{}, &fakeItemSource{}, &fakeQuoteSource{}, &fakeSettingsSource{}, &memoryRestore{}, testLogger())

	path, err := svc.WriteSnapshot(context.Background(), dir)
	require.NoError(t, err)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(payload, &snap))
	require.Equal(t, snapshotVersion, snap.Version)
}
