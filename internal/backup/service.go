package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
)

// ErrVersionMismatch indicates a snapshot produced by an incompatible
// release.
var ErrVersionMismatch = errors.New("backup: unsupported snapshot version")

// pageSize keeps export reads inside the list request limits.
const pageSize = 1000

type ClientSource interface {
	List(ctx context.Context, req clients.ListClientsRequest) ([]clients.Client, int, error)
}

type ItemSource interface {
	List(ctx context.Context, req catalog.ListItemsRequest) ([]catalog.Item, int, error)
}

type QuoteSource interface {
	List(ctx context.Context, req quotes.ListQuotesRequest) ([]quotes.Quote, int, error)
}

type SettingsSource interface {
	QuoteSettings(ctx context.Context) (settings.QuoteSettings, error)
	CompanyInfo(ctx context.Context) (settings.CompanyInfo, error)
}

// Service assembles and restores full application snapshots.
type Service struct {
	clients  ClientSource
	items    ItemSource
	quotes   QuoteSource
	settings SettingsSource
	repo     Repository
	log      *slog.Logger
}

func NewService(cs ClientSource, is ItemSource, qs QuoteSource, ss SettingsSource, repo Repository, log *slog.Logger) *Service {
	return &Service{
		clients:  cs,
		items:    is,
		quotes:   qs,
		settings: ss,
		repo:     repo,
		log:      log,
	}
}

func page[T any](ctx context.Context, fetch func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += pageSize {
		batch, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

// Export reads every table concurrently and assembles one snapshot.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Version: snapshotVersion, CreatedAt: time.Now().UTC()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Clients, err = page(ctx, func(ctx context.Context, limit, offset int) ([]clients.Client, error) {
			batch, _, err := s.clients.List(ctx, clients.ListClientsRequest{Limit: limit, Offset: offset})
			return batch, err
		})
		if err != nil {
			return fmt.Errorf("export clients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Items, err = page(ctx, func(ctx context.Context, limit, offset int) ([]catalog.Item, error) {
			batch, _, err := s.items.List(ctx, catalog.ListItemsRequest{Limit: limit, Offset: offset})
			return batch, err
		})
		if err != nil {
			return fmt.Errorf("export items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Quotes, err = page(ctx, func(ctx context.Context, limit, offset int) ([]quotes.Quote, error) {
			batch, _, err := s.quotes.List(ctx, quotes.ListQuotesRequest{Limit: limit, Offset: offset})
			return batch, err
		})
		if err != nil {
			return fmt.Errorf("export quotes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		qs, err := s.settings.QuoteSettings(ctx)
		if err != nil {
			return fmt.Errorf("export quote settings: %w", err)
		}
		snap.QuoteSettings = qs

		info, err := s.settings.CompanyInfo(ctx)
		if errors.Is(err, settings.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("export company info: %w", err)
		}
		snap.CompanyInfo = &info
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snap.Clients == nil {
		snap.Clients = []clients.Client{}
	}
	if snap.Items == nil {
		snap.Items = []catalog.Item{}
	}
	if snap.Quotes == nil {
		snap.Quotes = []quotes.Quote{}
	}
	return snap, nil
}

// Restore replaces the entire database content with the snapshot.
func (s *Service) Restore(ctx context.Context, snap *Snapshot) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, snap.Version, snapshotVersion)
	}
	if err := s.repo.Replace(ctx, snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	s.log.Info("snapshot restored",
		slog.Int("clients", len(snap.Clients)),
		slog.Int("items", len(snap.Items)),
		slog.Int("quotes", len(snap.Quotes)))
	return nil
}
