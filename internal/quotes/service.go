package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/pricing"
	"github.com/orcamenta/orcamenta/internal/settings"
	"github.com/orcamenta/orcamenta/internal/stock"
)

var (
	// ErrUnknownClient indicates a commit referencing a client that no
	// longer exists.
	ErrUnknownClient = errors.New("quotes: client not found")
	// ErrUnknownItem indicates a commit referencing a catalog item that no
	// longer exists.
	ErrUnknownItem = errors.New("quotes: catalog item not found")
)

// ClientDirectory resolves the client snapshot taken at commit time.
type ClientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*clients.Client, error)
}

// ItemCatalog resolves unit prices and kinds at commit time. Prices are
// never trusted from the request body.
type ItemCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
}

// SettingsReader loads the quote settings fresh on every commit so a saved
// change applies immediately.
type SettingsReader interface {
	QuoteSettings(ctx context.Context) (settings.QuoteSettings, error)
}

// Service implements quote building: draft autosave, commit with stock
// deduction, reopening for edit, and listing.
type Service struct {
	repo     Repository
	drafts   DraftStore
	clients  ClientDirectory
	catalog  ItemCatalog
	settings SettingsReader
	policy   stock.Policy
	log      *slog.Logger
}

func NewService(repo Repository, drafts DraftStore, dir ClientDirectory, items ItemCatalog, settings SettingsReader, policy stock.Policy, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		drafts:   drafts,
		clients:  dir,
		catalog:  items,
		settings: settings,
		policy:   policy,
		log:      log,
	}
}

// resolveLines turns the request lines into catalog snapshots. Duplicate
// item IDs stay as separate lines, matching how the builder adds rows.
func (s *Service) resolveLines(ctx context.Context, reqs []CommitLineRequest) ([]LineItem, error) {
	lines := make([]LineItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := s.catalog.Get(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownItem, req.ItemID)
			}
			return nil, fmt.Errorf("resolve item %s: %w", req.ItemID, err)
		}
		lines = append(lines, LineItem{
			ItemID:    item.ID,
			Code:      item.Code,
			Name:      item.Name,
			Kind:      item.Kind,
			UnitPrice: item.SellPrice,
			Quantity:  req.Quantity,
		})
	}
	return lines, nil
}

// Commit validates stock, deducts it, and persists the quote, all inside one
// transaction with the affected product rows locked. On success the draft
// slot is cleared best-effort.
func (s *Service) Commit(ctx context.Context, req CommitQuoteRequest) (*Quote, error) {
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownClient, req.ClientID)
		}
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	lines, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	qs, err := s.settings.QuoteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quote settings: %w", err)
	}

	// A hidden discount never reduces the saved totals; the committed record
	// freezes what the client was actually shown.
	spec := pricing.ParseDiscount(req.DiscountKind, req.DiscountAmount)
	if !qs.ShowDiscount {
		spec = pricing.ParseDiscount("", "")
	}
	quote := Quote{
		ID:         uuid.New(),
		ClientID:   client.ID,
		ClientName: client.Name,
		Lines:      lines,
		Notes:      req.Notes,
		Discount:   spec,
		CreatedAt:  time.Now().UTC(),
	}
	quote.Totals = pricing.Compute(quote.pricingLines(), spec)

	policy := s.policy
	policy.AllowNegative = qs.AllowQuoteWithoutStock

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		levels, err := tx.StockLevelsForUpdate(ctx, quote.productIDs())
		if err != nil {
			return fmt.Errorf("lock stock levels: %w", err)
		}
		decision, err := stock.Validate(quote.stockLines(), levels, policy)
		if err != nil {
			return err
		}
		if err := decision.Err(); err != nil {
			return err
		}
		if err := tx.UpdateStockLevels(ctx, stock.Deduct(quote.stockLines(), levels)); err != nil {
			return fmt.Errorf("deduct stock: %w", err)
		}
		return tx.InsertQuote(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx); err != nil {
		s.log.Warn("clear draft after commit", slog.String("error", err.Error()))
	}
	return &quote, nil
}

// Edit reopens a saved quote: the quote row is removed, stock is returned if
// the restore policy is enabled, and the content lands in the draft slot for
// the builder to pick up.
func (s *Service) Edit(ctx context.Context, id uuid.UUID) (*Draft, error) {
	var quote *Quote
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		quote, err = tx.GetQuote(ctx, id)
		if err != nil {
			return err
		}
		if s.policy.RestoreOnEdit {
			levels, err := tx.StockLevelsForUpdate(ctx, quote.productIDs())
			if err != nil {
				return fmt.Errorf("lock stock levels: %w", err)
			}
			if err := tx.UpdateStockLevels(ctx, stock.Restore(quote.stockLines(), levels)); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}
		return tx.DeleteQuote(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	draft := Draft{
		ClientID:       &quote.ClientID,
		Lines:          quote.Lines,
		Notes:          quote.Notes,
		DiscountKind:   string(quote.Discount.Kind),
		DiscountAmount: quote.Discount.Amount.String(),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &draft, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	return s.repo.List(ctx, req)
}

// Delete removes a saved quote. Deleting does not return stock; a quote
// whose goods should go back must be reopened via Edit instead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.DeleteQuote(ctx, id)
	})
}

// SaveDraft overwrites the single draft slot.
func (s *Service) SaveDraft(ctx context.Context, req SaveDraftRequest) (*Draft, error) {
	draft := Draft{
		ClientID:       req.ClientID,
		Lines:          req.Lines,
		Notes:          req.Notes,
		DiscountKind:   req.DiscountKind,
		DiscountAmount: req.DiscountAmount,
		UpdatedAt:      time.Now().UTC(),
	}
	if draft.Lines == nil {
		draft.Lines = []LineItem{}
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &draft, nil
}

func (s *Service) Draft(ctx context.Context) (*Draft, error) {
	return s.drafts.Get(ctx)
}

func (s *Service) ClearDraft(ctx context.Context) error {
	return s.drafts.Delete(ctx)
}
