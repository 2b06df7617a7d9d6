package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrServiceHasNoStock is returned when a stock operation targets a service
// item.
var ErrServiceHasNoStock = errors.New("catalog: services do not track stock")

// Service implements catalog use cases.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func parsePrice(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	item := Item{
		ID:        uuid.New(),
		Kind:      req.Kind,
		Code:      req.Code,
		Name:      req.Name,
		CostPrice: parsePrice(req.CostPrice),
		SellPrice: parsePrice(req.SellPrice),
		Sector:    req.Sector,
		Image:     req.Image,
	}
	if item.Kind.TracksStock() {
		item.Stock = req.Stock
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.repo.Get(ctx, item.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if req.Kind != nil {
		existing.Kind = *req.Kind
	}
	if req.Code != nil {
		existing.Code = *req.Code
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.CostPrice != nil {
		existing.CostPrice = parsePrice(*req.CostPrice)
	}
	if req.SellPrice != nil {
		existing.SellPrice = parsePrice(*req.SellPrice)
	}
	if req.Stock != nil {
		if !existing.Kind.TracksStock() {
			return nil, ErrServiceHasNoStock
		}
		existing.Stock = *req.Stock
	}
	if req.Sector != nil {
		existing.Sector = req.Sector
	}
	if req.Image != nil {
		existing.Image = req.Image
	}
	if !existing.Kind.TracksStock() {
		existing.Stock = 0
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AdjustStock applies a signed manual correction to a product's stock level
// and returns the new level.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("get item: %w", err)
	}
	if !existing.Kind.TracksStock() {
		return 0, ErrServiceHasNoStock
	}
	return s.repo.AdjustStock(ctx, id, delta)
}
