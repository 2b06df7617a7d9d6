package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items map[uuid.UUID]Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]Item)}
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListItemsRequest) ([]Item, int, error) {
	var out []Item
	for _, item := range r.items {
		if req.Kind != nil && item.Kind != *req.Kind {
			continue
		}
		if req.Search != nil && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(*req.Search)) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memoryRepo) Create(ctx context.Context, item Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, item Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	item, ok := r.items[id]
	if !ok || !item.Kind.TracksStock() {
		return 0, ErrNotFound
	}
	item.Stock += delta
	r.items[id] = item
	return item.Stock, nil
}

func TestCreateProductKeepsStock(t *testing.T) {
	svc := NewService(newMemoryRepo())

	item, err := svc.Create(context.Background(), CreateItemRequest{
		Kind:      KindProduct,
		Code:      "P-001",
		Name:      "Cabo flexível 2,5mm",
		CostPrice: "4.20",
		SellPrice: "7.90",
		Stock:     40,
	})
	require.NoError(t, err)
	require.Equal(t, int64(40), item.Stock)
	require.Equal(t, "7.9", item.SellPrice.String())
}

func TestCreateServiceIgnoresStock(t *testing.T) {
	svc := NewService(newMemoryRepo())

	item, err := svc.Create(context.Background(), CreateItemRequest{
		Kind:      KindService,
		Name:      "Instalação elétrica",
		SellPrice: "150",
		Stock:     99,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), item.Stock)
	require.False(t, item.Kind.TracksStock())
}

func TestInvalidPriceNormalisesToZero(t *testing.T) {
	svc := NewService(newMemoryRepo())

	item, err := svc.Create(context.Background(), CreateItemRequest{
		Kind:      KindProduct,
		Name:      "Item estranho",
		SellPrice: "-12",
		CostPrice: "abc",
	})
	require.NoError(t, err)
	require.True(t, item.SellPrice.IsZero())
	require.True(t, item.CostPrice.IsZero())
}

func TestAdjustStockRejectsServices(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	service, err := svc.Create(ctx, CreateItemRequest{Kind: KindService, Name: "Mão de obra", SellPrice: "80"})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, service.ID, 5)
	require.ErrorIs(t, err, ErrServiceHasNoStock)

	product, err := svc.Create(ctx, CreateItemRequest{Kind: KindProduct, Name: "Tomada", SellPrice: "9.5", Stock: 10})
	require.NoError(t, err)

	stock, err := svc.AdjustStock(ctx, product.ID, -4)
	require.NoError(t, err)
	require.Equal(t, int64(6), stock)
}

func TestUpdateKindToServiceZeroesStock(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{Kind: KindProduct, Name: "Visita técnica", SellPrice: "60", Stock: 3})
	require.NoError(t, err)

	kind := KindService
	updated, err := svc.Update(ctx, item.ID, UpdateItemRequest{Kind: &kind})
	require.NoError(t, err)
	require.Equal(t, KindService, updated.Kind)
	require.Equal(t, int64(0), updated.Stock)
}
