package catalog

type CreateItemRequest struct {
	Kind      ItemKind `json:"kind" validate:"required,oneof=product service"`
	Code      string   `json:"code" validate:"max=40"`
	Name      string   `json:"name" validate:"required,max=200"`
	CostPrice string   `json:"cost_price" validate:"omitempty,numeric"`
	SellPrice string   `json:"sell_price" validate:"required,numeric"`
	Stock     int64    `json:"stock" validate:"gte=0"`
	Sector    *string  `json:"sector,omitempty" validate:"omitempty,max=80"`
	Image     *string  `json:"image,omitempty"`
}

type UpdateItemRequest struct {
	Kind      *ItemKind `json:"kind,omitempty" validate:"omitempty,oneof=product service"`
	Code      *string   `json:"code,omitempty" validate:"omitempty,max=40"`
	Name      *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	CostPrice *string   `json:"cost_price,omitempty" validate:"omitempty,numeric"`
	SellPrice *string   `json:"sell_price,omitempty" validate:"omitempty,numeric"`
	Stock     *int64    `json:"stock,omitempty"`
	Sector    *string   `json:"sector,omitempty" validate:"omitempty,max=80"`
	Image     *string   `json:"image,omitempty"`
}

// AdjustStockRequest moves an item's stock by a signed delta, for manual
// corrections outside the quote commit path.
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

type ListItemsRequest struct {
	Kind   *ItemKind `json:"kind,omitempty"`
	Sector *string   `json:"sector,omitempty"`
	Search *string   `json:"search,omitempty"`
	Limit  int       `json:"limit" validate:"gte=0,lte=1000"`
	Offset int       `json:"offset" validate:"gte=0"`
}
