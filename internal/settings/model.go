package settings

// QuoteSettings controls how quotes are built and presented. It is stored as
// a single JSON document, matching the one-user nature of the application.
type QuoteSettings struct {
	HeaderText             string   `json:"header_text"`
	FontFamily             string   `json:"font_family"`
	TextAlign              string   `json:"text_align" validate:"omitempty,oneof=left center right"`
	FontSize               int      `json:"font_size" validate:"gte=0,lte=72"`
	ShowDiscount           bool     `json:"show_discount"`
	AutoSaveDrafts         bool     `json:"auto_save_drafts"`
	ShowProductCode        bool     `json:"show_product_code"`
	ShowProductSector      bool     `json:"show_product_sector"`
	DefaultNotes           string   `json:"default_notes"`
	AllowQuoteWithoutStock bool     `json:"allow_quote_without_stock"`
	Sectors                []string `json:"sectors"`
	Theme                  string   `json:"theme"`
}

// DefaultQuoteSettings mirrors the defaults the original application boots
// with before any settings are saved.
func DefaultQuoteSettings() QuoteSettings {
	return QuoteSettings{
		FontFamily:             "sans-serif",
		TextAlign:              "left",
		FontSize:               14,
		ShowDiscount:           true,
		AllowQuoteWithoutStock: true,
		Sectors:                []string{},
		Theme:                  "sky",
	}
}

// CompanyInfo identifies the business issuing quotes.
type CompanyInfo struct {
	Name    string `json:"name" validate:"required,max=200"`
	CNPJ    string `json:"cnpj" validate:"max=20"`
	Address string `json:"address" validate:"max=300"`
	City    string `json:"city" validate:"max=120"`
	ZipCode string `json:"zip_code" validate:"max=20"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}
