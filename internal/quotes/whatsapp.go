package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/orcamenta/orcamenta/internal/settings"
)

// ErrClientHasNoPhone indicates a WhatsApp export for a client without a
// registered phone number.
var ErrClientHasNoPhone = errors.New("quotes: client has no phone number")

// QuoteSettingsSource provides the presentation flags and company identity
// used when rendering a quote for sending.
type QuoteSettingsSource interface {
	QuoteSettings(ctx context.Context) (settings.QuoteSettings, error)
	CompanyInfo(ctx context.Context) (settings.CompanyInfo, error)
}

// WhatsAppMessage is a rendered quote summary plus the wa.me link that opens
// it in a chat with the client.
type WhatsAppMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// WhatsAppExporter renders committed quotes as pt-BR WhatsApp messages.
type WhatsAppExporter struct {
	clients  ClientDirectory
	settings QuoteSettingsSource
	printer  *message.Printer
}

func NewWhatsAppExporter(dir ClientDirectory, src QuoteSettingsSource) *WhatsAppExporter {
	return &WhatsAppExporter{
		clients:  dir,
		settings: src,
		printer:  message.NewPrinter(language.BrazilianPortuguese),
	}
}

// amount renders a decimal as Brazilian currency, e.g. "R$ 1.234,56".
func (e *WhatsAppExporter) amount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return e.printer.Sprintf("R$ %v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// normalizePhone strips formatting and applies the Brazil country code when
// the number looks like a bare area code plus subscriber number.
func normalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if phone == "" {
		return "", ErrClientHasNoPhone
	}
	if len(phone) >= 10 && len(phone) <= 11 {
		phone = "55" + phone
	}
	return phone, nil
}

// Export renders the quote summary and the wa.me link for its client.
func (e *WhatsAppExporter) Export(ctx context.Context, quote *Quote) (*WhatsAppMessage, error) {
	client, err := e.clients.Get(ctx, quote.ClientID)
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}
	phone, err := normalizePhone(client.Phone)
	if err != nil {
		return nil, err
	}

	qs, err := e.settings.QuoteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quote settings: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Olá *%s*, aqui está o resumo do seu orçamento (%s):\n\n",
		client.Name, quote.CreatedAt.Format("02/01/2006"))
	for _, line := range quote.Lines {
		fmt.Fprintf(&b, "• %dx %s: %s\n", line.Quantity, line.Name, e.amount(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))))
	}
	if qs.ShowDiscount && quote.Totals.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "\nSubtotal: %s", e.amount(quote.Totals.Subtotal))
		fmt.Fprintf(&b, "\nDesconto: - %s", e.amount(quote.Totals.DiscountAmount))
	}
	fmt.Fprintf(&b, "\n*Total: %s*", e.amount(quote.Totals.FinalTotal))

	info, err := e.settings.CompanyInfo(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		return nil, fmt.Errorf("load company info: %w", err)
	}
	if info.Name != "" {
		fmt.Fprintf(&b, "\n\nAtt, *%s*", info.Name)
	}

	text := b.String()
	// wa.me expects %20 for spaces, not the form-encoding plus sign.
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return &WhatsAppMessage{
		Phone:   phone,
		Message: text,
		URL:     "https://wa.me/" + phone + "?text=" + escaped,
	}, nil
}
