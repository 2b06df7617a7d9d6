package backup

import (
	"time"

	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
)

// snapshotVersion guards restores against payloads produced by incompatible
// releases.
const snapshotVersion = 1

// Snapshot is the full application state as one document. Restoring a
// snapshot replaces everything, not merges.
type Snapshot struct {
	Version       int                    `json:"version"`
	CreatedAt     time.Time              `json:"created_at"`
	Clients       []clients.Client       `json:"clients"`
	Items         []catalog.Item         `json:"items"`
	Quotes        []quotes.Quote         `json:"quotes"`
	QuoteSettings settings.QuoteSettings `json:"quote_settings"`
	CompanyInfo   *settings.CompanyInfo  `json:"company_info,omitempty"`
}
