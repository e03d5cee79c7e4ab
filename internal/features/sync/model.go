package sync

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncedProduct is a catalog row owned by the synchronization engine.
// ExternalID is the remote catalog's stable product ID and the natural
// key for upsert: at most one row per external_id.
type SyncedProduct struct {
	ID           int64               `json:"id"`
	ExternalID   int64               `json:"external_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Brand        string              `json:"brand"`
	PriceUSD     decimal.Decimal     `json:"price_usd"`
	PriceCOP     decimal.NullDecimal `json:"price_cop"`
	Stock        int                 `json:"stock"`
	Rating       decimal.Decimal     `json:"rating"`
	ThumbnailURL string              `json:"thumbnail_url"`
	Active       bool                `json:"active"`
	SyncedAt     time.Time           `json:"synced_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// SyncResult summarizes one synchronization run.
type SyncResult struct {
	RunID        string          `json:"run_id"`
	Created      int             `json:"created"`
	Updated      int             `json:"updated"`
	Rate         decimal.Decimal `json:"rate"`
	FallbackRate bool            `json:"fallback_rate"`
}

// RemoteListing is a remote search hit decorated with its COP price.
// PriceCOP stays zero when no rate was available at query time.
type RemoteListing struct {
	ExternalID  int64           `json:"external_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	PriceUSD    decimal.Decimal `json:"price_usd"`
	PriceCOP    decimal.Decimal `json:"price_cop"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Stock       int             `json:"stock"`
	Rating      decimal.Decimal `json:"rating"`
	Thumbnail   string          `json:"thumbnail"`
}
