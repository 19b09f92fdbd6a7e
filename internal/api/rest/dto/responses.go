package dto

import (
	"time"

	"github.com/feral-file/ff-registry/internal/domain"
)

// AssetResponse represents an asset with its marketplace state
type AssetResponse struct {
	ID       domain.AssetID   `json:"id"`
	Name     string           `json:"name"`
	Owner    string           `json:"owner"`
	OwnerDID domain.DID       `json:"owner_did"`
	Approved *string          `json:"approved,omitempty"`
	Listing  *ListingResponse `json:"listing,omitempty"`
	MintedAt time.Time        `json:"minted_at"`
}

// ListingResponse represents an active listing
type ListingResponse struct {
	AssetID  domain.AssetID `json:"asset_id"`
	Seller   string         `json:"seller"`
	Price    string         `json:"price"`
	ListedAt time.Time      `json:"listed_at"`
}

// ProvenanceEventResponse represents one entry of an asset history
type ProvenanceEventResponse struct {
	ID            uint64           `json:"id"`
	AssetID       domain.AssetID   `json:"asset_id"`
	EventType     domain.EventType `json:"event_type"`
	From          *string          `json:"from,omitempty"`
	To            *string          `json:"to,omitempty"`
	Price         *string          `json:"price,omitempty"`
	Paid          *string          `json:"paid,omitempty"`
	CounterpartID *domain.AssetID  `json:"counterpart_id,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// ProvenanceResponse represents a page of provenance events
type ProvenanceResponse struct {
	Events []ProvenanceEventResponse `json:"events"`
	Offset uint64                    `json:"offset"`
	Total  uint64                    `json:"total"`
}

// BalanceResponse represents the proceeds credited to an identity
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}
