package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// AssetID is the caller-assigned identifier of an asset.
// Valid IDs are in [1, math.MaxInt64] so they fit a Postgres bigint.
type AssetID uint64

// ParseAssetID parses a decimal asset ID, rejecting zero
func ParseAssetID(s string) (AssetID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAssetID, s)
	}
	id := AssetID(n)
	if !id.Valid() {
		return 0, ErrInvalidAssetID
	}
	return id, nil
}

// Valid reports whether the ID is positive and within the bigint range
func (id AssetID) Valid() bool {
	return id > 0 && id <= math.MaxInt64
}

// String returns the decimal representation of the ID
func (id AssetID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Asset is a uniquely identified, named unit of ownership
type Asset struct {
	ID       AssetID        `json:"id"`
	Name     string         `json:"name"`
	Owner    common.Address `json:"owner"`
	MintedAt time.Time      `json:"minted_at"`
}

const (
	// AMOUNT_SCALE is the number of fractional digits an amount may carry
	AMOUNT_SCALE = 18
	// AMOUNT_INTEGER_DIGITS is the number of integer digits an amount may carry
	AMOUNT_INTEGER_DIGITS = 60
)

var maxAmount = decimal.New(1, AMOUNT_INTEGER_DIGITS)

// ValidAmount reports whether a price or payment fits numeric(78,18) without rounding
func ValidAmount(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(AMOUNT_SCALE)) && amount.Abs().LessThan(maxAmount)
}

// Listing is an owner-created offer to sell an asset at a fixed price
type Listing struct {
	AssetID  AssetID         `json:"asset_id"`
	Seller   common.Address  `json:"seller"`
	Price    decimal.Decimal `json:"price"`
	ListedAt time.Time       `json:"listed_at"`
}

// EventType represents the kind of registry state change
type EventType string

const (
	EventTypeMint     EventType = "mint"
	EventTypeList     EventType = "list"
	EventTypeApprove  EventType = "approve"
	EventTypeTransfer EventType = "transfer"
	EventTypeSale     EventType = "sale"
	EventTypeExchange EventType = "exchange"
)

// ProvenanceEvent is one entry of an asset's history.
// From/To are zero when not applicable (e.g. From on mint), Price/Paid are zero outside
// list and sale events, and CounterpartID is only set on exchange events.
type ProvenanceEvent struct {
	ID            uint64          `json:"id"`
	AssetID       AssetID         `json:"asset_id"`
	EventType     EventType       `json:"event_type"`
	From          common.Address  `json:"from"`
	To            common.Address  `json:"to"`
	Price         decimal.Decimal `json:"price"`
	Paid          decimal.Decimal `json:"paid"`
	CounterpartID AssetID         `json:"counterpart_id,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// RegistryEvent is the normalized notification published after a committed state change
type RegistryEvent struct {
	ID            string    `json:"id"`                       // ULID, also used as the message de-duplication id
	EventType     EventType `json:"event_type"`               // mint, list, approve, transfer, sale, exchange
	AssetID       AssetID   `json:"asset_id"`                 // asset the event is about
	CounterpartID AssetID   `json:"counterpart_id,omitempty"` // other asset of an exchange
	From          *string   `json:"from"`                     // previous owner (nil for mint)
	To            *string   `json:"to"`                       // new owner, approved identity or seller
	Price         *string   `json:"price,omitempty"`          // listed or settled price
	Timestamp     time.Time `json:"timestamp"`
}

// NewRegistryEvent converts a provenance entry into its published form
func NewRegistryEvent(id string, event ProvenanceEvent) *RegistryEvent {
	e := &RegistryEvent{
		ID:            id,
		EventType:     event.EventType,
		AssetID:       event.AssetID,
		CounterpartID: event.CounterpartID,
		Timestamp:     event.Timestamp,
	}
	if !IsZeroIdentity(event.From) {
		from := event.From.Hex()
		e.From = &from
	}
	if !IsZeroIdentity(event.To) {
		to := event.To.Hex()
		e.To = &to
	}
	if event.EventType == EventTypeList || event.EventType == EventTypeSale {
		price := event.Price.String()
		e.Price = &price
	}
	return e
}

// Subject returns the message subject for the event, e.g. registry.sale
func (e *RegistryEvent) Subject() string {
	return fmt.Sprintf("registry.%s", e.EventType)
}
