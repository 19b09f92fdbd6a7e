package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProvenanceEventType represents the type of registry event
type ProvenanceEventType string

const (
	// ProvenanceEventTypeMint indicates asset creation
	ProvenanceEventTypeMint ProvenanceEventType = "mint"
	// ProvenanceEventTypeList indicates the asset was put up for sale
	ProvenanceEventTypeList ProvenanceEventType = "list"
	// ProvenanceEventTypeApprove indicates a new approval grant
	ProvenanceEventTypeApprove ProvenanceEventType = "approve"
	// ProvenanceEventTypeTransfer indicates a direct ownership transfer
	ProvenanceEventTypeTransfer ProvenanceEventType = "transfer"
	// ProvenanceEventTypeSale indicates a settled purchase
	ProvenanceEventTypeSale ProvenanceEventType = "sale"
	// ProvenanceEventTypeExchange indicates one side of a pairwise swap
	ProvenanceEventTypeExchange ProvenanceEventType = "exchange"
)

// ProvenanceEvent represents the provenance_events table - append-only history per asset
type ProvenanceEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the asset this event relates to
	AssetID int64 `gorm:"column:asset_id;not null;index:idx_provenance_events_asset_id"`
	// EventType identifies the type of event
	EventType ProvenanceEventType `gorm:"column:event_type;not null;type:text"`
	// FromAddress is the previous owner (nil for mint, list and approve)
	FromAddress *string `gorm:"column:from_address;type:text"`
	// ToAddress is the new owner, approved identity or seller
	ToAddress *string `gorm:"column:to_address;type:text"`
	// Price is the listed or settled price
	Price *decimal.Decimal `gorm:"column:price;type:numeric(78,18)"`
	// Paid is the value attached by the buyer of a sale
	Paid *decimal.Decimal `gorm:"column:paid;type:numeric(78,18)"`
	// CounterpartID is the other asset of an exchange
	CounterpartID *int64 `gorm:"column:counterpart_id;type:bigint"`
	// Timestamp is when the event happened
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Raw contains the complete event as JSON
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ProvenanceEvent model
func (ProvenanceEvent) TableName() string {
	return "provenance_events"
}
