package schema

import (
	"time"
)

// Asset represents the assets table - the asset record and the ownership map in one row
type Asset struct {
	// ID is the caller-assigned asset identifier
	ID int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Name is the label given at mint time, immutable afterwards
	Name string `gorm:"column:name;not null;type:text"`
	// OwnerAddress is the checksummed address of the current owner
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index:idx_assets_owner_address"`
	// MintedAt is the timestamp of the mint
	MintedAt time.Time `gorm:"column:minted_at;not null;type:timestamptz"`
	// UpdatedAt is the timestamp of the last ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
