package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing represents the listings table - present only while an asset is for sale
type Listing struct {
	// AssetID references the listed asset
	AssetID int64 `gorm:"column:asset_id;primaryKey;autoIncrement:false"`
	// SellerAddress is the owner that created the listing
	SellerAddress string `gorm:"column:seller_address;not null;type:text"`
	// Price is the asking price
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(78,18)"`
	// ListedAt is the timestamp of the latest listing
	ListedAt time.Time `gorm:"column:listed_at;not null;type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
