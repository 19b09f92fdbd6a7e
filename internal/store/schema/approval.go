package schema

import "time"

// Approval represents the approvals table - at most one approved identity per asset
type Approval struct {
	// AssetID references the approved asset
	AssetID int64 `gorm:"column:asset_id;primaryKey;autoIncrement:false"`
	// ApprovedAddress may move the asset on the owner's behalf
	ApprovedAddress string `gorm:"column:approved_address;not null;type:text"`
	// UpdatedAt is the timestamp of the most recent grant
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Approval model
func (Approval) TableName() string {
	return "approvals"
}
