package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents the balances table - proceeds credited to sellers
type Balance struct {
	// Address is the credited identity
	Address string `gorm:"column:address;primaryKey;type:text"`
	// Amount is the accumulated credit
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,18);default:0"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
