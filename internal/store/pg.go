package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-registry/internal/domain"
	"github.com/feral-file/ff-registry/internal/store/schema"
	"github.com/feral-file/ff-registry/internal/types"
)

type pgStore struct {
	db *gorm.DB
	// inTx is set on the store handed to a Transact callback; reads then lock rows
	inTx bool
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Transact runs fn inside a database transaction. Asset, approval and listing reads made
// through the transaction take row locks (SELECT ... FOR UPDATE) so concurrent operations
// on the same asset are serialized.
func (s *pgStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx, inTx: true})
	})
}

// query returns a session bound to ctx, locking selected rows inside a transaction
func (s *pgStore) query(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if s.inTx {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// GetAsset retrieves an asset with its current owner
func (s *pgStore) GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	var asset schema.Asset
	err := s.query(ctx).Where("id = ?", int64(id)).First(&asset).Error //nolint:gosec,G115
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return types.AssetToDomain(&asset), nil
}

// GetApproval retrieves the approved identity of an asset
func (s *pgStore) GetApproval(ctx context.Context, id domain.AssetID) (common.Address, error) {
	var approval schema.Approval
	err := s.query(ctx).Where("asset_id = ?", int64(id)).First(&approval).Error //nolint:gosec,G115
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.Address{}, nil
		}
		return common.Address{}, fmt.Errorf("failed to get approval: %w", err)
	}

	return common.HexToAddress(approval.ApprovedAddress), nil
}

// GetListing retrieves the active listing of an asset
func (s *pgStore) GetListing(ctx context.Context, id domain.AssetID) (*domain.Listing, error) {
	var listing schema.Listing
	err := s.query(ctx).Where("asset_id = ?", int64(id)).First(&listing).Error //nolint:gosec,G115
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return types.ListingToDomain(&listing), nil
}

// GetBalance retrieves the credited balance of an identity
func (s *pgStore) GetBalance(ctx context.Context, address common.Address) (decimal.Decimal, error) {
	var balance schema.Balance
	err := s.db.WithContext(ctx).Where("address = ?", address.Hex()).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance.Amount, nil
}

// GetProvenanceEvents retrieves the history of an asset in ascending order
func (s *pgStore) GetProvenanceEvents(ctx context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.ProvenanceEvent{}).
		Where("asset_id = ?", int64(id)). //nolint:gosec,G115
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count provenance events: %w", err)
	}

	query := s.db.WithContext(ctx).
		Where("asset_id = ?", int64(id)). //nolint:gosec,G115
		Order("id ASC").
		Offset(int(offset)) //nolint:gosec,G115
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []schema.ProvenanceEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get provenance events: %w", err)
	}

	events := make([]domain.ProvenanceEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, types.ProvenanceEventToDomain(row))
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// CreateAsset inserts a new asset, relying on the primary key to reject duplicates
func (s *pgStore) CreateAsset(ctx context.Context, asset domain.Asset) error {
	row := schema.Asset{
		ID:           int64(asset.ID), //nolint:gosec,G115
		Name:         asset.Name,
		OwnerAddress: asset.Owner.Hex(),
		MintedAt:     asset.MintedAt,
		UpdatedAt:    asset.MintedAt,
	}

	// ON CONFLICT DO NOTHING turns a concurrent duplicate mint into zero affected rows
	// instead of aborting the surrounding transaction
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to create asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDuplicateAsset
	}

	return nil
}

// UpdateOwner sets the owner of an existing asset
func (s *pgStore) UpdateOwner(ctx context.Context, id domain.AssetID, owner common.Address) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Asset{}).
		Where("id = ?", int64(id)). //nolint:gosec,G115
		Updates(map[string]interface{}{
			"owner_address": owner.Hex(),
			"updated_at":    gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUnknownAsset
	}

	return nil
}

// SetApproval records or clears the approved identity of an asset
func (s *pgStore) SetApproval(ctx context.Context, id domain.AssetID, approved common.Address) error {
	if domain.IsZeroIdentity(approved) {
		err := s.db.WithContext(ctx).
			Where("asset_id = ?", int64(id)). //nolint:gosec,G115
			Delete(&schema.Approval{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear approval: %w", err)
		}
		return nil
	}

	approval := schema.Approval{
		AssetID:         int64(id), //nolint:gosec,G115
		ApprovedAddress: approved.Hex(),
		UpdatedAt:       time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"approved_address", "updated_at"}),
		}).
		Create(&approval).Error
	if err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}

	return nil
}

// UpsertListing inserts or overwrites the listing of an asset
func (s *pgStore) UpsertListing(ctx context.Context, listing domain.Listing) error {
	row := schema.Listing{
		AssetID:       int64(listing.AssetID), //nolint:gosec,G115
		SellerAddress: listing.Seller.Hex(),
		Price:         listing.Price,
		ListedAt:      listing.ListedAt,
	}
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seller_address", "price", "listed_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert listing: %w", err)
	}

	return nil
}

// DeleteListing removes the listing of an asset
func (s *pgStore) DeleteListing(ctx context.Context, id domain.AssetID) error {
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", int64(id)). //nolint:gosec,G115
		Delete(&schema.Listing{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}

// CreditBalance adds amount to the balance of an identity with a single upsert
func (s *pgStore) CreditBalance(ctx context.Context, address common.Address, amount decimal.Decimal) error {
	balance := schema.Balance{
		Address: address.Hex(),
		Amount:  amount,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":     gorm.Expr("balances.amount + EXCLUDED.amount"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	return nil
}

// CreateProvenanceEvent appends an event to the asset history
func (s *pgStore) CreateProvenanceEvent(ctx context.Context, event *domain.ProvenanceEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal provenance event: %w", err)
	}

	row := types.ProvenanceEventToSchema(*event)
	row.Raw = raw
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create provenance event: %w", err)
	}

	event.ID = row.ID
	return nil
}
