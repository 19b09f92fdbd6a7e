package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-registry/internal/domain"
)

// Reader defines the read side of the registry state, queryable by asset id
type Reader interface {
	// GetAsset retrieves an asset with its current owner, nil if it was never minted
	GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	// GetApproval retrieves the approved identity of an asset, zero if none
	GetApproval(ctx context.Context, id domain.AssetID) (common.Address, error)
	// GetListing retrieves the active sale listing of an asset, nil if not for sale
	GetListing(ctx context.Context, id domain.AssetID) (*domain.Listing, error)
	// GetBalance retrieves the credited balance of an identity
	GetBalance(ctx context.Context, address common.Address) (decimal.Decimal, error)
	// GetProvenanceEvents retrieves the history of an asset in ascending order with the total count
	GetProvenanceEvents(ctx context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error)
}

// Tx is the read-write view of the state inside a transaction
type Tx interface {
	Reader
	// CreateAsset inserts a new asset, ErrDuplicateAsset if the id exists
	CreateAsset(ctx context.Context, asset domain.Asset) error
	// UpdateOwner sets the owner of an existing asset
	UpdateOwner(ctx context.Context, id domain.AssetID, owner common.Address) error
	// SetApproval records the approved identity of an asset, the zero address clears it
	SetApproval(ctx context.Context, id domain.AssetID, approved common.Address) error
	// UpsertListing inserts or overwrites the listing of an asset
	UpsertListing(ctx context.Context, listing domain.Listing) error
	// DeleteListing removes the listing of an asset
	DeleteListing(ctx context.Context, id domain.AssetID) error
	// CreditBalance adds amount to the balance of an identity
	CreditBalance(ctx context.Context, address common.Address, amount decimal.Decimal) error
	// CreateProvenanceEvent appends an event to the asset history and sets its ID
	CreateProvenanceEvent(ctx context.Context, event *domain.ProvenanceEvent) error
}

// Store defines the interface for registry persistence
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,Tx=MockTx,Reader=MockReader
type Store interface {
	Reader
	// Transact runs fn as one atomic unit: every write is applied if fn returns nil,
	// none is if fn returns an error. Transactions on the same store are serialized
	// per asset touched.
	Transact(ctx context.Context, fn func(tx Tx) error) error
}
