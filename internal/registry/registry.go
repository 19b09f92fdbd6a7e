package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-registry/internal/domain"
)

// Registry is the asset registry with its embedded marketplace.
//
// Every state-changing operation takes the caller identity explicitly and either applies
// all of its effects or none of them. Errors returned for rejected operations are the
// sentinels of the domain package and can be compared with errors.Is.
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=Registry=MockRegistry
type Registry interface {
	// Mint creates a new asset owned by caller
	Mint(ctx context.Context, id domain.AssetID, name string, caller common.Address) (*domain.Asset, error)
	// ListForSale puts an owned asset up for sale, overwriting any previous listing
	ListForSale(ctx context.Context, id domain.AssetID, price decimal.Decimal, caller common.Address) (*domain.Listing, error)
	// Purchase buys a listed asset, crediting the previous owner exactly the listed price
	Purchase(ctx context.Context, id domain.AssetID, caller common.Address, paid decimal.Decimal) error
	// Transfer moves an owned asset to another identity
	Transfer(ctx context.Context, to common.Address, id domain.AssetID, caller common.Address) error
	// Exchange swaps the owners of two assets
	Exchange(ctx context.Context, idA, idB domain.AssetID, caller common.Address) error
	// Approve grants one identity the right to move an owned asset, the zero address revokes it
	Approve(ctx context.Context, to common.Address, id domain.AssetID, caller common.Address) error

	// Lookup returns the name of an asset
	Lookup(ctx context.Context, id domain.AssetID) (string, error)
	// OwnerOf returns the current owner of an asset
	OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error)
	// GetAsset returns an asset with its current owner
	GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	// Listing returns the active listing of an asset, nil when it is not for sale
	Listing(ctx context.Context, id domain.AssetID) (*domain.Listing, error)
	// Approved returns the approved identity of an asset, zero when none
	Approved(ctx context.Context, id domain.AssetID) (common.Address, error)
	// BalanceOf returns the amount credited to an identity by sales
	BalanceOf(ctx context.Context, address common.Address) (decimal.Decimal, error)
	// Provenance returns a page of the asset history with the total number of events
	Provenance(ctx context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error)
}

// Config holds the engine options
type Config struct {
	// ClearConsumedApprovals revokes the approval of an asset whenever its owner changes.
	// When false, approvals are kept across ownership changes.
	ClearConsumedApprovals bool
}
