package dto

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	apierrors "github.com/feral-file/ff-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-registry/internal/domain"
)

// MintAssetRequest represents the request body for minting an asset
type MintAssetRequest struct {
	ID   domain.AssetID `json:"id"`
	Name string         `json:"name"`
}

// Validate validates the request body
func (r *MintAssetRequest) Validate() error {
	if !r.ID.Valid() {
		return apierrors.NewValidationError(domain.ErrInvalidAssetID.Error())
	}
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	return nil
}

// ListAssetRequest represents the request body for listing an asset for sale
type ListAssetRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// Validate validates the request body
func (r *ListAssetRequest) Validate() error {
	if r.Price == nil {
		return apierrors.NewValidationError("price is required")
	}
	return nil
}

// PurchaseAssetRequest represents the request body for purchasing an asset.
// Value is the payment attached to the purchase.
type PurchaseAssetRequest struct {
	Value *decimal.Decimal `json:"value"`
}

// Validate validates the request body
func (r *PurchaseAssetRequest) Validate() error {
	if r.Value == nil {
		return apierrors.NewValidationError("value is required")
	}
	if r.Value.IsNegative() {
		return apierrors.NewValidationError("value must not be negative")
	}
	if !domain.ValidAmount(*r.Value) {
		return apierrors.NewValidationError(fmt.Sprintf("value must have at most %d decimals and %d integer digits", domain.AMOUNT_SCALE, domain.AMOUNT_INTEGER_DIGITS))
	}
	return nil
}

// RecipientRequest represents the request body of transfer and approve
type RecipientRequest struct {
	To string `json:"to"`
}

// Recipient parses the recipient identity. An empty value is the zero identity.
func (r *RecipientRequest) Recipient() (common.Address, error) {
	if r.To == "" {
		return common.Address{}, nil
	}
	address, err := domain.ParseIdentity(r.To)
	if err != nil {
		return common.Address{}, apierrors.NewValidationError(err.Error())
	}
	return address, nil
}

// ExchangeAssetsRequest represents the request body for swapping the owners of two assets
type ExchangeAssetsRequest struct {
	AssetA domain.AssetID `json:"asset_a"`
	AssetB domain.AssetID `json:"asset_b"`
}

// Validate validates the request body
func (r *ExchangeAssetsRequest) Validate() error {
	if r.AssetA == 0 || r.AssetB == 0 {
		return apierrors.NewValidationError("asset_a and asset_b are required")
	}
	return nil
}
