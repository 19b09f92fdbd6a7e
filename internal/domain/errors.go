package domain

import "errors"

var (
	// ErrDuplicateAsset is returned when minting an asset ID that already exists
	ErrDuplicateAsset = errors.New("asset already exists")

	// ErrUnknownAsset is returned when an asset ID was never minted
	ErrUnknownAsset = errors.New("asset not found")

	// ErrNotOwner is returned when an owner-only operation is called by someone else
	ErrNotOwner = errors.New("caller is not the asset owner")

	// ErrUnauthorized is returned when the caller is neither the owner nor the approved identity
	ErrUnauthorized = errors.New("caller is not authorized to move the asset")

	// ErrNotForSale is returned when purchasing an asset without an active listing
	ErrNotForSale = errors.New("asset is not for sale")

	// ErrInvalidPrice is returned when a listing price is not positive
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInsufficientPayment is returned when the paid value is below the listed price
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrInvalidRecipient is returned when the recipient is the zero identity
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInvalidAssetID is returned for the zero asset ID
	ErrInvalidAssetID = errors.New("asset id must be positive")

	// ErrInvalidName is returned when minting with an empty name
	ErrInvalidName = errors.New("asset name must not be empty")

	// ErrInvalidExchange is returned when both sides of an exchange are the same asset
	ErrInvalidExchange = errors.New("cannot exchange an asset with itself")
)

// ErrInvalidIdentity is returned when an identity string is neither an address nor a supported DID
var ErrInvalidIdentity = errors.New("invalid identity")
