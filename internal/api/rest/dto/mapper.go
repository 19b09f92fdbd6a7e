package dto

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-registry/internal/domain"
)

// MapAssetToDTO converts an asset with its listing and approval to the response form
func MapAssetToDTO(asset *domain.Asset, listing *domain.Listing, approved common.Address) *AssetResponse {
	resp := &AssetResponse{
		ID:       asset.ID,
		Name:     asset.Name,
		Owner:    asset.Owner.Hex(),
		OwnerDID: domain.NewDID(asset.Owner, domain.DEFAULT_CHAIN),
		Approved: addressPtr(approved),
		MintedAt: asset.MintedAt,
	}
	if listing != nil {
		resp.Listing = MapListingToDTO(listing)
	}
	return resp
}

// MapListingToDTO converts a listing to the response form
func MapListingToDTO(listing *domain.Listing) *ListingResponse {
	return &ListingResponse{
		AssetID:  listing.AssetID,
		Seller:   listing.Seller.Hex(),
		Price:    listing.Price.String(),
		ListedAt: listing.ListedAt,
	}
}

// MapProvenanceEventToDTO converts a provenance event to the response form
func MapProvenanceEventToDTO(event domain.ProvenanceEvent) ProvenanceEventResponse {
	resp := ProvenanceEventResponse{
		ID:        event.ID,
		AssetID:   event.AssetID,
		EventType: event.EventType,
		From:      addressPtr(event.From),
		To:        addressPtr(event.To),
		Timestamp: event.Timestamp,
	}

	switch event.EventType {
	case domain.EventTypeList:
		price := event.Price.String()
		resp.Price = &price
	case domain.EventTypeSale:
		price := event.Price.String()
		paid := event.Paid.String()
		resp.Price = &price
		resp.Paid = &paid
	case domain.EventTypeExchange:
		counterpart := event.CounterpartID
		resp.CounterpartID = &counterpart
	}

	return resp
}

func addressPtr(address common.Address) *string {
	if domain.IsZeroIdentity(address) {
		return nil
	}
	hex := address.Hex()
	return &hex
}
