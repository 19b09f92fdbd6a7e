package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-registry/internal/domain"
	"github.com/feral-file/ff-registry/internal/store/schema"
)

// EventTypeToProvenanceEventType converts a domain event type to a provenance event type
func EventTypeToProvenanceEventType(eventType domain.EventType) schema.ProvenanceEventType {
	switch eventType {
	case domain.EventTypeMint:
		return schema.ProvenanceEventTypeMint
	case domain.EventTypeList:
		return schema.ProvenanceEventTypeList
	case domain.EventTypeApprove:
		return schema.ProvenanceEventTypeApprove
	case domain.EventTypeSale:
		return schema.ProvenanceEventTypeSale
	case domain.EventTypeExchange:
		return schema.ProvenanceEventTypeExchange
	default:
		return schema.ProvenanceEventTypeTransfer
	}
}

// ProvenanceEventTypeToEventType converts a provenance event type back to a domain event type
func ProvenanceEventTypeToEventType(eventType schema.ProvenanceEventType) domain.EventType {
	switch eventType {
	case schema.ProvenanceEventTypeMint:
		return domain.EventTypeMint
	case schema.ProvenanceEventTypeList:
		return domain.EventTypeList
	case schema.ProvenanceEventTypeApprove:
		return domain.EventTypeApprove
	case schema.ProvenanceEventTypeSale:
		return domain.EventTypeSale
	case schema.ProvenanceEventTypeExchange:
		return domain.EventTypeExchange
	default:
		return domain.EventTypeTransfer
	}
}

// AssetToDomain converts an assets row to a domain asset
func AssetToDomain(a *schema.Asset) *domain.Asset {
	if a == nil {
		return nil
	}
	return &domain.Asset{
		ID:       domain.AssetID(a.ID), //nolint:gosec,G115 // ids are validated to be positive
		Name:     a.Name,
		Owner:    common.HexToAddress(a.OwnerAddress),
		MintedAt: a.MintedAt.UTC(),
	}
}

// ListingToDomain converts a listings row to a domain listing
func ListingToDomain(l *schema.Listing) *domain.Listing {
	if l == nil {
		return nil
	}
	return &domain.Listing{
		AssetID:  domain.AssetID(l.AssetID), //nolint:gosec,G115
		Seller:   common.HexToAddress(l.SellerAddress),
		Price:    l.Price,
		ListedAt: l.ListedAt.UTC(),
	}
}

// ProvenanceEventToSchema converts a domain provenance event to a provenance_events row
func ProvenanceEventToSchema(e domain.ProvenanceEvent) schema.ProvenanceEvent {
	row := schema.ProvenanceEvent{
		AssetID:     int64(e.AssetID), //nolint:gosec,G115
		EventType:   EventTypeToProvenanceEventType(e.EventType),
		FromAddress: addressPtr(e.From),
		ToAddress:   addressPtr(e.To),
		Timestamp:   e.Timestamp,
	}
	if !e.Price.IsZero() {
		price := e.Price
		row.Price = &price
	}
	if !e.Paid.IsZero() {
		paid := e.Paid
		row.Paid = &paid
	}
	if e.CounterpartID.Valid() {
		counterpart := int64(e.CounterpartID) //nolint:gosec,G115
		row.CounterpartID = &counterpart
	}
	return row
}

// ProvenanceEventToDomain converts a provenance_events row to a domain provenance event
func ProvenanceEventToDomain(row schema.ProvenanceEvent) domain.ProvenanceEvent {
	e := domain.ProvenanceEvent{
		ID:        row.ID,
		AssetID:   domain.AssetID(row.AssetID), //nolint:gosec,G115
		EventType: ProvenanceEventTypeToEventType(row.EventType),
		Timestamp: row.Timestamp.UTC(),
	}
	if row.FromAddress != nil {
		e.From = common.HexToAddress(*row.FromAddress)
	}
	if row.ToAddress != nil {
		e.To = common.HexToAddress(*row.ToAddress)
	}
	if row.Price != nil {
		e.Price = *row.Price
	}
	if row.Paid != nil {
		e.Paid = *row.Paid
	}
	if row.CounterpartID != nil {
		e.CounterpartID = domain.AssetID(*row.CounterpartID) //nolint:gosec,G115
	}
	return e
}

// TruncateTimestamp drops sub-microsecond precision, matching timestamptz
func TruncateTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func addressPtr(address common.Address) *string {
	if domain.IsZeroIdentity(address) {
		return nil
	}
	s := address.Hex()
	return &s
}
