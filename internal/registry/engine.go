package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-registry/internal/adapter"
	"github.com/feral-file/ff-registry/internal/domain"
	"github.com/feral-file/ff-registry/internal/logger"
	"github.com/feral-file/ff-registry/internal/messaging"
	"github.com/feral-file/ff-registry/internal/store"
	"github.com/feral-file/ff-registry/internal/types"
)

type engine struct {
	config    Config
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates a registry backed by the given store.
// Committed changes are announced through the publisher; pass messaging.NewNopPublisher()
// when no broker is configured.
func New(cfg Config, st store.Store, publisher messaging.Publisher, clock adapter.Clock) Registry {
	return &engine{
		config:    cfg,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
}

// journal collects the provenance events written inside one transaction
type journal struct {
	events []domain.ProvenanceEvent
}

func (j *journal) record(ctx context.Context, tx store.Tx, event domain.ProvenanceEvent) error {
	if err := tx.CreateProvenanceEvent(ctx, &event); err != nil {
		return err
	}
	j.events = append(j.events, event)
	return nil
}

// transact runs fn in one store transaction and publishes the recorded events once it commits
func (e *engine) transact(ctx context.Context, fn func(tx store.Tx, j *journal) error) error {
	var j journal
	err := e.store.Transact(ctx, func(tx store.Tx) error {
		j = journal{}
		return fn(tx, &j)
	})
	if err != nil {
		return err
	}

	// the change is committed, so events go out even if the caller has gone away
	publishCtx := context.WithoutCancel(ctx)
	for _, event := range j.events {
		e.publish(publishCtx, event)
	}
	return nil
}

func (e *engine) publish(ctx context.Context, event domain.ProvenanceEvent) {
	logger.InfoCtx(ctx, "Registry state changed",
		zap.String("event_type", string(event.EventType)),
		zap.Stringer("asset_id", event.AssetID),
		zap.String("to", event.To.Hex()))

	registryEvent := domain.NewRegistryEvent(ulid.MustNewDefault(event.Timestamp).String(), event)
	if err := e.publisher.PublishEvent(ctx, registryEvent); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish registry event: %w", err),
			zap.String("subject", registryEvent.Subject()),
			zap.String("event_id", registryEvent.ID))
	}
}

func (e *engine) now() time.Time {
	return types.TruncateTimestamp(e.clock.Now())
}

// getAsset reads an asset, failing with ErrUnknownAsset when it was never minted
func getAsset(ctx context.Context, r store.Reader, id domain.AssetID) (*domain.Asset, error) {
	if !id.Valid() {
		return nil, domain.ErrUnknownAsset
	}
	asset, err := r.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrUnknownAsset
	}
	return asset, nil
}

// authorized reports whether caller may move the asset: it owns it or holds its approval
func authorized(ctx context.Context, tx store.Tx, asset *domain.Asset, caller common.Address) (bool, error) {
	if domain.IsZeroIdentity(caller) {
		return false, nil
	}
	if asset.Owner == caller {
		return true, nil
	}
	approved, err := tx.GetApproval(ctx, asset.ID)
	if err != nil {
		return false, err
	}
	return approved == caller, nil
}

// changeOwner moves the asset and, when configured, drops the approval made by the previous owner
func (e *engine) changeOwner(ctx context.Context, tx store.Tx, id domain.AssetID, owner common.Address) error {
	if err := tx.UpdateOwner(ctx, id, owner); err != nil {
		return err
	}
	if e.config.ClearConsumedApprovals {
		return tx.SetApproval(ctx, id, common.Address{})
	}
	return nil
}

func (e *engine) Mint(ctx context.Context, id domain.AssetID, name string, caller common.Address) (*domain.Asset, error) {
	if !id.Valid() {
		return nil, domain.ErrInvalidAssetID
	}
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if domain.IsZeroIdentity(caller) {
		return nil, domain.ErrUnauthorized
	}

	asset := domain.Asset{
		ID:       id,
		Name:     name,
		Owner:    caller,
		MintedAt: e.now(),
	}

	err := e.transact(ctx, func(tx store.Tx, j *journal) error {
		if err := tx.CreateAsset(ctx, asset); err != nil {
			return err
		}
		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:   id,
			EventType: domain.EventTypeMint,
			To:        caller,
			Timestamp: asset.MintedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

func (e *engine) ListForSale(ctx context.Context, id domain.AssetID, price decimal.Decimal, caller common.Address) (*domain.Listing, error) {
	listing := domain.Listing{
		AssetID:  id,
		Seller:   caller,
		Price:    price,
		ListedAt: e.now(),
	}

	err := e.transact(ctx, func(tx store.Tx, j *journal) error {
		asset, err := getAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		if asset.Owner != caller {
			return domain.ErrNotOwner
		}
		if !price.IsPositive() || !domain.ValidAmount(price) {
			return domain.ErrInvalidPrice
		}

		if err := tx.UpsertListing(ctx, listing); err != nil {
			return err
		}
		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:   id,
			EventType: domain.EventTypeList,
			To:        caller,
			Price:     price,
			Timestamp: listing.ListedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

func (e *engine) Purchase(ctx context.Context, id domain.AssetID, caller common.Address, paid decimal.Decimal) error {
	now := e.now()

	return e.transact(ctx, func(tx store.Tx, j *journal) error {
		if !id.Valid() {
			return domain.ErrNotForSale
		}
		listing, err := tx.GetListing(ctx, id)
		if err != nil {
			return err
		}
		if listing == nil {
			return domain.ErrNotForSale
		}
		if !domain.ValidAmount(paid) {
			return domain.ErrInvalidPrice
		}
		if paid.LessThan(listing.Price) {
			return domain.ErrInsufficientPayment
		}

		asset, err := getAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		ok, err := authorized(ctx, tx, asset, caller)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUnauthorized
		}

		// the current owner is paid, which differs from the seller when the
		// asset was transferred after being listed
		previousOwner := asset.Owner
		if err := e.changeOwner(ctx, tx, id, caller); err != nil {
			return err
		}
		if err := tx.CreditBalance(ctx, previousOwner, listing.Price); err != nil {
			return err
		}
		if err := tx.DeleteListing(ctx, id); err != nil {
			return err
		}

		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:   id,
			EventType: domain.EventTypeSale,
			From:      previousOwner,
			To:        caller,
			Price:     listing.Price,
			Paid:      paid,
			Timestamp: now,
		})
	})
}

func (e *engine) Transfer(ctx context.Context, to common.Address, id domain.AssetID, caller common.Address) error {
	now := e.now()

	return e.transact(ctx, func(tx store.Tx, j *journal) error {
		asset, err := getAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		if asset.Owner != caller {
			return domain.ErrNotOwner
		}
		if domain.IsZeroIdentity(to) {
			return domain.ErrInvalidRecipient
		}

		if err := e.changeOwner(ctx, tx, id, to); err != nil {
			return err
		}
		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:   id,
			EventType: domain.EventTypeTransfer,
			From:      caller,
			To:        to,
			Timestamp: now,
		})
	})
}

func (e *engine) Exchange(ctx context.Context, idA, idB domain.AssetID, caller common.Address) error {
	if idA == idB {
		return domain.ErrInvalidExchange
	}
	now := e.now()

	return e.transact(ctx, func(tx store.Tx, j *journal) error {
		// rows are locked in ascending id order so concurrent exchanges cannot deadlock
		first, second := idA, idB
		if second < first {
			first, second = second, first
		}
		assets := make(map[domain.AssetID]*domain.Asset, 2)
		for _, id := range []domain.AssetID{first, second} {
			asset, err := getAsset(ctx, tx, id)
			if err != nil {
				return err
			}
			assets[id] = asset
		}

		for _, id := range []domain.AssetID{idA, idB} {
			ok, err := authorized(ctx, tx, assets[id], caller)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUnauthorized
			}
		}

		ownerA, ownerB := assets[idA].Owner, assets[idB].Owner
		if err := e.changeOwner(ctx, tx, idA, ownerB); err != nil {
			return err
		}
		if err := e.changeOwner(ctx, tx, idB, ownerA); err != nil {
			return err
		}

		if err := j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:       idA,
			EventType:     domain.EventTypeExchange,
			From:          ownerA,
			To:            ownerB,
			CounterpartID: idB,
			Timestamp:     now,
		}); err != nil {
			return err
		}
		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:       idB,
			EventType:     domain.EventTypeExchange,
			From:          ownerB,
			To:            ownerA,
			CounterpartID: idA,
			Timestamp:     now,
		})
	})
}

func (e *engine) Approve(ctx context.Context, to common.Address, id domain.AssetID, caller common.Address) error {
	now := e.now()

	return e.transact(ctx, func(tx store.Tx, j *journal) error {
		asset, err := getAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		if asset.Owner != caller {
			return domain.ErrNotOwner
		}
		if to == asset.Owner {
			return domain.ErrInvalidRecipient
		}

		if err := tx.SetApproval(ctx, id, to); err != nil {
			return err
		}
		return j.record(ctx, tx, domain.ProvenanceEvent{
			AssetID:   id,
			EventType: domain.EventTypeApprove,
			From:      caller,
			To:        to,
			Timestamp: now,
		})
	})
}

func (e *engine) Lookup(ctx context.Context, id domain.AssetID) (string, error) {
	asset, err := getAsset(ctx, e.store, id)
	if err != nil {
		return "", err
	}
	return asset.Name, nil
}

func (e *engine) OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error) {
	asset, err := getAsset(ctx, e.store, id)
	if err != nil {
		return common.Address{}, err
	}
	return asset.Owner, nil
}

func (e *engine) GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	return getAsset(ctx, e.store, id)
}

func (e *engine) Listing(ctx context.Context, id domain.AssetID) (*domain.Listing, error) {
	if _, err := getAsset(ctx, e.store, id); err != nil {
		return nil, err
	}
	return e.store.GetListing(ctx, id)
}

func (e *engine) Approved(ctx context.Context, id domain.AssetID) (common.Address, error) {
	if _, err := getAsset(ctx, e.store, id); err != nil {
		return common.Address{}, err
	}
	return e.store.GetApproval(ctx, id)
}

func (e *engine) BalanceOf(ctx context.Context, address common.Address) (decimal.Decimal, error) {
	return e.store.GetBalance(ctx, address)
}

func (e *engine) Provenance(ctx context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error) {
	if _, err := getAsset(ctx, e.store, id); err != nil {
		return nil, 0, err
	}
	return e.store.GetProvenanceEvents(ctx, id, limit, offset)
}
