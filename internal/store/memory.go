package store

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-registry/internal/domain"
)

// State is the registry state held in memory: one map per table
type State struct {
	Assets     map[domain.AssetID]domain.Asset
	Owners     map[domain.AssetID]common.Address
	Approvals  map[domain.AssetID]common.Address
	Listings   map[domain.AssetID]domain.Listing
	Balances   map[common.Address]decimal.Decimal
	Provenance map[domain.AssetID][]domain.ProvenanceEvent

	nextEventID uint64
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		Assets:     make(map[domain.AssetID]domain.Asset),
		Owners:     make(map[domain.AssetID]common.Address),
		Approvals:  make(map[domain.AssetID]common.Address),
		Listings:   make(map[domain.AssetID]domain.Listing),
		Balances:   make(map[common.Address]decimal.Decimal),
		Provenance: make(map[domain.AssetID][]domain.ProvenanceEvent),
	}
}

type memoryStore struct {
	mu    sync.Mutex
	state *State
}

// NewMemoryStore creates a store that keeps the whole registry in process memory.
// Each instance is independent of every other.
func NewMemoryStore() Store {
	return &memoryStore{state: NewState()}
}

// Transact runs fn holding the store lock. Writes are journaled and undone in
// reverse order when fn fails or panics; a panic is re-raised after the rollback.
func (s *memoryStore) Transact(ctx context.Context, fn func(tx Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{memoryReader: memoryReader{state: s.state}}
	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *memoryStore) GetAsset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryReader{state: s.state}.GetAsset(ctx, id)
}

func (s *memoryStore) GetApproval(ctx context.Context, id domain.AssetID) (common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryReader{state: s.state}.GetApproval(ctx, id)
}

func (s *memoryStore) GetListing(ctx context.Context, id domain.AssetID) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryReader{state: s.state}.GetListing(ctx, id)
}

func (s *memoryStore) GetBalance(ctx context.Context, address common.Address) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryReader{state: s.state}.GetBalance(ctx, address)
}

func (s *memoryStore) GetProvenanceEvents(ctx context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryReader{state: s.state}.GetProvenanceEvents(ctx, id, limit, offset)
}

// memoryReader reads the state without locking; callers hold the store lock
type memoryReader struct {
	state *State
}

func (r memoryReader) GetAsset(_ context.Context, id domain.AssetID) (*domain.Asset, error) {
	asset, ok := r.state.Assets[id]
	if !ok {
		return nil, nil
	}
	asset.Owner = r.state.Owners[id]
	return &asset, nil
}

func (r memoryReader) GetApproval(_ context.Context, id domain.AssetID) (common.Address, error) {
	return r.state.Approvals[id], nil
}

func (r memoryReader) GetListing(_ context.Context, id domain.AssetID) (*domain.Listing, error) {
	listing, ok := r.state.Listings[id]
	if !ok {
		return nil, nil
	}
	return &listing, nil
}

func (r memoryReader) GetBalance(_ context.Context, address common.Address) (decimal.Decimal, error) {
	return r.state.Balances[address], nil
}

func (r memoryReader) GetProvenanceEvents(_ context.Context, id domain.AssetID, limit int, offset uint64) ([]domain.ProvenanceEvent, uint64, error) {
	events := r.state.Provenance[id]
	total := uint64(len(events))
	if offset >= total {
		return []domain.ProvenanceEvent{}, total, nil
	}

	end := total
	if limit > 0 && offset+uint64(limit) < total {
		end = offset + uint64(limit)
	}

	page := make([]domain.ProvenanceEvent, end-offset)
	copy(page, events[offset:end])
	return page, total, nil
}

// memoryTx applies writes directly to the state and records how to undo each one
type memoryTx struct {
	memoryReader
	undo []func()
}

func (t *memoryTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memoryTx) CreateAsset(_ context.Context, asset domain.Asset) error {
	if _, ok := t.state.Assets[asset.ID]; ok {
		return domain.ErrDuplicateAsset
	}

	owner := asset.Owner
	asset.Owner = common.Address{}
	t.state.Assets[asset.ID] = asset
	t.state.Owners[asset.ID] = owner
	t.undo = append(t.undo, func() {
		delete(t.state.Assets, asset.ID)
		delete(t.state.Owners, asset.ID)
	})
	return nil
}

func (t *memoryTx) UpdateOwner(_ context.Context, id domain.AssetID, owner common.Address) error {
	previous, ok := t.state.Owners[id]
	if !ok {
		return domain.ErrUnknownAsset
	}

	t.state.Owners[id] = owner
	t.undo = append(t.undo, func() { t.state.Owners[id] = previous })
	return nil
}

func (t *memoryTx) SetApproval(_ context.Context, id domain.AssetID, approved common.Address) error {
	previous, existed := t.state.Approvals[id]
	if domain.IsZeroIdentity(approved) {
		delete(t.state.Approvals, id)
	} else {
		t.state.Approvals[id] = approved
	}

	t.undo = append(t.undo, func() {
		if existed {
			t.state.Approvals[id] = previous
		} else {
			delete(t.state.Approvals, id)
		}
	})
	return nil
}

func (t *memoryTx) UpsertListing(_ context.Context, listing domain.Listing) error {
	previous, existed := t.state.Listings[listing.AssetID]
	t.state.Listings[listing.AssetID] = listing

	t.undo = append(t.undo, func() {
		if existed {
			t.state.Listings[listing.AssetID] = previous
		} else {
			delete(t.state.Listings, listing.AssetID)
		}
	})
	return nil
}

func (t *memoryTx) DeleteListing(_ context.Context, id domain.AssetID) error {
	previous, existed := t.state.Listings[id]
	if !existed {
		return nil
	}

	delete(t.state.Listings, id)
	t.undo = append(t.undo, func() { t.state.Listings[id] = previous })
	return nil
}

func (t *memoryTx) CreditBalance(_ context.Context, address common.Address, amount decimal.Decimal) error {
	previous, existed := t.state.Balances[address]
	t.state.Balances[address] = previous.Add(amount)

	t.undo = append(t.undo, func() {
		if existed {
			t.state.Balances[address] = previous
		} else {
			delete(t.state.Balances, address)
		}
	})
	return nil
}

func (t *memoryTx) CreateProvenanceEvent(_ context.Context, event *domain.ProvenanceEvent) error {
	t.state.nextEventID++
	event.ID = t.state.nextEventID

	id := event.AssetID
	t.state.Provenance[id] = append(t.state.Provenance[id], *event)
	t.undo = append(t.undo, func() {
		events := t.state.Provenance[id]
		t.state.Provenance[id] = events[:len(events)-1]
		if len(t.state.Provenance[id]) == 0 {
			delete(t.state.Provenance, id)
		}
		t.state.nextEventID--
	})
	return nil
}
