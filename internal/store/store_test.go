package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-registry/internal/domain"
)

var (
	ownerA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	ownerB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	ownerC = common.HexToAddress("0x3333333333333333333333333333333333333333")

	errAbort = errors.New("abort")
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestAsset creates an asset minted at a fixed, second-aligned time
func buildTestAsset(id domain.AssetID, name string, owner common.Address) domain.Asset {
	return domain.Asset{
		ID:       id,
		Name:     name,
		Owner:    owner,
		MintedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// mustCreate mints an asset through a transaction
func mustCreate(t *testing.T, store Store, asset domain.Asset) {
	t.Helper()
	err := store.Transact(context.Background(), func(tx Tx) error {
		return tx.CreateAsset(context.Background(), asset)
	})
	require.NoError(t, err)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// =============================================================================
// Test: Amount precision
// =============================================================================

// testAmountPrecision checks that amounts at the widest accepted scale and magnitude
// are stored without rounding
func testAmountPrecision(t *testing.T, store Store) {
	ctx := context.Background()
	mustCreate(t, store, buildTestAsset(40, "Precise", ownerA))

	amounts := []string{
		"0.000000000000000001",
		"1.000000000000000001",
		"999999999999999999999999999999999999999999999999999999999999.999999999999999999",
	}

	for _, amount := range amounts {
		price := decimal.RequireFromString(amount)
		require.True(t, domain.ValidAmount(price))

		require.NoError(t, store.Transact(ctx, func(tx Tx) error {
			return tx.UpsertListing(ctx, domain.Listing{
				AssetID:  40,
				Seller:   ownerA,
				Price:    price,
				ListedAt: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
			})
		}))

		listing, err := store.GetListing(ctx, 40)
		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.True(t, price.Equal(listing.Price), "expected %s, got %s", price, listing.Price)
	}

	// credits at full scale add up exactly
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		for i := 0; i < 3; i++ {
			if err := tx.CreditBalance(ctx, ownerC, decimal.RequireFromString("0.000000000000000001")); err != nil {
				return err
			}
		}
		return nil
	}))
	balance, err := store.GetBalance(ctx, ownerC)
	require.NoError(t, err)
	assertDecimal(t, "0.000000000000000003", balance)
}

// =============================================================================
// Test: Assets
// =============================================================================

func testAssets(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("created asset is readable with its owner", func(t *testing.T) {
		asset := buildTestAsset(1, "Alpha", ownerA)
		mustCreate(t, store, asset)

		got, err := store.GetAsset(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, asset.ID, got.ID)
		assert.Equal(t, "Alpha", got.Name)
		assert.Equal(t, ownerA, got.Owner)
		assert.True(t, asset.MintedAt.Equal(got.MintedAt))
	})

	t.Run("duplicate id is rejected and the first record is kept", func(t *testing.T) {
		err := store.Transact(ctx, func(tx Tx) error {
			return tx.CreateAsset(ctx, buildTestAsset(1, "Impostor", ownerB))
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateAsset)

		got, err := store.GetAsset(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Alpha", got.Name)
		assert.Equal(t, ownerA, got.Owner)
	})

	t.Run("unknown asset reads as nil", func(t *testing.T) {
		got, err := store.GetAsset(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("owner update", func(t *testing.T) {
		err := store.Transact(ctx, func(tx Tx) error {
			return tx.UpdateOwner(ctx, 1, ownerB)
		})
		require.NoError(t, err)

		got, err := store.GetAsset(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, ownerB, got.Owner)
	})

	t.Run("owner update of unknown asset", func(t *testing.T) {
		err := store.Transact(ctx, func(tx Tx) error {
			return tx.UpdateOwner(ctx, 404, ownerB)
		})
		assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	})
}

// =============================================================================
// Test: Approvals
// =============================================================================

func testApprovals(t *testing.T, store Store) {
	ctx := context.Background()
	mustCreate(t, store, buildTestAsset(10, "Approved", ownerA))

	approval, err := store.GetApproval(ctx, 10)
	require.NoError(t, err)
	assert.True(t, domain.IsZeroIdentity(approval))

	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.SetApproval(ctx, 10, ownerB)
	}))
	approval, err = store.GetApproval(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, ownerB, approval)

	// only the most recent grant is kept
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.SetApproval(ctx, 10, ownerC)
	}))
	approval, err = store.GetApproval(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, ownerC, approval)

	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.SetApproval(ctx, 10, common.Address{})
	}))
	approval, err = store.GetApproval(ctx, 10)
	require.NoError(t, err)
	assert.True(t, domain.IsZeroIdentity(approval))
}

// =============================================================================
// Test: Listings
// =============================================================================

func testListings(t *testing.T, store Store) {
	ctx := context.Background()
	mustCreate(t, store, buildTestAsset(20, "Listed", ownerA))
	listedAt := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	listing, err := store.GetListing(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, listing)

	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.UpsertListing(ctx, domain.Listing{
			AssetID:  20,
			Seller:   ownerA,
			Price:    decimal.RequireFromString("0.01"),
			ListedAt: listedAt,
		})
	}))

	listing, err = store.GetListing(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, domain.AssetID(20), listing.AssetID)
	assert.Equal(t, ownerA, listing.Seller)
	assertDecimal(t, "0.01", listing.Price)
	assert.True(t, listedAt.Equal(listing.ListedAt))

	// relisting overwrites the price
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.UpsertListing(ctx, domain.Listing{
			AssetID:  20,
			Seller:   ownerA,
			Price:    decimal.RequireFromString("2.5"),
			ListedAt: listedAt.Add(time.Hour),
		})
	}))
	listing, err = store.GetListing(ctx, 20)
	require.NoError(t, err)
	assertDecimal(t, "2.5", listing.Price)

	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.DeleteListing(ctx, 20)
	}))
	listing, err = store.GetListing(ctx, 20)
	require.NoError(t, err)
	assert.Nil(t, listing)

	// deleting a missing listing is a no-op
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.DeleteListing(ctx, 20)
	}))
}

// =============================================================================
// Test: Balances
// =============================================================================

func testBalances(t *testing.T, store Store) {
	ctx := context.Background()

	balance, err := store.GetBalance(ctx, ownerC)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	for _, amount := range []string{"0.01", "0.02", "1000000000000000000"} {
		require.NoError(t, store.Transact(ctx, func(tx Tx) error {
			return tx.CreditBalance(ctx, ownerC, decimal.RequireFromString(amount))
		}))
	}

	balance, err = store.GetBalance(ctx, ownerC)
	require.NoError(t, err)
	assertDecimal(t, "1000000000000000000.03", balance)
}

// =============================================================================
// Test: Provenance
// =============================================================================

func testProvenanceEvents(t *testing.T, store Store) {
	ctx := context.Background()
	mustCreate(t, store, buildTestAsset(30, "History", ownerA))
	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

	events := []domain.ProvenanceEvent{
		{AssetID: 30, EventType: domain.EventTypeMint, To: ownerA, Timestamp: ts},
		{AssetID: 30, EventType: domain.EventTypeList, To: ownerA, Price: decimal.RequireFromString("1"), Timestamp: ts},
		{AssetID: 30, EventType: domain.EventTypeSale, From: ownerA, To: ownerB, Price: decimal.RequireFromString("1"), Paid: decimal.RequireFromString("1.5"), Timestamp: ts},
	}
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		for i := range events {
			if err := tx.CreateProvenanceEvent(ctx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	}))
	assert.Less(t, events[0].ID, events[1].ID)
	assert.Less(t, events[1].ID, events[2].ID)

	t.Run("full history in order", func(t *testing.T) {
		got, total, err := store.GetProvenanceEvents(ctx, 30, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, got, 3)
		assert.Equal(t, domain.EventTypeMint, got[0].EventType)
		assert.True(t, domain.IsZeroIdentity(got[0].From))
		assert.Equal(t, ownerA, got[0].To)
		assert.Equal(t, domain.EventTypeSale, got[2].EventType)
		assert.Equal(t, ownerA, got[2].From)
		assert.Equal(t, ownerB, got[2].To)
		assertDecimal(t, "1", got[2].Price)
		assertDecimal(t, "1.5", got[2].Paid)
		assert.True(t, ts.Equal(got[2].Timestamp))
	})

	t.Run("paging", func(t *testing.T) {
		got, total, err := store.GetProvenanceEvents(ctx, 30, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, got, 1)
		assert.Equal(t, domain.EventTypeList, got[0].EventType)

		got, total, err = store.GetProvenanceEvents(ctx, 30, 10, 5)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Empty(t, got)
	})

	t.Run("unknown asset has no history", func(t *testing.T) {
		got, total, err := store.GetProvenanceEvents(ctx, 404, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, got)
	})
}

// =============================================================================
// Test: Transact
// =============================================================================

func testTransactRollback(t *testing.T, store Store) {
	ctx := context.Background()
	mustCreate(t, store, buildTestAsset(40, "Atomic", ownerA))
	require.NoError(t, store.Transact(ctx, func(tx Tx) error {
		return tx.SetApproval(ctx, 40, ownerB)
	}))

	err := store.Transact(ctx, func(tx Tx) error {
		if err := tx.CreateAsset(ctx, buildTestAsset(41, "Never", ownerA)); err != nil {
			return err
		}
		if err := tx.UpdateOwner(ctx, 40, ownerB); err != nil {
			return err
		}
		if err := tx.SetApproval(ctx, 40, common.Address{}); err != nil {
			return err
		}
		if err := tx.UpsertListing(ctx, domain.Listing{AssetID: 40, Seller: ownerA, Price: decimal.NewFromInt(3), ListedAt: time.Now().UTC()}); err != nil {
			return err
		}
		if err := tx.CreditBalance(ctx, ownerA, decimal.NewFromInt(3)); err != nil {
			return err
		}
		if err := tx.CreateProvenanceEvent(ctx, &domain.ProvenanceEvent{AssetID: 40, EventType: domain.EventTypeTransfer, From: ownerA, To: ownerB, Timestamp: time.Now().UTC()}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	never, err := store.GetAsset(ctx, 41)
	require.NoError(t, err)
	assert.Nil(t, never)

	asset, err := store.GetAsset(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, ownerA, asset.Owner)

	approval, err := store.GetApproval(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, ownerB, approval)

	listing, err := store.GetListing(ctx, 40)
	require.NoError(t, err)
	assert.Nil(t, listing)

	balance, err := store.GetBalance(ctx, ownerA)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	_, total, err := store.GetProvenanceEvents(ctx, 40, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

// RunStoreTests runs all store tests against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store Store)
	}{
		{"Assets", testAssets},
		{"Approvals", testApprovals},
		{"Listings", testListings},
		{"Balances", testBalances},
		{"ProvenanceEvents", testProvenanceEvents},
		{"TransactRollback", testTransactRollback},
		{"AmountPrecision", testAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
