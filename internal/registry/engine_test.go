package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-registry/internal/domain"
	"github.com/feral-file/ff-registry/internal/logger"
	"github.com/feral-file/ff-registry/internal/mocks"
	"github.com/feral-file/ff-registry/internal/store"
)

var (
	userA = common.HexToAddress("0xaAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	userB = common.HexToAddress("0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB")
	userC = common.HexToAddress("0xcCcCCCCcCCcCcCCcCCcCCCCCCcccccCCCCcCCcCC")

	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

// testDeps holds the collaborators of an engine under test
type testDeps struct {
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	store     store.Store
	published []*domain.RegistryEvent
}

// setupTestEngine creates an engine over a fresh in-memory store that accepts and records
// every published event
func setupTestEngine(t *testing.T, cfg Config) (Registry, *testDeps) {
	ctrl := gomock.NewController(t)
	deps := &testDeps{
		ctrl:      ctrl,
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		store:     store.NewMemoryStore(),
	}

	deps.clock.EXPECT().Now().Return(fixedNow).AnyTimes()
	deps.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.RegistryEvent) error {
			deps.published = append(deps.published, event)
			return nil
		}).
		AnyTimes()

	return New(cfg, deps.store, deps.publisher, deps.clock), deps
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustMint(t *testing.T, r Registry, id domain.AssetID, name string, owner common.Address) {
	t.Helper()
	_, err := r.Mint(context.Background(), id, name, owner)
	require.NoError(t, err)
}

func assertOwner(t *testing.T, r Registry, id domain.AssetID, expected common.Address) {
	t.Helper()
	owner, err := r.OwnerOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, expected, owner)
}

func assertBalance(t *testing.T, r Registry, address common.Address, expected string) {
	t.Helper()
	balance, err := r.BalanceOf(context.Background(), address)
	require.NoError(t, err)
	assert.True(t, price(expected).Equal(balance), "expected balance %s, got %s", expected, balance)
}

// =============================================================================
// Scenarios
// =============================================================================

func TestScenario_MintListPurchase(t *testing.T) {
	r, deps := setupTestEngine(t, Config{})
	ctx := context.Background()

	mustMint(t, r, 1, "Alpha", userA)
	name, err := r.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", name)

	_, err = r.ListForSale(ctx, 1, price("0.01"), userA)
	require.NoError(t, err)
	require.NoError(t, r.Approve(ctx, userB, 1, userA))

	require.NoError(t, r.Purchase(ctx, 1, userB, price("0.01")))

	assertOwner(t, r, 1, userB)
	assertBalance(t, r, userA, "0.01")
	listing, err := r.Listing(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, listing)

	require.Len(t, deps.published, 4)
	assert.Equal(t, "registry.sale", deps.published[3].Subject())
	require.NotNil(t, deps.published[3].Price)
	assert.Equal(t, "0.01", *deps.published[3].Price)
}

func TestScenario_Exchange(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()

	mustMint(t, r, 7, "S1", userA)
	mustMint(t, r, 8, "S2", userB)
	require.NoError(t, r.Approve(ctx, userB, 7, userA))
	require.NoError(t, r.Approve(ctx, userA, 8, userB))

	require.NoError(t, r.Exchange(ctx, 7, 8, userA))

	assertOwner(t, r, 7, userB)
	assertOwner(t, r, 8, userA)
}

// =============================================================================
// Mint & Lookup
// =============================================================================

func TestMint(t *testing.T) {
	tests := []struct {
		name    string
		id      domain.AssetID
		asset   string
		caller  common.Address
		wantErr error
	}{
		{name: "valid", id: 1, asset: "Alpha", caller: userA},
		{name: "zero id", id: 0, asset: "Alpha", caller: userA, wantErr: domain.ErrInvalidAssetID},
		{name: "id beyond bigint", id: domain.AssetID(1 << 63), asset: "Alpha", caller: userA, wantErr: domain.ErrInvalidAssetID},
		{name: "empty name", id: 1, asset: "", caller: userA, wantErr: domain.ErrInvalidName},
		{name: "zero caller", id: 1, asset: "Alpha", caller: common.Address{}, wantErr: domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, deps := setupTestEngine(t, Config{})

			asset, err := r.Mint(context.Background(), tt.id, tt.asset, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, asset)
				assert.Empty(t, deps.published)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, asset.ID)
			assert.Equal(t, tt.asset, asset.Name)
			assert.Equal(t, tt.caller, asset.Owner)
			assert.Equal(t, fixedNow, asset.MintedAt)
			assertOwner(t, r, tt.id, tt.caller)
		})
	}
}

func TestMint_Duplicate(t *testing.T) {
	r, deps := setupTestEngine(t, Config{})
	ctx := context.Background()

	mustMint(t, r, 1, "Alpha", userA)
	_, err := r.Mint(ctx, 1, "Beta", userB)
	assert.ErrorIs(t, err, domain.ErrDuplicateAsset)

	name, err := r.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", name)
	assertOwner(t, r, 1, userA)
	assert.Len(t, deps.published, 1)
}

func TestMint_PublishesEvent(t *testing.T) {
	r, deps := setupTestEngine(t, Config{})
	mustMint(t, r, 42, "Answer", userA)

	require.Len(t, deps.published, 1)
	event := deps.published[0]
	assert.Equal(t, domain.EventTypeMint, event.EventType)
	assert.Equal(t, "registry.mint", event.Subject())
	assert.Equal(t, domain.AssetID(42), event.AssetID)
	assert.Nil(t, event.From)
	require.NotNil(t, event.To)
	assert.Equal(t, userA.Hex(), *event.To)
	assert.Nil(t, event.Price)

	id, err := ulid.Parse(event.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(fixedNow.UnixMilli()), id.Time())
}

func TestLookup_Unknown(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()

	_, err := r.Lookup(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	_, err = r.Lookup(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	_, err = r.OwnerOf(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	_, err = r.Listing(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	_, err = r.Approved(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
	_, _, err = r.Provenance(ctx, 99, 10, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
}

// =============================================================================
// ListForSale
// =============================================================================

func TestListForSale(t *testing.T) {
	tests := []struct {
		name    string
		id      domain.AssetID
		price   string
		caller  common.Address
		wantErr error
	}{
		{name: "owner lists", id: 1, price: "1.5", caller: userA},
		{name: "non owner", id: 1, price: "1.5", caller: userB, wantErr: domain.ErrNotOwner},
		{name: "unknown asset", id: 2, price: "1.5", caller: userA, wantErr: domain.ErrUnknownAsset},
		{name: "zero price", id: 1, price: "0", caller: userA, wantErr: domain.ErrInvalidPrice},
		{name: "negative price", id: 1, price: "-1", caller: userA, wantErr: domain.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestEngine(t, Config{})
			ctx := context.Background()
			mustMint(t, r, 1, "Alpha", userA)

			listing, err := r.ListForSale(ctx, tt.id, price(tt.price), tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				got, err := r.Listing(ctx, 1)
				require.NoError(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.caller, listing.Seller)

			got, err := r.Listing(ctx, tt.id)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, price(tt.price).Equal(got.Price))
		})
	}
}

func TestListForSale_Overwrites(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)

	_, err := r.ListForSale(ctx, 1, price("1"), userA)
	require.NoError(t, err)
	_, err = r.ListForSale(ctx, 1, price("0.25"), userA)
	require.NoError(t, err)

	listing, err := r.Listing(ctx, 1)
	require.NoError(t, err)
	assert.True(t, price("0.25").Equal(listing.Price))
}

func TestAmountBounds(t *testing.T) {
	tests := []struct {
		name       string
		listPrice  string
		paid       string
		wantList   error
		wantBuy    error
		wantCredit string
	}{
		{name: "full scale price", listPrice: "1.000000000000000001", paid: "1.000000000000000001", wantCredit: "1.000000000000000001"},
		{name: "paying the rounded price is short", listPrice: "1.000000000000000001", paid: "1", wantBuy: domain.ErrInsufficientPayment, wantCredit: "0"},
		{name: "largest price", listPrice: "999999999999999999999999999999999999999999999999999999999999", paid: "999999999999999999999999999999999999999999999999999999999999", wantCredit: "999999999999999999999999999999999999999999999999999999999999"},
		{name: "price below the smallest unit", listPrice: "0.0000000000000000001", wantList: domain.ErrInvalidPrice},
		{name: "price with too many decimals", listPrice: "1.0000000000000000001", wantList: domain.ErrInvalidPrice},
		{name: "price too large", listPrice: "1e61", wantList: domain.ErrInvalidPrice},
		{name: "paid with too many decimals", listPrice: "1", paid: "1.0000000000000000001", wantBuy: domain.ErrInvalidPrice, wantCredit: "0"},
		{name: "paid too large", listPrice: "1", paid: "1e61", wantBuy: domain.ErrInvalidPrice, wantCredit: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestEngine(t, Config{})
			ctx := context.Background()
			mustMint(t, r, 1, "Alpha", userA)

			_, err := r.ListForSale(ctx, 1, price(tt.listPrice), userA)
			if tt.wantList != nil {
				assert.ErrorIs(t, err, tt.wantList)
				listing, err := r.Listing(ctx, 1)
				require.NoError(t, err)
				assert.Nil(t, listing)
				return
			}
			require.NoError(t, err)

			err = r.Purchase(ctx, 1, userA, price(tt.paid))
			if tt.wantBuy != nil {
				assert.ErrorIs(t, err, tt.wantBuy)
			} else {
				require.NoError(t, err)
			}
			assertBalance(t, r, userA, tt.wantCredit)
		})
	}
}

// =============================================================================
// Purchase
// =============================================================================

func TestPurchase_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, r Registry)
		id      domain.AssetID
		caller  common.Address
		paid    string
		wantErr error
	}{
		{
			name:    "not listed",
			setup:   func(t *testing.T, r Registry) {},
			id:      1,
			caller:  userB,
			paid:    "1",
			wantErr: domain.ErrNotForSale,
		},
		{
			name:    "never minted",
			setup:   func(t *testing.T, r Registry) {},
			id:      5,
			caller:  userB,
			paid:    "1",
			wantErr: domain.ErrNotForSale,
		},
		{
			name: "underpaid",
			setup: func(t *testing.T, r Registry) {
				_, err := r.ListForSale(context.Background(), 1, price("1"), userA)
				require.NoError(t, err)
				require.NoError(t, r.Approve(context.Background(), userB, 1, userA))
			},
			id:      1,
			caller:  userB,
			paid:    "0.999999999999999999",
			wantErr: domain.ErrInsufficientPayment,
		},
		{
			name: "negative payment",
			setup: func(t *testing.T, r Registry) {
				_, err := r.ListForSale(context.Background(), 1, price("1"), userA)
				require.NoError(t, err)
			},
			id:      1,
			caller:  userB,
			paid:    "-5",
			wantErr: domain.ErrInsufficientPayment,
		},
		{
			name: "buyer not approved",
			setup: func(t *testing.T, r Registry) {
				_, err := r.ListForSale(context.Background(), 1, price("1"), userA)
				require.NoError(t, err)
				require.NoError(t, r.Approve(context.Background(), userC, 1, userA))
			},
			id:      1,
			caller:  userB,
			paid:    "1",
			wantErr: domain.ErrUnauthorized,
		},
		{
			name: "zero caller",
			setup: func(t *testing.T, r Registry) {
				_, err := r.ListForSale(context.Background(), 1, price("1"), userA)
				require.NoError(t, err)
			},
			id:      1,
			caller:  common.Address{},
			paid:    "1",
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, deps := setupTestEngine(t, Config{})
			ctx := context.Background()
			mustMint(t, r, 1, "Alpha", userA)
			tt.setup(t, r)
			before := len(deps.published)
			listingBefore, err := r.Listing(ctx, 1)
			require.NoError(t, err)

			err = r.Purchase(ctx, tt.id, tt.caller, price(tt.paid))
			assert.ErrorIs(t, err, tt.wantErr)

			assertOwner(t, r, 1, userA)
			assertBalance(t, r, userA, "0")
			listingAfter, err := r.Listing(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, listingBefore, listingAfter)
			assert.Len(t, deps.published, before)
		})
	}
}

func TestPurchase_CreditsExactlyThePrice(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)

	_, err := r.ListForSale(ctx, 1, price("0.1"), userA)
	require.NoError(t, err)
	require.NoError(t, r.Approve(ctx, userB, 1, userA))
	require.NoError(t, r.Purchase(ctx, 1, userB, price("0.3")))

	assertBalance(t, r, userA, "0.1")
	assertBalance(t, r, userB, "0")

	events, total, err := r.Provenance(ctx, 1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(4), total)
	sale := events[3]
	assert.Equal(t, domain.EventTypeSale, sale.EventType)
	assert.Equal(t, userA, sale.From)
	assert.Equal(t, userB, sale.To)
	assert.True(t, price("0.1").Equal(sale.Price))
	assert.True(t, price("0.3").Equal(sale.Paid))
}

func TestPurchase_ByOwner(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)

	_, err := r.ListForSale(ctx, 1, price("2"), userA)
	require.NoError(t, err)
	require.NoError(t, r.Purchase(ctx, 1, userA, price("2")))

	assertOwner(t, r, 1, userA)
	assertBalance(t, r, userA, "2")
}

func TestPurchase_PaysCurrentOwnerAfterTransfer(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)

	_, err := r.ListForSale(ctx, 1, price("3"), userA)
	require.NoError(t, err)
	require.NoError(t, r.Transfer(ctx, userC, 1, userA))

	// the listing survives the transfer, the new owner approves the buyer
	listing, err := r.Listing(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, listing)
	require.NoError(t, r.Approve(ctx, userB, 1, userC))

	require.NoError(t, r.Purchase(ctx, 1, userB, price("3")))
	assertOwner(t, r, 1, userB)
	assertBalance(t, r, userC, "3")
	assertBalance(t, r, userA, "0")
}

// =============================================================================
// Transfer
// =============================================================================

func TestTransfer(t *testing.T) {
	tests := []struct {
		name    string
		to      common.Address
		id      domain.AssetID
		caller  common.Address
		wantErr error
	}{
		{name: "owner transfers", to: userB, id: 1, caller: userA},
		{name: "non owner", to: userB, id: 1, caller: userB, wantErr: domain.ErrNotOwner},
		{name: "approved identity is not the owner", to: userC, id: 1, caller: userC, wantErr: domain.ErrNotOwner},
		{name: "zero recipient", to: common.Address{}, id: 1, caller: userA, wantErr: domain.ErrInvalidRecipient},
		{name: "unknown asset", to: userB, id: 2, caller: userA, wantErr: domain.ErrUnknownAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestEngine(t, Config{})
			ctx := context.Background()
			mustMint(t, r, 1, "Alpha", userA)
			require.NoError(t, r.Approve(ctx, userC, 1, userA))

			err := r.Transfer(ctx, tt.to, tt.id, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assertOwner(t, r, 1, userA)
				return
			}

			require.NoError(t, err)
			assertOwner(t, r, 1, tt.to)
			assert.NotEqual(t, tt.caller, tt.to)
		})
	}
}

// =============================================================================
// Exchange
// =============================================================================

func TestExchange_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		idA     domain.AssetID
		idB     domain.AssetID
		approve bool
		wantErr error
	}{
		{name: "same asset", idA: 7, idB: 7, approve: true, wantErr: domain.ErrInvalidExchange},
		{name: "unknown asset", idA: 7, idB: 9, approve: true, wantErr: domain.ErrUnknownAsset},
		{name: "no approval on counterpart", idA: 7, idB: 8, approve: false, wantErr: domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, deps := setupTestEngine(t, Config{})
			ctx := context.Background()
			mustMint(t, r, 7, "S1", userA)
			mustMint(t, r, 8, "S2", userB)
			if tt.approve {
				require.NoError(t, r.Approve(ctx, userA, 8, userB))
			}
			before := len(deps.published)

			err := r.Exchange(ctx, tt.idA, tt.idB, userA)
			assert.ErrorIs(t, err, tt.wantErr)
			assertOwner(t, r, 7, userA)
			assertOwner(t, r, 8, userB)
			assert.Len(t, deps.published, before)
		})
	}
}

func TestExchange_AlterNothingElse(t *testing.T) {
	r, deps := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 7, "S1", userA)
	mustMint(t, r, 8, "S2", userB)
	_, err := r.ListForSale(ctx, 7, price("1"), userA)
	require.NoError(t, err)
	require.NoError(t, r.Approve(ctx, userA, 8, userB))

	require.NoError(t, r.Exchange(ctx, 8, 7, userA))
	assertOwner(t, r, 7, userB)
	assertOwner(t, r, 8, userA)

	listing, err := r.Listing(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, listing)
	approved, err := r.Approved(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, userA, approved)
	assertBalance(t, r, userA, "0")
	assertBalance(t, r, userB, "0")

	exchanges := deps.published[len(deps.published)-2:]
	assert.Equal(t, domain.AssetID(8), exchanges[0].AssetID)
	assert.Equal(t, domain.AssetID(7), exchanges[0].CounterpartID)
	assert.Equal(t, domain.AssetID(7), exchanges[1].AssetID)
	assert.Equal(t, domain.AssetID(8), exchanges[1].CounterpartID)
}

// =============================================================================
// Approve
// =============================================================================

func TestApprove(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)

	assert.ErrorIs(t, r.Approve(ctx, userC, 1, userB), domain.ErrNotOwner)
	assert.ErrorIs(t, r.Approve(ctx, userA, 1, userA), domain.ErrInvalidRecipient)
	assert.ErrorIs(t, r.Approve(ctx, userB, 2, userA), domain.ErrUnknownAsset)

	require.NoError(t, r.Approve(ctx, userB, 1, userA))
	require.NoError(t, r.Approve(ctx, userC, 1, userA))
	approved, err := r.Approved(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, userC, approved)

	require.NoError(t, r.Approve(ctx, common.Address{}, 1, userA))
	approved, err = r.Approved(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, approved)
}

func TestApprovals_AfterPurchase(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected common.Address
	}{
		{name: "kept by default", config: Config{}, expected: userB},
		{name: "cleared when configured", config: Config{ClearConsumedApprovals: true}, expected: common.Address{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestEngine(t, tt.config)
			ctx := context.Background()
			mustMint(t, r, 1, "Alpha", userA)
			_, err := r.ListForSale(ctx, 1, price("1"), userA)
			require.NoError(t, err)
			require.NoError(t, r.Approve(ctx, userB, 1, userA))
			require.NoError(t, r.Purchase(ctx, 1, userB, price("1")))

			approved, err := r.Approved(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, approved)
		})
	}
}

func TestApprovals_AfterExchange(t *testing.T) {
	r, _ := setupTestEngine(t, Config{ClearConsumedApprovals: true})
	ctx := context.Background()
	mustMint(t, r, 7, "S1", userA)
	mustMint(t, r, 8, "S2", userB)
	require.NoError(t, r.Approve(ctx, userA, 8, userB))
	require.NoError(t, r.Exchange(ctx, 7, 8, userA))

	for _, id := range []domain.AssetID{7, 8} {
		approved, err := r.Approved(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, common.Address{}, approved)
	}
}

// =============================================================================
// Provenance
// =============================================================================

func TestProvenance(t *testing.T) {
	r, _ := setupTestEngine(t, Config{})
	ctx := context.Background()
	mustMint(t, r, 1, "Alpha", userA)
	require.NoError(t, r.Transfer(ctx, userB, 1, userA))
	require.NoError(t, r.Transfer(ctx, userC, 1, userB))

	events, total, err := r.Provenance(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeMint, events[0].EventType)
	assert.Equal(t, domain.EventTypeTransfer, events[1].EventType)
	assert.Equal(t, userB, events[1].To)

	events, _, err = r.Provenance(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, userB, events[0].From)
	assert.Equal(t, userC, events[0].To)
}

// =============================================================================
// Collaborator failures
// =============================================================================

func TestPublishFailureKeepsCommittedState(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fixedNow).AnyTimes()
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(errors.New("nats unavailable"))

	r := New(Config{}, store.NewMemoryStore(), publisher, clock)
	mustMint(t, r, 1, "Alpha", userA)
	assertOwner(t, r, 1, userA)
}

// cancelOnCommitStore cancels the caller's context as soon as a transaction commits
type cancelOnCommitStore struct {
	store.Store
	cancel context.CancelFunc
}

func (s *cancelOnCommitStore) Transact(ctx context.Context, fn func(tx store.Tx) error) error {
	err := s.Store.Transact(ctx, fn)
	s.cancel()
	return err
}

func TestPublishOutlivesCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fixedNow).AnyTimes()

	ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), "req-1"))
	defer cancel()

	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.RegistryEvent) error {
			assert.NoError(t, ctx.Err())
			assert.Equal(t, "req-1", logger.RequestID(ctx))
			return nil
		})

	r := New(Config{}, &cancelOnCommitStore{Store: store.NewMemoryStore(), cancel: cancel}, publisher, clock)
	_, err := r.Mint(ctx, 1, "Alpha", userA)
	require.NoError(t, err)
}

func TestStoreFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	st := mocks.NewMockStore(ctrl)
	tx := mocks.NewMockTx(ctrl)
	storeErr := errors.New("failed to update owner: connection reset")

	clock.EXPECT().Now().Return(fixedNow).AnyTimes()
	st.EXPECT().
		Transact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(store.Tx) error) error {
			return fn(tx)
		})
	tx.EXPECT().GetAsset(gomock.Any(), domain.AssetID(1)).
		Return(&domain.Asset{ID: 1, Name: "Alpha", Owner: userA}, nil)
	tx.EXPECT().UpdateOwner(gomock.Any(), domain.AssetID(1), userB).Return(storeErr)
	// no PublishEvent expectation: nothing may be published

	r := New(Config{}, st, publisher, clock)
	err := r.Transfer(context.Background(), userB, 1, userA)
	assert.ErrorIs(t, err, storeErr)
}

func TestCanceledContext(t *testing.T) {
	r, deps := setupTestEngine(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Mint(ctx, 1, "Alpha", userA)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, deps.published)
}
