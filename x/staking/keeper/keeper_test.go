package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
	ledgerstore "github.com/lumen-chain/lumen/x/ledger/store"
	"github.com/lumen-chain/lumen/x/staking/store"
	"github.com/lumen-chain/lumen/x/staking/types"
)

const unbondingPeriod = 21 * 24 * time.Hour

func newTestKeeper(t *testing.T, mode types.RewardMode) (*Keeper, *ledgerkeeper.Keeper, *clock.ManualClock) {
	t.Helper()
	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := log.NewNopLogger()
	ledger := ledgerkeeper.NewKeeper(ledgerstore.NewMemoryStore(), clk, events.NopEmitter{}, logger, 0, 0)

	k, err := NewKeeper(store.NewMemoryStore(), ledger, clk, events.NopEmitter{}, logger,
		math.NewInt(50), unbondingPeriod,
		math.LegacyNewDecWithPrec(8, 2),  // 8% annual, claim mode
		math.LegacyNewDecWithPrec(5, 2),  // 5% of supply annually, epoch mode
		mode)
	require.NoError(t, err)
	return k, ledger, clk
}

func TestNewKeeperRejectsUnknownRewardMode(t *testing.T) {
	clk := clock.NewManualClock(time.Now())
	logger := log.NewNopLogger()
	ledger := ledgerkeeper.NewKeeper(ledgerstore.NewMemoryStore(), clk, events.NopEmitter{}, logger, 0, 0)

	_, err := NewKeeper(store.NewMemoryStore(), ledger, clk, events.NopEmitter{}, logger,
		math.NewInt(50), unbondingPeriod, math.LegacyZeroDec(), math.LegacyZeroDec(), "continuous")
	require.ErrorIs(t, err, types.ErrInvalidRewardMode)
}

func TestStakeAndUnstake(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))

	require.NoError(t, k.Stake("alice", "val1", math.NewInt(100)))

	acc, _ := ledger.GetAccount("alice")
	require.Equal(t, math.NewInt(900), acc.Balance)
	require.Equal(t, math.NewInt(100), acc.Staked)
	require.Equal(t, math.NewInt(100), k.TotalStaked())

	require.NoError(t, k.Unstake("alice", "val1", math.NewInt(40)))

	acc, _ = ledger.GetAccount("alice")
	require.Equal(t, math.NewInt(60), acc.Staked)
	require.Len(t, acc.Unbonding, 1)
	require.Equal(t, math.NewInt(40), acc.Unbonding[0].Amount)
	require.Equal(t, clk.Now().Add(unbondingPeriod), acc.Unbonding[0].CompletionTime)
	require.Equal(t, math.NewInt(60), k.ActiveStake("alice", "val1"))
	require.Equal(t, math.NewInt(60), k.TotalStaked())
}

func TestStakeBelowMinimum(t *testing.T) {
	k, ledger, _ := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))

	err := k.Stake("alice", "val1", math.NewInt(49))
	require.ErrorIs(t, err, types.ErrBelowMinimumStake)
}

func TestUnstakeMoreThanActive(t *testing.T) {
	k, ledger, _ := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(100)))

	err := k.Unstake("alice", "val1", math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientStake)

	// Stake with another validator does not count.
	err = k.Unstake("alice", "val2", math.NewInt(10))
	require.ErrorIs(t, err, types.ErrInsufficientStake)
}

func TestUnstakeConsumesRecordsOldestFirst(t *testing.T) {
	k, ledger, _ := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(100)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(200)))

	require.NoError(t, k.Unstake("alice", "val1", math.NewInt(150)))

	// First record fully consumed, second reduced to 150.
	require.Equal(t, math.NewInt(150), k.ActiveStake("alice", "val1"))

	records := k.store.ByDelegator("alice")
	require.Len(t, records, 2)
	require.Equal(t, types.StakeStatusCompleted, records[0].Status)
	require.True(t, records[0].Amount.IsZero())
	require.Equal(t, types.StakeStatusActive, records[1].Status)
	require.Equal(t, math.NewInt(150), records[1].Amount)
}

func TestClaimUnbondingAfterMaturity(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(100)))
	require.NoError(t, k.Unstake("alice", "val1", math.NewInt(100)))

	claimed, err := k.ClaimUnbonding("alice")
	require.NoError(t, err)
	require.Equal(t, math.ZeroInt(), claimed)

	clk.Advance(unbondingPeriod)
	claimed, err = k.ClaimUnbonding("alice")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), claimed)
	require.Equal(t, math.NewInt(1000), ledger.GetBalance("alice"))
}

func TestClaimRewardsAccruesOverTime(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(10_000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(10_000)))

	// Immediately: nothing accrued.
	total, err := k.ClaimRewards("alice")
	require.NoError(t, err)
	require.Equal(t, math.ZeroInt(), total)

	// One year at 8% on 10000 = 800.
	clk.Advance(365 * 24 * time.Hour)
	total, err = k.ClaimRewards("alice")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(800), total)
	require.Equal(t, math.NewInt(800), ledger.GetBalance("alice"))

	// Accrual clock was reset; claiming again immediately yields nothing.
	total, err = k.ClaimRewards("alice")
	require.NoError(t, err)
	require.Equal(t, math.ZeroInt(), total)
}

func TestClaimRewardsInactiveInEpochMode(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeEpoch)
	require.NoError(t, ledger.Mint("alice", math.NewInt(10_000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(10_000)))

	clk.Advance(365 * 24 * time.Hour)
	total, err := k.ClaimRewards("alice")
	require.NoError(t, err)
	require.Equal(t, math.ZeroInt(), total)
}

func TestDistributeRewardsEpochMode(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeEpoch)
	require.NoError(t, ledger.Mint("alice", math.NewInt(30_000)))
	require.NoError(t, ledger.Mint("bob", math.NewInt(10_000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(3000)))
	require.NoError(t, k.Stake("bob", "val1", math.NewInt(1000)))

	supplyBefore := ledger.TotalSupply()
	require.NoError(t, k.DistributeRewards(clk.Now()))

	// Daily budget: 5% of 40000 / 365 = 5. Split 3:1.
	budget := math.LegacyNewDecFromInt(supplyBefore).
		Mul(math.LegacyNewDecWithPrec(5, 2)).
		QuoInt64(365).
		TruncateInt()
	require.Equal(t, math.NewInt(5), budget)

	aliceShare := ledger.GetBalance("alice").Sub(math.NewInt(27_000))
	bobShare := ledger.GetBalance("bob").Sub(math.NewInt(9000))
	require.Equal(t, math.NewInt(3), aliceShare)
	require.Equal(t, math.NewInt(1), bobShare)
}

func TestDistributeRewardsNoOpInClaimMode(t *testing.T) {
	k, ledger, clk := newTestKeeper(t, types.RewardModeClaim)
	require.NoError(t, ledger.Mint("alice", math.NewInt(10_000)))
	require.NoError(t, k.Stake("alice", "val1", math.NewInt(5000)))

	before := ledger.GetBalance("alice")
	require.NoError(t, k.DistributeRewards(clk.Now()))
	require.Equal(t, before, ledger.GetBalance("alice"))
	require.Equal(t, math.NewInt(10_000), ledger.TotalSupply())
}
