package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/ledger/store"
	"github.com/lumen-chain/lumen/x/ledger/types"
)

func newTestKeeper(t *testing.T) (*Keeper, *clock.ManualClock) {
	t.Helper()
	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	k := NewKeeper(store.NewMemoryStore(), clk, events.NopEmitter{}, log.NewNopLogger(), 100, 24*time.Hour)
	return k, clk
}

func TestTransfer(t *testing.T) {
	k, _ := newTestKeeper(t)
	require.NoError(t, k.Mint("alice", math.NewInt(1000)))

	require.NoError(t, k.Transfer("alice", "bob", math.NewInt(300)))

	require.Equal(t, math.NewInt(700), k.GetBalance("alice"))
	require.Equal(t, math.NewInt(300), k.GetBalance("bob"))

	alice, ok := k.GetAccount("alice")
	require.True(t, ok)
	require.Equal(t, uint64(1), alice.Nonce)
}

func TestTransferFailures(t *testing.T) {
	k, _ := newTestKeeper(t)
	require.NoError(t, k.Mint("alice", math.NewInt(100)))

	err := k.Transfer("ghost", "alice", math.NewInt(10))
	require.ErrorIs(t, err, types.ErrAccountNotFound)

	err = k.Transfer("alice", "bob", math.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	err = k.Transfer("alice", "bob", math.NewInt(0))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	err = k.Transfer("alice", "bob", math.NewInt(-5))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	// Nothing moved.
	require.Equal(t, math.NewInt(100), k.GetBalance("alice"))
	require.Equal(t, math.ZeroInt(), k.GetBalance("bob"))
}

func TestMintAndDeductFeeTrackSupply(t *testing.T) {
	k, _ := newTestKeeper(t)
	require.Equal(t, math.ZeroInt(), k.TotalSupply())

	require.NoError(t, k.Mint("alice", math.NewInt(500)))
	require.Equal(t, math.NewInt(500), k.TotalSupply())

	require.NoError(t, k.DeductFee("alice", math.NewInt(20)))
	require.Equal(t, math.NewInt(480), k.TotalSupply())
	require.Equal(t, math.NewInt(480), k.GetBalance("alice"))

	// Zero fee is a no-op, not an error.
	require.NoError(t, k.DeductFee("alice", math.ZeroInt()))
	require.Equal(t, math.NewInt(480), k.TotalSupply())

	err := k.DeductFee("alice", math.NewInt(1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestBondAndUnbondStake(t *testing.T) {
	k, clk := newTestKeeper(t)
	require.NoError(t, k.Mint("alice", math.NewInt(1000)))

	require.NoError(t, k.BondStake("alice", math.NewInt(400)))
	alice, _ := k.GetAccount("alice")
	require.Equal(t, math.NewInt(600), alice.Balance)
	require.Equal(t, math.NewInt(400), alice.Staked)

	completion := clk.Now().Add(21 * 24 * time.Hour)
	require.NoError(t, k.UnbondStake("alice", math.NewInt(150), completion))
	alice, _ = k.GetAccount("alice")
	require.Equal(t, math.NewInt(250), alice.Staked)
	require.Len(t, alice.Unbonding, 1)
	require.Equal(t, math.NewInt(150), alice.UnbondingTotal())
	require.Equal(t, completion, alice.Unbonding[0].CompletionTime)

	err := k.UnbondStake("alice", math.NewInt(9999), completion)
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestClaimUnbondingRespectsMaturity(t *testing.T) {
	k, clk := newTestKeeper(t)
	require.NoError(t, k.Mint("alice", math.NewInt(1000)))
	require.NoError(t, k.BondStake("alice", math.NewInt(500)))

	completion := clk.Now().Add(21 * 24 * time.Hour)
	require.NoError(t, k.UnbondStake("alice", math.NewInt(500), completion))

	// Nothing matured yet.
	claimed, err := k.ClaimUnbonding("alice")
	require.NoError(t, err)
	require.Equal(t, math.ZeroInt(), claimed)

	clk.Set(completion)
	claimed, err = k.ClaimUnbonding("alice")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(500), claimed)

	alice, _ := k.GetAccount("alice")
	require.Equal(t, math.NewInt(1000), alice.Balance)
	require.Empty(t, alice.Unbonding)
}

func TestFreeQuotaWindowResets(t *testing.T) {
	k, clk := newTestKeeper(t)

	require.Equal(t, uint64(100), k.RemainingQuota("alice"))
	require.True(t, k.ConsumeFreeQuota("alice", 60))
	require.Equal(t, uint64(40), k.RemainingQuota("alice"))

	// Quota never covers partially.
	require.False(t, k.ConsumeFreeQuota("alice", 41))
	require.Equal(t, uint64(40), k.RemainingQuota("alice"))

	clk.Advance(24 * time.Hour)
	require.Equal(t, uint64(100), k.RemainingQuota("alice"))
	require.True(t, k.ConsumeFreeQuota("alice", 100))
	require.Equal(t, uint64(0), k.RemainingQuota("alice"))
}

func TestActiveFraction(t *testing.T) {
	k, clk := newTestKeeper(t)
	require.Equal(t, math.LegacyZeroDec(), k.ActiveFraction(time.Hour))

	require.NoError(t, k.Mint("alice", math.NewInt(10)))
	require.NoError(t, k.Mint("bob", math.NewInt(10)))
	require.NoError(t, k.Mint("carol", math.NewInt(10)))
	require.NoError(t, k.Mint("dave", math.NewInt(10)))

	clk.Advance(2 * time.Hour)
	k.TouchActivity("alice")

	// 1 of 4 accounts active within the last hour.
	require.Equal(t, math.LegacyNewDecWithPrec(25, 2), k.ActiveFraction(time.Hour))
}

func TestVotingPower(t *testing.T) {
	k, _ := newTestKeeper(t)
	require.NoError(t, k.Mint("alice", math.NewInt(1000)))
	require.NoError(t, k.BondStake("alice", math.NewInt(400)))
	require.NoError(t, k.Mint("bob", math.NewInt(200)))

	require.Equal(t, math.NewInt(1000), k.VotingPower("alice"))
	require.Equal(t, math.NewInt(200), k.VotingPower("bob"))
	require.Equal(t, math.ZeroInt(), k.VotingPower("ghost"))
	require.Equal(t, math.NewInt(1200), k.TotalVotingPower())
}

// Transfers and stake moves shuffle value between buckets; the system-wide
// sum of balance + staked + unbonding never changes.
func TestConservationProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, clk := newTestKeeper(t)
		addrs := []string{"a", "b", "c"}
		for _, a := range addrs {
			require.NoError(rt, k.Mint(a, math.NewInt(10_000)))
		}

		total := func() math.Int {
			sum := math.ZeroInt()
			for _, a := range addrs {
				acc, ok := k.GetAccount(a)
				if !ok {
					continue
				}
				sum = sum.Add(acc.Balance).Add(acc.Staked).Add(acc.UnbondingTotal())
			}
			return sum
		}
		initial := total()

		ops := rapid.IntRange(1, 50).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			from := rapid.SampledFrom(addrs).Draw(rt, "from")
			to := rapid.SampledFrom(addrs).Draw(rt, "to")
			amount := math.NewInt(rapid.Int64Range(1, 500).Draw(rt, "amount"))

			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				_ = k.Transfer(from, to, amount)
			case 1:
				_ = k.BondStake(from, amount)
			case 2:
				_ = k.UnbondStake(from, amount, clk.Now().Add(time.Hour))
			case 3:
				clk.Advance(2 * time.Hour)
				_, _ = k.ClaimUnbonding(from)
			}

			require.True(rt, total().Equal(initial),
				"conservation violated: had %s, now %s", initial, total())
		}
	})
}
