package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/gov/store"
	"github.com/lumen-chain/lumen/x/gov/types"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
	ledgerstore "github.com/lumen-chain/lumen/x/ledger/store"
)

const votingPeriod = 7 * 24 * time.Hour

func newTestKeeper(t *testing.T) (*Keeper, *ledgerkeeper.Keeper, *clock.ManualClock) {
	t.Helper()
	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := log.NewNopLogger()
	ledger := ledgerkeeper.NewKeeper(ledgerstore.NewMemoryStore(), clk, events.NopEmitter{}, logger, 0, 0)
	k := NewKeeper(store.NewMemoryStore(), ledger, clk, events.NopEmitter{}, logger,
		math.NewInt(1000), votingPeriod)
	return k, ledger, clk
}

// activate runs the lifecycle tick so a fresh proposal opens for voting.
func activate(t *testing.T, k *Keeper, clk *clock.ManualClock) {
	t.Helper()
	require.NoError(t, k.Process(clk.Now()))
}

func TestCreateProposalThreshold(t *testing.T) {
	k, ledger, _ := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(500)))

	_, err := k.CreateProposal("alice", "raise quota", "", types.ProposalTypeText, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInsufficientVotingPower)

	require.NoError(t, ledger.Mint("alice", math.NewInt(500)))
	p, err := k.CreateProposal("alice", "raise quota", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, types.StatusPending, p.Status)
	require.Equal(t, math.NewInt(1000), p.TotalVotingPower)
	require.Equal(t, p.VotingStart.Add(votingPeriod), p.VotingEnd)
}

func TestCreateProposalRequiresTitle(t *testing.T) {
	k, ledger, _ := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(2000)))

	_, err := k.CreateProposal("alice", "", "no title", types.ProposalTypeText, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidProposal)
}

func TestStakedBalanceCountsTowardThreshold(t *testing.T) {
	k, ledger, _ := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))
	require.NoError(t, ledger.BondStake("alice", math.NewInt(800)))

	_, err := k.CreateProposal("alice", "still counts", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
}

func TestVoteLifecycle(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(3000)))
	require.NoError(t, ledger.Mint("bob", math.NewInt(2000)))

	p, err := k.CreateProposal("alice", "fund the faucet", "", types.ProposalTypeTreasurySpend, math.NewInt(100))
	require.NoError(t, err)

	// Pending proposals are not open for voting.
	err = k.Vote(p.ID, "bob", types.OptionFor)
	require.ErrorIs(t, err, types.ErrProposalNotActive)

	activate(t, k, clk)
	require.NoError(t, k.Vote(p.ID, "bob", types.OptionFor))
	require.NoError(t, k.Vote(p.ID, "alice", types.OptionAgainst))

	p, ok := k.GetProposal(p.ID)
	require.True(t, ok)
	require.Equal(t, math.NewInt(2000), p.Votes.For)
	require.Equal(t, math.NewInt(3000), p.Votes.Against)
}

func TestVoteRejectsRepeatBallots(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(3000)))

	p, err := k.CreateProposal("alice", "double counting", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)

	require.NoError(t, k.Vote(p.ID, "alice", types.OptionFor))
	err = k.Vote(p.ID, "alice", types.OptionFor)
	require.ErrorIs(t, err, types.ErrAlreadyVoted)

	err = k.Vote(p.ID, "alice", types.OptionAgainst)
	require.ErrorIs(t, err, types.ErrAlreadyVoted)

	p, _ = k.GetProposal(p.ID)
	require.Equal(t, math.NewInt(3000), p.Votes.For)
}

func TestVoteValidation(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(3000)))

	p, err := k.CreateProposal("alice", "edge cases", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)

	err = k.Vote(p.ID, "alice", "maybe")
	require.ErrorIs(t, err, types.ErrInvalidVoteOption)

	err = k.Vote("missing", "alice", types.OptionFor)
	require.ErrorIs(t, err, types.ErrProposalNotFound)

	err = k.Vote(p.ID, "broke", types.OptionFor)
	require.ErrorIs(t, err, types.ErrNoVotingPower)

	// Voting closes at the end of the window.
	clk.Advance(votingPeriod)
	err = k.Vote(p.ID, "alice", types.OptionFor)
	require.ErrorIs(t, err, types.ErrProposalNotActive)
}

func TestProcessPassesWithQuorumAndMajority(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(3000)))
	require.NoError(t, ledger.Mint("bob", math.NewInt(1000)))

	p, err := k.CreateProposal("alice", "pass me", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)
	require.NoError(t, k.Vote(p.ID, "alice", types.OptionFor))
	require.NoError(t, k.Vote(p.ID, "bob", types.OptionAgainst))

	clk.Advance(votingPeriod)
	require.NoError(t, k.Process(clk.Now()))

	p, _ = k.GetProposal(p.ID)
	require.Equal(t, types.StatusPassed, p.Status)
	require.Equal(t, clk.Now().Add(24*time.Hour), p.ExecuteAfter)
}

func TestProcessRejectsBelowQuorum(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(1000)))
	require.NoError(t, ledger.Mint("whale", math.NewInt(9000)))

	// Total power 10000, quorum 2500; alice alone turns out 1000.
	p, err := k.CreateProposal("alice", "nobody shows", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)
	require.NoError(t, k.Vote(p.ID, "alice", types.OptionFor))

	clk.Advance(votingPeriod)
	require.NoError(t, k.Process(clk.Now()))

	p, _ = k.GetProposal(p.ID)
	require.Equal(t, types.StatusRejected, p.Status)
}

func TestProcessRejectsTies(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(2000)))
	require.NoError(t, ledger.Mint("bob", math.NewInt(2000)))

	p, err := k.CreateProposal("alice", "deadlock", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)
	require.NoError(t, k.Vote(p.ID, "alice", types.OptionFor))
	require.NoError(t, k.Vote(p.ID, "bob", types.OptionAgainst))

	clk.Advance(votingPeriod)
	require.NoError(t, k.Process(clk.Now()))

	p, _ = k.GetProposal(p.ID)
	require.Equal(t, types.StatusRejected, p.Status)
}

func TestFinalizationIsIdempotent(t *testing.T) {
	k, ledger, clk := newTestKeeper(t)
	require.NoError(t, ledger.Mint("alice", math.NewInt(3000)))

	p, err := k.CreateProposal("alice", "finalize once", "", types.ProposalTypeText, math.ZeroInt())
	require.NoError(t, err)
	activate(t, k, clk)
	require.NoError(t, k.Vote(p.ID, "alice", types.OptionFor))

	clk.Advance(votingPeriod)
	require.NoError(t, k.Process(clk.Now()))
	p, _ = k.GetProposal(p.ID)
	require.Equal(t, types.StatusPassed, p.Status)
	executeAfter := p.ExecuteAfter

	// Later ticks never re-evaluate a terminal proposal.
	clk.Advance(48 * time.Hour)
	require.NoError(t, k.Process(clk.Now()))
	p, _ = k.GetProposal(p.ID)
	require.Equal(t, types.StatusPassed, p.Status)
	require.Equal(t, executeAfter, p.ExecuteAfter)
}
