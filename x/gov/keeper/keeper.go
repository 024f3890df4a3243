// Package keeper implements the governance proposal lifecycle.
//
// Voting power is read from the ledger (balance + staked); governance owns
// no balances. A per-voter record guards against repeat voting inflating
// tallies.
package keeper

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/gov/types"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
)

// executionDelay is how long after passing a proposal becomes executable.
const executionDelay = 24 * time.Hour

// Keeper drives the proposal state machine.
type Keeper struct {
	store   types.ProposalStore
	ledger  *ledgerkeeper.Keeper
	clock   clock.Clock
	emitter events.Emitter
	logger  log.Logger

	proposalThreshold math.Int
	votingPeriod      time.Duration
}

// NewKeeper creates the governance keeper.
func NewKeeper(store types.ProposalStore, ledger *ledgerkeeper.Keeper, clk clock.Clock, emitter events.Emitter, logger log.Logger,
	proposalThreshold math.Int, votingPeriod time.Duration) *Keeper {
	return &Keeper{
		store:             store,
		ledger:            ledger,
		clock:             clk,
		emitter:           emitter,
		logger:            logger.With("module", types.ModuleName),
		proposalThreshold: proposalThreshold,
		votingPeriod:      votingPeriod,
	}
}

// GetProposal returns the proposal with id.
func (k *Keeper) GetProposal(id string) (*types.Proposal, bool) {
	return k.store.Get(id)
}

// CreateProposal opens a new proposal. The proposer needs voting power at or
// above the threshold; the network-wide voting power is snapshotted now and
// never re-evaluated.
func (k *Keeper) CreateProposal(proposer, title, description string, typ types.ProposalType, amount math.Int) (*types.Proposal, error) {
	if title == "" {
		return nil, types.ErrInvalidProposal.Wrap("title cannot be empty")
	}
	power := k.ledger.VotingPower(proposer)
	if power.LT(k.proposalThreshold) {
		return nil, types.ErrInsufficientVotingPower.Wrapf("power %s, threshold %s", power, k.proposalThreshold)
	}
	if amount.IsNil() {
		amount = math.ZeroInt()
	}

	now := k.clock.Now()
	proposal := &types.Proposal{
		ID:               uuid.NewString(),
		Proposer:         proposer,
		Title:            title,
		Description:      description,
		Type:             typ,
		Amount:           amount,
		Status:           types.StatusPending,
		VotingStart:      now,
		VotingEnd:        now.Add(k.votingPeriod),
		Votes:            types.NewTallyResult(),
		TotalVotingPower: k.ledger.TotalVotingPower(),
	}
	k.store.Set(proposal)

	k.emitter.Emit(events.New(
		types.EventTypeProposalCreated,
		events.Attr(types.AttributeKeyProposalID, proposal.ID),
		events.Attr(types.AttributeKeyProposer, proposer),
		events.Attr(types.AttributeKeyType, string(typ)),
	))
	return proposal, nil
}

// Vote adds the voter's current voting power to the chosen tally. Each voter
// gets one ballot per proposal.
func (k *Keeper) Vote(proposalID, voter string, option types.VoteOption) error {
	if !option.Valid() {
		return types.ErrInvalidVoteOption.Wrapf("%q", option)
	}
	proposal, ok := k.store.Get(proposalID)
	if !ok {
		return types.ErrProposalNotFound.Wrapf("proposal %s", proposalID)
	}

	now := k.clock.Now()
	if proposal.Status != types.StatusActive || now.Before(proposal.VotingStart) || !now.Before(proposal.VotingEnd) {
		return types.ErrProposalNotActive.Wrapf("proposal %s is %s", proposalID, proposal.Status)
	}
	if k.store.HasVoted(proposalID, voter) {
		return types.ErrAlreadyVoted.Wrapf("voter %s, proposal %s", voter, proposalID)
	}
	power := k.ledger.VotingPower(voter)
	if power.IsZero() {
		return types.ErrNoVotingPower.Wrapf("voter %s", voter)
	}

	switch option {
	case types.OptionFor:
		proposal.Votes.For = proposal.Votes.For.Add(power)
	case types.OptionAgainst:
		proposal.Votes.Against = proposal.Votes.Against.Add(power)
	case types.OptionAbstain:
		proposal.Votes.Abstain = proposal.Votes.Abstain.Add(power)
	}
	k.store.SetVoted(proposalID, voter)
	k.store.Set(proposal)

	k.emitter.Emit(events.New(
		types.EventTypeVoteCast,
		events.Attr(types.AttributeKeyProposalID, proposalID),
		events.Attr(types.AttributeKeyVoter, voter),
		events.Attr(types.AttributeKeyOption, string(option)),
		events.Attr(types.AttributeKeyPower, power.String()),
	))
	return nil
}

// Process is the periodic lifecycle tick: pending proposals activate once
// voting opens, active proposals finalize once voting closes. Finalization
// is idempotent — terminal proposals are never re-evaluated.
func (k *Keeper) Process(now time.Time) error {
	k.store.Iterate(func(p *types.Proposal) bool {
		if p.Status.Terminal() {
			return false
		}

		if p.Status == types.StatusPending && !now.Before(p.VotingStart) {
			p.Status = types.StatusActive
			k.store.Set(p)
			k.emitter.Emit(events.New(
				types.EventTypeProposalActivated,
				events.Attr(types.AttributeKeyProposalID, p.ID),
			))
		}

		if p.Status == types.StatusActive && !now.Before(p.VotingEnd) {
			k.finalize(p, now)
		}
		return false
	})
	return nil
}

// finalize applies the quorum and majority rules exactly once.
func (k *Keeper) finalize(p *types.Proposal, now time.Time) {
	quorum := p.TotalVotingPower.QuoRaw(4)
	turnout := p.Votes.Turnout()

	switch {
	case turnout.LT(quorum):
		p.Status = types.StatusRejected
	case p.Votes.For.GT(p.Votes.Against):
		p.Status = types.StatusPassed
		p.ExecuteAfter = now.Add(executionDelay)
	default:
		p.Status = types.StatusRejected
	}
	k.store.Set(p)

	k.logger.Info("proposal finalized",
		"proposal", p.ID, "status", string(p.Status),
		"for", p.Votes.For.String(), "against", p.Votes.Against.String(), "abstain", p.Votes.Abstain.String())
	k.emitter.Emit(events.New(
		types.EventTypeProposalFinalized,
		events.Attr(types.AttributeKeyProposalID, p.ID),
		events.Attr(types.AttributeKeyStatus, string(p.Status)),
	))
}
