// Package types defines governance proposals, votes, errors and events.
package types

import (
	"time"

	"cosmossdk.io/math"
)

// ProposalType categorizes what a proposal asks for.
type ProposalType string

const (
	ProposalTypeText            ProposalType = "text"
	ProposalTypeParameterChange ProposalType = "parameter_change"
	ProposalTypeTreasurySpend   ProposalType = "treasury_spend"
	ProposalTypeUpgrade         ProposalType = "upgrade"
)

// ProposalStatus is the proposal lifecycle state. Passed and rejected are
// terminal for the voting state machine; executed may follow passed later.
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusActive   ProposalStatus = "active"
	StatusPassed   ProposalStatus = "passed"
	StatusRejected ProposalStatus = "rejected"
	StatusExecuted ProposalStatus = "executed"
)

// Terminal reports whether the status ends voting evaluation. A finalized
// proposal is never re-evaluated.
func (s ProposalStatus) Terminal() bool {
	return s == StatusPassed || s == StatusRejected || s == StatusExecuted
}

// VoteOption is a ballot choice.
type VoteOption string

const (
	OptionFor     VoteOption = "for"
	OptionAgainst VoteOption = "against"
	OptionAbstain VoteOption = "abstain"
)

// Valid reports whether the option is recognized.
func (o VoteOption) Valid() bool {
	return o == OptionFor || o == OptionAgainst || o == OptionAbstain
}

// TallyResult holds the running vote totals. Tallies only grow until
// finalization.
type TallyResult struct {
	For     math.Int
	Against math.Int
	Abstain math.Int
}

// NewTallyResult returns an all-zero tally.
func NewTallyResult() TallyResult {
	return TallyResult{For: math.ZeroInt(), Against: math.ZeroInt(), Abstain: math.ZeroInt()}
}

// Turnout sums every tally bucket.
func (t TallyResult) Turnout() math.Int {
	return t.For.Add(t.Against).Add(t.Abstain)
}

// Proposal is one governance proposal. TotalVotingPower is snapshotted at
// creation and never re-evaluated.
type Proposal struct {
	ID          string
	Proposer    string
	Title       string
	Description string
	Type        ProposalType
	Amount      math.Int // optional; zero for proposals without an amount

	Status      ProposalStatus
	VotingStart time.Time
	VotingEnd   time.Time
	Votes       TallyResult

	TotalVotingPower math.Int
	ExecuteAfter     time.Time // set when the proposal passes
}
