package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the governance error codespace.
const ModuleName = "gov"

// Governance sentinel errors
var (
	ErrInsufficientVotingPower = errors.Register(ModuleName, 2, "insufficient voting power for proposal")
	ErrNoVotingPower           = errors.Register(ModuleName, 3, "voter has no voting power")
	ErrProposalNotActive       = errors.Register(ModuleName, 4, "proposal is not active for voting")
	ErrProposalNotFound        = errors.Register(ModuleName, 5, "proposal not found")
	ErrAlreadyVoted            = errors.Register(ModuleName, 6, "voter already voted on proposal")
	ErrInvalidVoteOption       = errors.Register(ModuleName, 7, "invalid vote option")
	ErrInvalidProposal         = errors.Register(ModuleName, 8, "invalid proposal")
)
