package types

// Governance event types
const (
	EventTypeProposalCreated   = "proposal_created"
	EventTypeProposalActivated = "proposal_activated"
	EventTypeVoteCast          = "vote_cast"
	EventTypeProposalFinalized = "proposal_finalized"
)

// Governance event attribute keys
const (
	AttributeKeyProposalID = "proposal_id"
	AttributeKeyProposer   = "proposer"
	AttributeKeyType       = "type"
	AttributeKeyVoter      = "voter"
	AttributeKeyOption     = "option"
	AttributeKeyPower      = "power"
	AttributeKeyStatus     = "status"
)
