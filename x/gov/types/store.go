package types

// ProposalStore persists proposals and the per-voter replay guard.
// Iteration follows creation order so periodic processing is deterministic.
type ProposalStore interface {
	Get(id string) (*Proposal, bool)
	Set(proposal *Proposal)
	Iterate(fn func(proposal *Proposal) (stop bool))

	HasVoted(proposalID, voter string) bool
	SetVoted(proposalID, voter string)
}
