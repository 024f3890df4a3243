// Package store provides the in-memory ProposalStore implementation.
package store

import (
	"github.com/lumen-chain/lumen/x/gov/types"
)

// MemoryStore keeps proposals in creation order with a voter record per
// proposal.
type MemoryStore struct {
	proposals map[string]*types.Proposal
	order     []string
	voters    map[string]map[string]struct{}
}

var _ types.ProposalStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty proposal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		proposals: make(map[string]*types.Proposal),
		voters:    make(map[string]map[string]struct{}),
	}
}

// Get returns the proposal with id, if present.
func (s *MemoryStore) Get(id string) (*types.Proposal, bool) {
	p, ok := s.proposals[id]
	return p, ok
}

// Set inserts or replaces the proposal.
func (s *MemoryStore) Set(proposal *types.Proposal) {
	if _, ok := s.proposals[proposal.ID]; !ok {
		s.order = append(s.order, proposal.ID)
	}
	s.proposals[proposal.ID] = proposal
}

// Iterate visits proposals in creation order until fn returns true.
func (s *MemoryStore) Iterate(fn func(proposal *types.Proposal) (stop bool)) {
	for _, id := range s.order {
		if fn(s.proposals[id]) {
			return
		}
	}
}

// HasVoted reports whether voter already voted on the proposal.
func (s *MemoryStore) HasVoted(proposalID, voter string) bool {
	_, ok := s.voters[proposalID][voter]
	return ok
}

// SetVoted records that voter cast a ballot on the proposal.
func (s *MemoryStore) SetVoted(proposalID, voter string) {
	m, ok := s.voters[proposalID]
	if !ok {
		m = make(map[string]struct{})
		s.voters[proposalID] = m
	}
	m[voter] = struct{}{}
}
