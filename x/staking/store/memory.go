// Package store provides the in-memory StakeStore implementation.
package store

import (
	"github.com/lumen-chain/lumen/x/staking/types"
)

// MemoryStore keeps stake records in creation order with a per-delegator
// index.
type MemoryStore struct {
	records     []*types.Stake
	byDelegator map[string][]*types.Stake
}

var _ types.StakeStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty stake store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byDelegator: make(map[string][]*types.Stake)}
}

// Append adds a new stake record.
func (s *MemoryStore) Append(stake *types.Stake) {
	s.records = append(s.records, stake)
	s.byDelegator[stake.Delegator] = append(s.byDelegator[stake.Delegator], stake)
}

// ByDelegator returns the delegator's records in creation order.
func (s *MemoryStore) ByDelegator(delegator string) []*types.Stake {
	return s.byDelegator[delegator]
}

// Iterate visits every record in creation order until fn returns true.
func (s *MemoryStore) Iterate(fn func(stake *types.Stake) (stop bool)) {
	for _, rec := range s.records {
		if fn(rec) {
			return
		}
	}
}
