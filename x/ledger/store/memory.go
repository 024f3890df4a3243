// Package store provides the in-memory AccountStore implementation.
package store

import (
	"github.com/lumen-chain/lumen/x/ledger/types"
)

// MemoryStore keeps accounts in a map with insertion-ordered iteration, so
// periodic computations over the account set are deterministic.
type MemoryStore struct {
	accounts map[string]*types.Account
	order    []string
}

var _ types.AccountStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty account store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*types.Account)}
}

// Get returns the account for address, if present.
func (s *MemoryStore) Get(address string) (*types.Account, bool) {
	acc, ok := s.accounts[address]
	return acc, ok
}

// Set inserts or replaces the account.
func (s *MemoryStore) Set(account *types.Account) {
	if _, ok := s.accounts[account.Address]; !ok {
		s.order = append(s.order, account.Address)
	}
	s.accounts[account.Address] = account
}

// Has reports whether an account exists for address.
func (s *MemoryStore) Has(address string) bool {
	_, ok := s.accounts[address]
	return ok
}

// Iterate visits accounts in insertion order until fn returns true.
func (s *MemoryStore) Iterate(fn func(account *types.Account) (stop bool)) {
	for _, addr := range s.order {
		if fn(s.accounts[addr]) {
			return
		}
	}
}

// Len returns the number of accounts.
func (s *MemoryStore) Len() int {
	return len(s.accounts)
}
