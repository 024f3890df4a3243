// Package store provides the in-memory DEX store implementations.
package store

import (
	"github.com/lumen-chain/lumen/x/dex/types"
)

// MemoryStore implements the token, pool and position stores over maps with
// deterministic iteration order.
type MemoryStore struct {
	tokens map[string]*types.Token

	pools     map[string]*types.Pool
	poolOrder []string

	positions map[string]map[string]*types.Position // poolID -> owner
	posOrder  map[string][]string                   // poolID -> owners, creation order
}

var _ types.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty DEX store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:    make(map[string]*types.Token),
		pools:     make(map[string]*types.Pool),
		positions: make(map[string]map[string]*types.Position),
		posOrder:  make(map[string][]string),
	}
}

// GetToken returns the token for symbol.
func (s *MemoryStore) GetToken(symbol string) (*types.Token, bool) {
	t, ok := s.tokens[symbol]
	return t, ok
}

// SetToken registers the token.
func (s *MemoryStore) SetToken(token *types.Token) {
	s.tokens[token.Symbol] = token
}

// HasToken reports whether symbol is registered.
func (s *MemoryStore) HasToken(symbol string) bool {
	_, ok := s.tokens[symbol]
	return ok
}

// GetPool returns the pool with id.
func (s *MemoryStore) GetPool(id string) (*types.Pool, bool) {
	p, ok := s.pools[id]
	return p, ok
}

// SetPool inserts or replaces the pool.
func (s *MemoryStore) SetPool(pool *types.Pool) {
	if _, ok := s.pools[pool.ID]; !ok {
		s.poolOrder = append(s.poolOrder, pool.ID)
	}
	s.pools[pool.ID] = pool
}

// DeletePool removes the pool and all its positions.
func (s *MemoryStore) DeletePool(id string) {
	if _, ok := s.pools[id]; !ok {
		return
	}
	delete(s.pools, id)
	for i, pid := range s.poolOrder {
		if pid == id {
			s.poolOrder = append(s.poolOrder[:i], s.poolOrder[i+1:]...)
			break
		}
	}
	delete(s.positions, id)
	delete(s.posOrder, id)
}

// IteratePools visits pools in creation order until fn returns true.
func (s *MemoryStore) IteratePools(fn func(pool *types.Pool) (stop bool)) {
	for _, id := range s.poolOrder {
		if fn(s.pools[id]) {
			return
		}
	}
}

// GetPosition returns the provider's position in a pool.
func (s *MemoryStore) GetPosition(owner, poolID string) (*types.Position, bool) {
	p, ok := s.positions[poolID][owner]
	return p, ok
}

// SetPosition inserts or replaces a position.
func (s *MemoryStore) SetPosition(position *types.Position) {
	byOwner, ok := s.positions[position.PoolID]
	if !ok {
		byOwner = make(map[string]*types.Position)
		s.positions[position.PoolID] = byOwner
	}
	if _, ok := byOwner[position.Owner]; !ok {
		s.posOrder[position.PoolID] = append(s.posOrder[position.PoolID], position.Owner)
	}
	byOwner[position.Owner] = position
}

// DeletePosition removes a provider's position.
func (s *MemoryStore) DeletePosition(owner, poolID string) {
	byOwner, ok := s.positions[poolID]
	if !ok {
		return
	}
	if _, ok := byOwner[owner]; !ok {
		return
	}
	delete(byOwner, owner)
	owners := s.posOrder[poolID]
	for i, o := range owners {
		if o == owner {
			s.posOrder[poolID] = append(owners[:i], owners[i+1:]...)
			break
		}
	}
}

// ByPool returns a pool's positions in creation order.
func (s *MemoryStore) ByPool(poolID string) []*types.Position {
	owners := s.posOrder[poolID]
	out := make([]*types.Position, 0, len(owners))
	for _, o := range owners {
		out = append(out, s.positions[poolID][o])
	}
	return out
}
