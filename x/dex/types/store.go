package types

import (
	"cosmossdk.io/math"
)

// TokenStore persists the token registry.
type TokenStore interface {
	GetToken(symbol string) (*Token, bool)
	SetToken(token *Token)
	HasToken(symbol string) bool
}

// PoolStore persists pools, keyed by canonical pair id. Iteration follows
// creation order so periodic maintenance is deterministic.
type PoolStore interface {
	GetPool(id string) (*Pool, bool)
	SetPool(pool *Pool)
	DeletePool(id string)
	IteratePools(fn func(pool *Pool) (stop bool))
}

// PositionStore persists liquidity positions keyed by (owner, poolID).
// ByPool returns positions in creation order.
type PositionStore interface {
	GetPosition(owner, poolID string) (*Position, bool)
	SetPosition(position *Position)
	DeletePosition(owner, poolID string)
	ByPool(poolID string) []*Position
}

// Store bundles the three DEX store facets; the in-memory implementation
// satisfies all of them.
type Store interface {
	TokenStore
	PoolStore
	PositionStore
}

// Settlement is the optional ledger hook for tokens whose balances live in
// the account ledger. A nil settlement leaves token movement entirely to
// pool accounting.
type Settlement interface {
	Debit(user, token string, amount math.Int) error
	Credit(user, token string, amount math.Int) error
}
