// Package types defines the AMM exchange data model, errors and events.
package types

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
)

// Token is a tradable asset registered with the exchange. Registration is
// immutable in this engine's scope.
type Token struct {
	Symbol   string
	Name     string
	Decimals uint8
	IsNative bool
}

// PoolID returns the canonical identifier for a token pair. Symbols are
// ordered lexicographically so (A,B) and (B,A) resolve to the same pool.
func PoolID(tokenA, tokenB string) string {
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
	}
	return tokenA + "/" + tokenB
}

// SortTokens returns the pair in canonical order.
func SortTokens(tokenA, tokenB string) (string, string) {
	if tokenA > tokenB {
		return tokenB, tokenA
	}
	return tokenA, tokenB
}

// LPTokenSymbol derives the synthetic LP token name for a pair.
func LPTokenSymbol(tokenA, tokenB string) string {
	a, b := SortTokens(tokenA, tokenB)
	return fmt.Sprintf("LP-%s-%s", a, b)
}

// Pool is a constant-product liquidity pool. Reserves stay positive for the
// pool's whole lifetime; the pool is deleted when its last share is burned.
// ReserveA belongs to the lexicographically smaller token.
type Pool struct {
	ID     string
	TokenA string
	TokenB string

	ReserveA       math.Int
	ReserveB       math.Int
	TotalLiquidity math.Int
	FeeRate        math.LegacyDec
	LPToken        string

	// Rolling 24h accumulators, cleared by the volume-window tick.
	Volume24h    math.Int
	Fees24h      math.Int
	ProtocolFees math.Int
	WindowStart  time.Time
}

// Product returns reserveA * reserveB, the constant-product invariant value.
func (p *Pool) Product() math.Int {
	return p.ReserveA.Mul(p.ReserveB)
}

// Position is one provider's share of a pool.
type Position struct {
	Owner  string
	PoolID string

	Liquidity math.Int
	Share     math.LegacyDec // cached liquidity / totalLiquidity
	ValueA    math.Int       // informational reserve claim
	ValueB    math.Int
	Rewards   math.Int
}

// Quote is the priced outcome of a prospective swap.
type Quote struct {
	InputToken  string
	OutputToken string
	InputAmount math.Int

	FeeAmount    math.Int
	OutputAmount math.Int

	SpotPrice      math.LegacyDec
	ExecutionPrice math.LegacyDec
	PriceImpact    math.LegacyDec
}
