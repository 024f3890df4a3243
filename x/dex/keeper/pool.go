package keeper

import (
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/dex/types"
)

// CreatePool creates a liquidity pool for a token pair. Tokens are ordered
// canonically so (A,B) and (B,A) resolve to the same pool. Initial LP shares
// use the geometric mean sqrt(reserveA * reserveB), which prevents initial
// share manipulation.
func (k *Keeper) CreatePool(creator, tokenA, tokenB string, reserveA, reserveB math.Int) (*types.Pool, error) {
	if err := k.validatePair(tokenA, tokenB); err != nil {
		return nil, err
	}
	if reserveA.IsNil() || !reserveA.IsPositive() {
		return nil, types.ErrNonPositiveReserve.Wrapf("reserve for %s must be positive, got %s", tokenA, reserveA)
	}
	if reserveB.IsNil() || !reserveB.IsPositive() {
		return nil, types.ErrNonPositiveReserve.Wrapf("reserve for %s must be positive, got %s", tokenB, reserveB)
	}
	if reserveA.LT(k.params.MinLiquidity) || reserveB.LT(k.params.MinLiquidity) {
		return nil, types.ErrBelowMinimumLiquidity.Wrapf("both reserves must be at least %s", k.params.MinLiquidity)
	}

	// Canonical ordering, reserves follow their tokens.
	if tokenA > tokenB {
		tokenA, tokenB = tokenB, tokenA
		reserveA, reserveB = reserveB, reserveA
	}
	poolID := types.PoolID(tokenA, tokenB)
	if _, ok := k.store.GetPool(poolID); ok {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool %s", poolID)
	}

	shares, err := initialShares(reserveA, reserveB)
	if err != nil {
		return nil, err
	}

	if k.settlement != nil {
		if err := k.settlement.Debit(creator, tokenA, reserveA); err != nil {
			return nil, err
		}
		if err := k.settlement.Debit(creator, tokenB, reserveB); err != nil {
			return nil, err
		}
	}

	now := k.clock.Now()
	pool := &types.Pool{
		ID:             poolID,
		TokenA:         tokenA,
		TokenB:         tokenB,
		ReserveA:       reserveA,
		ReserveB:       reserveB,
		TotalLiquidity: shares,
		FeeRate:        k.params.FeeRate,
		LPToken:        types.LPTokenSymbol(tokenA, tokenB),
		Volume24h:      math.ZeroInt(),
		Fees24h:        math.ZeroInt(),
		ProtocolFees:   math.ZeroInt(),
		WindowStart:    now,
	}
	k.store.SetPool(pool)

	k.store.SetPosition(&types.Position{
		Owner:     creator,
		PoolID:    poolID,
		Liquidity: shares,
		Share:     math.LegacyOneDec(),
		ValueA:    reserveA,
		ValueB:    reserveB,
		Rewards:   math.ZeroInt(),
	})

	k.metrics.PoolsTotal.Inc()
	k.emitter.Emit(events.New(
		types.EventTypePoolCreated,
		events.Attr(types.AttributeKeyPoolID, poolID),
		events.Attr(types.AttributeKeyTokenA, tokenA),
		events.Attr(types.AttributeKeyTokenB, tokenB),
		events.Attr(types.AttributeKeyAmountA, reserveA.String()),
		events.Attr(types.AttributeKeyAmountB, reserveB.String()),
		events.Attr(types.AttributeKeyShares, shares.String()),
	))
	return pool, nil
}

// initialShares computes sqrt(reserveA * reserveB), truncated.
func initialShares(reserveA, reserveB math.Int) (math.Int, error) {
	product := reserveA.Mul(reserveB)
	root, err := math.LegacyNewDecFromInt(product).ApproxSqrt()
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrapf("initial share calculation: %v", err)
	}
	shares := root.TruncateInt()
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrBelowMinimumLiquidity.Wrap("initial reserves too small")
	}
	return shares, nil
}

// refreshPositionValues recomputes cached share ratios and reserve claims
// for every position in the pool.
func (k *Keeper) refreshPositionValues(pool *types.Pool) {
	for _, pos := range k.store.ByPool(pool.ID) {
		if pool.TotalLiquidity.IsZero() {
			pos.Share = math.LegacyZeroDec()
			pos.ValueA = math.ZeroInt()
			pos.ValueB = math.ZeroInt()
		} else {
			pos.Share = math.LegacyNewDecFromInt(pos.Liquidity).Quo(math.LegacyNewDecFromInt(pool.TotalLiquidity))
			pos.ValueA = pos.Share.MulInt(pool.ReserveA).TruncateInt()
			pos.ValueB = pos.Share.MulInt(pool.ReserveB).TruncateInt()
		}
		k.store.SetPosition(pos)
	}
}
