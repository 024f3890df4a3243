package keeper

import (
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/dex/types"
)

// AddLiquidity deposits both tokens into the pair's pool and mints liquidity
// shares to the provider. If no pool exists the call creates one, in which
// case both amounts must be positive. For an existing pool shares are minted
// at min(amountA/reserveA, amountB/reserveB) of the current total, so a
// provider can never dilute existing positions by depositing lopsided
// amounts.
func (k *Keeper) AddLiquidity(provider, tokenA, tokenB string, amountA, amountB math.Int) (*types.Position, error) {
	if err := k.validatePair(tokenA, tokenB); err != nil {
		return nil, err
	}

	poolID := types.PoolID(tokenA, tokenB)
	pool, ok := k.store.GetPool(poolID)
	if !ok {
		if _, err := k.CreatePool(provider, tokenA, tokenB, amountA, amountB); err != nil {
			return nil, err
		}
		pos, _ := k.store.GetPosition(provider, poolID)
		return pos, nil
	}

	if amountA.IsNil() || !amountA.IsPositive() || amountB.IsNil() || !amountB.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrap("both deposit amounts must be positive")
	}

	// Align amounts with the pool's canonical token order.
	if tokenA != pool.TokenA {
		amountA, amountB = amountB, amountA
	}

	ratioA := math.LegacyNewDecFromInt(amountA).Quo(math.LegacyNewDecFromInt(pool.ReserveA))
	ratioB := math.LegacyNewDecFromInt(amountB).Quo(math.LegacyNewDecFromInt(pool.ReserveB))
	ratio := ratioA
	if ratioB.LT(ratio) {
		ratio = ratioB
	}
	shares := ratio.MulInt(pool.TotalLiquidity).TruncateInt()
	if !shares.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrap("deposit too small to mint liquidity shares")
	}

	if k.settlement != nil {
		if err := k.settlement.Debit(provider, pool.TokenA, amountA); err != nil {
			return nil, err
		}
		if err := k.settlement.Debit(provider, pool.TokenB, amountB); err != nil {
			if revertErr := k.settlement.Credit(provider, pool.TokenA, amountA); revertErr != nil {
				k.logger.Error("failed to revert first-leg debit",
					"provider", provider, "token", pool.TokenA, "error", revertErr)
			}
			return nil, err
		}
	}

	pool.ReserveA = pool.ReserveA.Add(amountA)
	pool.ReserveB = pool.ReserveB.Add(amountB)
	pool.TotalLiquidity = pool.TotalLiquidity.Add(shares)
	k.store.SetPool(pool)

	pos, ok := k.store.GetPosition(provider, poolID)
	if !ok {
		pos = &types.Position{
			Owner:     provider,
			PoolID:    poolID,
			Liquidity: math.ZeroInt(),
			Rewards:   math.ZeroInt(),
		}
	}
	pos.Liquidity = pos.Liquidity.Add(shares)
	k.store.SetPosition(pos)
	k.refreshPositionValues(pool)

	k.metrics.LiquidityAdded.WithLabelValues(poolID, pool.TokenA).Add(float64(amountA.Int64()))
	k.metrics.LiquidityAdded.WithLabelValues(poolID, pool.TokenB).Add(float64(amountB.Int64()))

	k.emitter.Emit(events.New(
		types.EventTypeLiquidityAdded,
		events.Attr(types.AttributeKeyPoolID, poolID),
		events.Attr(types.AttributeKeyProvider, provider),
		events.Attr(types.AttributeKeyAmountA, amountA.String()),
		events.Attr(types.AttributeKeyAmountB, amountB.String()),
		events.Attr(types.AttributeKeyShares, shares.String()),
	))

	pos, _ = k.store.GetPosition(provider, poolID)
	return pos, nil
}

// RemoveLiquidity burns liquidity shares and pays out the proportional slice
// of both reserves. A position drained to zero is deleted, and a pool whose
// total liquidity reaches zero is removed entirely so that live pools always
// hold positive reserves.
func (k *Keeper) RemoveLiquidity(provider, tokenA, tokenB string, shares math.Int) (amountA, amountB math.Int, err error) {
	zero := math.ZeroInt()
	if err := k.validatePair(tokenA, tokenB); err != nil {
		return zero, zero, err
	}
	if shares.IsNil() || !shares.IsPositive() {
		return zero, zero, types.ErrInvalidAmount.Wrapf("shares must be positive, got %s", shares)
	}

	poolID := types.PoolID(tokenA, tokenB)
	pool, ok := k.store.GetPool(poolID)
	if !ok {
		return zero, zero, types.ErrNoLiquidityPool.Wrapf("pair %s/%s", tokenA, tokenB)
	}
	pos, ok := k.store.GetPosition(provider, poolID)
	if !ok || pos.Liquidity.LT(shares) {
		held := zero
		if ok {
			held = pos.Liquidity
		}
		return zero, zero, types.ErrInsufficientLiquidityTokens.Wrapf("have %s, want %s", held, shares)
	}

	fraction := math.LegacyNewDecFromInt(shares).Quo(math.LegacyNewDecFromInt(pool.TotalLiquidity))
	amountA = fraction.MulInt(pool.ReserveA).TruncateInt()
	amountB = fraction.MulInt(pool.ReserveB).TruncateInt()

	if k.settlement != nil {
		if err := k.settlement.Credit(provider, pool.TokenA, amountA); err != nil {
			return zero, zero, err
		}
		if err := k.settlement.Credit(provider, pool.TokenB, amountB); err != nil {
			if revertErr := k.settlement.Debit(provider, pool.TokenA, amountA); revertErr != nil {
				k.logger.Error("failed to revert first-leg credit",
					"provider", provider, "token", pool.TokenA, "error", revertErr)
			}
			return zero, zero, err
		}
	}

	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.TotalLiquidity = pool.TotalLiquidity.Sub(shares)

	pos.Liquidity = pos.Liquidity.Sub(shares)
	if pos.Liquidity.IsZero() {
		k.store.DeletePosition(provider, poolID)
	} else {
		k.store.SetPosition(pos)
	}

	if pool.TotalLiquidity.IsZero() {
		k.store.DeletePool(poolID)
		k.metrics.PoolsTotal.Dec()
	} else {
		k.store.SetPool(pool)
		k.refreshPositionValues(pool)
	}

	k.metrics.LiquidityRemoved.WithLabelValues(poolID, pool.TokenA).Add(float64(amountA.Int64()))
	k.metrics.LiquidityRemoved.WithLabelValues(poolID, pool.TokenB).Add(float64(amountB.Int64()))

	k.emitter.Emit(events.New(
		types.EventTypeLiquidityRemoved,
		events.Attr(types.AttributeKeyPoolID, poolID),
		events.Attr(types.AttributeKeyProvider, provider),
		events.Attr(types.AttributeKeyAmountA, amountA.String()),
		events.Attr(types.AttributeKeyAmountB, amountB.String()),
		events.Attr(types.AttributeKeyShares, shares.String()),
	))
	return amountA, amountB, nil
}
