package keeper

import (
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/dex/types"
)

// GetQuote prices a prospective swap with the constant-product formula.
// The fee comes off the input amount before it hits the curve. Price impact
// is the relative deviation of the execution price from the spot price,
// capped at 1.0; quotes above the configured maximum are rejected.
func (k *Keeper) GetQuote(inputToken, outputToken string, inputAmount math.Int) (*types.Quote, error) {
	if err := k.validatePair(inputToken, outputToken); err != nil {
		return nil, err
	}
	if inputAmount.IsNil() || !inputAmount.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrapf("input amount must be positive, got %s", inputAmount)
	}

	pool, ok := k.store.GetPool(types.PoolID(inputToken, outputToken))
	if !ok {
		return nil, types.ErrNoLiquidityPool.Wrapf("pair %s/%s", inputToken, outputToken)
	}

	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if inputToken == pool.TokenB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}

	fee := math.LegacyNewDecFromInt(inputAmount).Mul(pool.FeeRate).TruncateInt()
	amountInAfterFee := inputAmount.Sub(fee)
	if !amountInAfterFee.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrap("input amount too small after fee")
	}

	inDec := math.LegacyNewDecFromInt(amountInAfterFee)
	outDec := math.LegacyNewDecFromInt(reserveOut).Mul(inDec).
		Quo(math.LegacyNewDecFromInt(reserveIn).Add(inDec))
	outputAmount := outDec.TruncateInt()
	if !outputAmount.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrap("input amount too small for pool reserves")
	}

	spot := math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn))
	execution := outDec.Quo(inDec)
	impact := spot.Sub(execution).Abs().Quo(spot)
	if impact.GT(math.LegacyOneDec()) {
		impact = math.LegacyOneDec()
	}
	if impact.GT(k.params.MaxPriceImpact) {
		return nil, types.ErrPriceImpactTooHigh.Wrapf("impact %s, maximum %s", impact, k.params.MaxPriceImpact)
	}

	return &types.Quote{
		InputToken:     inputToken,
		OutputToken:    outputToken,
		InputAmount:    inputAmount,
		FeeAmount:      fee,
		OutputAmount:   outputAmount,
		SpotPrice:      spot,
		ExecutionPrice: execution,
		PriceImpact:    impact,
	}, nil
}

// ExecuteSwap re-derives the quote, enforces the caller's slippage floor and
// applies the trade atomically: input side grows by the post-fee amount,
// output side shrinks by the quoted output, and the 24h volume and fee
// accumulators advance. The constant product is validated to never decrease.
func (k *Keeper) ExecuteSwap(user, inputToken, outputToken string, inputAmount, minOutputAmount math.Int) (*types.Quote, error) {
	quote, err := k.GetQuote(inputToken, outputToken, inputAmount)
	if err != nil {
		return nil, err
	}

	poolID := types.PoolID(inputToken, outputToken)
	pool, _ := k.store.GetPool(poolID)

	if !minOutputAmount.IsNil() && quote.OutputAmount.LT(minOutputAmount) {
		k.metrics.SwapsTotal.WithLabelValues(poolID, "failed").Inc()
		return nil, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minOutputAmount, quote.OutputAmount)
	}

	// Compute the post-trade reserves into locals and validate the constant
	// product before settling or touching the stored pool, so a violation
	// leaves both the ledger and the pool untouched.
	amountInAfterFee := inputAmount.Sub(quote.FeeAmount)
	newReserveA, newReserveB := pool.ReserveA, pool.ReserveB
	if inputToken == pool.TokenA {
		newReserveA = newReserveA.Add(amountInAfterFee)
		newReserveB = newReserveB.Sub(quote.OutputAmount)
	} else {
		newReserveB = newReserveB.Add(amountInAfterFee)
		newReserveA = newReserveA.Sub(quote.OutputAmount)
	}
	if newReserveA.Mul(newReserveB).LT(pool.Product()) {
		return nil, types.ErrInvariantViolation.Wrapf("product decreased from %s to %s",
			pool.Product(), newReserveA.Mul(newReserveB))
	}

	if k.settlement != nil {
		if err := k.settlement.Debit(user, inputToken, inputAmount); err != nil {
			return nil, err
		}
		if err := k.settlement.Credit(user, outputToken, quote.OutputAmount); err != nil {
			// Put the debited input back before failing.
			if revertErr := k.settlement.Credit(user, inputToken, inputAmount); revertErr != nil {
				k.logger.Error("failed to revert input debit after output credit failure",
					"user", user, "token", inputToken, "error", revertErr)
			}
			return nil, err
		}
	}

	pool.ReserveA, pool.ReserveB = newReserveA, newReserveB

	// Split the fee between LP accrual and the protocol slice.
	protocolFee := math.LegacyNewDecFromInt(quote.FeeAmount).Mul(k.params.ProtocolFeeShare).TruncateInt()
	lpFee := quote.FeeAmount.Sub(protocolFee)

	pool.Volume24h = pool.Volume24h.Add(inputAmount)
	pool.Fees24h = pool.Fees24h.Add(lpFee)
	pool.ProtocolFees = pool.ProtocolFees.Add(protocolFee)
	k.store.SetPool(pool)
	k.refreshPositionValues(pool)

	k.metrics.SwapsTotal.WithLabelValues(poolID, "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(poolID, inputToken).Add(float64(inputAmount.Int64()))
	k.metrics.SwapFeesAccrued.WithLabelValues(poolID).Add(float64(quote.FeeAmount.Int64()))

	k.emitter.Emit(events.New(
		types.EventTypeSwapExecuted,
		events.Attr(types.AttributeKeyPoolID, poolID),
		events.Attr(types.AttributeKeyTrader, user),
		events.Attr(types.AttributeKeyTokenIn, inputToken),
		events.Attr(types.AttributeKeyTokenOut, outputToken),
		events.Attr(types.AttributeKeyAmountIn, inputAmount.String()),
		events.Attr(types.AttributeKeyAmountOut, quote.OutputAmount.String()),
		events.Attr(types.AttributeKeyFee, quote.FeeAmount.String()),
	))
	return quote, nil
}
