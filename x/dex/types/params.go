package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params are the exchange-wide trading parameters.
type Params struct {
	// FeeRate is the total swap fee taken from the input amount.
	FeeRate math.LegacyDec
	// ProtocolFeeShare is the slice of the swap fee retained for the
	// protocol; the remainder accrues to liquidity providers.
	ProtocolFeeShare math.LegacyDec
	// MaxPriceImpact caps the spot-vs-execution price deviation per trade.
	MaxPriceImpact math.LegacyDec
	// MinLiquidity is the smallest initial reserve accepted per token when a
	// pool is created.
	MinLiquidity math.Int
}

// DefaultParams returns the exchange defaults.
func DefaultParams() Params {
	return Params{
		FeeRate:          math.LegacyNewDecWithPrec(3, 3),  // 0.3%
		ProtocolFeeShare: math.LegacyNewDecWithPrec(1, 1),  // 10% of the fee
		MaxPriceImpact:   math.LegacyNewDecWithPrec(10, 2), // 10%
		MinLiquidity:     math.NewInt(1000),
	}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.FeeRate.IsNil() || p.FeeRate.IsNegative() || p.FeeRate.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("fee rate must be in [0,1), got %s", p.FeeRate)
	}
	if p.ProtocolFeeShare.IsNil() || p.ProtocolFeeShare.IsNegative() || p.ProtocolFeeShare.GT(math.LegacyOneDec()) {
		return fmt.Errorf("protocol fee share must be in [0,1], got %s", p.ProtocolFeeShare)
	}
	if p.MaxPriceImpact.IsNil() || !p.MaxPriceImpact.IsPositive() || p.MaxPriceImpact.GT(math.LegacyOneDec()) {
		return fmt.Errorf("max price impact must be in (0,1], got %s", p.MaxPriceImpact)
	}
	if p.MinLiquidity.IsNil() || !p.MinLiquidity.IsPositive() {
		return fmt.Errorf("min liquidity must be positive, got %s", p.MinLiquidity)
	}
	return nil
}
