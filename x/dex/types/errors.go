package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the dex error codespace.
const ModuleName = "dex"

// DEX sentinel errors
var (
	ErrTokenNotFound               = errors.Register(ModuleName, 2, "token not found")
	ErrTokenAlreadyExists          = errors.Register(ModuleName, 3, "token already registered")
	ErrSameToken                   = errors.Register(ModuleName, 4, "cannot pair a token with itself")
	ErrNonPositiveReserve          = errors.Register(ModuleName, 5, "reserve amount must be positive")
	ErrPoolAlreadyExists           = errors.Register(ModuleName, 6, "pool already exists")
	ErrNoLiquidityPool             = errors.Register(ModuleName, 7, "no liquidity pool for token pair")
	ErrPriceImpactTooHigh          = errors.Register(ModuleName, 8, "price impact exceeds maximum")
	ErrSlippageExceeded            = errors.Register(ModuleName, 9, "output amount less than minimum required")
	ErrInsufficientLiquidityTokens = errors.Register(ModuleName, 10, "insufficient liquidity tokens")
	ErrInvalidAmount               = errors.Register(ModuleName, 11, "invalid amount")
	ErrBelowMinimumLiquidity       = errors.Register(ModuleName, 12, "initial liquidity below minimum")
	ErrInvariantViolation          = errors.Register(ModuleName, 13, "constant product invariant violated")
)
