package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the staking error codespace.
const ModuleName = "staking"

// Staking sentinel errors
var (
	ErrBelowMinimumStake = errors.Register(ModuleName, 2, "stake below minimum amount")
	ErrInsufficientStake = errors.Register(ModuleName, 3, "insufficient active stake")
	ErrInvalidRewardMode = errors.Register(ModuleName, 4, "invalid reward mode")
)
