package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the ledger error codespace.
const ModuleName = "ledger"

// Ledger sentinel errors
var (
	ErrInsufficientBalance = errors.Register(ModuleName, 2, "insufficient balance")
	ErrAccountNotFound     = errors.Register(ModuleName, 3, "account not found")
	ErrInvalidAmount       = errors.Register(ModuleName, 4, "invalid amount")
	ErrQuotaExceeded       = errors.Register(ModuleName, 5, "free quota exceeded")
)
