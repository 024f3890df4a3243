package engine

import (
	"cosmossdk.io/math"

	dextypes "github.com/lumen-chain/lumen/x/dex/types"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
)

// EscrowAddress holds tokens deposited into pools when the native token is
// one leg of a pair.
const EscrowAddress = "dex_escrow"

// ledgerSettlement settles DEX legs denominated in the native token against
// the account ledger via an escrow account. Legs in any other token are left
// to pool accounting alone.
type ledgerSettlement struct {
	ledger *ledgerkeeper.Keeper
	native string
}

var _ dextypes.Settlement = (*ledgerSettlement)(nil)

func newLedgerSettlement(ledger *ledgerkeeper.Keeper, nativeSymbol string) *ledgerSettlement {
	return &ledgerSettlement{ledger: ledger, native: nativeSymbol}
}

func (s *ledgerSettlement) Debit(user, token string, amount math.Int) error {
	if token != s.native || !amount.IsPositive() {
		return nil
	}
	return s.ledger.Transfer(user, EscrowAddress, amount)
}

func (s *ledgerSettlement) Credit(user, token string, amount math.Int) error {
	if token != s.native || !amount.IsPositive() {
		return nil
	}
	return s.ledger.Transfer(EscrowAddress, user, amount)
}
