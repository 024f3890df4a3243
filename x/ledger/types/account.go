// Package types defines the account ledger's data model, errors and events.
package types

import (
	"time"

	"cosmossdk.io/math"
)

// UnbondingEntry is staking principal in transit back to spendable balance.
// It is locked until CompletionTime elapses and must be claimed explicitly.
type UnbondingEntry struct {
	Amount         math.Int
	StartTime      time.Time
	CompletionTime time.Time
}

// Matured reports whether the entry can be claimed at now.
func (e UnbondingEntry) Matured(now time.Time) bool {
	return !now.Before(e.CompletionTime)
}

// Account holds all per-address ledger state. Balance and Staked are base
// units and never negative. The sum balance + staked + unbonding only changes
// through explicit mint and fee-burn operations; transfers and stake moves
// shuffle value between buckets or accounts.
type Account struct {
	Address   string
	Balance   math.Int
	Staked    math.Int
	Unbonding []UnbondingEntry

	Nonce        uint64
	LastActivity time.Time

	FreeQuotaUsed    uint64
	FreeQuotaResetAt time.Time
}

// NewAccount returns a zero-balance account created at now.
func NewAccount(address string, now time.Time) *Account {
	return &Account{
		Address:          address,
		Balance:          math.ZeroInt(),
		Staked:           math.ZeroInt(),
		LastActivity:     now,
		FreeQuotaResetAt: now,
	}
}

// UnbondingTotal sums all in-transit unbonding amounts.
func (a *Account) UnbondingTotal() math.Int {
	total := math.ZeroInt()
	for _, e := range a.Unbonding {
		total = total.Add(e.Amount)
	}
	return total
}

// VotingPower is the account's governance weight: balance plus staked.
func (a *Account) VotingPower() math.Int {
	return a.Balance.Add(a.Staked)
}
