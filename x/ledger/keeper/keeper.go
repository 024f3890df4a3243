// Package keeper implements the account ledger.
//
// The ledger exclusively owns balance, stake-bucket and quota state. Other
// components (staking, gas, governance, dex settlement) mutate accounts only
// through this keeper. All operations assume engine-level serialization.
package keeper

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/ledger/types"
)

// Keeper is the account ledger.
type Keeper struct {
	store   types.AccountStore
	clock   clock.Clock
	emitter events.Emitter
	logger  log.Logger

	quotaAmount uint64
	quotaPeriod time.Duration

	totalSupply math.Int
}

// NewKeeper creates the ledger keeper. quotaAmount is the free gas allowance
// per account per quotaPeriod; a zero amount disables the quota.
func NewKeeper(store types.AccountStore, clk clock.Clock, emitter events.Emitter, logger log.Logger, quotaAmount uint64, quotaPeriod time.Duration) *Keeper {
	return &Keeper{
		store:       store,
		clock:       clk,
		emitter:     emitter,
		logger:      logger.With("module", types.ModuleName),
		quotaAmount: quotaAmount,
		quotaPeriod: quotaPeriod,
		totalSupply: math.ZeroInt(),
	}
}

// GetAccount returns the account for address, if present.
func (k *Keeper) GetAccount(address string) (*types.Account, bool) {
	return k.store.Get(address)
}

func (k *Keeper) getOrCreate(address string) *types.Account {
	if acc, ok := k.store.Get(address); ok {
		return acc
	}
	acc := types.NewAccount(address, k.clock.Now())
	k.store.Set(acc)
	return acc
}

// GetBalance returns the spendable balance for address. Unknown addresses
// have a zero balance; this is not an error.
func (k *Keeper) GetBalance(address string) math.Int {
	acc, ok := k.store.Get(address)
	if !ok {
		return math.ZeroInt()
	}
	return acc.Balance
}

// Transfer moves amount from one account to another. The recipient is
// created lazily. The sender's nonce increments and both activity timestamps
// update.
func (k *Keeper) Transfer(from, to string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("transfer amount must be positive, got %s", amount)
	}
	sender, ok := k.store.Get(from)
	if !ok {
		return types.ErrAccountNotFound.Wrapf("sender %s", from)
	}
	if sender.Balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("balance %s, need %s", sender.Balance, amount)
	}

	now := k.clock.Now()
	recipient := k.getOrCreate(to)

	sender.Balance = sender.Balance.Sub(amount)
	recipient.Balance = recipient.Balance.Add(amount)
	sender.Nonce++
	sender.LastActivity = now
	recipient.LastActivity = now
	k.store.Set(sender)
	k.store.Set(recipient)

	k.emitter.Emit(events.New(
		types.EventTypeTransfer,
		events.Attr(types.AttributeKeySender, from),
		events.Attr(types.AttributeKeyRecipient, to),
		events.Attr(types.AttributeKeyAmount, amount.String()),
		events.Attr(types.AttributeKeyNonce, fmt.Sprintf("%d", sender.Nonce)),
	))
	return nil
}

// Mint credits newly created supply to address. This is the only path that
// grows circulating supply; it exists for the reward mechanisms.
func (k *Keeper) Mint(address string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("mint amount must be positive, got %s", amount)
	}
	acc := k.getOrCreate(address)
	acc.Balance = acc.Balance.Add(amount)
	k.store.Set(acc)
	k.totalSupply = k.totalSupply.Add(amount)

	k.emitter.Emit(events.New(
		types.EventTypeMint,
		events.Attr(types.AttributeKeyAddress, address),
		events.Attr(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// DeductFee burns amount from the account's balance. Used for gas
// settlement.
func (k *Keeper) DeductFee(address string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("fee must be non-negative, got %s", amount)
	}
	if amount.IsZero() {
		return nil
	}
	acc, ok := k.store.Get(address)
	if !ok {
		return types.ErrAccountNotFound.Wrapf("account %s", address)
	}
	if acc.Balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("balance %s, fee %s", acc.Balance, amount)
	}
	acc.Balance = acc.Balance.Sub(amount)
	acc.LastActivity = k.clock.Now()
	k.store.Set(acc)
	k.totalSupply = k.totalSupply.Sub(amount)
	return nil
}

// BondStake moves amount from balance to the staked bucket.
func (k *Keeper) BondStake(address string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("stake amount must be positive, got %s", amount)
	}
	acc, ok := k.store.Get(address)
	if !ok {
		return types.ErrAccountNotFound.Wrapf("account %s", address)
	}
	if acc.Balance.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("balance %s, need %s", acc.Balance, amount)
	}
	acc.Balance = acc.Balance.Sub(amount)
	acc.Staked = acc.Staked.Add(amount)
	acc.LastActivity = k.clock.Now()
	k.store.Set(acc)
	return nil
}

// UnbondStake moves amount from the staked bucket into a new unbonding entry
// that matures at completion.
func (k *Keeper) UnbondStake(address string, amount math.Int, completion time.Time) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("unbond amount must be positive, got %s", amount)
	}
	acc, ok := k.store.Get(address)
	if !ok {
		return types.ErrAccountNotFound.Wrapf("account %s", address)
	}
	if acc.Staked.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("staked %s, need %s", acc.Staked, amount)
	}
	now := k.clock.Now()
	acc.Staked = acc.Staked.Sub(amount)
	acc.Unbonding = append(acc.Unbonding, types.UnbondingEntry{
		Amount:         amount,
		StartTime:      now,
		CompletionTime: completion,
	})
	acc.LastActivity = now
	k.store.Set(acc)
	return nil
}

// ClaimUnbonding moves every matured unbonding entry back to balance and
// returns the claimed total, which is zero when nothing has matured.
func (k *Keeper) ClaimUnbonding(address string) (math.Int, error) {
	acc, ok := k.store.Get(address)
	if !ok {
		return math.ZeroInt(), types.ErrAccountNotFound.Wrapf("account %s", address)
	}
	now := k.clock.Now()
	claimed := math.ZeroInt()
	remaining := acc.Unbonding[:0]
	for _, e := range acc.Unbonding {
		if e.Matured(now) {
			claimed = claimed.Add(e.Amount)
			continue
		}
		remaining = append(remaining, e)
	}
	if claimed.IsZero() {
		return math.ZeroInt(), nil
	}
	acc.Unbonding = remaining
	acc.Balance = acc.Balance.Add(claimed)
	acc.LastActivity = now
	k.store.Set(acc)
	return claimed, nil
}

// TouchActivity records account activity at the current clock time.
func (k *Keeper) TouchActivity(address string) {
	acc := k.getOrCreate(address)
	acc.LastActivity = k.clock.Now()
	k.store.Set(acc)
}

// resetQuotaWindow lazily rolls the account's free-quota window forward when
// the period has elapsed.
func (k *Keeper) resetQuotaWindow(acc *types.Account, now time.Time) {
	if k.quotaPeriod <= 0 {
		return
	}
	if now.Sub(acc.FreeQuotaResetAt) >= k.quotaPeriod {
		acc.FreeQuotaUsed = 0
		acc.FreeQuotaResetAt = now
	}
}

// RemainingQuota returns the account's unused free gas in the current
// window. Consuming quota does not touch balances.
func (k *Keeper) RemainingQuota(address string) uint64 {
	if k.quotaAmount == 0 {
		return 0
	}
	acc, ok := k.store.Get(address)
	if !ok {
		return k.quotaAmount
	}
	k.resetQuotaWindow(acc, k.clock.Now())
	k.store.Set(acc)
	if acc.FreeQuotaUsed >= k.quotaAmount {
		return 0
	}
	return k.quotaAmount - acc.FreeQuotaUsed
}

// ConsumeFreeQuota attempts to cover gas from the account's free quota.
// It reports whether the quota covered the full amount; partial consumption
// never happens.
func (k *Keeper) ConsumeFreeQuota(address string, gas uint64) bool {
	if k.quotaAmount == 0 {
		return false
	}
	acc := k.getOrCreate(address)
	now := k.clock.Now()
	k.resetQuotaWindow(acc, now)
	if acc.FreeQuotaUsed+gas > k.quotaAmount {
		k.store.Set(acc)
		return false
	}
	acc.FreeQuotaUsed += gas
	acc.LastActivity = now
	k.store.Set(acc)
	return true
}

// ActiveFraction returns the fraction of accounts whose last activity falls
// within window of the current clock time, window-inclusive. The result is a
// decimal in [0,1] and is deterministic for a given event history.
func (k *Keeper) ActiveFraction(window time.Duration) math.LegacyDec {
	total := k.store.Len()
	if total == 0 {
		return math.LegacyZeroDec()
	}
	now := k.clock.Now()
	active := 0
	k.store.Iterate(func(acc *types.Account) bool {
		if now.Sub(acc.LastActivity) <= window {
			active++
		}
		return false
	})
	return math.LegacyNewDec(int64(active)).Quo(math.LegacyNewDec(int64(total)))
}

// VotingPower returns balance plus staked for address; zero when unknown.
func (k *Keeper) VotingPower(address string) math.Int {
	acc, ok := k.store.Get(address)
	if !ok {
		return math.ZeroInt()
	}
	return acc.VotingPower()
}

// TotalVotingPower sums balance plus staked across every account.
func (k *Keeper) TotalVotingPower() math.Int {
	total := math.ZeroInt()
	k.store.Iterate(func(acc *types.Account) bool {
		total = total.Add(acc.VotingPower())
		return false
	})
	return total
}

// TotalSupply returns the circulating supply tracked by mints and fee burns.
func (k *Keeper) TotalSupply() math.Int {
	return k.totalSupply
}
