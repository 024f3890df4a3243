// Package keeper implements staking, unbonding and reward distribution.
//
// Principal lives in the ledger's stake bucket; this keeper owns the stake
// records and the reward mechanisms. Which reward mechanism is live is a
// construction-time choice (RewardMode) so the two paths can never both
// credit the same accrual.
package keeper

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
	"github.com/lumen-chain/lumen/x/staking/types"
)

// Keeper is the staking and reward engine.
type Keeper struct {
	store   types.StakeStore
	ledger  *ledgerkeeper.Keeper
	clock   clock.Clock
	emitter events.Emitter
	logger  log.Logger

	minimumAmount    math.Int
	unbondingPeriod  time.Duration
	annualRate       math.LegacyDec // claim mode: per-stake accrual rate
	supplyRewardRate math.LegacyDec // epoch mode: annual network budget rate
	mode             types.RewardMode

	totalStaked math.Int
}

// NewKeeper creates the staking keeper.
func NewKeeper(store types.StakeStore, ledger *ledgerkeeper.Keeper, clk clock.Clock, emitter events.Emitter, logger log.Logger,
	minimumAmount math.Int, unbondingPeriod time.Duration, annualRate, supplyRewardRate math.LegacyDec, mode types.RewardMode) (*Keeper, error) {
	if !mode.Valid() {
		return nil, types.ErrInvalidRewardMode.Wrapf("%q", mode)
	}
	return &Keeper{
		store:            store,
		ledger:           ledger,
		clock:            clk,
		emitter:          emitter,
		logger:           logger.With("module", types.ModuleName),
		minimumAmount:    minimumAmount,
		unbondingPeriod:  unbondingPeriod,
		annualRate:       annualRate,
		supplyRewardRate: supplyRewardRate,
		mode:             mode,
		totalStaked:      math.ZeroInt(),
	}, nil
}

// TotalStaked returns the network-wide active stake.
func (k *Keeper) TotalStaked() math.Int {
	return k.totalStaked
}

// RewardMode returns the reward mechanism this keeper runs.
func (k *Keeper) RewardMode() types.RewardMode {
	return k.mode
}

// ActiveStake sums the delegator's active principal with validator.
func (k *Keeper) ActiveStake(delegator, validator string) math.Int {
	total := math.ZeroInt()
	for _, rec := range k.store.ByDelegator(delegator) {
		if rec.Active() && rec.Validator == validator {
			total = total.Add(rec.Amount)
		}
	}
	return total
}

// Stake moves amount from the delegator's balance into a new active stake
// record with validator.
func (k *Keeper) Stake(delegator, validator string, amount math.Int) error {
	if amount.IsNil() || amount.LT(k.minimumAmount) {
		return types.ErrBelowMinimumStake.Wrapf("amount %s, minimum %s", amount, k.minimumAmount)
	}
	if err := k.ledger.BondStake(delegator, amount); err != nil {
		return err
	}

	now := k.clock.Now()
	k.store.Append(&types.Stake{
		Delegator:      delegator,
		Validator:      validator,
		Amount:         amount,
		AccruedRewards: math.ZeroInt(),
		StartTime:      now,
		Status:         types.StakeStatusActive,
	})
	k.totalStaked = k.totalStaked.Add(amount)

	k.emitter.Emit(events.New(
		types.EventTypeStaked,
		events.Attr(types.AttributeKeyDelegator, delegator),
		events.Attr(types.AttributeKeyValidator, validator),
		events.Attr(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// Unstake removes amount of the delegator's active stake with validator,
// consuming records oldest first. Every consumed portion becomes an
// unbonding entry maturing after the unbonding period.
func (k *Keeper) Unstake(delegator, validator string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInsufficientStake.Wrapf("unstake amount must be positive, got %s", amount)
	}
	if k.ActiveStake(delegator, validator).LT(amount) {
		return types.ErrInsufficientStake.Wrapf("active stake with %s is %s, need %s",
			validator, k.ActiveStake(delegator, validator), amount)
	}

	now := k.clock.Now()
	completion := now.Add(k.unbondingPeriod)
	remaining := amount

	for _, rec := range k.store.ByDelegator(delegator) {
		if remaining.IsZero() {
			break
		}
		if !rec.Active() || rec.Validator != validator {
			continue
		}
		portion := math.MinInt(rec.Amount, remaining)
		if err := k.ledger.UnbondStake(delegator, portion, completion); err != nil {
			return err
		}
		rec.Amount = rec.Amount.Sub(portion)
		if rec.Amount.IsZero() {
			rec.Status = types.StakeStatusCompleted
		}
		remaining = remaining.Sub(portion)
	}
	k.totalStaked = k.totalStaked.Sub(amount)

	k.emitter.Emit(events.New(
		types.EventTypeUnstaked,
		events.Attr(types.AttributeKeyDelegator, delegator),
		events.Attr(types.AttributeKeyValidator, validator),
		events.Attr(types.AttributeKeyAmount, amount.String()),
		events.Attr(types.AttributeKeyCompletion, completion.UTC().Format(time.RFC3339)),
	))
	return nil
}

// ClaimUnbonding moves the delegator's matured unbonding entries back to
// spendable balance and returns the claimed total.
func (k *Keeper) ClaimUnbonding(delegator string) (math.Int, error) {
	claimed, err := k.ledger.ClaimUnbonding(delegator)
	if err != nil {
		return math.ZeroInt(), err
	}
	if claimed.IsPositive() {
		k.emitter.Emit(events.New(
			types.EventTypeUnbondingClaimed,
			events.Attr(types.AttributeKeyDelegator, delegator),
			events.Attr(types.AttributeKeyAmount, claimed.String()),
		))
	}
	return claimed, nil
}

// ClaimRewards mints the delegator's accrued time-weighted rewards into
// balance and resets each active record's accrual clock. Outside claim mode
// it returns zero; the epoch distribution is the only accrual path then.
func (k *Keeper) ClaimRewards(delegator string) (math.Int, error) {
	if k.mode != types.RewardModeClaim {
		return math.ZeroInt(), nil
	}

	now := k.clock.Now()
	total := math.ZeroInt()
	for _, rec := range k.store.ByDelegator(delegator) {
		if !rec.Active() {
			continue
		}
		elapsed := int64(now.Sub(rec.StartTime).Seconds())
		if elapsed <= 0 {
			continue
		}
		reward := math.LegacyNewDecFromInt(rec.Amount).
			Mul(k.annualRate).
			MulInt64(elapsed).
			QuoInt64(types.SecondsPerYear).
			TruncateInt()
		rec.StartTime = now
		if reward.IsPositive() {
			rec.AccruedRewards = rec.AccruedRewards.Add(reward)
			total = total.Add(reward)
		}
	}
	if total.IsZero() {
		return math.ZeroInt(), nil
	}
	if err := k.ledger.Mint(delegator, total); err != nil {
		return math.ZeroInt(), err
	}

	k.emitter.Emit(events.New(
		types.EventTypeRewardsClaimed,
		events.Attr(types.AttributeKeyDelegator, delegator),
		events.Attr(types.AttributeKeyRewards, total.String()),
	))
	return total, nil
}

// DistributeRewards is the daily epoch tick: mint a network-wide budget of
// supplyRewardRate * totalSupply / 365 split across delegators proportional
// to active stake. A no-op outside epoch mode.
func (k *Keeper) DistributeRewards(now time.Time) error {
	if k.mode != types.RewardModeEpoch {
		return nil
	}
	if k.totalStaked.IsZero() {
		return nil
	}

	budget := math.LegacyNewDecFromInt(k.ledger.TotalSupply()).
		Mul(k.supplyRewardRate).
		QuoInt64(365).
		TruncateInt()
	if !budget.IsPositive() {
		return nil
	}

	// Aggregate active stake per delegator, first-seen order.
	stakeBy := make(map[string]math.Int)
	var order []string
	k.store.Iterate(func(rec *types.Stake) bool {
		if !rec.Active() {
			return false
		}
		if cur, ok := stakeBy[rec.Delegator]; ok {
			stakeBy[rec.Delegator] = cur.Add(rec.Amount)
		} else {
			stakeBy[rec.Delegator] = rec.Amount
			order = append(order, rec.Delegator)
		}
		return false
	})

	distributed := math.ZeroInt()
	recipients := 0
	for _, delegator := range order {
		share := math.LegacyNewDecFromInt(budget).
			Mul(math.LegacyNewDecFromInt(stakeBy[delegator])).
			Quo(math.LegacyNewDecFromInt(k.totalStaked)).
			TruncateInt()
		if !share.IsPositive() {
			continue
		}
		if err := k.ledger.Mint(delegator, share); err != nil {
			return err
		}
		distributed = distributed.Add(share)
		recipients++
	}
	if distributed.IsZero() {
		return nil
	}

	k.logger.Info("distributed staking rewards",
		"budget", budget.String(), "distributed", distributed.String(), "recipients", recipients)
	k.emitter.Emit(events.New(
		types.EventTypeRewardsDistributed,
		events.Attr(types.AttributeKeyRewards, distributed.String()),
		events.Attr(types.AttributeKeyRecipients, fmt.Sprintf("%d", recipients)),
	))
	return nil
}
