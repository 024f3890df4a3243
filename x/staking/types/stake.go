// Package types defines the staking engine's data model, errors and events.
package types

import (
	"time"

	"cosmossdk.io/math"
)

// StakeStatus tracks a stake record's lifecycle.
type StakeStatus uint8

const (
	// StakeStatusActive indicates the stake is earning and counts toward
	// voting power and reward distribution.
	StakeStatusActive StakeStatus = 0

	// StakeStatusUnbonding indicates principal that has left the record but
	// has not matured. Unbonding principal is tracked on the account's
	// unbonding queue, so partially consumed records stay active and fully
	// consumed ones move straight to completed.
	StakeStatusUnbonding StakeStatus = 1

	// StakeStatusCompleted indicates the record's principal has fully moved
	// to the unbonding queue.
	StakeStatusCompleted StakeStatus = 2
)

// Stake is one delegation record. Each call to Stake() appends a new record,
// so unstaking can consume principal in creation order and reward accrual
// stays time-weighted per record.
type Stake struct {
	Delegator      string
	Validator      string
	Amount         math.Int
	AccruedRewards math.Int
	StartTime      time.Time
	Status         StakeStatus
}

// Active reports whether the record still holds principal.
func (s *Stake) Active() bool {
	return s.Status == StakeStatusActive && s.Amount.IsPositive()
}

// RewardMode selects which of the two reward mechanisms is live. Exactly one
// is active at a time; the other is a no-op.
type RewardMode string

const (
	// RewardModeClaim accrues per-stake time-weighted rewards that the
	// delegator claims explicitly.
	RewardModeClaim RewardMode = "claim"

	// RewardModeEpoch distributes a daily network-wide budget proportional
	// to active stake, with no per-account claim step.
	RewardModeEpoch RewardMode = "epoch"
)

// Valid reports whether the mode is one of the recognized values.
func (m RewardMode) Valid() bool {
	return m == RewardModeClaim || m == RewardModeEpoch
}

// SecondsPerYear is the accrual denominator for the claim reward model.
const SecondsPerYear = 365 * 24 * 3600
