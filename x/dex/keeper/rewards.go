package keeper

import (
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/dex/types"
)

// DistributeRewards pays out half of each pool's accumulated 24h fees to its
// liquidity providers, proportional to their share of total liquidity. The
// distributed half leaves the accumulator; the remainder keeps compounding
// inside the reserves. Truncation dust stays in the accumulator for the next
// run.
func (k *Keeper) DistributeRewards() {
	k.store.IteratePools(func(pool *types.Pool) bool {
		budget := pool.Fees24h.QuoRaw(2)
		if !budget.IsPositive() || !pool.TotalLiquidity.IsPositive() {
			return false
		}

		distributed := math.ZeroInt()
		for _, pos := range k.store.ByPool(pool.ID) {
			share := math.LegacyNewDecFromInt(pos.Liquidity).
				Quo(math.LegacyNewDecFromInt(pool.TotalLiquidity))
			reward := share.MulInt(budget).TruncateInt()
			if !reward.IsPositive() {
				continue
			}
			pos.Rewards = pos.Rewards.Add(reward)
			k.store.SetPosition(pos)
			distributed = distributed.Add(reward)
		}
		if distributed.IsZero() {
			return false
		}

		pool.Fees24h = pool.Fees24h.Sub(distributed)
		k.store.SetPool(pool)

		k.metrics.RewardsPaid.WithLabelValues(pool.ID).Add(float64(distributed.Int64()))
		k.emitter.Emit(events.New(
			types.EventTypeRewardsDistributed,
			events.Attr(types.AttributeKeyPoolID, pool.ID),
			events.Attr(types.AttributeKeyRewards, distributed.String()),
		))
		return false
	})
}

// ResetVolumeWindows zeroes every pool's 24h volume and fee accumulators and
// restarts the window at the current time.
func (k *Keeper) ResetVolumeWindows() {
	now := k.clock.Now()
	k.store.IteratePools(func(pool *types.Pool) bool {
		if pool.Volume24h.IsZero() && pool.Fees24h.IsZero() {
			pool.WindowStart = now
			k.store.SetPool(pool)
			return false
		}
		pool.Volume24h = math.ZeroInt()
		pool.Fees24h = math.ZeroInt()
		pool.WindowStart = now
		k.store.SetPool(pool)

		k.emitter.Emit(events.New(
			types.EventTypeVolumeWindowReset,
			events.Attr(types.AttributeKeyPoolID, pool.ID),
		))
		return false
	})
}
