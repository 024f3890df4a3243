package types

// DEX event types
const (
	EventTypeTokenRegistered     = "token_registered"
	EventTypePoolCreated         = "pool_created"
	EventTypeSwapExecuted        = "swap_executed"
	EventTypeLiquidityAdded      = "liquidity_added"
	EventTypeLiquidityRemoved    = "liquidity_removed"
	EventTypeRewardsDistributed  = "liquidity_rewards_distributed"
	EventTypeVolumeWindowReset   = "volume_window_reset"
)

// DEX event attribute keys
const (
	AttributeKeySymbol    = "symbol"
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyTokenA    = "token_a"
	AttributeKeyTokenB    = "token_b"
	AttributeKeyTokenIn   = "token_in"
	AttributeKeyTokenOut  = "token_out"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFee       = "fee"
	AttributeKeyTrader    = "trader"
	AttributeKeyProvider  = "provider"
	AttributeKeyShares    = "shares"
	AttributeKeyRewards   = "rewards"
)
