package types

// Staking event types
const (
	EventTypeStaked             = "staked"
	EventTypeUnstaked           = "unstaked"
	EventTypeUnbondingClaimed   = "unbonding_claimed"
	EventTypeRewardsClaimed     = "rewards_claimed"
	EventTypeRewardsDistributed = "rewards_distributed"
)

// Staking event attribute keys
const (
	AttributeKeyDelegator  = "delegator"
	AttributeKeyValidator  = "validator"
	AttributeKeyAmount     = "amount"
	AttributeKeyCompletion = "completion_time"
	AttributeKeyRewards    = "rewards"
	AttributeKeyRecipients = "recipients"
)
