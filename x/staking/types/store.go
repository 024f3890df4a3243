package types

// StakeStore persists stake records. Records are kept in creation order;
// unstaking consumes oldest first and reward distribution iterates in a
// deterministic order. Completed records stay in the store with zero amount.
type StakeStore interface {
	Append(stake *Stake)
	ByDelegator(delegator string) []*Stake
	Iterate(fn func(stake *Stake) (stop bool))
}
