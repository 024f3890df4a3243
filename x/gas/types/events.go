// Package types defines gas pricing events.
package types

// Gas event types
const (
	EventTypeGasConsumed      = "gas_consumed"
	EventTypeGasPriceAdjusted = "gas_price_adjusted"
)

// Gas event attribute keys
const (
	AttributeKeyAddress    = "address"
	AttributeKeyGas        = "gas"
	AttributeKeyCost       = "cost"
	AttributeKeyFromQuota  = "from_quota"
	AttributeKeyPrice      = "price"
	AttributeKeyCongestion = "congestion"
)
