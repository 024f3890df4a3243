package types

// Ledger event types
const (
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"
)

// Ledger event attribute keys
const (
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
	AttributeKeyNonce     = "nonce"
	AttributeKeyAddress   = "address"
)
