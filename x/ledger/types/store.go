package types

// AccountStore is the persistence collaborator for accounts, keyed by
// address. The engine serializes all mutations; implementations only need to
// be safe for single-writer access. Iteration order must be deterministic for
// a given history so periodic computations (congestion, reward splits)
// reproduce exactly.
type AccountStore interface {
	Get(address string) (*Account, bool)
	Set(account *Account)
	Has(address string) bool
	Iterate(fn func(account *Account) (stop bool))
	Len() int
}
