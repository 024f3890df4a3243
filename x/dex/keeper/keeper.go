// Package keeper implements the AMM exchange: token registry,
// constant-product pools, swap quoting and execution, LP-share accounting
// and fee-funded liquidity rewards.
package keeper

import (
	"cosmossdk.io/log"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/dex/types"
)

// Keeper is the AMM exchange.
type Keeper struct {
	store   types.Store
	clock   clock.Clock
	emitter events.Emitter
	logger  log.Logger
	metrics *Metrics

	params     types.Params
	settlement types.Settlement // nil when no ledger settlement is wired
}

// NewKeeper creates the DEX keeper. settlement may be nil.
func NewKeeper(store types.Store, clk clock.Clock, emitter events.Emitter, logger log.Logger, params types.Params, settlement types.Settlement) (*Keeper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Keeper{
		store:      store,
		clock:      clk,
		emitter:    emitter,
		logger:     logger.With("module", types.ModuleName),
		metrics:    NewMetrics(),
		params:     params,
		settlement: settlement,
	}, nil
}

// Params returns the trading parameters.
func (k *Keeper) Params() types.Params {
	return k.params
}

// RegisterToken adds a token to the registry. Registration is immutable.
func (k *Keeper) RegisterToken(symbol, name string, decimals uint8, native bool) (*types.Token, error) {
	if symbol == "" {
		return nil, types.ErrTokenNotFound.Wrap("token symbol cannot be empty")
	}
	if k.store.HasToken(symbol) {
		return nil, types.ErrTokenAlreadyExists.Wrapf("token %s", symbol)
	}
	token := &types.Token{Symbol: symbol, Name: name, Decimals: decimals, IsNative: native}
	k.store.SetToken(token)

	k.emitter.Emit(events.New(
		types.EventTypeTokenRegistered,
		events.Attr(types.AttributeKeySymbol, symbol),
	))
	return token, nil
}

// GetToken returns the registered token for symbol.
func (k *Keeper) GetToken(symbol string) (*types.Token, bool) {
	return k.store.GetToken(symbol)
}

// GetPool returns the pool for the token pair, order-independent.
func (k *Keeper) GetPool(tokenA, tokenB string) (*types.Pool, bool) {
	return k.store.GetPool(types.PoolID(tokenA, tokenB))
}

// GetPoolByID returns the pool with the canonical pair id.
func (k *Keeper) GetPoolByID(id string) (*types.Pool, bool) {
	return k.store.GetPool(id)
}

// GetPosition returns the provider's position in a pool.
func (k *Keeper) GetPosition(owner, poolID string) (*types.Position, bool) {
	return k.store.GetPosition(owner, poolID)
}

// validatePair checks both tokens are registered and distinct.
func (k *Keeper) validatePair(tokenA, tokenB string) error {
	if tokenA == tokenB {
		return types.ErrSameToken.Wrapf("token %s", tokenA)
	}
	if !k.store.HasToken(tokenA) {
		return types.ErrTokenNotFound.Wrapf("token %s", tokenA)
	}
	if !k.store.HasToken(tokenB) {
		return types.ErrTokenNotFound.Wrapf("token %s", tokenB)
	}
	return nil
}
