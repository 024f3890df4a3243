// Package keeper implements the dynamic gas pricing model.
//
// Gas cost is currentPrice * gasLimit unless the account's free quota covers
// the limit. A periodic tick rescales the price from a congestion measure
// derived from recent account activity.
package keeper

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/x/gas/types"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
)

// congestionWindow is the activity lookback used to derive the congestion
// level. Exactly one hour, inclusive of the tick time, so the same history
// always reproduces the same price.
const congestionWindow = time.Hour

// Keeper is the gas pricing model.
type Keeper struct {
	ledger  *ledgerkeeper.Keeper
	clock   clock.Clock
	emitter events.Emitter
	logger  log.Logger

	basePrice            math.Int
	currentPrice         math.Int
	congestion           math.LegacyDec
	dynamic              bool
	congestionMultiplier math.LegacyDec
	lastAdjustment       time.Time
}

// NewKeeper creates the gas keeper. basePrice is the floor price per gas
// unit; when dynamic is false the price never moves off it.
func NewKeeper(ledger *ledgerkeeper.Keeper, clk clock.Clock, emitter events.Emitter, logger log.Logger, basePrice math.Int, dynamic bool, congestionMultiplier math.LegacyDec) *Keeper {
	return &Keeper{
		ledger:               ledger,
		clock:                clk,
		emitter:              emitter,
		logger:               logger.With("module", "gas"),
		basePrice:            basePrice,
		currentPrice:         basePrice,
		congestion:           math.LegacyZeroDec(),
		dynamic:              dynamic,
		congestionMultiplier: congestionMultiplier,
		lastAdjustment:       clk.Now(),
	}
}

// CurrentPrice returns the price per gas unit in effect.
func (k *Keeper) CurrentPrice() math.Int {
	return k.currentPrice
}

// CongestionLevel returns the last computed congestion level in [0,1].
func (k *Keeper) CongestionLevel() math.LegacyDec {
	return k.congestion
}

// CalculateCost quotes the cost of gasLimit for address. The quote is zero
// when the address has enough remaining free quota; the quota itself is only
// consumed by UseGas.
func (k *Keeper) CalculateCost(address string, gasLimit uint64) math.Int {
	if address != "" && k.ledger.RemainingQuota(address) >= gasLimit {
		return math.ZeroInt()
	}
	return k.currentPrice.Mul(math.NewIntFromUint64(gasLimit))
}

// UseGas settles gasLimit for address: free quota when it covers the full
// limit, otherwise a balance deduction at the current price.
func (k *Keeper) UseGas(address string, gasLimit uint64) error {
	if k.ledger.ConsumeFreeQuota(address, gasLimit) {
		k.emitter.Emit(events.New(
			types.EventTypeGasConsumed,
			events.Attr(types.AttributeKeyAddress, address),
			events.Attr(types.AttributeKeyGas, fmt.Sprintf("%d", gasLimit)),
			events.Attr(types.AttributeKeyCost, "0"),
			events.Attr(types.AttributeKeyFromQuota, "true"),
		))
		return nil
	}

	cost := k.currentPrice.Mul(math.NewIntFromUint64(gasLimit))
	if err := k.ledger.DeductFee(address, cost); err != nil {
		return err
	}
	k.emitter.Emit(events.New(
		types.EventTypeGasConsumed,
		events.Attr(types.AttributeKeyAddress, address),
		events.Attr(types.AttributeKeyGas, fmt.Sprintf("%d", gasLimit)),
		events.Attr(types.AttributeKeyCost, cost.String()),
		events.Attr(types.AttributeKeyFromQuota, "false"),
	))
	return nil
}

// AdjustPrice is the periodic repricing tick. Congestion is the fraction of
// accounts active within the last hour; with dynamic pricing enabled the
// price becomes basePrice * (1 + congestion * congestionMultiplier).
func (k *Keeper) AdjustPrice(now time.Time) error {
	congestion := k.ledger.ActiveFraction(congestionWindow)
	if congestion.IsNegative() {
		congestion = math.LegacyZeroDec()
	}
	if congestion.GT(math.LegacyOneDec()) {
		congestion = math.LegacyOneDec()
	}
	k.congestion = congestion
	k.lastAdjustment = now

	if !k.dynamic {
		return nil
	}

	scale := math.LegacyOneDec().Add(congestion.Mul(k.congestionMultiplier))
	newPrice := math.LegacyNewDecFromInt(k.basePrice).Mul(scale).TruncateInt()
	if newPrice.Equal(k.currentPrice) {
		return nil
	}
	k.currentPrice = newPrice

	k.logger.Info("gas price adjusted", "price", newPrice.String(), "congestion", congestion.String())
	k.emitter.Emit(events.New(
		types.EventTypeGasPriceAdjusted,
		events.Attr(types.AttributeKeyPrice, newPrice.String()),
		events.Attr(types.AttributeKeyCongestion, congestion.String()),
	))
	return nil
}
