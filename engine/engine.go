// Package engine wires the ledger, gas, staking, governance and DEX keepers
// behind a single facade. All state lives behind one mutex: mutating calls
// and scheduler ticks execute serially, so no caller ever observes a
// half-applied tick.
package engine

import (
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/lumen-chain/lumen/config"
	"github.com/lumen-chain/lumen/pkg/clock"
	"github.com/lumen-chain/lumen/pkg/events"
	"github.com/lumen-chain/lumen/pkg/scheduler"
	dexkeeper "github.com/lumen-chain/lumen/x/dex/keeper"
	dexstore "github.com/lumen-chain/lumen/x/dex/store"
	dextypes "github.com/lumen-chain/lumen/x/dex/types"
	gaskeeper "github.com/lumen-chain/lumen/x/gas/keeper"
	govkeeper "github.com/lumen-chain/lumen/x/gov/keeper"
	govstore "github.com/lumen-chain/lumen/x/gov/store"
	govtypes "github.com/lumen-chain/lumen/x/gov/types"
	ledgerkeeper "github.com/lumen-chain/lumen/x/ledger/keeper"
	ledgerstore "github.com/lumen-chain/lumen/x/ledger/store"
	ledgertypes "github.com/lumen-chain/lumen/x/ledger/types"
	stakingkeeper "github.com/lumen-chain/lumen/x/staking/keeper"
	stakingstore "github.com/lumen-chain/lumen/x/staking/store"
	stakingtypes "github.com/lumen-chain/lumen/x/staking/types"
)

// Engine is the token economic engine facade.
type Engine struct {
	mu      sync.Mutex
	running bool

	cfg    *config.Config
	clock  clock.Clock
	logger log.Logger

	hub   *events.Hub
	sched *scheduler.Scheduler

	ledger  *ledgerkeeper.Keeper
	gas     *gaskeeper.Keeper
	staking *stakingkeeper.Keeper
	gov     *govkeeper.Keeper
	dex     *dexkeeper.Keeper
}

// New builds an engine from configuration. The clock is injected so tests
// can drive time deterministically.
func New(cfg *config.Config, clk clock.Clock, logger log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hub := events.NewHub(clk, logger)

	ledger := ledgerkeeper.NewKeeper(
		ledgerstore.NewMemoryStore(), clk, hub, logger,
		cfg.Gas.QuotaAmount, config.Days(cfg.Gas.QuotaPeriodDays),
	)

	gas := gaskeeper.NewKeeper(
		ledger, clk, hub, logger,
		math.NewInt(cfg.Gas.BasePrice), cfg.Gas.Dynamic,
		config.MustDec(cfg.Gas.CongestionMultiplier),
	)

	staking, err := stakingkeeper.NewKeeper(
		stakingstore.NewMemoryStore(), ledger, clk, hub, logger,
		math.NewInt(cfg.Staking.MinimumAmount),
		config.Days(cfg.Staking.UnbondingPeriodDays),
		config.MustDec(cfg.Staking.AnnualRate),
		config.MustDec(cfg.Staking.SupplyRewardRate),
		stakingtypes.RewardMode(cfg.Staking.RewardMode),
	)
	if err != nil {
		return nil, err
	}

	gov := govkeeper.NewKeeper(
		govstore.NewMemoryStore(), ledger, clk, hub, logger,
		math.NewInt(cfg.Governance.ProposalThreshold),
		config.Days(cfg.Governance.VotingPeriodDays),
	)

	dexParams := dextypes.Params{
		FeeRate:          config.MustDec(cfg.Dex.FeeRate),
		ProtocolFeeShare: config.MustDec(cfg.Dex.ProtocolFeeShare),
		MaxPriceImpact:   config.MustDec(cfg.Dex.MaxPriceImpact),
		MinLiquidity:     math.NewInt(cfg.Dex.MinLiquidity),
	}
	dex, err := dexkeeper.NewKeeper(
		dexstore.NewMemoryStore(), clk, hub, logger,
		dexParams, newLedgerSettlement(ledger, cfg.Token.Symbol),
	)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		clock:   clk,
		logger:  logger.With("module", "engine"),
		hub:     hub,
		sched:   scheduler.New(clk, logger),
		ledger:  ledger,
		gas:     gas,
		staking: staking,
		gov:     gov,
		dex:     dex,
	}
	if err := e.registerJobs(); err != nil {
		return nil, err
	}
	return e, nil
}

// registerJobs binds the periodic ticks. Each job takes the engine lock so
// ticks serialize with synchronous operations.
func (e *Engine) registerJobs() error {
	jobs := []struct {
		name     string
		interval time.Duration
		run      func(now time.Time) error
	}{
		{"staking_rewards", config.Duration(e.cfg.Intervals.StakingRewards), e.staking.DistributeRewards},
		{"gas_adjust", config.Duration(e.cfg.Intervals.GasAdjust), e.gas.AdjustPrice},
		{"gov_process", config.Duration(e.cfg.Intervals.GovProcess), e.gov.Process},
		{"dex_rewards", config.Duration(e.cfg.Intervals.DexRewards), func(time.Time) error {
			e.dex.DistributeRewards()
			return nil
		}},
		{"volume_reset", config.Duration(e.cfg.Intervals.VolumeReset), func(time.Time) error {
			e.dex.ResetVolumeWindows()
			return nil
		}},
	}
	for _, j := range jobs {
		run := j.run
		err := e.sched.Register(j.name, j.interval, func(now time.Time) error {
			e.mu.Lock()
			defer e.mu.Unlock()
			if !e.running {
				return nil
			}
			return run(now)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Start seeds the native token and initial supply, then launches the
// scheduler. Starting an already-running engine is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}

	if _, ok := e.dex.GetToken(e.cfg.Token.Symbol); !ok {
		if _, err := e.dex.RegisterToken(e.cfg.Token.Symbol, e.cfg.Token.Name, e.cfg.Token.Decimals, true); err != nil {
			return err
		}
		if e.cfg.Token.InitialSupply > 0 {
			if err := e.ledger.Mint(e.cfg.Treasury, math.NewInt(e.cfg.Token.InitialSupply)); err != nil {
				return err
			}
		}
	}

	e.running = true
	e.sched.Start()
	e.logger.Info("engine started",
		"token", e.cfg.Token.Symbol,
		"treasury", e.cfg.Treasury,
		"reward_mode", e.cfg.Staking.RewardMode)
	return nil
}

// Stop halts the scheduler and rejects further operations.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	e.sched.Stop()
	e.hub.Close()
	e.logger.Info("engine stopped")
}

// Events returns the hub for subscribing to engine events.
func (e *Engine) Events() *events.Hub {
	return e.hub
}

// RunJob triggers a registered tick immediately. Deterministic entry point
// for tests and operators.
func (e *Engine) RunJob(name string) error {
	return e.sched.RunJob(name)
}

func (e *Engine) locked(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return ErrSystemNotRunning
	}
	return fn()
}

// --- ledger ---

// GetBalance returns an account's liquid balance, zero for unknown accounts.
func (e *Engine) GetBalance(address string) (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		out = e.ledger.GetBalance(address)
		return nil
	})
	return out, err
}

// GetAccount returns the full account record.
func (e *Engine) GetAccount(address string) (*ledgertypes.Account, error) {
	var out *ledgertypes.Account
	err := e.locked(func() error {
		acc, ok := e.ledger.GetAccount(address)
		if !ok {
			return ledgertypes.ErrAccountNotFound.Wrapf("account %s", address)
		}
		out = acc
		return nil
	})
	return out, err
}

// Transfer moves amount between accounts.
func (e *Engine) Transfer(from, to string, amount math.Int) error {
	return e.locked(func() error {
		return e.ledger.Transfer(from, to, amount)
	})
}

// Mint creates new supply on an account.
func (e *Engine) Mint(address string, amount math.Int) error {
	return e.locked(func() error {
		return e.ledger.Mint(address, amount)
	})
}

// TotalSupply returns the circulating supply.
func (e *Engine) TotalSupply() (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		out = e.ledger.TotalSupply()
		return nil
	})
	return out, err
}

// --- gas ---

// CalculateGasCost prices a gas limit for an address, accounting for any
// remaining free quota.
func (e *Engine) CalculateGasCost(address string, gasLimit uint64) (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		out = e.gas.CalculateCost(address, gasLimit)
		return nil
	})
	return out, err
}

// UseGas charges an address for gas, consuming free quota first.
func (e *Engine) UseGas(address string, gasLimit uint64) error {
	return e.locked(func() error {
		return e.gas.UseGas(address, gasLimit)
	})
}

// GasPrice returns the current congestion-adjusted gas price.
func (e *Engine) GasPrice() (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		out = e.gas.CurrentPrice()
		return nil
	})
	return out, err
}

// --- staking ---

// Stake delegates amount from delegator to validator.
func (e *Engine) Stake(delegator, validator string, amount math.Int) error {
	return e.locked(func() error {
		return e.staking.Stake(delegator, validator, amount)
	})
}

// Unstake begins unbonding amount of an existing delegation.
func (e *Engine) Unstake(delegator, validator string, amount math.Int) error {
	return e.locked(func() error {
		return e.staking.Unstake(delegator, validator, amount)
	})
}

// ClaimUnbonding credits matured unbonding entries back to the balance.
func (e *Engine) ClaimUnbonding(delegator string) (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		var err error
		out, err = e.staking.ClaimUnbonding(delegator)
		return err
	})
	return out, err
}

// ClaimRewards mints accrued staking rewards to the delegator. Only
// available in claim reward mode.
func (e *Engine) ClaimRewards(delegator string) (math.Int, error) {
	var out math.Int
	err := e.locked(func() error {
		var err error
		out, err = e.staking.ClaimRewards(delegator)
		return err
	})
	return out, err
}

// --- governance ---

// CreateProposal opens a proposal if the proposer meets the threshold.
func (e *Engine) CreateProposal(proposer, title, description string, typ govtypes.ProposalType, amount math.Int) (*govtypes.Proposal, error) {
	var out *govtypes.Proposal
	err := e.locked(func() error {
		var err error
		out, err = e.gov.CreateProposal(proposer, title, description, typ, amount)
		return err
	})
	return out, err
}

// Vote casts the voter's current voting power on a proposal.
func (e *Engine) Vote(proposalID, voter string, option govtypes.VoteOption) error {
	return e.locked(func() error {
		return e.gov.Vote(proposalID, voter, option)
	})
}

// GetProposal returns a proposal by id.
func (e *Engine) GetProposal(id string) (*govtypes.Proposal, error) {
	var out *govtypes.Proposal
	err := e.locked(func() error {
		p, ok := e.gov.GetProposal(id)
		if !ok {
			return govtypes.ErrProposalNotFound.Wrapf("proposal %s", id)
		}
		out = p
		return nil
	})
	return out, err
}

// --- dex ---

// RegisterToken adds a token to the DEX registry.
func (e *Engine) RegisterToken(symbol, name string, decimals uint8) (*dextypes.Token, error) {
	var out *dextypes.Token
	err := e.locked(func() error {
		var err error
		out, err = e.dex.RegisterToken(symbol, name, decimals, false)
		return err
	})
	return out, err
}

// CreatePool seeds a new constant-product pool.
func (e *Engine) CreatePool(creator, tokenA, tokenB string, reserveA, reserveB math.Int) (*dextypes.Pool, error) {
	var out *dextypes.Pool
	err := e.locked(func() error {
		var err error
		out, err = e.dex.CreatePool(creator, tokenA, tokenB, reserveA, reserveB)
		return err
	})
	return out, err
}

// GetQuote prices a prospective swap.
func (e *Engine) GetQuote(inputToken, outputToken string, inputAmount math.Int) (*dextypes.Quote, error) {
	var out *dextypes.Quote
	err := e.locked(func() error {
		var err error
		out, err = e.dex.GetQuote(inputToken, outputToken, inputAmount)
		return err
	})
	return out, err
}

// ExecuteSwap performs a swap with a slippage floor.
func (e *Engine) ExecuteSwap(user, inputToken, outputToken string, inputAmount, minOutputAmount math.Int) (*dextypes.Quote, error) {
	var out *dextypes.Quote
	err := e.locked(func() error {
		var err error
		out, err = e.dex.ExecuteSwap(user, inputToken, outputToken, inputAmount, minOutputAmount)
		return err
	})
	return out, err
}

// AddLiquidity deposits into a pool, creating it on first call.
func (e *Engine) AddLiquidity(provider, tokenA, tokenB string, amountA, amountB math.Int) (*dextypes.Position, error) {
	var out *dextypes.Position
	err := e.locked(func() error {
		var err error
		out, err = e.dex.AddLiquidity(provider, tokenA, tokenB, amountA, amountB)
		return err
	})
	return out, err
}

// RemoveLiquidity burns shares for a proportional slice of both reserves.
func (e *Engine) RemoveLiquidity(provider, tokenA, tokenB string, shares math.Int) (amountA, amountB math.Int, err error) {
	err = e.locked(func() error {
		var innerErr error
		amountA, amountB, innerErr = e.dex.RemoveLiquidity(provider, tokenA, tokenB, shares)
		return innerErr
	})
	return amountA, amountB, err
}

// GetPool returns the pool for a token pair.
func (e *Engine) GetPool(tokenA, tokenB string) (*dextypes.Pool, error) {
	var out *dextypes.Pool
	err := e.locked(func() error {
		p, ok := e.dex.GetPool(tokenA, tokenB)
		if !ok {
			return dextypes.ErrNoLiquidityPool.Wrapf("pair %s/%s", tokenA, tokenB)
		}
		out = p
		return nil
	})
	return out, err
}
