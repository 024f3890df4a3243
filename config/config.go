package config

import (
	"fmt"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// TokenConfig describes the native token minted at startup.
type TokenConfig struct {
	Name          string `mapstructure:"name"`
	Symbol        string `mapstructure:"symbol"`
	Decimals      uint8  `mapstructure:"decimals"`
	InitialSupply int64  `mapstructure:"initial_supply"`
}

// StakingConfig holds delegation and reward parameters. Exactly one reward
// accrual path is active, selected by RewardMode ("claim" or "epoch").
type StakingConfig struct {
	AnnualRate          string `mapstructure:"annual_rate"`
	SupplyRewardRate    string `mapstructure:"supply_reward_rate"`
	MinimumAmount       int64  `mapstructure:"minimum_amount"`
	UnbondingPeriodDays int    `mapstructure:"unbonding_period_days"`
	RewardMode          string `mapstructure:"reward_mode"`
}

// GasConfig holds base price, congestion scaling and the free quota.
type GasConfig struct {
	BasePrice            int64  `mapstructure:"base_price"`
	Dynamic              bool   `mapstructure:"dynamic"`
	CongestionMultiplier string `mapstructure:"congestion_multiplier"`
	QuotaAmount          uint64 `mapstructure:"quota_amount"`
	QuotaPeriodDays      int    `mapstructure:"quota_period_days"`
}

// GovernanceConfig holds proposal admission and voting windows.
type GovernanceConfig struct {
	ProposalThreshold int64 `mapstructure:"proposal_threshold"`
	VotingPeriodDays  int   `mapstructure:"voting_period_days"`
}

// DexConfig holds swap fee, protocol fee slice, impact cap and the pool
// creation floor. Rates are decimal strings so yaml stays exact.
type DexConfig struct {
	FeeRate          string `mapstructure:"fee_rate"`
	ProtocolFeeShare string `mapstructure:"protocol_fee_share"`
	MaxPriceImpact   string `mapstructure:"max_price_impact"`
	MinLiquidity     int64  `mapstructure:"min_liquidity"`
}

// IntervalsConfig holds scheduler tick intervals as duration strings.
type IntervalsConfig struct {
	StakingRewards string `mapstructure:"staking_rewards"`
	GasAdjust      string `mapstructure:"gas_adjust"`
	GovProcess     string `mapstructure:"gov_process"`
	DexRewards     string `mapstructure:"dex_rewards"`
	VolumeReset    string `mapstructure:"volume_reset"`
}

// Config is the full engine configuration.
type Config struct {
	Token      TokenConfig      `mapstructure:"token"`
	Staking    StakingConfig    `mapstructure:"staking"`
	Gas        GasConfig        `mapstructure:"gas"`
	Governance GovernanceConfig `mapstructure:"governance"`
	Dex        DexConfig        `mapstructure:"dex"`
	Intervals  IntervalsConfig  `mapstructure:"intervals"`
	Treasury   string           `mapstructure:"treasury"`
}

// DefaultConfig returns the parameters the engine ships with.
func DefaultConfig() *Config {
	return &Config{
		Token: TokenConfig{
			Name:          "Lumen",
			Symbol:        "LUM",
			Decimals:      6,
			InitialSupply: 1_000_000_000,
		},
		Staking: StakingConfig{
			AnnualRate:          "0.08",
			SupplyRewardRate:    "0.05",
			MinimumAmount:       50,
			UnbondingPeriodDays: 21,
			RewardMode:          "claim",
		},
		Gas: GasConfig{
			BasePrice:            1,
			Dynamic:              true,
			CongestionMultiplier: "2.0",
			QuotaAmount:          10_000,
			QuotaPeriodDays:      1,
		},
		Governance: GovernanceConfig{
			ProposalThreshold: 1000,
			VotingPeriodDays:  7,
		},
		Dex: DexConfig{
			FeeRate:          "0.003",
			ProtocolFeeShare: "0.1",
			MaxPriceImpact:   "0.1",
			MinLiquidity:     1000,
		},
		Intervals: IntervalsConfig{
			StakingRewards: "24h",
			GasAdjust:      "5m",
			GovProcess:     "1m",
			DexRewards:     "24h",
			VolumeReset:    "24h",
		},
		Treasury: "treasury",
	}
}

// Load reads configuration from the given yaml file, layered over defaults,
// with LUMEN_* environment variables overriding both. An empty path skips
// the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LUMEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field the engine depends on. Decimal strings must
// parse; durations must parse; amounts must be non-negative.
func (c *Config) Validate() error {
	if c.Token.Symbol == "" {
		return fmt.Errorf("token: symbol must not be empty")
	}
	if c.Token.InitialSupply < 0 {
		return fmt.Errorf("token: initial supply must not be negative")
	}
	if c.Treasury == "" {
		return fmt.Errorf("treasury address must not be empty")
	}
	for name, raw := range map[string]string{
		"staking.annual_rate":        c.Staking.AnnualRate,
		"staking.supply_reward_rate": c.Staking.SupplyRewardRate,
		"gas.congestion_multiplier":  c.Gas.CongestionMultiplier,
		"dex.fee_rate":               c.Dex.FeeRate,
		"dex.protocol_fee_share":     c.Dex.ProtocolFeeShare,
		"dex.max_price_impact":       c.Dex.MaxPriceImpact,
	} {
		dec, err := math.LegacyNewDecFromStr(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid decimal %q: %w", name, raw, err)
		}
		if dec.IsNegative() {
			return fmt.Errorf("%s: must not be negative", name)
		}
	}
	if c.Staking.MinimumAmount < 0 {
		return fmt.Errorf("staking: minimum amount must not be negative")
	}
	if c.Staking.UnbondingPeriodDays <= 0 {
		return fmt.Errorf("staking: unbonding period must be positive")
	}
	if mode := c.Staking.RewardMode; mode != "claim" && mode != "epoch" {
		return fmt.Errorf("staking: reward mode must be claim or epoch, got %q", mode)
	}
	if c.Gas.BasePrice <= 0 {
		return fmt.Errorf("gas: base price must be positive")
	}
	if c.Gas.QuotaPeriodDays <= 0 {
		return fmt.Errorf("gas: quota period must be positive")
	}
	if c.Governance.ProposalThreshold < 0 {
		return fmt.Errorf("governance: proposal threshold must not be negative")
	}
	if c.Governance.VotingPeriodDays <= 0 {
		return fmt.Errorf("governance: voting period must be positive")
	}
	if c.Dex.MinLiquidity <= 0 {
		return fmt.Errorf("dex: min liquidity must be positive")
	}
	for name, raw := range map[string]string{
		"intervals.staking_rewards": c.Intervals.StakingRewards,
		"intervals.gas_adjust":      c.Intervals.GasAdjust,
		"intervals.gov_process":     c.Intervals.GovProcess,
		"intervals.dex_rewards":     c.Intervals.DexRewards,
		"intervals.volume_reset":    c.Intervals.VolumeReset,
	} {
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", name, raw, err)
		}
	}
	return nil
}

// MustDec parses a decimal string already checked by Validate.
func MustDec(raw string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(raw)
}

// Duration converts a validated duration string.
func Duration(raw string) time.Duration {
	return cast.ToDuration(raw)
}

// Days converts a day count into a duration.
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
