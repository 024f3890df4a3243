package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateCatchesBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty symbol", func(c *Config) { c.Token.Symbol = "" }},
		{"negative supply", func(c *Config) { c.Token.InitialSupply = -1 }},
		{"empty treasury", func(c *Config) { c.Treasury = "" }},
		{"bad decimal", func(c *Config) { c.Dex.FeeRate = "0.3%" }},
		{"negative rate", func(c *Config) { c.Staking.AnnualRate = "-0.1" }},
		{"unknown reward mode", func(c *Config) { c.Staking.RewardMode = "streaming" }},
		{"zero base price", func(c *Config) { c.Gas.BasePrice = 0 }},
		{"zero voting period", func(c *Config) { c.Governance.VotingPeriodDays = 0 }},
		{"zero min liquidity", func(c *Config) { c.Dex.MinLiquidity = 0 }},
		{"bad interval", func(c *Config) { c.Intervals.GasAdjust = "five minutes" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	yaml := `
token:
  symbol: TEST
staking:
  reward_mode: epoch
dex:
  fee_rate: "0.005"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "TEST", cfg.Token.Symbol)
	require.Equal(t, "epoch", cfg.Staking.RewardMode)
	require.Equal(t, "0.005", cfg.Dex.FeeRate)

	// Untouched keys keep their defaults.
	require.Equal(t, int64(1), cfg.Gas.BasePrice)
	require.Equal(t, "24h", cfg.Intervals.VolumeReset)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("staking:\n  reward_mode: nope\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	require.Equal(t, 5*time.Minute, Duration("5m"))
	require.Equal(t, 48*time.Hour, Days(2))
	require.Equal(t, "0.003", MustDec("0.003").String()[:5])
}
