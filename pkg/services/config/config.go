package config

import (
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/services/analytics"
	"github.com/spf13/viper"
)

// Config is the report-run profile: the declarations database plus the
// detection and scoring parameters. Everything except the DSN has a
// working default.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Server   ServerConfig   `mapstructure:"server"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type AnalysisConfig struct {
	// YearFilter is the 2-digit minimum declaration year, e.g. "23".
	YearFilter string `mapstructure:"year_filter"`
	// UndervalThreshold is the assessed/declared unit-value ratio above
	// which a declaration counts as undervalued.
	UndervalThreshold float64 `mapstructure:"underval_threshold"`
	// MinObservations filters HS x country combinations with too few rows.
	MinObservations int `mapstructure:"min_observations"`
	// MinImporterObservations filters importers with too few declarations.
	MinImporterObservations int `mapstructure:"min_importer_observations"`
}

type RiskConfig struct {
	UndervalWeight float64 `mapstructure:"underval_weight"`
	HsChangeWeight float64 `mapstructure:"hs_change_weight"`

	VolumeHighUSD   float64 `mapstructure:"volume_high_usd"`
	VolumeHighBonus float64 `mapstructure:"volume_high_bonus"`
	VolumeMidUSD    float64 `mapstructure:"volume_mid_usd"`
	VolumeMidBonus  float64 `mapstructure:"volume_mid_bonus"`
	VolumeBaseBonus float64 `mapstructure:"volume_base_bonus"`

	BandNormal float64 `mapstructure:"band_normal"`
	BandLow    float64 `mapstructure:"band_low"`
	BandMedium float64 `mapstructure:"band_medium"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads a profile from the given path and applies defaults for
// absent keys. The database DSN is the only required value.
func Load(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required in %s", profilePath)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("analysis.year_filter", defaults.Analysis.YearFilter)
	v.SetDefault("analysis.underval_threshold", defaults.Analysis.UndervalThreshold)
	v.SetDefault("analysis.min_observations", defaults.Analysis.MinObservations)
	v.SetDefault("analysis.min_importer_observations", defaults.Analysis.MinImporterObservations)
	v.SetDefault("risk.underval_weight", defaults.Risk.UndervalWeight)
	v.SetDefault("risk.hs_change_weight", defaults.Risk.HsChangeWeight)
	v.SetDefault("risk.volume_high_usd", defaults.Risk.VolumeHighUSD)
	v.SetDefault("risk.volume_high_bonus", defaults.Risk.VolumeHighBonus)
	v.SetDefault("risk.volume_mid_usd", defaults.Risk.VolumeMidUSD)
	v.SetDefault("risk.volume_mid_bonus", defaults.Risk.VolumeMidBonus)
	v.SetDefault("risk.volume_base_bonus", defaults.Risk.VolumeBaseBonus)
	v.SetDefault("risk.band_normal", defaults.Risk.BandNormal)
	v.SetDefault("risk.band_low", defaults.Risk.BandLow)
	v.SetDefault("risk.band_medium", defaults.Risk.BandMedium)
	v.SetDefault("server.addr", defaults.Server.Addr)
}

// Default returns the built-in profile used when no file overrides apply.
func Default() *Config {
	weights := analytics.DefaultRiskWeights()
	tiers := analytics.DefaultVolumeTiers()
	bands := analytics.DefaultGradeBands()
	return &Config{
		Analysis: AnalysisConfig{
			YearFilter:              "23",
			UndervalThreshold:       analytics.DefaultUndervalThreshold,
			MinObservations:         50,
			MinImporterObservations: 20,
		},
		Risk: RiskConfig{
			UndervalWeight:  weights.Underval,
			HsChangeWeight:  weights.HsChange,
			VolumeHighUSD:   tiers.HighValueUSD,
			VolumeHighBonus: tiers.HighBonus,
			VolumeMidUSD:    tiers.MidValueUSD,
			VolumeMidBonus:  tiers.MidBonus,
			VolumeBaseBonus: tiers.BaseBonus,
			BandNormal:      bands.Normal,
			BandLow:         bands.Low,
			BandMedium:      bands.Medium,
		},
		Server: ServerConfig{Addr: "localhost:8080"},
	}
}

// Weights converts the profile values into analytics parameters.
func (c *Config) Weights() analytics.RiskWeights {
	return analytics.RiskWeights{Underval: c.Risk.UndervalWeight, HsChange: c.Risk.HsChangeWeight}
}

func (c *Config) VolumeTiers() analytics.VolumeTiers {
	return analytics.VolumeTiers{
		HighValueUSD: c.Risk.VolumeHighUSD,
		HighBonus:    c.Risk.VolumeHighBonus,
		MidValueUSD:  c.Risk.VolumeMidUSD,
		MidBonus:     c.Risk.VolumeMidBonus,
		BaseBonus:    c.Risk.VolumeBaseBonus,
	}
}

func (c *Config) GradeBands() analytics.GradeBands {
	return analytics.GradeBands{Normal: c.Risk.BandNormal, Low: c.Risk.BandLow, Medium: c.Risk.BandMedium}
}
