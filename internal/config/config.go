// Package config loads the simulation core's configuration surface via
// viper, the way untoldecay-BeadsLog and r3e-network-service_layer load
// their own config structs.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/1siamBot/worldsim-core/internal/worldlog"
)

// Config is the full configuration surface the core recognises.
type Config struct {
	MaxCascadeDepth int `mapstructure:"max_cascade_depth"`
	TicksPerYear    int `mapstructure:"ticks_per_year"`

	Quadtree struct {
		MaxEntries int `mapstructure:"max_entries"`
		MaxDepth   int `mapstructure:"max_depth"`
	} `mapstructure:"quadtree"`

	LoD struct {
		FullRadius                float64 `mapstructure:"full_radius"`
		ReducedRadius             float64 `mapstructure:"reduced_radius"`
		HighSignificanceThreshold int     `mapstructure:"high_significance_threshold"`
	} `mapstructure:"lod"`

	Log worldlog.Config `mapstructure:"log"`
}

// Default returns a Config with every out-of-the-box value.
func Default() Config {
	var c Config
	c.MaxCascadeDepth = 10
	c.TicksPerYear = 360
	c.Quadtree.MaxEntries = 8
	c.Quadtree.MaxDepth = 8
	c.LoD.FullRadius = 50
	c.LoD.ReducedRadius = 200
	c.LoD.HighSignificanceThreshold = 85
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// Load builds a Config from defaults, an optional config file at path
// (skipped if empty or not found), and WORLDSIM_-prefixed environment
// variables, in that order of increasing precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("worldsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return cfg, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("max_cascade_depth", cfg.MaxCascadeDepth)
	v.SetDefault("ticks_per_year", cfg.TicksPerYear)
	v.SetDefault("quadtree.max_entries", cfg.Quadtree.MaxEntries)
	v.SetDefault("quadtree.max_depth", cfg.Quadtree.MaxDepth)
	v.SetDefault("lod.full_radius", cfg.LoD.FullRadius)
	v.SetDefault("lod.reduced_radius", cfg.LoD.ReducedRadius)
	v.SetDefault("lod.high_significance_threshold", cfg.LoD.HighSignificanceThreshold)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}
