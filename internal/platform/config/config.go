// Package config loads the process-wide configuration enumerated in
// spec.md §6, grounded on FACorreiaa's config.Config/InitConfig shape
// (viper + mapstructure tags + go:embed fallback YAML).
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// ModeProfileConfig mirrors model.ModeProfile with mapstructure tags so it
// can be overridden per deployment.
type ModeProfileConfig struct {
	SpeedKmh float64 `mapstructure:"speedKmh"`
	KRing    int     `mapstructure:"kRing"`
	RadiusKm float64 `mapstructure:"radiusKm"`
}

// WeightsConfig mirrors routebuilder.Weights.
type WeightsConfig struct {
	Distance   float64 `mapstructure:"distance"`
	Similarity float64 `mapstructure:"similarity"`
	Rating     float64 `mapstructure:"rating"`
	Bearing    float64 `mapstructure:"bearing"`
}

// ScoringConfig mirrors the weight table in spec.md §4.6.2.
type ScoringConfig struct {
	SimilarityThreshold float64       `mapstructure:"similarityThreshold"`
	First               WeightsConfig `mapstructure:"first"`
	MiddleHighSimZigzag WeightsConfig `mapstructure:"middleHighSimZigzag"`
	MiddleLowSimZigzag  WeightsConfig `mapstructure:"middleLowSimZigzag"`
	MiddleCircular      WeightsConfig `mapstructure:"middleCircular"`
	LastZigzag          WeightsConfig `mapstructure:"lastZigzag"`
	LastCircular        WeightsConfig `mapstructure:"lastCircular"`
}

// ClockConfig is an "HH:MM" wall-clock boundary, used for the meal windows.
type ClockConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Config bundles every enumerated default from spec.md §6.
type Config struct {
	Server struct {
		Port    string        `mapstructure:"port"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"server"`

	H3Resolution        int                          `mapstructure:"h3Resolution"`
	ModeProfiles        map[string]ModeProfileConfig `mapstructure:"modeProfiles"`
	MaxCandidatesFloor  int                          `mapstructure:"maxCandidatesFloor"`
	ProgressiveExpand   bool                         `mapstructure:"progressiveExpand"`
	MaxKRingExpansion   int                          `mapstructure:"maxKRingExpansion"`

	CircularRouting           bool    `mapstructure:"circularRouting"`
	CircularAngleTolerance    float64 `mapstructure:"circularAngleTolerance"`
	CircularDirectionPref     string  `mapstructure:"circularDirectionPreference"`
	DefaultStayMinutes        float64 `mapstructure:"defaultStayMinutes"`

	LunchWindow  ClockConfig `mapstructure:"lunchWindow"`
	DinnerWindow ClockConfig `mapstructure:"dinnerWindow"`

	Scoring ScoringConfig `mapstructure:"scoring"`

	Cache struct {
		Backend       string        `mapstructure:"backend"` // "memory" or "firestore"
		UserTTL       time.Duration `mapstructure:"userTTL"`
		CellTTL       time.Duration `mapstructure:"cellTTL"`
		CleanupEvery  time.Duration `mapstructure:"cleanupEvery"`
	} `mapstructure:"cache"`

	Store struct {
		Backend string `mapstructure:"backend"` // "postgres" or "supabase"
	} `mapstructure:"store"`

	Timeouts struct {
		Database  time.Duration `mapstructure:"database"`
		Cache     time.Duration `mapstructure:"cache"`
		Vector    time.Duration `mapstructure:"vector"`
		Embedding time.Duration `mapstructure:"embedding"`
	} `mapstructure:"timeouts"`

	Workers struct {
		RouteBuilderPoolSize int `mapstructure:"routeBuilderPoolSize"`
	} `mapstructure:"workers"`
}

// Load reads config.yml from the working directory/config paths, falling
// back to the embedded default when no file is found, exactly as
// FACorreiaa's InitConfig does.
func Load() (Config, error) {
	var cfg Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/routeplanner")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
