// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Heat      HeatConfig      `yaml:"heat"`
	Inventory InventoryConfig `yaml:"inventory"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Splitting SplittingConfig `yaml:"splitting"`
	Player    PlayerConfig    `yaml:"player"`
	Weapon    WeaponConfig    `yaml:"weapon"`
	Shield    ShieldConfig    `yaml:"shield"`
	Cargo     CargoConfig     `yaml:"cargo"`
	Stages    StagesConfig    `yaml:"stages"`
	Collision CollisionConfig `yaml:"collision"`
	Sound     SoundConfig     `yaml:"sound"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	WorldView float64 `yaml:"world_view"` // world units visible vertically
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// HeatConfig holds the heat accumulator parameters.
type HeatConfig struct {
	Limit             float64 `yaml:"limit"`
	ReactionThreshold float64 `yaml:"reaction_threshold"` // fraction of limit
	DecayRate         float64 `yaml:"decay_rate"`
	DecayDelay        float64 `yaml:"decay_delay"`
}

// PoolConfig holds one reagent pool's defaults.
type PoolConfig struct {
	Limit   float64 `yaml:"limit"`
	Start   float64 `yaml:"start"`
	Visible bool    `yaml:"visible"`
}

// InventoryConfig holds the per-kind pool defaults. One field per
// reagent kind keeps the config and the enumeration in lockstep.
type InventoryConfig struct {
	Minerals  PoolConfig `yaml:"minerals"`
	Exotic    PoolConfig `yaml:"exotic"`
	Strange   PoolConfig `yaml:"strange"`
	Continuum PoolConfig `yaml:"continuum"`
}

// SpawnerConfig holds the cluster spawner parameters.
type SpawnerConfig struct {
	MinClusterSize   int     `yaml:"min_cluster_size"`
	MaxClusterSize   int     `yaml:"max_cluster_size"`
	MinSpawnDistance float64 `yaml:"min_spawn_distance"`
	MaxSpawnDistance float64 `yaml:"max_spawn_distance"`
	Interval         float64 `yaml:"interval"` // seconds between cluster attempts
	ChanceOfMineral  float64 `yaml:"chance_of_mineral"`
	MineralAmount    float64 `yaml:"mineral_amount"`
	ExoticAmount     float64 `yaml:"exotic_amount"`
	InitialCluster   int     `yaml:"initial_cluster"`
	PopulationCap    int     `yaml:"population_cap"`
	CullDistance     float64 `yaml:"cull_distance"`
}

// SplittingConfig holds the rock destruction-splitting policy.
type SplittingConfig struct {
	Fragments      int     `yaml:"fragments"`
	FragmentAmount float64 `yaml:"fragment_amount"`
}

// PlayerConfig holds ship movement parameters.
type PlayerConfig struct {
	MaxSpeed        float64 `yaml:"max_speed"`
	Acceleration    float64 `yaml:"acceleration"`
	RotationSpeed   float64 `yaml:"rotation_speed"` // degrees per second
	MaxDeceleration float64 `yaml:"max_deceleration"`
	Radius          float64 `yaml:"radius"`
}

// WeaponConfig holds main gun parameters.
type WeaponConfig struct {
	FireDelay             float64 `yaml:"fire_delay"`
	ProjectileSpeed       float64 `yaml:"projectile_speed"`
	MaxProjectileDistance float64 `yaml:"max_projectile_distance"`
	OriginDistance        float64 `yaml:"origin_distance"`
	Recoil                float64 `yaml:"recoil"`
	HeatPerShot           float64 `yaml:"heat_per_shot"`
}

// ShieldConfig holds shield parameters.
type ShieldConfig struct {
	Radius float64 `yaml:"radius"`
}

// CargoConfig holds cargo dump parameters.
type CargoConfig struct {
	DumpRate float64 `yaml:"dump_rate"` // units per second per pool
}

// StagesConfig holds the progression gating thresholds and the reaction
// rules the stages append.
type StagesConfig struct {
	ExplorationThreshold   float64 `yaml:"exploration_threshold"`
	GunExoticThreshold     float64 `yaml:"gun_exotic_threshold"`
	CollectExoticThreshold float64 `yaml:"collect_exotic_threshold"`
	StrangeThreshold       float64 `yaml:"strange_threshold"`
	ContinuumThreshold     float64 `yaml:"continuum_threshold"`

	MineralReactionRate   float64 `yaml:"mineral_reaction_rate"`
	ContinuumReactionRate float64 `yaml:"continuum_reaction_rate"`
	ExoticSpawnChance     float64 `yaml:"exotic_spawn_chance"`
}

// CollisionConfig holds the overlap radii the physics collaborator uses.
type CollisionConfig struct {
	RockRadius        float64 `yaml:"rock_radius"`
	CollectibleRadius float64 `yaml:"collectible_radius"`
	SlugRadius        float64 `yaml:"slug_radius"`
	GridCellSize      float64 `yaml:"grid_cell_size"`
}

// SoundConfig holds volume settings read by the audio collaborator.
type SoundConfig struct {
	SoundEffects float64 `yaml:"sound_effects"`
	Music        float64 `yaml:"music"`
	Mute         bool    `yaml:"mute"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32      float32
	ScreenW32 float32
	ScreenH32 float32
}

var global *Config

// Init loads configuration and stores it globally.
// path may be empty to use only embedded defaults.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error. Intended for tests.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global config. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads configuration from embedded defaults, optionally overlaid
// with a user file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML saves the config to a file for experiment reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
