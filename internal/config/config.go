package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Mapgen      MapgenConfig      `mapstructure:"mapgen"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds rules and board loading settings
type GameConfig struct {
	BoardFile           string `mapstructure:"board_file"`
	RequireConnected    bool   `mapstructure:"require_connected"`
	StrictCounts        bool   `mapstructure:"strict_counts"`
	UnreachablePolicy   string `mapstructure:"unreachable_policy"`
	TargetMode          string `mapstructure:"target_mode"`
	EnemyStartsWithSkip bool   `mapstructure:"enemy_starts_with_skip"`
	Seed                int64  `mapstructure:"seed"`
}

// MapgenConfig holds procedural board settings, used when no board file is set
type MapgenConfig struct {
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	Enemies        int     `mapstructure:"enemies"`
	ExtraEdgeRatio float64 `mapstructure:"extra_edge_ratio"`
	DiagonalRatio  float64 `mapstructure:"diagonal_ratio"`
	MinUnitSpacing int     `mapstructure:"min_unit_spacing"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window    WindowConfig    `mapstructure:"window"`
	Board     BoardConfig     `mapstructure:"board"`
	Animation AnimationConfig `mapstructure:"animation"`
	Input     InputConfig     `mapstructure:"input"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// BoardConfig holds board layout settings in pixels
type BoardConfig struct {
	VertexSpacing int `mapstructure:"vertex_spacing"`
	VertexRadius  int `mapstructure:"vertex_radius"`
	Margin        int `mapstructure:"margin"`
}

// AnimationConfig holds move animation timing in frames
type AnimationConfig struct {
	MoveFrames    int `mapstructure:"move_frames"`
	StaggerFrames int `mapstructure:"stagger_frames"`
}

// InputConfig holds gesture settings
type InputConfig struct {
	MinDragPixels int `mapstructure:"min_drag_pixels"`
}

// ColorsConfig holds RGB triples for the renderer
type ColorsConfig struct {
	Background [3]int `mapstructure:"background"`
	Edge       [3]int `mapstructure:"edge"`
	Vertex     [3]int `mapstructure:"vertex"`
	Player     [3]int `mapstructure:"player"`
	Enemy      [3]int `mapstructure:"enemy"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging   bool `mapstructure:"verbose_logging"`
	DevEventPayloads bool `mapstructure:"dev_event_payloads"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.board_file", "")
	v.SetDefault("game.require_connected", false)
	v.SetDefault("game.strict_counts", false)
	v.SetDefault("game.unreachable_policy", "skip")
	v.SetDefault("game.target_mode", "nearest_unit")
	v.SetDefault("game.enemy_starts_with_skip", true)
	v.SetDefault("game.seed", 0)

	// Map generation defaults
	v.SetDefault("mapgen.width", 7)
	v.SetDefault("mapgen.height", 7)
	v.SetDefault("mapgen.enemies", 2)
	v.SetDefault("mapgen.extra_edge_ratio", 0.3)
	v.SetDefault("mapgen.diagonal_ratio", 0.1)
	v.SetDefault("mapgen.min_unit_spacing", 3)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// UI defaults
	v.SetDefault("ui.window.width", 800)
	v.SetDefault("ui.window.height", 600)
	v.SetDefault("ui.window.title", "Graph Chase")
	v.SetDefault("ui.board.vertex_spacing", 80)
	v.SetDefault("ui.board.vertex_radius", 14)
	v.SetDefault("ui.board.margin", 60)
	v.SetDefault("ui.animation.move_frames", 12)
	v.SetDefault("ui.animation.stagger_frames", 6)
	v.SetDefault("ui.input.min_drag_pixels", 10)

	// Color defaults
	v.SetDefault("colors.background", []int{20, 20, 28})
	v.SetDefault("colors.edge", []int{110, 110, 130})
	v.SetDefault("colors.vertex", []int{190, 190, 200})
	v.SetDefault("colors.player", []int{50, 100, 200})
	v.SetDefault("colors.enemy", []int{200, 50, 50})

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.dev_event_payloads", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/graph-chase")
	}

	v.SetEnvPrefix("GCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the default
		// locations only ConfigFileNotFoundError is tolerated.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded configuration
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Changes that fail
// validation are reported through onChange and leave the previous values in place.
func WatchConfig(onChange func(err error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch c.Game.UnreachablePolicy {
	case "skip", "error":
	default:
		return fmt.Errorf("game.unreachable_policy must be skip or error, got %q", c.Game.UnreachablePolicy)
	}
	switch c.Game.TargetMode {
	case "nearest_unit", "player":
	default:
		return fmt.Errorf("game.target_mode must be nearest_unit or player, got %q", c.Game.TargetMode)
	}

	// Only checked when boards are generated
	if c.Game.BoardFile == "" {
		if c.Mapgen.Width <= 0 || c.Mapgen.Height <= 0 {
			return fmt.Errorf("mapgen dimensions must be positive")
		}
		if c.Mapgen.Enemies < 0 {
			return fmt.Errorf("mapgen.enemies must be non-negative")
		}
		if c.Mapgen.Enemies+1 > c.Mapgen.Width*c.Mapgen.Height {
			return fmt.Errorf("mapgen board %dx%d cannot hold %d units", c.Mapgen.Width, c.Mapgen.Height, c.Mapgen.Enemies+1)
		}
		if c.Mapgen.MinUnitSpacing < 1 {
			return fmt.Errorf("mapgen.min_unit_spacing must be at least 1")
		}
	}
	if c.Mapgen.ExtraEdgeRatio < 0 || c.Mapgen.ExtraEdgeRatio > 1 {
		return fmt.Errorf("mapgen.extra_edge_ratio must be between 0 and 1")
	}
	if c.Mapgen.DiagonalRatio < 0 || c.Mapgen.DiagonalRatio > 1 {
		return fmt.Errorf("mapgen.diagonal_ratio must be between 0 and 1")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	// Validate UI configuration
	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Board.VertexSpacing <= 0 {
		return fmt.Errorf("ui.board.vertex_spacing must be positive")
	}
	if c.UI.Board.VertexRadius <= 0 || 2*c.UI.Board.VertexRadius >= c.UI.Board.VertexSpacing {
		return fmt.Errorf("ui.board.vertex_radius must be positive and less than half the vertex spacing")
	}
	if c.UI.Board.Margin < 0 {
		return fmt.Errorf("ui.board.margin must be non-negative")
	}
	if c.UI.Animation.MoveFrames <= 0 {
		return fmt.Errorf("ui.animation.move_frames must be positive")
	}
	if c.UI.Animation.StaggerFrames < 0 {
		return fmt.Errorf("ui.animation.stagger_frames must be non-negative")
	}
	if c.UI.Input.MinDragPixels < 0 {
		return fmt.Errorf("ui.input.min_drag_pixels must be non-negative")
	}

	validateRGB := func(rgb [3]int, name string) error {
		for i, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}

	for _, c := range []struct {
		rgb  [3]int
		name string
	}{
		{c.Colors.Background, "colors.background"},
		{c.Colors.Edge, "colors.edge"},
		{c.Colors.Vertex, "colors.vertex"},
		{c.Colors.Player, "colors.player"},
		{c.Colors.Enemy, "colors.enemy"},
	} {
		if err := validateRGB(c.rgb, c.name); err != nil {
			return err
		}
	}

	return nil
}
