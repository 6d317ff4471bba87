package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"glide/internal/document"
	"glide/internal/eventbus"
	"glide/internal/scroll"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	appDirName     = "glide"
	configFileName = "config.toml"
	positionsFile  = "positions.db"
)

// Config represents the application configuration
type Config struct {
	Version int                 `toml:"version"`
	Scroll  ScrollSettings      `toml:"scroll"`
	UI      UISettings          `toml:"ui"`
	Keys    map[string][]string `toml:"keys"` // command id -> keys
	Log     LogSettings         `toml:"log"`
	Storage StorageSettings     `toml:"storage"`
}

// ScrollSettings configure the scroll commands. Durations are in seconds.
type ScrollSettings struct {
	PagePercent      float64  `toml:"page_percent"`
	PageDuration     float64  `toml:"page_duration"`
	SectionDuration  float64  `toml:"section_duration"`
	AutoSpeed        float64  `toml:"auto_speed"`
	EaseIn           float64  `toml:"ease_in"`
	EaseOut          float64  `toml:"ease_out"`
	EdgeMargin       float64  `toml:"edge_margin"`
	SectionSelectors []string `toml:"section_selectors"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CellHeight       float64 `toml:"cell_height"`
	HighlightStyle   string  `toml:"highlight_style"`
	NoticeSeconds    float64 `toml:"notice_seconds"`
	ShowHelp         bool    `toml:"show_help"`
	RememberPosition bool    `toml:"remember_position"`
}

type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type StorageSettings struct {
	PositionsDB string `toml:"positions_db"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for the default
// location when path is empty.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = filepath.Join(appDir(), configFileName)
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func appDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDirName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it does
// not exist.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath reads and validates the file at path. Keys absent from the
// file keep their defaults; unknown keys are an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Keys == nil {
		cfg.Keys = make(map[string][]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	def := scroll.DefaultSettings()
	return &Config{
		Version: 1,
		Scroll: ScrollSettings{
			PagePercent:      def.PagePercent,
			PageDuration:     def.PageDuration.Seconds(),
			SectionDuration:  def.SectionDuration.Seconds(),
			AutoSpeed:        def.AutoScrollSpeed,
			EaseIn:           def.EaseIn,
			EaseOut:          def.EaseOut,
			EdgeMargin:       def.EdgeMargin,
			SectionSelectors: def.SectionSelectors,
		},
		UI: UISettings{
			CellHeight:       16,
			HighlightStyle:   "monokai",
			NoticeSeconds:    scroll.DefaultNoticeDuration.Seconds(),
			ShowHelp:         true,
			RememberPosition: true,
		},
		Keys: make(map[string][]string),
		Log: LogSettings{
			File:  filepath.Join(os.TempDir(), "glide.log"),
			Level: "info",
		},
	}
}

// Validate checks value ranges. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Scroll
	check(finite(s.PagePercent, s.PageDuration, s.SectionDuration, s.AutoSpeed, s.EaseIn, s.EaseOut, s.EdgeMargin),
		"scroll values must be finite numbers")
	check(s.PagePercent > 0 && s.PagePercent <= 100, "scroll.page_percent must be in (0, 100], got %v", s.PagePercent)
	check(s.PageDuration >= 0, "scroll.page_duration must not be negative")
	check(s.SectionDuration >= 0, "scroll.section_duration must not be negative")
	check(s.AutoSpeed > 0, "scroll.auto_speed must be positive, got %v", s.AutoSpeed)
	check(s.EaseIn >= 0 && s.EaseOut >= 0, "scroll.ease_in and scroll.ease_out must not be negative")
	check(s.EdgeMargin >= 0, "scroll.edge_margin must not be negative")
	for _, sel := range s.SectionSelectors {
		if _, err := document.ParseSelector(sel); err != nil {
			errs = append(errs, fmt.Errorf("scroll.section_selectors: %w", err))
		}
	}

	check(finite(c.UI.CellHeight) && c.UI.CellHeight > 0, "ui.cell_height must be a positive finite number, got %v", c.UI.CellHeight)
	check(finite(c.UI.NoticeSeconds) && c.UI.NoticeSeconds >= 0, "ui.notice_seconds must be a non-negative finite number")

	for id, keys := range c.Keys {
		check(len(keys) > 0, "keys.%s: at least one key is required", id)
		for _, k := range keys {
			check(strings.TrimSpace(k) != "", "keys.%s: empty key", id)
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Settings converts the scroll section for a scroll.Controller.
func (c *Config) Settings() scroll.Settings {
	return scroll.Settings{
		PagePercent:      c.Scroll.PagePercent,
		PageDuration:     seconds(c.Scroll.PageDuration),
		SectionDuration:  seconds(c.Scroll.SectionDuration),
		AutoScrollSpeed:  c.Scroll.AutoSpeed,
		EaseIn:           c.Scroll.EaseIn,
		EaseOut:          c.Scroll.EaseOut,
		EdgeMargin:       c.Scroll.EdgeMargin,
		SectionSelectors: append([]string(nil), c.Scroll.SectionSelectors...),
	}
}

// NoticeDuration is how long transient notices stay visible.
func (c *Config) NoticeDuration() time.Duration {
	return seconds(c.UI.NoticeSeconds)
}

// PositionsPath returns the reading-position database path.
func (c *Config) PositionsPath() string {
	if c.Storage.PositionsDB != "" {
		return c.Storage.PositionsDB
	}
	return filepath.Join(appDir(), positionsFile)
}

// SlogLevel parses the configured log level.
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
