// Package config manages the layout core's configuration with Viper
// integration: file loading, environment overrides, live reload, and
// defaults, producing the entity.Config the layout engine reads from.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// File permission constants.
const (
	dirPerm  = 0755
	filePerm = 0644
)

// fileConfig mirrors entity.Config with string-typed enum fields, the shape
// Viper decodes from TOML/YAML/JSON before ParseLayout/ParseHideEdgeBorders
// translate it into the layout engine's own type.
type fileConfig struct {
	Gap                int    `mapstructure:"gap"`
	SmartGaps          bool   `mapstructure:"smart_gaps"`
	EdgeGaps           bool   `mapstructure:"edge_gaps"`
	HideEdgeBorders    string `mapstructure:"hide_edge_borders"`
	FontHeight         int    `mapstructure:"font_height"`
	DefaultLayout      string `mapstructure:"default_layout"`
	DefaultOrientation string `mapstructure:"default_orientation"`
	ForceFocusWrapping bool   `mapstructure:"force_focus_wrapping"`
}

func (f fileConfig) toEntity() entity.Config {
	return entity.Config{
		Gap:                f.Gap,
		SmartGaps:          f.SmartGaps,
		EdgeGaps:           f.EdgeGaps,
		HideEdgeBorders:    entity.ParseHideEdgeBorders(f.HideEdgeBorders),
		FontHeight:         f.FontHeight,
		DefaultLayout:      entity.ParseLayout(f.DefaultLayout),
		DefaultOrientation: entity.ParseLayout(f.DefaultOrientation),
		ForceFocusWrapping: f.ForceFocusWrapping,
	}
}

func fromEntity(c entity.Config) fileConfig {
	return fileConfig{
		Gap:                c.Gap,
		SmartGaps:          c.SmartGaps,
		EdgeGaps:           c.EdgeGaps,
		HideEdgeBorders:    c.HideEdgeBorders.String(),
		FontHeight:         c.FontHeight,
		DefaultLayout:      c.DefaultLayout.String(),
		DefaultOrientation: c.DefaultOrientation.String(),
		ForceFocusWrapping: c.ForceFocusWrapping,
	}
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    entity.Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(entity.Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("LAYOUTCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"gap":                  "GAP",
		"smart_gaps":           "SMART_GAPS",
		"edge_gaps":            "EDGE_GAPS",
		"hide_edge_borders":    "HIDE_EDGE_BORDERS",
		"font_height":          "FONT_HEIGHT",
		"default_layout":       "DEFAULT_LAYOUT",
		"default_orientation":  "DEFAULT_ORIENTATION",
		"force_focus_wrapping": "FORCE_FOCUS_WRAPPING",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "LAYOUTCORE_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(entity.Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var raw fileConfig
	if err := m.viper.Unmarshal(&raw); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := raw.toEntity()

	if err := validateConfig(cfg); err != nil {
		return err
	}

	m.config = cfg
	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() entity.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			log.Error().Err(err).Msg("config: failed to reload")
			return
		}

		m.mu.RLock()
		cfg := m.config
		callbacks := make([]func(entity.Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(cfg)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback invoked on every successful reload.
func (m *Manager) OnConfigChange(callback func(entity.Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	var raw fileConfig
	if err := m.viper.Unmarshal(&raw); err != nil {
		return err
	}
	cfg := raw.toEntity()
	if err := validateConfig(cfg); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

func (m *Manager) setDefaults() {
	d := fromEntity(entity.DefaultConfig())
	m.viper.SetDefault("gap", d.Gap)
	m.viper.SetDefault("smart_gaps", d.SmartGaps)
	m.viper.SetDefault("edge_gaps", d.EdgeGaps)
	m.viper.SetDefault("hide_edge_borders", d.HideEdgeBorders)
	m.viper.SetDefault("font_height", d.FontHeight)
	m.viper.SetDefault("default_layout", d.DefaultLayout)
	m.viper.SetDefault("default_orientation", d.DefaultOrientation)
	m.viper.SetDefault("force_focus_wrapping", d.ForceFocusWrapping)
}

func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := m.viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info().Str("path", configFile).Msg("config: created default configuration file")
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// Global configuration manager instance.
var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration, or entity.DefaultConfig() if Init
// has not been called.
func Get() entity.Config {
	if globalManager == nil {
		return entity.DefaultConfig()
	}
	return globalManager.Get()
}

// Watch starts watching the global configuration for changes.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnConfigChange registers a callback for global configuration changes.
func OnConfigChange(callback func(entity.Config)) {
	if globalManager == nil {
		return
	}
	globalManager.OnConfigChange(callback)
}
