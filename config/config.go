package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"samurai-tactics/types"
)

var (
	cfgFile = "samurai-tactics/config.json"
)

// InvalidConfig reports a config value that failed validation.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-color palette indexes for the board.
type ConfigColors struct {
	BoardLight int `json:"board_light"`
	BoardDark  int `json:"board_dark"`
	Red        int `json:"red"`
	Blue       int `json:"blue"`
	CursorBG   int `json:"cursor_bg"`
	SelectedBG int `json:"selected_bg"`
	LegalBG    int `json:"legal_bg"`
	Label      int `json:"label"`
}

// ConfigSymbols holds the letter drawn for each piece kind.
type ConfigSymbols struct {
	Samurai rune `json:"samurai"`
	Ronin   rune `json:"ronin"`
	Daimyo  rune `json:"daimyo"`
	Ninja   rune `json:"ninja"`
}

// Theme is how the board looks.
type Theme struct {
	UseEmoji bool          `json:"use_emoji"`
	Colors   ConfigColors  `json:"colors"`
	Symbols  ConfigSymbols `json:"symbols"`
}

var emojiSymbols = map[types.Kind]rune{
	types.Samurai: '🤺',
	types.Ronin:   '⚔',
	types.Daimyo:  '👹',
	types.Ninja:   '🥷',
}

// Symbol returns the rune drawn for a piece kind.
func (t Theme) Symbol(kind types.Kind) rune {
	if t.UseEmoji {
		return emojiSymbols[kind]
	}
	switch kind {
	case types.Samurai:
		return t.Symbols.Samurai
	case types.Ronin:
		return t.Symbols.Ronin
	case types.Daimyo:
		return t.Symbols.Daimyo
	case types.Ninja:
		return t.Symbols.Ninja
	}
	return ' '
}

// LogConfig controls the debug log. An empty path disables logging.
type LogConfig struct {
	Path  string `json:"path" env:"SAMURAI_LOG_PATH"`
	Level string `json:"level" env:"SAMURAI_LOG_LEVEL"`
}

// TelemetryConfig controls OTLP/HTTP trace export of session spans. An empty
// endpoint leaves the exporter on its OTEL_EXPORTER_OTLP_* defaults.
type TelemetryConfig struct {
	Enabled     bool    `json:"enabled" env:"SAMURAI_TELEMETRY"`
	Endpoint    string  `json:"endpoint" env:"SAMURAI_OTLP_ENDPOINT"`
	Insecure    bool    `json:"insecure" env:"SAMURAI_OTLP_INSECURE"`
	SampleRatio float64 `json:"sample_ratio" env:"SAMURAI_TRACE_SAMPLE_RATIO"`
}

// Config is the full user configuration.
type Config struct {
	Theme     Theme           `json:"theme"`
	Log       LogConfig       `json:"log"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// InitConfig builds the configuration from defaults, the XDG config file if
// one exists, and SAMURAI_* environment variables, in that order.
func InitConfig() (*Config, error) {
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		path = ""
	}
	return Load(path)
}

// Load is InitConfig with an explicit file path. An empty path skips the
// file step.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks symbols, log level and telemetry settings.
func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Samurai, s.Ronin, s.Daimyo, s.Ninja} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
		}
	}
	if r := c.Telemetry.SampleRatio; r < 0 || r > 1 {
		return &InvalidConfig{fmt.Sprintf("sample ratio %v outside [0, 1]", r)}
	}
	return nil
}

// Save writes the config to the XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config %s: %w", filePath, err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filePath, err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return nil
}
