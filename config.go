package texcat

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// InlineConfig controls $...$ rendering.
type InlineConfig struct {
	// Padding, in inches, of transparent space around the image. Keeps
	// tall glyphs (arrows) from clipping at the bitmap edge.
	Padding float64 `toml:"padding"`
	// Extra blank rows above/below any line that contains math, on top
	// of what overflow reservation computes.
	MarginTop    int `toml:"margin_top"`
	MarginBottom int `toml:"margin_bottom"`
	// ScaleFactor sizes inline math relative to the cell height. 1.05 is
	// slightly larger than the text, which reads better.
	ScaleFactor float64 `toml:"scale_factor"`
	DPI         int     `toml:"dpi"`
}

// BlockConfig controls $$...$$ rendering.
type BlockConfig struct {
	Padding      float64 `toml:"padding"`
	FontSize     float64 `toml:"font_size"`
	MarginTop    int     `toml:"margin_top"`
	MarginBottom int     `toml:"margin_bottom"`
	DPI          int     `toml:"dpi"`
}

// Config is the process-wide rendering configuration, loaded once per
// invocation.
type Config struct {
	// Color is the foreground color of rendered math, "#rrggbb".
	Color string `toml:"color"`
	// ExternalTimeoutSec bounds one external-toolchain invocation.
	ExternalTimeoutSec int `toml:"external_timeout_sec"`

	Inline InlineConfig `toml:"inline"`
	Block  BlockConfig  `toml:"block"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Color:              "#eeeeee",
		ExternalTimeoutSec: int(DefaultExternalTimeout / time.Second),
		Inline: InlineConfig{
			Padding:      0.1,
			MarginTop:    0,
			MarginBottom: 0,
			ScaleFactor:  1.05,
			DPI:          200,
		},
		Block: BlockConfig{
			Padding:      0.1,
			FontSize:     24,
			MarginTop:    1,
			MarginBottom: 1,
			DPI:          200,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged; an unreadable or malformed file is an
// error, since the user asked for it explicitly.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ExternalTimeout returns the configured toolchain timeout as a duration.
func (c Config) ExternalTimeout() time.Duration {
	if c.ExternalTimeoutSec <= 0 {
		return DefaultExternalTimeout
	}
	return time.Duration(c.ExternalTimeoutSec) * time.Second
}

func (c Config) validate() error {
	if _, err := parseHexColor(c.Color); err != nil {
		return err
	}
	if c.Inline.ScaleFactor <= 0 {
		return fmt.Errorf("inline scale_factor must be positive")
	}
	if c.Inline.DPI <= 0 || c.Block.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}
	if c.Block.FontSize <= 0 {
		return fmt.Errorf("block font_size must be positive")
	}
	if c.Inline.MarginTop < 0 || c.Inline.MarginBottom < 0 ||
		c.Block.MarginTop < 0 || c.Block.MarginBottom < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	return nil
}
