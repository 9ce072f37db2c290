package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/npillmayer/parcoords/action"
	"github.com/npillmayer/parcoords/colors"
	"github.com/npillmayer/parcoords/renderer"
	"github.com/npillmayer/parcoords/selection"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML form of renderer.Config. Unset fields keep their
// defaults.
type fileConfig struct {
	QueueCapacity   *int              `toml:"queue_capacity"`
	RemPixels       *float32          `toml:"rem_pixels"`
	InteractionMode string            `toml:"interaction_mode"`
	Easing          string            `toml:"easing"`
	Combination     string            `toml:"curve_combination"`
	SelectionBounds *[2]float32       `toml:"selection_bounds"`
	Background      string            `toml:"background"`
	Brush           string            `toml:"brush"`
	Unselected      string            `toml:"unselected"`
	ColorScale      *colors.ScaleDesc `toml:"color_scale"`
}

// loadConfig reads a TOML configuration file over the defaults. An empty
// path yields the defaults.
func loadConfig(path string) (renderer.Config, error) {
	cfg := renderer.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (renderer.Config, error) {
	cfg := renderer.DefaultConfig()
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return cfg, fmt.Errorf("configuration: %w", err)
	}
	if err := fc.apply(&cfg); err != nil {
		return cfg, fmt.Errorf("configuration: %w", err)
	}
	return cfg, cfg.Validate()
}

func (fc fileConfig) apply(cfg *renderer.Config) error {
	if fc.QueueCapacity != nil {
		cfg.QueueCapacity = *fc.QueueCapacity
	}
	if fc.RemPixels != nil {
		cfg.RemPixels = *fc.RemPixels
	}
	if fc.InteractionMode != "" {
		mode, err := action.ParseInteractionMode(fc.InteractionMode)
		if err != nil {
			return err
		}
		cfg.InteractionMode = mode
	}
	if fc.Easing != "" {
		cfg.Easing = selection.ParseEasing(fc.Easing)
	}
	if fc.Combination != "" {
		c, err := selection.ParseCombination(fc.Combination)
		if err != nil {
			return err
		}
		cfg.Combination = c
	}
	if fc.SelectionBounds != nil {
		cfg.SelectionBounds = *fc.SelectionBounds
	}
	for _, c := range []struct {
		css    string
		target *colors.Color
	}{
		{fc.Background, &cfg.Background},
		{fc.Brush, &cfg.Brush},
		{fc.Unselected, &cfg.Unselected},
	} {
		if c.css == "" {
			continue
		}
		color, err := colors.Parse(c.css)
		if err != nil {
			return err
		}
		*c.target = color
	}
	if fc.ColorScale != nil {
		scale, err := fc.ColorScale.Scale()
		if err != nil {
			return err
		}
		cfg.ColorScale = scale
	}
	return nil
}
