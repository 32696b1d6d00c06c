package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render"
)

// EnvPrefix prefixes environment overrides. The first underscore after the
// prefix separates the section: SANKEY_STYLE_FILL_MODE sets style.fill_mode.
const EnvPrefix = "SANKEY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file yields the defaults; an
// empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values that cannot be rendered at all and reports
// values that will be clamped as CONFIGURATION diagnostics.
func (c *Config) Validate() ([]layout.Diagnostic, error) {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return nil, err
	}
	if _, err := c.renderStyle(); err != nil {
		return nil, err
	}
	if err := pipeline.ValidateVizType(c.Output.VizType); err != nil {
		return nil, err
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return nil, err
	}

	var diags []layout.Diagnostic
	clamped := func(key string, got, lo, hi float64) {
		if got < lo || got > hi {
			diags = append(diags, layout.Diagnostic{
				Code:    errors.ErrCodeConfiguration,
				Message: fmt.Sprintf("%s %g outside [%g, %g], clamped", key, got, lo, hi),
			})
		}
	}
	if !c.Layout.AutoItemWidth {
		clamped("layout.item_width", c.Layout.ItemWidth, layout.MinItemWidth, layout.MaxItemWidth)
	}
	if !c.Layout.AutoItemGap {
		clamped("layout.item_gap", c.Layout.ItemGap, layout.MinItemGap, layout.MaxItemGap)
	}
	clamped("style.decimals", float64(c.Style.Decimals), render.MinDecimals, render.MaxDecimals)
	clamped("style.connection_opacity", c.Style.ConnectionOpacity, render.MinConnectionOpacity, render.MaxConnectionOpacity)
	if _, ok := render.ParseFillMode(c.Style.FillMode); !ok {
		diags = append(diags, layout.Diagnostic{
			Code:    errors.ErrCodeConfiguration,
			Message: fmt.Sprintf("style.fill_mode %q unknown, using %q", c.Style.FillMode, render.FillColor),
		})
	}
	return diags, nil
}

// LayoutOptions returns the layout options with sizes clamped.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		AutoItemWidth: c.Layout.AutoItemWidth,
		ItemWidth:     c.Layout.ItemWidth,
		AutoItemGap:   c.Layout.AutoItemGap,
		ItemGap:       c.Layout.ItemGap,
	}.Normalize()
}

// RenderStyle parses the colors and returns a normalized style.
func (c *Config) RenderStyle() (render.Style, error) {
	s, err := c.renderStyle()
	if err != nil {
		return render.Style{}, err
	}
	return s.Normalize(), nil
}

func (c *Config) renderStyle() (render.Style, error) {
	s := render.Style{
		StreamFillMode:    render.FillMode(c.Style.FillMode),
		ConnectionOpacity: c.Style.ConnectionOpacity,
		ShowFlowDirection: c.Style.ShowFlowDirection,
		UseItemColor:      c.Style.UseItemColor,
		ShowValues:        c.Style.ShowValues,
		Decimals:          c.Style.Decimals,
	}
	colors := []struct {
		key string
		val string
		dst *color.RGBA
	}{
		{"style.stream_color", c.Style.StreamColor, &s.StreamColor},
		{"style.item_color", c.Style.ItemColor, &s.ItemColor},
		{"style.text_color", c.Style.TextColor, &s.TextColor},
		{"style.background", c.Style.Background, &s.Background},
	}
	for _, col := range colors {
		if col.val == "" {
			continue
		}
		parsed, err := render.ParseColor(col.val)
		if err != nil {
			return render.Style{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "%s", col.key)
		}
		*col.dst = parsed
	}
	return s, nil
}

// Apply copies the configuration into pipeline options. Flags parsed
// afterwards override what Apply sets.
func (c *Config) Apply(o *pipeline.Options) error {
	style, err := c.RenderStyle()
	if err != nil {
		return err
	}
	o.Width = c.Width
	o.Height = c.Height
	o.Layout = c.LayoutOptions()
	o.Style = style
	o.Background = style.Background
	o.VizType = c.Output.VizType
	o.Formats = append([]string(nil), c.Output.Formats...)
	o.Scale = c.Output.Scale
	o.EmbedFont = c.Output.EmbedFont
	o.RSVG = c.Output.RSVG
	return nil
}
