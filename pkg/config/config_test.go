package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.LayoutOptions(); got != layout.DefaultOptions() {
		t.Errorf("LayoutOptions() = %+v, want defaults", got)
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		t.Fatalf("RenderStyle() error: %v", err)
	}
	if style != render.DefaultStyle() {
		t.Errorf("RenderStyle() = %+v, want defaults", style)
	}
	diags, err := cfg.Validate()
	if err != nil || len(diags) != 0 {
		t.Errorf("Validate() = %v, %v; want clean", diags, err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sankey.yml")

	original := DefaultConfig()
	original.Width = 1200
	original.Style.FillMode = "gradient"
	original.Style.ShowValues = true
	original.Style.ItemColor = "#336699"
	original.Output.Formats = []string{"svg", "png"}
	original.Cache.RedisURL = "redis://localhost:6379/0"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Width != 1200 || loaded.Height != original.Height {
		t.Errorf("size = %gx%g, want 1200x%g", loaded.Width, loaded.Height, original.Height)
	}
	if loaded.Style.FillMode != "gradient" || !loaded.Style.ShowValues {
		t.Errorf("style = %+v", loaded.Style)
	}
	if loaded.Style.ItemColor != "#336699" {
		t.Errorf("item_color = %q", loaded.Style.ItemColor)
	}
	if len(loaded.Output.Formats) != 2 || loaded.Output.Formats[1] != "png" {
		t.Errorf("formats = %v", loaded.Output.Formats)
	}
	if loaded.Cache.RedisURL != original.Cache.RedisURL {
		t.Errorf("redis_url = %q", loaded.Cache.RedisURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %g, want default", cfg.Width)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sankey.yml")
	data := "style:\n  decimals: 2\nlayout:\n  auto_item_gap: false\n  item_gap: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Style.Decimals != 2 {
		t.Errorf("decimals = %d, want 2", cfg.Style.Decimals)
	}
	if !cfg.Style.UseItemColor {
		t.Error("unset keys should keep their defaults")
	}
	lo := cfg.LayoutOptions()
	if lo.AutoItemGap || lo.ItemGap != 5 || !lo.AutoItemWidth {
		t.Errorf("LayoutOptions() = %+v", lo)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sankey.yml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load() error = %v, want INVALID_FORMAT", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SANKEY_WIDTH", "640")
	t.Setenv("SANKEY_STYLE_FILL_MODE", "gradient")
	t.Setenv("SANKEY_CACHE_REDIS_URL", "redis://cache:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 640 {
		t.Errorf("Width = %g, want 640", cfg.Width)
	}
	if cfg.Style.FillMode != "gradient" {
		t.Errorf("fill_mode = %q, want gradient", cfg.Style.FillMode)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379" {
		t.Errorf("redis_url = %q", cfg.Cache.RedisURL)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SANKEY_WIDTH":             "width",
		"SANKEY_STYLE_FILL_MODE":   "style.fill_mode",
		"SANKEY_LAYOUT_ITEM_GAP":   "layout.item_gap",
		"SANKEY_SERVER_ADDR":       "server.addr",
		"SANKEY_OUTPUT_EMBED_FONT": "output.embed_font",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		code    errors.Code
		wantLen int
	}{
		{"defaults", func(*Config) {}, "", 0},
		{"zero width", func(c *Config) { c.Width = 0 }, errors.ErrCodeInvalidInput, 0},
		{"bad color", func(c *Config) { c.Style.ItemColor = "#zzz" }, errors.ErrCodeInvalidColor, 0},
		{"bad format", func(c *Config) { c.Output.Formats = []string{"bmp"} }, errors.ErrCodeInvalidFormat, 0},
		{"bad viz", func(c *Config) { c.Output.VizType = "pie" }, errors.ErrCodeInvalidInput, 0},
		{"auto width ignores value", func(c *Config) { c.Layout.ItemWidth = 500 }, "", 0},
		{"fixed width clamped", func(c *Config) { c.Layout.AutoItemWidth = false; c.Layout.ItemWidth = 500 }, "", 1},
		{"decimals and opacity", func(c *Config) { c.Style.Decimals = 9; c.Style.ConnectionOpacity = 0 }, "", 2},
		{"unknown fill mode", func(c *Config) { c.Style.FillMode = "stripes" }, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			diags, err := cfg.Validate()
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("Validate() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if len(diags) != tt.wantLen {
				t.Errorf("got %d diagnostics %v, want %d", len(diags), diags, tt.wantLen)
			}
			for _, d := range diags {
				if d.Code != errors.ErrCodeConfiguration {
					t.Errorf("diagnostic code = %s", d.Code)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 300, 200
	cfg.Style.Background = "#ffffff"
	cfg.Style.Decimals = 10
	cfg.Output.Formats = []string{"png"}
	cfg.Output.Scale = 3

	var opts pipeline.Options
	if err := cfg.Apply(&opts); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if opts.Width != 300 || opts.Height != 200 {
		t.Errorf("size = %gx%g", opts.Width, opts.Height)
	}
	if opts.Style.Decimals != render.MaxDecimals {
		t.Errorf("Decimals = %d, want clamped %d", opts.Style.Decimals, render.MaxDecimals)
	}
	if opts.Background.R != 255 || opts.Background.A != 255 {
		t.Errorf("Background = %v", opts.Background)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" || opts.Scale != 3 {
		t.Errorf("formats/scale = %v/%g", opts.Formats, opts.Scale)
	}

	// Apply copies the slice.
	cfg.Output.Formats[0] = "svg"
	if opts.Formats[0] != "png" {
		t.Error("Apply should not alias the config's formats")
	}
}
