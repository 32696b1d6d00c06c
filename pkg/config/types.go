package config

// Config is the render configuration, usually read from sankey.yml.
// Colors are hex strings ("#a4a4a4", "#a4a4a48c").
type Config struct {
	Width  float64      `yaml:"width" koanf:"width"`
	Height float64      `yaml:"height" koanf:"height"`
	Layout LayoutConfig `yaml:"layout" koanf:"layout"`
	Style  StyleConfig  `yaml:"style" koanf:"style"`
	Output OutputConfig `yaml:"output" koanf:"output"`
	Cache  CacheConfig  `yaml:"cache" koanf:"cache"`
	Server ServerConfig `yaml:"server" koanf:"server"`
}

// LayoutConfig holds node sizing.
type LayoutConfig struct {
	AutoItemWidth bool    `yaml:"auto_item_width" koanf:"auto_item_width"`
	ItemWidth     float64 `yaml:"item_width" koanf:"item_width"`
	AutoItemGap   bool    `yaml:"auto_item_gap" koanf:"auto_item_gap"`
	ItemGap       float64 `yaml:"item_gap" koanf:"item_gap"`
}

// StyleConfig holds colors and decorations.
type StyleConfig struct {
	FillMode          string  `yaml:"fill_mode" koanf:"fill_mode"`
	StreamColor       string  `yaml:"stream_color" koanf:"stream_color"`
	ConnectionOpacity float64 `yaml:"connection_opacity" koanf:"connection_opacity"`
	UseItemColor      bool    `yaml:"use_item_color" koanf:"use_item_color"`
	ItemColor         string  `yaml:"item_color" koanf:"item_color"`
	TextColor         string  `yaml:"text_color" koanf:"text_color"`
	Background        string  `yaml:"background,omitempty" koanf:"background"`
	ShowFlowDirection bool    `yaml:"show_flow_direction" koanf:"show_flow_direction"`
	ShowValues        bool    `yaml:"show_values" koanf:"show_values"`
	Decimals          int     `yaml:"decimals" koanf:"decimals"`
}

// OutputConfig selects what the render command writes.
type OutputConfig struct {
	VizType   string   `yaml:"viz_type" koanf:"viz_type"`
	Formats   []string `yaml:"formats" koanf:"formats"`
	Scale     float64  `yaml:"scale" koanf:"scale"`
	EmbedFont bool     `yaml:"embed_font" koanf:"embed_font"`
	RSVG      bool     `yaml:"rsvg" koanf:"rsvg"`
}

// CacheConfig selects the pipeline cache backend. RedisURL wins over Dir.
type CacheConfig struct {
	Disabled bool   `yaml:"disabled" koanf:"disabled"`
	Dir      string `yaml:"dir,omitempty" koanf:"dir"`
	RedisURL string `yaml:"redis_url,omitempty" koanf:"redis_url"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr" koanf:"addr"`
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`
}
