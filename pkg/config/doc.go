// Package config loads the sankey render configuration.
//
// A YAML file (sankey.yml by default) is read with koanf and overlaid by
// SANKEY_* environment variables:
//
//	width: 1200
//	height: 800
//	style:
//	  fill_mode: gradient
//	  show_values: true
//	  decimals: 1
//
//	SANKEY_STYLE_DECIMALS=2 sankey render energy.json
//
// [Config.Validate] rejects unusable values (bad colors, unknown formats,
// non-positive canvas) and reports values that will be clamped. The CLI
// copies the result into [pipeline.Options] with [Config.Apply] and lets
// explicit flags win.
//
// [pipeline.Options]: github.com/matzehuels/sankey/pkg/pipeline.Options
package config
