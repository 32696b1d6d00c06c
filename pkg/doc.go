// Package pkg holds the libraries behind the sankey command.
//
// # Overview
//
// A Sankey diagram draws weighted flows between nodes arranged in levels
// (columns). Node boxes are as tall as the larger of their inflow and
// outflow sums, and each flow is a ribbon whose thickness matches its
// weight. The packages are organized as follows:
//
//  1. [flow] - The weighted flow graph and its diagnostics
//  2. [layout] - Level partitioning, ordering and geometry
//  3. [render] - Drawing commands, styles and output sinks
//  4. [io] - JSON, YAML, TOML and SQLite flow files
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//  6. [server] - Live preview over HTTP and websockets
//
// # Architecture
//
// The typical data flow:
//
//	Flow file (local or http)
//	         ↓
//	    [io] package (decode into a flow.Graph)
//	         ↓
//	    [layout] package (levels, order, rectangles, ribbons)
//	         ↓
//	    [render] package (command list, then a sink)
//	         ↓
//	SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/sankey/pkg/pipeline"
//	)
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	defer r.Close()
//	res, err := r.Execute(context.Background(), pipeline.Options{
//	    Source:  "energy.json",
//	    Formats: []string{"svg"},
//	})
//	// res.Artifacts["svg"] holds the document
//
// # Supporting Packages
//
//   - [config] - YAML config file with SANKEY_* environment overrides
//   - [cache] - File, Redis and no-op caches for graphs, layouts and outputs
//   - [watch] - File watching with debounce and a polling fallback
//   - [httputil] - Downloading flow files with retries
//   - [observability] - Hooks for logging and metrics
//   - [errors] - Coded errors shared by the CLI and the server
//
// [flow]: github.com/matzehuels/sankey/pkg/flow
// [layout]: github.com/matzehuels/sankey/pkg/layout
// [render]: github.com/matzehuels/sankey/pkg/render
// [io]: github.com/matzehuels/sankey/pkg/io
// [pipeline]: github.com/matzehuels/sankey/pkg/pipeline
// [server]: github.com/matzehuels/sankey/pkg/server
// [config]: github.com/matzehuels/sankey/pkg/config
// [cache]: github.com/matzehuels/sankey/pkg/cache
// [watch]: github.com/matzehuels/sankey/pkg/watch
// [httputil]: github.com/matzehuels/sankey/pkg/httputil
// [observability]: github.com/matzehuels/sankey/pkg/observability
// [errors]: github.com/matzehuels/sankey/pkg/errors
package pkg
