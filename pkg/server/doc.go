// Package server is the `sankey serve` preview server.
//
// It renders one flow file on demand through a [pipeline.Runner]:
//
//	GET  /             HTML page showing /plot.svg, reloading over /ws
//	GET  /healthz      status and build info
//	GET  /plot.svg     also .png, .pdf and .dot
//	GET  /api/layout   layout export as JSON
//	POST /api/layout   layout of the flow document in the body
//	GET  /ws           reload notifications
//
// Query parameters width, height, viz, fill_mode, show_values, decimals
// and flow_direction override the configured options per request. With
// Config.Watch set, a change to the flow file is pushed to every open
// page.
//
// [pipeline.Runner]: github.com/matzehuels/sankey/pkg/pipeline.Runner
package server
