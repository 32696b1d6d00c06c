// Package cli implements the sankey command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF, JSON or DOT output, optionally on every file change
//   - layout: Export node and ribbon geometry as JSON
//   - validate: Report cycles, level skips and unbalanced nodes
//   - inspect: Browse levels and nodes in the terminal
//   - convert: Rewrite a flow file as JSON, YAML, TOML or SQLite
//   - serve: Live preview in the browser
//   - config, cache: Manage the config file and the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is created once and handed to the pipeline, the server and the
// observability hooks.
//
// # Example
//
//	import "github.com/matzehuels/sankey/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g.
// "Converted 12 nodes, 15 flows (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
