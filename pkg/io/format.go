package io

import (
	"image/color"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/httputil"
	"github.com/matzehuels/sankey/pkg/render"
)

// Format is a flow file encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

var formatByExt = map[string]Format{
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".toml":    FormatTOML,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// DetectFormat returns the format implied by a file extension. For an
// http(s) URL the extension of the URL path is used.
func DetectFormat(path string) (Format, error) {
	if httputil.IsURL(path) {
		u, err := url.Parse(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid flow URL %q", path)
		}
		path = u.Path
	}
	if err := errors.ValidateFlowFilename(filepath.Base(path)); err != nil {
		return "", err
	}
	return formatByExt[strings.ToLower(filepath.Ext(path))], nil
}

// document is the shared shape of all text formats.
type document struct {
	Title string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Nodes []nodeEntry `json:"nodes" yaml:"nodes" toml:"nodes"`
	Flows []flowEntry `json:"flows" yaml:"flows" toml:"flows"`
}

type nodeEntry struct {
	ID    int64  `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Level int    `json:"level" yaml:"level" toml:"level"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

type flowEntry struct {
	From   int64   `json:"from" yaml:"from" toml:"from"`
	To     int64   `json:"to" yaml:"to" toml:"to"`
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// toGraph builds a graph from a decoded document. Nodes without a color
// get [render.DefaultItemColor].
func (d document) toGraph() (*flow.Graph, error) {
	var meta flow.Metadata
	if d.Title != "" {
		meta = flow.Metadata{"title": d.Title}
	}
	g := flow.New(meta)

	for _, n := range d.Nodes {
		if n.ID <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q: id must be positive, got %d", n.Name, n.ID)
		}
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", n.ID)
		}
		c := render.DefaultItemColor
		if n.Color != "" {
			var err error
			if c, err = render.ParseColor(n.Color); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "node %d", n.ID)
			}
		}
		if _, err := g.AddNode(flow.Node{ID: flow.NodeID(n.ID), Name: n.Name, Level: n.Level, Color: c}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", n.ID)
		}
	}
	for _, f := range d.Flows {
		if err := g.Connect(flow.NodeID(f.From), flow.NodeID(f.To), f.Weight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "flow %d->%d", f.From, f.To)
		}
	}
	return g, nil
}

func fromGraph(g *flow.Graph) document {
	d := document{
		Nodes: make([]nodeEntry, 0, g.NodeCount()),
		Flows: make([]flowEntry, 0, g.EdgeCount()),
	}
	if title, ok := g.Meta()["title"].(string); ok {
		d.Title = title
	}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, nodeEntry{
			ID:    int64(n.ID),
			Name:  n.Name,
			Level: n.Level,
			Color: colorString(n.Color),
		})
	}
	for _, e := range g.Edges() {
		d.Flows = append(d.Flows, flowEntry{From: int64(e.From), To: int64(e.To), Weight: e.Weight})
	}
	return d
}

func colorString(c color.RGBA) string {
	if c == (color.RGBA{}) {
		return ""
	}
	return render.Hex(c)
}

func formatError(f Format, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
}

func unsupported(f Format) error {
	return errors.New(errors.ErrCodeUnsupported, "format %q cannot be read from a stream", f)
}
