package sink

import (
	json "github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title string
	style *render.Style
}

// WithJSONTitle records a diagram title in the output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONStyle records the style the commands were drawn with, so the
// document can be re-rendered identically.
func WithJSONStyle(s render.Style) JSONOption { return func(r *jsonRenderer) { r.style = &s } }

type jsonOutput struct {
	Title       string              `json:"title,omitempty"`
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	MinLevel    int                 `json:"min_level"`
	MaxLevel    int                 `json:"max_level"`
	ScaleY      float64             `json:"scale_y"`
	FontSize    float64             `json:"font_size"`
	Levels      []layout.Level      `json:"levels"`
	Nodes       []jsonNode          `json:"nodes"`
	Ribbons     []jsonRibbon        `json:"ribbons"`
	Style       *jsonStyle          `json:"style,omitempty"`
	Diagnostics []layout.Diagnostic `json:"diagnostics,omitempty"`
}

type jsonNode struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Level  int     `json:"level"`
	Color  string  `json:"color"`
	Value  float64 `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	TextX  float64 `json:"text_x"`
	TextY  float64 `json:"text_y"`
	Align  string  `json:"align"`
}

type jsonRibbon struct {
	From     int64      `json:"from"`
	To       int64      `json:"to"`
	Weight   float64    `json:"weight"`
	Path     string     `json:"path"`
	Fill     string     `json:"fill"`
	Gradient *[2]string `json:"gradient,omitempty"`
}

type jsonStyle struct {
	StreamFillMode    render.FillMode `json:"stream_fill_mode"`
	StreamColor       string          `json:"stream_color"`
	ConnectionOpacity float64         `json:"connection_opacity"`
	ShowFlowDirection bool            `json:"show_flow_direction"`
	UseItemColor      bool            `json:"use_item_color"`
	ItemColor         string          `json:"item_color"`
	TextColor         string          `json:"text_color"`
	ShowValues        bool            `json:"show_values"`
	Decimals          int             `json:"decimals"`
}

// RenderJSON exports the layout and its drawing commands as a
// pretty-printed JSON document: node boxes with their label anchors,
// ribbons as SVG path data, and any layout diagnostics. The document
// carries everything a browser or another tool needs to redraw the
// diagram without the layout engine.
//
// RenderJSON does not modify its inputs and is safe to call concurrently.
func RenderJSON(l layout.Layout, cmds []render.Command, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:       r.title,
		Width:       l.Width,
		Height:      l.Height,
		MinLevel:    l.MinLevel,
		MaxLevel:    l.MaxLevel,
		ScaleY:      l.ScaleY,
		FontSize:    l.FontSize,
		Levels:      l.Levels,
		Nodes:       []jsonNode{},
		Ribbons:     []jsonRibbon{},
		Diagnostics: l.Diagnostics,
	}
	if r.style != nil {
		out.Style = exportStyle(*r.style)
	}

	labels := make(map[int64]string)
	for _, c := range cmds {
		switch c := c.(type) {
		case render.FillText:
			labels[int64(c.Node)] = c.Text
		case render.FillPath:
			jr := jsonRibbon{
				From:   int64(c.From),
				To:     int64(c.To),
				Weight: c.Weight,
				Path:   PathData(c.Path),
				Fill:   render.Hex(c.Paint.Color),
			}
			if g := c.Paint.Gradient; g != nil {
				jr.Gradient = &[2]string{render.Hex(g.Start), render.Hex(g.End)}
			}
			out.Ribbons = append(out.Ribbons, jr)
		}
	}

	for _, n := range l.OrderedNodes() {
		label, ok := labels[int64(n.ID)]
		if !ok {
			label = n.Name
		}
		out.Nodes = append(out.Nodes, jsonNode{
			ID:     int64(n.ID),
			Name:   n.Name,
			Label:  label,
			Level:  n.Level,
			Color:  render.Hex(n.Color),
			Value:  n.Value,
			X:      n.Bounds.X,
			Y:      n.Bounds.Y,
			Width:  n.Bounds.W,
			Height: n.Bounds.H,
			TextX:  n.Label.X,
			TextY:  n.Label.Y,
			Align:  n.Align.String(),
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func exportStyle(s render.Style) *jsonStyle {
	return &jsonStyle{
		StreamFillMode:    s.StreamFillMode,
		StreamColor:       render.Hex(s.StreamColor),
		ConnectionOpacity: s.ConnectionOpacity,
		ShowFlowDirection: s.ShowFlowDirection,
		UseItemColor:      s.UseItemColor,
		ItemColor:         render.Hex(s.ItemColor),
		TextColor:         render.Hex(s.TextColor),
		ShowValues:        s.ShowValues,
		Decimals:          s.Decimals,
	}
}
