package server

import (
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/buildinfo"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/httputil"
	flowio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render"
)

// maxBodySize bounds inline flow documents posted to /api/layout.
const maxBodySize = 10 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"build":   buildinfo.Get(),
		"clients": s.hub.Count(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.Method == http.MethodPost {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
			return
		}
		opts.Data = data
		opts.Format = bodyFormat(r)
	}
	s.serveArtifact(w, r, opts, pipeline.FormatJSON)
}

func (s *Server) handlePlot(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.requestOptions(r, format)
		if err != nil {
			writeError(w, err)
			return
		}
		s.serveArtifact(w, r, opts, format)
	}
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, opts pipeline.Options, format string) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Warn("render failed", "format", format, "error", err)
		writeError(w, err)
		return
	}
	for _, d := range result.Layout.Diagnostics {
		w.Header().Add("X-Sankey-Diagnostic", string(d.Code))
	}
	w.Header().Set("X-Sankey-Run", result.RunID)
	w.Header().Set("X-Sankey-Cache", strconv.FormatBool(result.CacheInfo.RenderHit))
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// requestOptions copies the base options and applies query overrides:
// source, width, height, viz, fill_mode, show_values, decimals,
// flow_direction.
func (s *Server) requestOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.cfg.Options
	opts.Formats = []string{format}
	opts.Logger = s.logger
	q := r.URL.Query()

	if v := q.Get("source"); v != "" {
		src, err := s.resolveSource(v)
		if err != nil {
			return opts, err
		}
		opts.Source = src
	}

	for _, p := range []struct {
		key string
		dst *float64
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		if v := q.Get(p.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", p.key, v)
			}
			*p.dst = f
		}
	}
	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}

	if opts.Style == (render.Style{}) {
		opts.Style = render.DefaultStyle()
	}
	if v := q.Get("fill_mode"); v != "" {
		mode, ok := render.ParseFillMode(v)
		if !ok {
			return opts, errors.New(errors.ErrCodeInvalidInput, "fill_mode: %q (must be color or gradient)", v)
		}
		opts.Style.StreamFillMode = mode
	}
	for _, p := range []struct {
		key string
		dst *bool
	}{{"show_values", &opts.Style.ShowValues}, {"flow_direction", &opts.Style.ShowFlowDirection}} {
		if v := q.Get(p.key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", p.key, v)
			}
			*p.dst = b
		}
	}
	if v := q.Get("decimals"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "decimals: %q is not an integer", v)
		}
		opts.Style.SetDecimals(n)
	}
	return opts, nil
}

// resolveSource maps a slash-separated path relative to the directory of
// the served flow file onto the local file system.
func (s *Server) resolveSource(rel string) (string, error) {
	base := s.cfg.Options.Source
	if base == "" || httputil.IsURL(base) {
		return "", errors.New(errors.ErrCodeUnsupported, "source override needs a local flow file")
	}
	if err := errors.ValidatePath(rel); err != nil {
		return "", err
	}
	if err := errors.ValidateFlowFilename(path.Base(rel)); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(rel)), nil
}

// bodyFormat picks the flow decoder from the Content-Type header.
func bodyFormat(r *http.Request) flowio.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(mt, "yaml"):
		return flowio.FormatYAML
	case strings.Contains(mt, "toml"):
		return flowio.FormatTOML
	default:
		return flowio.FormatJSON
	}
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{margin:0;display:flex;justify-content:center;align-items:center;min-height:100vh;background:#fafafa}</style>
</head>
<body>
<img id="plot" src="{{.Plot}}" alt="{{.Title}}">
<script>
const plot = document.getElementById("plot");
const base = "{{.Plot}}";
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "reload") {
    plot.src = base + (base.includes("?") ? "&" : "?") + "t=" + Date.now();
  }
};
</script>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	title := s.cfg.Options.Title
	if title == "" {
		title = "sankey"
	}
	plot := "/plot.svg"
	if q := r.URL.Query().Encode(); q != "" {
		plot += "?" + q
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	indexTemplate.Execute(w, struct {
		Title string
		Plot  string
	}{title, plot})
}
