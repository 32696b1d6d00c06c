package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/httputil"
	flowio "github.com/matzehuels/sankey/pkg/io"
)

// Load decodes the flow source named by opts without caching.
func Load(ctx context.Context, opts Options) (*flow.Graph, error) {
	if len(opts.Data) > 0 {
		return flowio.Read(bytes.NewReader(opts.Data), opts.Format)
	}
	return flowio.Import(ctx, opts.Source)
}

// sourceBytes returns the raw bytes of the flow source, used to key the
// load cache. A URL source is downloaded once and kept in opts.Data so the
// decode step does not fetch it again.
func sourceBytes(ctx context.Context, opts *Options) ([]byte, error) {
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	if httputil.IsURL(opts.Source) {
		f, err := flowio.DetectFormat(opts.Source)
		if err != nil {
			return nil, err
		}
		if f == flowio.FormatSQLite {
			return nil, errors.New(errors.ErrCodeUnsupported, "remote sqlite databases are not supported: %s", opts.Source)
		}
		data, err := httputil.Fetch(ctx, opts.Source)
		if err != nil {
			return nil, err
		}
		opts.Data, opts.Format = data, f
		return data, nil
	}
	data, err := os.ReadFile(opts.Source)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "flow file %s", opts.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Source, err)
	}
	return data, nil
}

// marshalGraph encodes a graph as a JSON flow file, the canonical form
// used for hashing and caching.
func marshalGraph(g *flow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := flowio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
