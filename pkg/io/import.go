package io

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/httputil"
)

// ReadJSON decodes a JSON flow file from r into a graph.
//
// The input must be a JSON object with "nodes" and "flows" arrays:
//
//	{
//	  "nodes": [{"id": 1, "name": "a", "level": 0}, {"id": 2, "name": "b", "level": 1}],
//	  "flows": [{"from": 1, "to": 2, "weight": 10}]
//	}
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed, and an
// INVALID_INPUT error if a node ID is duplicated or non-positive, a flow
// references an unknown node, or a weight is negative. Unknown fields are
// rejected so typos do not silently drop data.
//
// The returned graph is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*flow.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, formatError(FormatJSON, err)
	}
	return doc.toGraph()
}

// ReadYAML decodes a YAML flow file with the same fields as [ReadJSON].
func ReadYAML(r io.Reader) (*flow.Graph, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, formatError(FormatYAML, err)
	}
	return doc.toGraph()
}

// ReadTOML decodes a TOML flow file. Nodes and flows are arrays of tables:
//
//	title = "Energy"
//
//	[[nodes]]
//	id = 1
//	name = "Coal"
//
//	[[flows]]
//	from = 1
//	to = 2
//	weight = 30.0
func ReadTOML(r io.Reader) (*flow.Graph, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, formatError(FormatTOML, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown key %q", undecoded[0].String())
	}
	return doc.toGraph()
}

// Read decodes a flow file of the given text format from r.
func Read(r io.Reader, f Format) (*flow.Graph, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, unsupported(f)
	}
}

// Import reads the flow file at path, choosing the decoder by extension.
// SQLite databases are opened read-only; see [ReadSQLite].
//
// An http(s) URL is downloaded with [httputil.Fetch]; remote SQLite
// databases are not supported.
//
// Import returns a FILE_NOT_FOUND error if path does not exist and wraps
// every other failure with the path for context.
func Import(ctx context.Context, path string) (*flow.Graph, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if httputil.IsURL(path) {
		if f == FormatSQLite {
			return nil, errors.New(errors.ErrCodeUnsupported, "remote sqlite databases are not supported: %s", path)
		}
		data, err := httputil.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		g, err := Read(bytes.NewReader(data), f)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
		}
		return g, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "flow file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}
	if f == FormatSQLite {
		return ReadSQLite(ctx, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return g, nil
}
