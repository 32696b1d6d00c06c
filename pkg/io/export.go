package io

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sankey/pkg/flow"
)

// WriteJSON encodes a graph as a JSON flow file and writes it to w.
// Nodes and flows keep their insertion order, so the output can be
// re-imported with [ReadJSON] to reproduce the same layout.
func WriteJSON(g *flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes a graph as a YAML flow file.
func WriteYAML(g *flow.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteTOML encodes a graph as a TOML flow file.
func WriteTOML(g *flow.Graph, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes a graph in the given text format.
func Write(g *flow.Graph, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	case FormatTOML:
		return WriteTOML(g, w)
	default:
		return unsupported(f)
	}
}

// Export writes a graph to path, choosing the encoder by extension.
// SQLite targets are replaced with a fresh database.
func Export(ctx context.Context, g *flow.Graph, path string) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if f == FormatSQLite {
		return WriteSQLite(ctx, g, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
