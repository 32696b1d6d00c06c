package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// A miss is reported as (nil, false, nil); errors are reserved for
// backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache disables caching: every lookup misses and writes are dropped.
// The CLI uses it for --no-cache and when the cache directory cannot be
// created.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

// Default lifetimes for cached pipeline stages. Layouts and artifacts are
// pure functions of their keys, so they only expire to bound disk usage.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// GraphKey identifies a decoded flow file by the hash of its bytes.
	GraphKey(sourceHash string) string
	// LayoutKey identifies a layout pass over a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs of a layout pass besides the graph.
type LayoutKeyOpts struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	AutoItemWidth bool    `json:"auto_item_width"`
	ItemWidth     float64 `json:"item_width"`
	AutoItemGap   bool    `json:"auto_item_gap"`
	ItemGap       float64 `json:"item_gap"`
}

// ArtifactKeyOpts are the inputs of a render besides the layout.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	StyleHash string  `json:"style_hash"`
	Title     string  `json:"title,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "<stage>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(sourceHash string) string {
	return hashKey("graph", sourceHash)
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
