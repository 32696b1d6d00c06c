package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds node labels read from flow files.
const maxNameLength = 256

// ValidateNodeName validates a node label read from a flow file.
// Names may repeat and may be empty, but must be printable and of
// reasonable length since they end up inside SVG text elements.
func ValidateNodeName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "node name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node name contains invalid control characters")
		}
	}
	return nil
}

// MaxCanvasSize bounds each side of a canvas or raster image, in pixels.
const MaxCanvasSize = 20000

// ValidateDimensions checks that a canvas size is usable. Non-positive
// sizes are not an error for the layout engine (it returns an empty
// layout), but the CLI and server reject them up front, along with sizes
// above MaxCanvasSize.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidInput, "canvas size must be positive, got %gx%g", width, height)
		}
		if v > MaxCanvasSize {
			return New(ErrCodeInvalidInput, "canvas size %gx%g exceeds %d per side", width, height, MaxCanvasSize)
		}
	}
	return nil
}

// ValidatePath validates a flow file path passed over the preview server
// API. It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// flowExtensions lists the file extensions the flow readers understand.
var flowExtensions = map[string]bool{
	".json":    true,
	".yaml":    true,
	".yml":     true,
	".toml":    true,
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// ValidateFlowFilename checks that a file name carries a supported flow
// file extension.
func ValidateFlowFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "flow file name cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !flowExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported flow file extension %q", ext)
	}
	return nil
}
