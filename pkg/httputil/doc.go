// Package httputil downloads flow files served over HTTP.
//
// [Fetch] issues a GET with a timeout and a size limit, and retries
// transient failures (network errors, 5xx and 429 responses) with
// exponential backoff through [Retry]. A 404 maps to a FILE_NOT_FOUND
// error so remote and local sources fail the same way.
//
//	data, err := httputil.Fetch(ctx, "https://example.com/energy.json")
//
// The decoded graph is cached by the pipeline under the hash of the
// downloaded bytes, so this package keeps no cache of its own.
package httputil
