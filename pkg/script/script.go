// Package script fetches filter-graph descriptions referenced by URI,
// so sessions can load complex graphs from script files kept locally,
// behind HTTP, or in S3.
package script

import (
	"context"
	"fmt"
	"io"
	"net/url"
)

// Source is one backend able to fetch graph scripts.
type Source interface {
	// Fetch opens the script at the given URI for reading.
	Fetch(ctx context.Context, uri string) (io.ReadCloser, error)

	// Exists checks whether a script is present at the URI.
	Exists(ctx context.Context, uri string) (bool, error)
}

// ParseURI splits a script URI into scheme and path.
func ParseURI(uri string) (scheme string, path string, err error) {
	if uri == "" {
		return "", "", fmt.Errorf("URI cannot be empty")
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid URI: %w", err)
	}

	if parsed.Scheme == "" {
		return "", "", fmt.Errorf("URI must have a scheme (e.g., file://, s3://)")
	}

	// file:// URIs carry the whole path; remote schemes keep the host
	if parsed.Scheme == "file" {
		return parsed.Scheme, parsed.Path, nil
	}

	path = parsed.Host
	if parsed.Path != "" {
		path = path + parsed.Path
	}
	return parsed.Scheme, path, nil
}

// Resolver dispatches script URIs to the source registered for their
// scheme.
type Resolver struct {
	sources map[string]Source
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{sources: make(map[string]Source)}
}

// DefaultResolver returns a resolver handling file:// and http(s)://
// scripts. S3 support is attached separately because it needs AWS
// configuration.
func DefaultResolver() *Resolver {
	r := NewResolver()
	r.RegisterSource("file", NewLocalSource())
	httpSource := NewHTTPSource()
	r.RegisterSource("http", httpSource)
	r.RegisterSource("https", httpSource)
	return r
}

// RegisterSource attaches a source for a URI scheme.
func (r *Resolver) RegisterSource(scheme string, src Source) {
	r.sources[scheme] = src
}

func (r *Resolver) source(uri string) (Source, error) {
	scheme, _, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	src, ok := r.sources[scheme]
	if !ok {
		return nil, fmt.Errorf("no script source registered for scheme '%s'", scheme)
	}
	return src, nil
}

// Fetch opens the script behind a URI.
func (r *Resolver) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	src, err := r.source(uri)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx, uri)
}

// Exists checks whether a script is present behind a URI.
func (r *Resolver) Exists(ctx context.Context, uri string) (bool, error) {
	src, err := r.source(uri)
	if err != nil {
		return false, err
	}
	return src.Exists(ctx, uri)
}
