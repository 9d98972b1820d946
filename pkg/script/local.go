package script

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LocalSource fetches scripts from the local filesystem via file://
// URIs.
type LocalSource struct{}

// NewLocalSource creates a local filesystem source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// Fetch opens a local script file.
func (ls *LocalSource) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme, path, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	if scheme != "file" {
		return nil, fmt.Errorf("local source only supports file:// URIs, got %s://", scheme)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	return file, nil
}

// Exists checks whether a local script file is present.
func (ls *LocalSource) Exists(ctx context.Context, uri string) (bool, error) {
	scheme, path, err := ParseURI(uri)
	if err != nil {
		return false, err
	}

	if scheme != "file" {
		return false, fmt.Errorf("local source only supports file:// URIs, got %s://", scheme)
	}

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat script: %w", err)
	}
	return true, nil
}
