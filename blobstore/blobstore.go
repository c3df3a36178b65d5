// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blobstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid blob path")

// Ref identifies a stored blob by its caller-chosen path.
type Ref struct {
	Path string
}

// Store is the blob storage contract the upload workflow writes through.
// Paths are caller-chosen (album id + generated image id) and DownloadURL
// must return a durable reference for a previously uploaded blob.
type Store interface {
	Upload(path string, data []byte) (Ref, error)
	DownloadURL(ref Ref) string
}

// Disk stores blobs as files under a root directory and serves them back
// under baseURL/blobs/.
type Disk struct {
	root    string
	baseURL string
	thumbs  thumbCache
}

// NewDisk creates the root directory if needed and returns a Disk store.
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	return &Disk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		thumbs:  thumbCache{entries: make(map[string][]byte)},
	}, nil
}

// Upload writes data to the given path under the store root.
func (d *Disk) Upload(path string, data []byte) (Ref, error) {
	full, err := d.resolve(path)
	if err != nil {
		return Ref{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Ref{}, fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return Ref{}, fmt.Errorf("failed to write blob: %w", err)
	}
	return Ref{Path: path}, nil
}

// DownloadURL returns the durable public URL for a stored blob.
func (d *Disk) DownloadURL(ref Ref) string {
	return d.baseURL + "/blobs/" + ref.Path
}

// Open returns a reader over a stored blob.
func (d *Disk) Open(path string) (io.ReadCloser, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// resolve joins path against the root and rejects anything that would
// escape it.
func (d *Disk) resolve(path string) (string, error) {
	if path == "" || strings.Contains(path, "\\") || filepath.IsAbs(path) {
		return "", ErrInvalidPath
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return filepath.Join(d.root, clean), nil
}
