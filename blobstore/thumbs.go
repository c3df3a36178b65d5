// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blobstore

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"sync"

	"github.com/nfnt/resize"
)

// ThumbnailMaxDim bounds the longer edge of generated thumbnails.
const ThumbnailMaxDim = 300

type thumbCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// Thumbnail returns a JPEG thumbnail of the stored image, generating and
// caching it on first use. Thumbnails live only in memory; a restart
// regenerates them on demand.
func (d *Disk) Thumbnail(path string) ([]byte, error) {
	d.thumbs.mu.RLock()
	if cached, ok := d.thumbs.entries[path]; ok {
		d.thumbs.mu.RUnlock()
		return cached, nil
	}
	d.thumbs.mu.RUnlock()

	r, err := d.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := makeThumbnail(r)
	if err != nil {
		return nil, err
	}

	d.thumbs.mu.Lock()
	d.thumbs.entries[path] = data
	d.thumbs.mu.Unlock()

	return data, nil
}

func makeThumbnail(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := resize.Thumbnail(ThumbnailMaxDim, ThumbnailMaxDim, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
