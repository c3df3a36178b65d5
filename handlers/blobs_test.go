// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kinshare/server/blobstore"
)

func newBlobTest(t *testing.T) (*BlobHandler, *blobstore.Disk) {
	t.Helper()

	disk, err := blobstore.NewDisk(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}
	return NewBlobHandler(disk), disk
}

func blobRequest(route, path string) *http.Request {
	req := httptest.NewRequest("GET", "/"+route+"/"+path, nil)
	req.SetPathValue("path", path)
	return req
}

func TestServeBlob(t *testing.T) {
	handler, disk := newBlobTest(t)

	data := []byte("jpeg-bytes-here")
	if _, err := disk.Upload("albums/a1/img1.jpg", data); err != nil {
		t.Fatalf("Failed to upload blob: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeBlob(w, blobRequest("blobs", "albums/a1/img1.jpg"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), data) {
		t.Error("Body does not match uploaded bytes")
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected Content-Type image/jpeg, got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc == "" {
		t.Error("Expected Cache-Control header on immutable blob")
	}
}

func TestServeBlobNotFound(t *testing.T) {
	handler, _ := newBlobTest(t)

	w := httptest.NewRecorder()
	handler.ServeBlob(w, blobRequest("blobs", "albums/a1/missing.jpg"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestServeBlobRejectsTraversal(t *testing.T) {
	handler, _ := newBlobTest(t)

	w := httptest.NewRecorder()
	handler.ServeBlob(w, blobRequest("blobs", "../etc/passwd"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestServeThumbnail(t *testing.T) {
	handler, disk := newBlobTest(t)

	// A 600x400 source must come back as a bounded JPEG
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	if _, err := disk.Upload("albums/a1/img1.png", buf.Bytes()); err != nil {
		t.Fatalf("Failed to upload image: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeThumbnail(w, blobRequest("thumbs", "albums/a1/img1.png"))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected Content-Type image/jpeg, got %q", ct)
	}

	thumb, _, err := image.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode thumbnail: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() > blobstore.ThumbnailMaxDim || b.Dy() > blobstore.ThumbnailMaxDim {
		t.Errorf("Thumbnail %dx%d exceeds %d px bound", b.Dx(), b.Dy(), blobstore.ThumbnailMaxDim)
	}
}

func TestServeThumbnailNotFound(t *testing.T) {
	handler, _ := newBlobTest(t)

	w := httptest.NewRecorder()
	handler.ServeThumbnail(w, blobRequest("thumbs", "albums/a1/missing.png"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
