// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/blobstore"
)

type uploadImage struct {
	filename string
	data     []byte
}

// createAlbumPhotos uploads every image concurrently: fire all branches,
// wait for all of them, then report. Each branch uploads its blob,
// records the photo, and - only for selection index 0 - back-fills the
// album cover. The index is captured from the original selection order,
// so the cover rule holds no matter which upload finishes first.
//
// Best-effort semantics: a failed branch does not undo the album record
// or any photo committed by another branch.
func createAlbumPhotos(conn *sql.DB, blobs blobstore.Store, albumID string, images []uploadImage) error {
	var wg sync.WaitGroup
	errs := make([]error, len(images))

	for i, img := range images {
		wg.Add(1)
		go func(idx int, img uploadImage) {
			defer wg.Done()
			errs[idx] = uploadOne(conn, blobs, albumID, idx, img)
		}(i, img)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func uploadOne(conn *sql.DB, blobs blobstore.Store, albumID string, idx int, img uploadImage) error {
	imageID := uuid.NewString()
	path := "albums/" + albumID + "/" + imageID + imageExt(img.filename)

	ref, err := blobs.Upload(path, img.data)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	url := blobs.DownloadURL(ref)

	photoID, err := auth.GenerateID(16)
	if err != nil {
		return fmt.Errorf("failed to generate photo ID: %w", err)
	}

	_, err = conn.Exec(`
		INSERT INTO photo (id, album_id, url, comment_count, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, photoID, albumID, url, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}

	if idx == 0 {
		// Merge-write: touches the cover column only, never the other
		// album fields.
		_, err = conn.Exec(`UPDATE album SET cover_url = $1 WHERE id = $2`, url, albumID)
		if err != nil {
			return fmt.Errorf("failed to set album cover: %w", err)
		}
	}

	return nil
}

// imageExt keeps known image extensions and defaults the rest to .jpg,
// matching the paths the blob store is asked to thumbnail later.
func imageExt(filename string) string {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return ext
	default:
		return ".jpg"
	}
}
