// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blobstore provides blob storage for uploaded album images.

# Contract

Store is the interface the album-creation workflow writes through:

	ref, err := store.Upload("albums/{albumID}/{imageID}.jpg", data)
	url := store.DownloadURL(ref)

Paths are caller-chosen and scoped by album id plus a generated image id,
so a blob's reference is durable for the lifetime of the album.

# Disk Store

Disk implements Store over a local directory and additionally serves reads:

	store, err := blobstore.NewDisk(cfg.DataDir, cfg.BaseURL)
	r, err := store.Open(path)

All paths are cleaned and rejected with ErrInvalidPath if they would escape
the root (absolute paths, "..", backslashes).

# Thumbnails

Thumbnail returns a JPEG preview bounded to 300px on the long edge,
generated with nfnt/resize and cached in memory under an RWMutex. The feed
and directory endpoints link thumbnails instead of full-size images.
*/
package blobstore
