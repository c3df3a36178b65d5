// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gesture implements the double-tap-to-like disambiguation timer
used by photo viewers.

A single tap on a photo and the first tap of a double tap are
indistinguishable when they happen, so the classifier holds the first tap
for a 300ms window:

  - second tap inside the window: cancel the timer, fire the like action
  - window expires with no second tap: open the fullscreen view

The like callback is a fire rather than a toggle - double-tapping an
already-liked photo never unlikes it. Pair it with the idempotent like
endpoint and repeated fires are harmless.

	c := gesture.New(0, likePhoto, openFullscreen) // 0 = default 300ms
	c.Tap()
	defer c.Stop()
*/
package gesture
