// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gesture

import (
	"sync"
	"time"
)

// DefaultWindow is the double-tap disambiguation window.
const DefaultWindow = 300 * time.Millisecond

// TapClassifier disambiguates single taps from double taps on a photo.
// The first tap starts a timer; a second tap inside the window cancels it
// and fires the like action, otherwise the timer expiry opens fullscreen.
//
// The like action is a fire, not a toggle: a double tap on an
// already-liked photo likes it again (a no-op against the idempotent
// liked-by set), it never unlikes.
type TapClassifier struct {
	window     time.Duration
	like       func()
	fullscreen func()

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
}

// New returns a classifier with the given window. A window of zero uses
// DefaultWindow. Callbacks run on the timer goroutine (fullscreen) or the
// Tap caller's goroutine (like).
func New(window time.Duration, like, fullscreen func()) *TapClassifier {
	if window <= 0 {
		window = DefaultWindow
	}
	return &TapClassifier{window: window, like: like, fullscreen: fullscreen}
}

// Tap records one tap. Two taps within the window fire the like action
// exactly once; a lone tap opens fullscreen after the window expires.
func (c *TapClassifier) Tap() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}

	if c.pending != nil && c.pending.Stop() {
		// Second tap arrived in time: this is a double tap.
		c.pending = nil
		c.mu.Unlock()
		c.like()
		return
	}

	var t *time.Timer
	t = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		// A tap can land at the same instant the timer fires; the tap
		// then replaces c.pending before this callback gets the lock.
		// Only the timer that still owns the slot may act.
		if c.stopped || c.pending != t {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		c.mu.Unlock()
		c.fullscreen()
	})
	c.pending = t
	c.mu.Unlock()
}

// Stop cancels any pending timer and drops further taps.
func (c *TapClassifier) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
