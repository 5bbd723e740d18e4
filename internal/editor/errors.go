// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"errors"
	"fmt"
)

// ErrSaveInFlight is returned when a save is requested while another save
// for the same session is still pending. Concurrent writes to the same
// course document risk lost updates, so a second save is rejected rather
// than interleaved.
var ErrSaveInFlight = errors.New("a save is already in progress")

// FetchError reports a failed catalogue load (themes or presets). The
// session cannot reach a usable ready state until the load succeeds.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError reports locally rejected user input, such as an empty or
// duplicate preset name. No remote call is made when validation fails.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// SaveError is the single aggregate failure the save orchestrator surfaces,
// whichever phase failed. The cause is retained for logging but callers are
// not told which phase broke; the session stays editable for a retry.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string { return "save failed" }

func (e *SaveError) Unwrap() error { return e.Err }

// DestroyError reports a failed preset deletion. The failed item's state is
// left unchanged; removal only happens after a confirmed success.
type DestroyError struct {
	Resource string
	Err      error
}

func (e *DestroyError) Error() string {
	return fmt.Sprintf("destroy %s: %v", e.Resource, e.Err)
}

func (e *DestroyError) Unwrap() error { return e.Err }
