// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrMalformedBody is returned by ParseBody when a frame's payload does not
// match the SML body grammar. The parser does not diagnose further: a
// malformed body carries no salvageable content, and the stream
// re-synchronisation boundary is the next frame anyway.
var ErrMalformedBody = errors.New("sml: malformed message body")

// ErrInvalidArgument reports a nil byte source passed to NewStream, or a Tap
// retry whose slice differs from the one still pending.
var ErrInvalidArgument = errors.New("sml: invalid argument")

// These are provided as package-level aliases so callers driving a Stream
// manually (e.g. over a non-blocking byte source) can reference the semantic
// control-flow errors without importing iox directly.
var (
	// ErrWouldBlock means "no further progress without waiting". It is an
	// expected, non-failure control-flow signal from a non-blocking byte
	// source; any returned byte count still represents real progress.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will
	// follow". Callers should process the returned bytes and read again.
	ErrMore = iox.ErrMore
)
