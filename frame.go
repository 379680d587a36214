// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import "bytes"

// startSequence delimits the beginning of an SML telegram.
var startSequence = []byte{0x1b, 0x1b, 0x1b, 0x1b, 0x01, 0x01, 0x01, 0x01}

// endPrefix delimits the end of an SML telegram. It is followed by exactly
// 3 trailer bytes (1 padding byte + 2 CRC bytes) that this package strips but
// does not verify.
var endPrefix = []byte{0x1b, 0x1b, 0x1b, 0x1b, 0x1a}

const endTrailerLen = 3

// BuilderState is the state of a FrameBuilder.
type BuilderState uint8

const (
	// StateEmpty means the builder is not inside a message.
	StateEmpty BuilderState = iota
	// StateIncompleteStart means a tail-anchored prefix of startSequence has
	// been matched; call StartMatched to learn how many bytes.
	StateIncompleteStart
	// StateRecording means the start sequence fully matched and payload
	// bytes are being accumulated.
	StateRecording
	// StateComplete means a full frame has been identified. Data and Rest
	// hold the payload and any bytes that followed the end sequence. The
	// caller must call Reset (feeding Rest back in, if non-empty) before
	// further input is consumed.
	StateComplete
)

// FrameBuilder is a stateful byte accumulator that converts an arbitrarily
// chunked byte stream into discrete SML payload frames.
//
// FrameBuilder never fails: bytes that are not part of a recognised frame are
// silently dropped, so the decoder can resynchronise after noise or a partial
// telegram on a serial line. It is not safe for concurrent use; callers drive
// it from a single goroutine (see Stream for a concurrent-safe adapter).
type FrameBuilder struct {
	state        BuilderState
	startMatched int // valid in StateIncompleteStart: bytes of startSequence matched so far
	buf          []byte
	data         []byte
	rest         []byte
}

// NewFrameBuilder returns a FrameBuilder in StateEmpty.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{}
}

// State returns the builder's current state.
func (b *FrameBuilder) State() BuilderState { return b.state }

// StartMatched returns the number of startSequence bytes matched so far.
// It is only meaningful in StateIncompleteStart.
func (b *FrameBuilder) StartMatched() int { return b.startMatched }

// Data returns the completed frame's payload, excluding both delimiters and
// the trailing CRC/padding. It is only meaningful in StateComplete.
func (b *FrameBuilder) Data() []byte { return b.data }

// Rest returns the bytes that followed the end sequence in the chunk that
// completed the frame. It is only meaningful in StateComplete.
func (b *FrameBuilder) Rest() []byte { return b.rest }

// Reset returns the builder to StateEmpty. Callers must call Reset after
// observing StateComplete before recording further input; Rest, if non-empty,
// should be fed back via Record after Reset.
func (b *FrameBuilder) Reset() {
	b.state = StateEmpty
	b.startMatched = 0
	b.buf = nil
	b.data = nil
	b.rest = nil
}

// Record consumes chunk, advancing the builder's state. It does not recurse
// into Rest: once State() reports StateComplete, the caller extracts Data and
// Rest, calls Reset, and may Record(Rest) itself.
//
// An empty chunk is a no-op in every state. Record panics if called while
// State() reports StateComplete; the caller must Reset first.
func (b *FrameBuilder) Record(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	switch b.state {
	case StateEmpty, StateIncompleteStart:
		b.recordStart(chunk)
	case StateRecording:
		b.recordBody(chunk)
	case StateComplete:
		panic("sml: FrameBuilder.Record called in StateComplete; call Reset first")
	}
}

// recordStart scans the already-matched startSequence prefix (if any)
// followed by chunk for a full occurrence of startSequence anywhere, or else
// for the longest prefix of startSequence occurring at the tail.
func (b *FrameBuilder) recordStart(chunk []byte) {
	if b.state == StateIncompleteStart {
		// The matched bytes are rescanned together with chunk, so a partial
		// match that chunk breaks is discarded, while a start sequence that
		// overlaps the matched bytes is still found.
		chunk = append(startSequence[:b.startMatched:b.startMatched], chunk...)
	}
	remainder := startSequence

	// A full match of the start sequence can occur anywhere in chunk, not
	// just at the tail: whatever follows it becomes the first payload bytes
	// of the new Recording buffer.
	if idx := bytes.Index(chunk, remainder); idx >= 0 {
		b.state = StateRecording
		b.startMatched = 0
		b.buf = nil
		if tail := chunk[idx+len(remainder):]; len(tail) > 0 {
			b.recordBody(tail)
		}
		return
	}

	// No full match: only a tail-anchored partial prefix of remainder keeps
	// the builder waiting for more bytes. Any byte that "breaks" a partial
	// match discards the builder back to StateEmpty.
	maxLen := len(remainder)
	if len(chunk) < maxLen {
		maxLen = len(chunk)
	}
	for l := maxLen; l >= 1; l-- {
		if bytes.Equal(chunk[len(chunk)-l:], remainder[:l]) {
			b.state = StateIncompleteStart
			b.startMatched = l
			return
		}
	}
	b.state = StateEmpty
	b.startMatched = 0
}

// recordBody appends chunk to the Recording buffer and checks for a complete
// end sequence followed by its trailer.
func (b *FrameBuilder) recordBody(chunk []byte) {
	b.buf = append(b.buf, chunk...)
	idx := bytes.Index(b.buf, endPrefix)
	if idx < 0 {
		return
	}
	if len(b.buf) < idx+len(endPrefix)+endTrailerLen {
		// End prefix matched, but the trailer hasn't fully arrived yet.
		return
	}
	data := append([]byte(nil), b.buf[:idx]...)
	rest := append([]byte(nil), b.buf[idx+len(endPrefix)+endTrailerLen:]...)
	b.state = StateComplete
	b.data = data
	b.rest = rest
	b.buf = nil
}
