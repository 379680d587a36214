// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"bytes"
	"io"
	"runtime"
)

// Tap archives the raw bytes a Stream reads from its source, verbatim, to a
// destination writer — useful for replaying a meter's telegrams offline or
// auditing a decode against the exact bytes that produced it.
//
// Tap does not reframe or reinterpret what it is given; it is a thin,
// non-blocking-aware io.Writer adapter.
//
// Retry rule: on ErrWouldBlock or ErrMore, the caller must retry Write with
// the exact same slice p to resume from where the previous call left off. Do
// not construct a new Tap mid-write, since the partial-progress offset is
// kept internally.
type Tap struct {
	w       io.Writer
	pending []byte
	off     int
}

// NewTap wraps dst for use as a raw-byte archive.
func NewTap(dst io.Writer) *Tap {
	return &Tap{w: dst}
}

// Write implements io.Writer, honoring ErrWouldBlock/ErrMore as partial
// progress rather than failure: dst may report either while draining a
// slower sink (e.g. disk, a remote log) without Tap losing bytes already
// accepted.
func (t *Tap) Write(p []byte) (int, error) {
	if t.pending != nil {
		if !bytes.Equal(t.pending, p) {
			return 0, ErrInvalidArgument
		}
	} else {
		t.pending = p
		t.off = 0
	}

	for t.off < len(p) {
		n, err := t.w.Write(p[t.off:])
		t.off += n
		if err != nil {
			if err == ErrWouldBlock || err == ErrMore {
				return n, err
			}
			t.pending = nil
			t.off = 0
			return n, err
		}
	}

	written := t.off
	t.pending = nil
	t.off = 0
	return written, nil
}

// tapWriteAll drains p into t, cooperatively yielding across ErrWouldBlock
// and retrying across ErrMore. It is the retry loop Stream runs so a Tap
// backed by a non-blocking sink never has to be driven by the caller by
// hand.
func tapWriteAll(t *Tap, p []byte) (int, error) {
	for {
		n, err := t.Write(p)
		if err == nil {
			return n, nil
		}
		if err == ErrWouldBlock {
			runtime.Gosched()
			continue
		}
		if err == ErrMore {
			continue
		}
		return n, err
	}
}

// WithTap archives every raw chunk Stream reads from its source to dst via a
// Tap, before the chunk is handed to the FrameBuilder. A write error from the
// tap other than ErrWouldBlock/ErrMore is reported on Stream's error channel
// and ends the stream.
func WithTap(dst io.Writer) Option {
	return func(o *Options) { o.Tap = NewTap(dst) }
}
