// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"io"
)

// Stream drives a FrameBuilder and ParseBody over an io.Reader, publishing
// decoded Messages values in stream order on a bounded channel.
//
// Stream runs its read loop on its own goroutine, started by NewStream.
// Callers consume Messages() until it is closed; Errs() reports the single
// terminal error (source EOF reports no error at all) that ended the loop.
// A malformed frame body is logged and skipped; it does not end the stream.
type Stream struct {
	messages chan Messages
	errs     chan error
	done     chan struct{}
}

// NewStream starts a Stream reading from src. ErrInvalidArgument is returned
// immediately if src is nil.
func NewStream(src io.Reader, opts ...Option) (*Stream, error) {
	if src == nil {
		return nil, ErrInvalidArgument
	}
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.QueueCapacity <= 0 {
		o.QueueCapacity = defaultQueueCapacity
	}

	s := &Stream{
		messages: make(chan Messages, o.QueueCapacity),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	go s.run(src, o)
	return s, nil
}

// Messages returns the channel Stream publishes decoded frames on. It is
// closed when the read loop ends, after any terminal error has already been
// sent on Errs().
func (s *Stream) Messages() <-chan Messages { return s.messages }

// Errs returns the channel Stream reports its terminal error on. It receives
// at most one value and is then closed; a clean end of input (io.EOF)
// produces no value at all.
func (s *Stream) Errs() <-chan error { return s.errs }

// Close signals the read loop to stop. It does not close the underlying
// source; the caller owns that. Close does not wait for the loop to exit: the
// loop stops at its next check of the signal, which for a loop blocked in a
// Read of the source is only after that Read returns.
func (s *Stream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Stream) run(src io.Reader, o Options) {
	defer close(s.messages)
	defer close(s.errs)

	log := o.Logger

	r := newReader(src, o.ChunkSize, o.RetryDelay)
	b := NewFrameBuilder()

	fail := func(err error) {
		if err != nil && err != io.EOF {
			select {
			case s.errs <- err:
			case <-s.done:
			}
		}
	}

	// feed advances the builder with chunk, draining every StateComplete
	// frame it produces (including ones chained through Rest) before
	// returning to the outer read loop.
	feed := func(chunk []byte) bool {
		for len(chunk) > 0 {
			b.Record(chunk)
			if b.State() != StateComplete {
				return true
			}
			data, rest := b.Data(), b.Rest()
			b.Reset()

			msgs, err := ParseBody(data)
			if err != nil {
				if log != nil {
					log.Warn("sml: dropping malformed frame", "error", err, "bytes", len(data))
				}
			} else {
				select {
				case s.messages <- msgs:
				case <-s.done:
					return false
				}
			}
			chunk = rest
		}
		return true
	}

	for {
		select {
		case <-s.done:
			return
		default:
		}

		chunk, err := r.readOnce()
		if len(chunk) > 0 {
			if o.Tap != nil {
				if _, terr := tapWriteAll(o.Tap, chunk); terr != nil {
					if log != nil {
						log.Error("sml: tap write error", "error", terr)
					}
					fail(terr)
					return
				}
			}
			if !feed(chunk) {
				return
			}
		}
		if err != nil {
			if err != io.EOF && log != nil {
				log.Error("sml: stream source error", "error", err)
			}
			fail(err)
			return
		}
	}
}
