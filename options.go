// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"log/slog"
	"time"
)

// Options configures a Stream.
type Options struct {
	// ChunkSize is the size of the buffer used for each Read off the
	// underlying source. Zero takes defaultChunkSize.
	ChunkSize int

	// QueueCapacity bounds the channel Stream publishes decoded Messages on.
	// A slow consumer blocks the Stream's internal read loop once the queue
	// fills, providing backpressure all the way to the byte source.
	QueueCapacity int

	// RetryDelay controls how Stream handles ErrWouldBlock from a
	// non-blocking byte source:
	//   - negative: nonblock, surface the error to Stream's error channel
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	RetryDelay time.Duration

	// Logger receives structured diagnostics (malformed bodies, tap write
	// errors, source errors). A nil Logger disables logging.
	Logger *slog.Logger

	// Tap, if set, receives a verbatim copy of every raw chunk read from the
	// source before it reaches the FrameBuilder. See WithTap.
	Tap *Tap
}

var defaultOptions = Options{
	ChunkSize:     defaultChunkSize,
	QueueCapacity: defaultQueueCapacity,
	RetryDelay:    0, // default: cooperative blocking
	Logger:        nil,
}

const (
	defaultChunkSize     = 512
	defaultQueueCapacity = 256
)

// Option configures a Stream. See the With* constructors.
type Option func(*Options)

// WithChunkSize sets the read buffer size.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithQueueCapacity sets the capacity of the channel Stream publishes on.
func WithQueueCapacity(n int) Option {
	return func(o *Options) { o.QueueCapacity = n }
}

// WithRetryDelay sets the retry/wait policy used when the underlying source
// returns ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock surfaces ErrWouldBlock to Stream's error channel immediately
// instead of retrying.
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

// WithLogger attaches a logger for Stream diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
