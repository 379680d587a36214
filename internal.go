// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"io"
	"runtime"
	"time"
)

// reader wraps an io.Reader with the retry policy a Stream uses when the
// source reports ErrWouldBlock. It is the non-blocking/cooperative-blocking
// idiom Stream is built on; FrameBuilder and ParseBody never see it.
type reader struct {
	rd         io.Reader
	retryDelay time.Duration
	buf        []byte
}

func newReader(rd io.Reader, chunkSize int, retryDelay time.Duration) *reader {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &reader{
		rd:         rd,
		retryDelay: retryDelay,
		buf:        make([]byte, chunkSize),
	}
}

func (r *reader) waitOnceOnWouldBlock() bool {
	// returns whether the caller should retry
	if r.retryDelay < 0 {
		return false
	}
	if r.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(r.retryDelay)
	return true
}

// readOnce reads into the reusable chunk buffer, retrying on ErrWouldBlock
// according to the configured retry policy. It guards against a source that
// violates the io.Reader contract by returning (0, nil) on a non-empty
// buffer, which would otherwise spin the driving loop forever.
func (r *reader) readOnce() (chunk []byte, err error) {
	for {
		n, rerr := r.rd.Read(r.buf)
		if n == 0 && rerr == nil {
			return nil, io.ErrNoProgress
		}
		if n > 0 {
			return r.buf[:n], rerr
		}
		if rerr != ErrWouldBlock {
			return nil, rerr
		}
		if !r.waitOnceOnWouldBlock() {
			return nil, rerr
		}
	}
}
