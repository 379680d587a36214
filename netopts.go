// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import "time"

// Transport presets and mapping.
//
// Single source of truth — source kind → (ChunkSize, RetryDelay):
//   - Serial: meters on an RS-232/RS-485/optical head typically deliver a
//     telegram every few seconds in small bursts. A small chunk size keeps
//     memory use low, and cooperative blocking yields and retries whenever
//     the source reports ErrWouldBlock between bursts.
//   - TCPGateway: a network gateway relaying one or more meters' telegrams
//     tends to deliver larger, bursty reads. A larger chunk size reduces
//     syscall overhead; in non-blocking mode an ErrWouldBlock from the
//     source is reported on Stream's error channel and ends the Stream.
type sourceKind uint8

const (
	sourceSerial sourceKind = iota
	sourceTCPGateway
)

func transportDefaultsFor(kind sourceKind) (chunkSize int, retryDelay time.Duration) {
	switch kind {
	case sourceSerial:
		return 128, 0
	case sourceTCPGateway:
		return 4096, -1
	default:
		return defaultChunkSize, 0
	}
}

// WithSerialSource configures Stream for a directly attached meter: small
// reads, cooperative blocking.
func WithSerialSource() Option {
	return func(o *Options) {
		chunkSize, retryDelay := transportDefaultsFor(sourceSerial)
		o.ChunkSize = chunkSize
		o.RetryDelay = retryDelay
	}
}

// WithTCPGateway configures Stream for a network gateway relaying meter
// telegrams: larger reads, non-blocking.
func WithTCPGateway() Option {
	return func(o *Options) {
		chunkSize, retryDelay := transportDefaultsFor(sourceTCPGateway)
		o.ChunkSize = chunkSize
		o.RetryDelay = retryDelay
	}
}
