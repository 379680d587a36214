// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sml decodes Smart Message Language (SML) telegrams emitted by
// electricity smart meters.
//
// Semantics and design:
//   - Two-stage decode: a FrameBuilder locates escape-delimited SML telegrams
//     inside an arbitrarily chunked byte stream and yields complete payload
//     frames; ParseBody then decodes a frame's payload into a Messages value.
//   - Self-synchronising: FrameBuilder never fails. Bytes that are not part of
//     a well-formed frame are silently dropped so the decoder can recover from
//     noise on a serial line without caller intervention.
//   - ParseBody is pure, total, and all-or-nothing: a malformed body collapses
//     to a single opaque error; there is no partial result.
//   - NewStream drives both stages over an io.Reader, publishing decoded
//     Messages values in stream order on a bounded channel.
//
// Wire format: a 1B 1B 1B 1B 01 01 01 01 start sequence, a TLV-encoded body,
// and a 1B 1B 1B 1B 1A end sequence followed by one padding byte and a 2-byte
// CRC that this package strips but does not verify.
package sml
