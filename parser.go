// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import "fmt"

// Message body choice codes, carried as a u16 atom immediately inside the
// 2-element sml_message_body list.
const (
	choiceGetOpenResponse  = 0x0101
	choiceGetCloseResponse = 0x0201
	choiceGetListResponse  = 0x0701
)

// ParseBody decodes a frame payload (as produced by FrameBuilder.Data) into
// Messages. It is pure, total, and all-or-nothing: a malformed body returns
// ErrMalformedBody and a zero Messages, with no partial result.
//
// ParseBody never panics: a defensive recover backstops the recursive-descent
// walk against any bounds mistake, turning it into ErrMalformedBody instead.
func ParseBody(payload []byte) (out Messages, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = Messages{}
			err = ErrMalformedBody
		}
	}()
	c := &cursor{buf: payload}
	msgs := c.parseMessages()
	if !c.done() {
		return Messages{}, ErrMalformedBody
	}
	return Messages{Messages: msgs}, nil
}

// cursor is a bounds-checked reader over a message body. Every method panics
// on underrun; ParseBody's recover converts that into ErrMalformedBody.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) done() bool { return c.pos >= len(c.buf) }

func (c *cursor) peek() byte {
	if c.pos >= len(c.buf) {
		panic("sml: unexpected end of body")
	}
	return c.buf[c.pos]
}

func (c *cursor) byte() byte {
	b := c.peek()
	c.pos++
	return b
}

func (c *cursor) take(n int) []byte {
	if c.pos+n > len(c.buf) {
		panic("sml: unexpected end of body")
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) expect(tag byte) {
	if c.byte() != tag {
		panic(fmt.Sprintf("sml: expected tag 0x%02x", tag))
	}
}

// parseMessages reads zero or more message envelopes until the body is
// exhausted. A well-formed frame payload (header and footer already stripped
// by FrameBuilder) holds one or more sml_message_envelope values back to
// back.
func (c *cursor) parseMessages() []Envelope {
	var msgs []Envelope
	for !c.done() {
		msgs = append(msgs, c.parseEnvelope())
	}
	return msgs
}

// parseEnvelope reads one sml_message_envelope: a 6-element list of
// transaction id, group number, abort-on-error flag, message body, checksum,
// and the end-of-message marker.
func (c *cursor) parseEnvelope() Envelope {
	c.expectList(6)
	c.parseAnyString() // transaction id
	c.parseU8()        // group no
	c.parseU8()        // abort on error
	env := c.parseMessageBody()
	c.parseChecksum()
	c.expect(0x00) // end of message
	return env
}

// parseChecksum reads the per-message checksum atom: a u16 tag followed by 2
// raw bytes. This package neither computes nor verifies it.
func (c *cursor) parseChecksum() {
	c.expect(0x63)
	c.take(2)
}

// parseMessageBody reads the 2-element sml_message_body list (a u16 choice
// code followed by the choice's own content) and dispatches on the code.
func (c *cursor) parseMessageBody() Envelope {
	c.expectList(2)
	c.expect(0x63)
	choice := c.parseRawU16()
	switch choice {
	case choiceGetOpenResponse:
		return c.parseGetOpenResponse()
	case choiceGetCloseResponse:
		return c.parseGetCloseResponse()
	case choiceGetListResponse:
		return c.parseGetListResponse()
	default:
		panic("sml: unknown message body choice")
	}
}

func (c *cursor) parseRawU16() uint16 {
	b := c.take(2)
	return uint16(b[0])<<8 | uint16(b[1])
}

// parseGetOpenResponse reads a 6-element GetOpenResponseBody content list:
// codepage, client id, request file id, server id, ref time, and sml
// version. This package keeps only request file id and server id; the
// others are parsed and discarded.
func (c *cursor) parseGetOpenResponse() Envelope {
	c.expectList(6)
	c.parseOptionalAnyString() // codepage
	c.parseOptionalAnyString() // client id
	reqFileID := c.parseAnyString()
	serverID := c.parseAnyString()
	c.parseOptionalAnyString() // ref time
	c.parseOptionalAnyString() // sml version
	return GetOpenResponse{
		ServerID:  serverID,
		ReqFileID: reqFileID,
	}
}

// parseGetCloseResponse reads a 1-element GetCloseResponseBody content list
// holding an optional global signature that this package discards.
func (c *cursor) parseGetCloseResponse() Envelope {
	c.expectList(1)
	c.parseOptionalAnyString() // global signature
	return GetCloseResponse{}
}

// parseGetListResponse reads a 7-element GetListResponseBody content list:
// client id, server id, list name, act sensor time, value list, list
// signature, and act gateway time.
//
// act sensor time is a fixed-shape 2-element list (a u8 choice tag and a u32
// value) rather than a generic optional atom; this package parses and
// discards it. act gateway time is the wire format's one true irregularity:
// it occurs zero or one times with no length prefix of its own, so the only
// way to know whether it is present is to check whether the next byte is the
// literal absent marker before a structurally different atom (the message
// checksum, tag 0x63) would otherwise appear; see SPEC_FULL.md.
func (c *cursor) parseGetListResponse() Envelope {
	c.expectList(7)
	c.parseOptionalAnyString() // client id
	serverID := c.parseAnyString()
	listName := c.parseAnyString()
	c.parseActSensorTime()
	entries := c.parseValueList()
	c.parseOptionalAnyString() // list signature
	c.parseActGatewayTime()

	return GetListResponse{
		ServerID:  serverID,
		ListName:  listName,
		ValueList: entries,
	}
}

// parseActSensorTime consumes the fixed-shape act sensor time atom: a
// 2-element list of a u8 choice (e.g. secIndex vs. timestamp) and a u32
// value. Neither is exposed on GetListResponse.
func (c *cursor) parseActSensorTime() {
	c.expectList(2)
	c.parseU8()
	c.parseU32()
}

// parseActGatewayTime consumes zero or one occurrence of the literal absent
// marker. It must never consume the start of the next structurally distinct
// atom, so it only fires when the next byte is the marker itself.
func (c *cursor) parseActGatewayTime() {
	if !c.done() && c.peek() == 0x01 {
		c.byte()
	}
}

// parseValueList reads an sml_list atom: a tag-encoded list (0x70+N, N in
// [1,15]) of sml_list_entry elements.
func (c *cursor) parseValueList() []ListEntry {
	n := c.expectAnyList()
	entries := make([]ListEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, c.parseListEntry())
	}
	return entries
}

// parseListEntry reads one sml_list_entry: a 7-element list of object name,
// status, value time, unit, scaler, value, and value signature.
func (c *cursor) parseListEntry() ListEntry {
	c.expectList(7)
	objectName := c.parseAnyString()
	status := c.parseOptionalU32()
	valueTime := c.parseAnyString() // often the 0-length string, never absent
	unit := c.parseOptionalU8()
	scaler := c.parseOptionalI8()
	value := c.parseAnyValue()
	c.parseOptionalAnyString() // value signature

	return ListEntry{
		ObjectName: objectName,
		Status:     status,
		ValueTime:  valueTime,
		Unit:       unit,
		Scaler:     scaler,
		Value:      value,
	}
}

// parseAnyValue reads a heterogeneous value atom. Every candidate tag is
// mutually exclusive (string tags occupy 0x01-0x11/0x81-0x83; the fixed
// integer tags occupy distinct single bytes), so a one-pass tag dispatch is
// equivalent to an ordered grammar alternation without needing backtracking.
// This package additionally accepts the u8/u64/i8 atoms beyond the widths a
// value atom is documented to carry, since Unsigned and Signed already widen
// to 64 bits regardless of wire width.
func (c *cursor) parseAnyValue() Value {
	switch tag := c.peek(); {
	case isStringTag(tag):
		return String(c.parseAnyString())
	case tag == 0x63:
		return Unsigned(c.parseU16())
	case tag == 0x53:
		return Signed(c.parseI16())
	case tag == 0x59:
		return Signed(c.parseI64())
	case tag == 0x55:
		return Signed(c.parseI32())
	case tag == 0x65:
		return Unsigned(c.parseU32())
	case tag == 0x62:
		return Unsigned(c.parseU8())
	case tag == 0x69:
		return Unsigned(c.parseU64())
	case tag == 0x52:
		return Signed(c.parseI8())
	default:
		panic("sml: unrecognised value atom tag")
	}
}

// --- string atoms ---

func isStringTag(tag byte) bool {
	return (tag >= 0x01 && tag <= 0x11) || tag == 0x81 || tag == 0x82 || tag == 0x83
}

// parseAnyString reads a short- or extended-form string atom and returns its
// payload bytes (tag 0x01 is the valid 0-length string).
func (c *cursor) parseAnyString() []byte {
	tag := c.byte()
	switch {
	case tag >= 0x01 && tag <= 0x11:
		n := int(tag) - 1
		if n == 0 {
			return []byte{}
		}
		return c.take(n)
	case tag == 0x81 || tag == 0x82 || tag == 0x83:
		second := c.byte()
		total := (int(tag-0x80) << 4) | int(second)
		// total counts the 2 header bytes; payload is what remains.
		n := total - 2
		if n < 0 {
			panic("sml: extended string length underflow")
		}
		if n == 0 {
			return []byte{}
		}
		return c.take(n)
	default:
		panic("sml: expected string atom")
	}
}

// parseOptionalAnyString reads an optional string: either the absent marker
// (a single literal 0x01 byte) or a string atom. Note that the 0-length
// string atom is itself encoded as tag 0x01 with no payload, so an absent
// optional string and a present-but-empty string are indistinguishable on
// the wire; both yield a nil result here.
func (c *cursor) parseOptionalAnyString() []byte {
	if c.peek() == 0x01 {
		c.byte()
		return nil
	}
	return c.parseAnyString()
}

// --- fixed-tag integer atoms ---

func (c *cursor) parseU8() uint8 {
	c.expect(0x62)
	return c.byte()
}

func (c *cursor) parseU16() uint16 {
	c.expect(0x63)
	return c.parseRawU16()
}

func (c *cursor) parseU32() uint32 {
	c.expect(0x65)
	b := c.take(4)
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func (c *cursor) parseU64() uint64 {
	c.expect(0x69)
	b := c.take(8)
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

func (c *cursor) parseI8() int8 {
	c.expect(0x52)
	return int8(c.byte())
}

func (c *cursor) parseI16() int16 {
	c.expect(0x53)
	b := c.take(2)
	return int16(uint16(b[0])<<8 | uint16(b[1]))
}

func (c *cursor) parseI32() int32 {
	c.expect(0x55)
	b := c.take(4)
	return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (c *cursor) parseI64() int64 {
	c.expect(0x59)
	b := c.take(8)
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return int64(v)
}

// --- optional fixed-tag integer atoms ---

func (c *cursor) parseOptionalU8() *uint8 {
	if c.peek() == 0x01 {
		c.byte()
		return nil
	}
	v := c.parseU8()
	return &v
}

func (c *cursor) parseOptionalU32() *uint32 {
	if c.peek() == 0x01 {
		c.byte()
		return nil
	}
	v := c.parseU32()
	return &v
}

func (c *cursor) parseOptionalI8() *int8 {
	if c.peek() == 0x01 {
		c.byte()
		return nil
	}
	v := c.parseI8()
	return &v
}

// --- list atoms ---

// expectList reads a list-header tag (0x70+N, N in [1,15]) and panics unless
// it encodes exactly n elements.
func (c *cursor) expectList(n int) {
	tag := c.byte()
	if tag < 0x71 || tag > 0x7f {
		panic("sml: expected list atom")
	}
	if int(tag-0x70) != n {
		panic("sml: unexpected list length")
	}
}

// expectAnyList reads a list-header tag and returns its element count N (in
// [1,15]), used where the grammar allows any count rather than a fixed one.
func (c *cursor) expectAnyList() int {
	tag := c.byte()
	if tag < 0x71 || tag > 0x7f {
		panic("sml: expected list atom")
	}
	return int(tag - 0x70)
}
