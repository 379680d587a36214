// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

// Messages is the decoded content of one SML frame: an ordered sequence of
// message envelopes.
type Messages struct {
	Messages []Envelope
}

// Envelope is implemented by GetOpenResponse, GetListResponse, and
// GetCloseResponse. It is not meant to be implemented outside this package.
type Envelope interface {
	isEnvelope()
}

// GetOpenResponse is sent by a meter when it opens a new SML session.
type GetOpenResponse struct {
	ServerID  []byte
	ReqFileID []byte
}

func (GetOpenResponse) isEnvelope() {}

// GetCloseResponse terminates an SML session. It carries no fields.
type GetCloseResponse struct{}

func (GetCloseResponse) isEnvelope() {}

// GetListResponse carries a named list of metering registers.
type GetListResponse struct {
	ServerID  []byte
	ListName  []byte
	ValueList []ListEntry
}

func (GetListResponse) isEnvelope() {}

// ListEntry is one register reading within a GetListResponse.
//
// ObjectName commonly holds a 6-byte OBIS identifier (see package
// code.hybscloud.com/smlmeter/obis) but is not interpreted here. Status, Unit,
// and Scaler are nil when the corresponding optional wire atom was absent.
type ListEntry struct {
	ObjectName []byte
	Status     *uint32
	ValueTime  []byte
	Unit       *uint8
	Scaler     *int8
	Value      Value
}

// Value is the heterogeneous reading type: Unsigned, Signed, or String.
type Value interface {
	isValue()
}

// Unsigned holds an unsigned integer reading, widened to 64 bits regardless of
// the wire atom's width (8/16/32/64 bits).
type Unsigned uint64

func (Unsigned) isValue() {}

// Signed holds a signed integer reading, widened to 64 bits regardless of the
// wire atom's width.
type Signed int64

func (Signed) isValue() {}

// String holds a byte-string reading. Other fields the wire format encodes
// as a string atom but which carry no textual meaning, e.g. ObjectName and
// ValueTime, are plain []byte fields instead.
type String []byte

func (String) isValue() {}
