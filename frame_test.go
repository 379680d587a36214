// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"bytes"
	"testing"
)

func TestFrameBuilderExtendsIfStartOfSequenceIsFound(t *testing.T) {
	b := NewFrameBuilder()
	b.Record([]byte{0x1b, 0x1b, 0x1b, 0x1b})
	if b.State() != StateIncompleteStart {
		t.Fatalf("state = %v, want StateIncompleteStart", b.State())
	}
	if b.StartMatched() != 4 {
		t.Fatalf("StartMatched() = %d, want 4", b.StartMatched())
	}
}

func TestFrameBuilderExtendsIfStartOfSequenceIsFoundAnywhere(t *testing.T) {
	b := NewFrameBuilder()
	b.Record([]byte{0xaa, 0xbb, 0x1b, 0x1b, 0x1b, 0x1b})
	if b.State() != StateIncompleteStart || b.StartMatched() != 4 {
		t.Fatalf("state = %v matched = %d, want StateIncompleteStart/4", b.State(), b.StartMatched())
	}
}

func TestFrameBuilderExtendsMoreAcrossCalls(t *testing.T) {
	b := NewFrameBuilder()
	b.Record([]byte{0x1b, 0x1b})
	b.Record([]byte{0x1b, 0x1b, 0x01, 0x01})
	if b.State() != StateIncompleteStart || b.StartMatched() != 6 {
		t.Fatalf("state = %v matched = %d, want StateIncompleteStart/6", b.State(), b.StartMatched())
	}
}

func TestFrameBuilderIncompleteOccurrenceMustBeAtTheEnd(t *testing.T) {
	b := NewFrameBuilder()
	// A partial prefix not anchored at the chunk's tail does not count.
	b.Record([]byte{0x1b, 0x1b, 0x1b, 0x1b, 0xaa, 0x1b, 0x1b})
	if b.State() != StateIncompleteStart || b.StartMatched() != 2 {
		t.Fatalf("state = %v matched = %d, want StateIncompleteStart/2", b.State(), b.StartMatched())
	}
}

func TestFrameBuilderReturnsToEmptyIfStartSignatureNotContinued(t *testing.T) {
	b := NewFrameBuilder()
	b.Record([]byte{0x1b, 0x1b, 0x1b, 0x1b})
	b.Record([]byte{0xaa, 0xbb})
	if b.State() != StateEmpty {
		t.Fatalf("state = %v, want StateEmpty", b.State())
	}
}

func TestFrameBuilderLeavesUnchangedOnEmptyRecord(t *testing.T) {
	b := NewFrameBuilder()
	b.Record([]byte{0x1b, 0x1b, 0x1b, 0x1b})
	b.Record(nil)
	if b.State() != StateIncompleteStart || b.StartMatched() != 4 {
		t.Fatalf("empty Record mutated state: %v/%d", b.State(), b.StartMatched())
	}
}

func TestFrameBuilderFindsCompleteSequence(t *testing.T) {
	b := NewFrameBuilder()
	frame := buildFrame(t, []byte{0xde, 0xad, 0xbe, 0xef})
	b.Record(frame)
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(b.Data(), []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("Data() = % x", b.Data())
	}
	if len(b.Rest()) != 0 {
		t.Fatalf("Rest() = % x, want empty", b.Rest())
	}
}

func TestFrameBuilderFindsCompleteSequenceInTwoParts(t *testing.T) {
	b := NewFrameBuilder()
	frame := buildFrame(t, []byte{0x01, 0x02, 0x03})
	mid := len(frame) / 2
	b.Record(frame[:mid])
	if b.State() == StateComplete {
		t.Fatalf("completed too early")
	}
	b.Record(frame[mid:])
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(b.Data(), []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("Data() = % x", b.Data())
	}
}

func TestFrameBuilderAcceptsEndSignatureInTwoParts(t *testing.T) {
	b := NewFrameBuilder()
	frame := buildFrame(t, []byte{0x42})
	splitAt := bytes.Index(frame, endPrefix) + 2 // split inside the end prefix
	b.Record(frame[:splitAt])
	if b.State() != StateRecording {
		t.Fatalf("state = %v, want StateRecording", b.State())
	}
	b.Record(frame[splitAt:])
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(b.Data(), []byte{0x42}) {
		t.Fatalf("Data() = % x", b.Data())
	}
}

func TestFrameBuilderKeepsRest(t *testing.T) {
	b := NewFrameBuilder()
	frame := buildFrame(t, []byte{0x01})
	trailing := []byte{0xaa, 0xbb, 0xcc}
	b.Record(append(frame, trailing...))
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(b.Rest(), trailing) {
		t.Fatalf("Rest() = % x, want % x", b.Rest(), trailing)
	}
}

func TestFrameBuilderIgnoresDataBetweenEndAndNextStart(t *testing.T) {
	b := NewFrameBuilder()
	frame1 := buildFrame(t, []byte{0x01})
	noise := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	frame2 := buildFrame(t, []byte{0x02})

	b.Record(frame1)
	data1 := append([]byte(nil), b.Data()...)
	rest := append([]byte(nil), b.Rest()...)
	b.Reset()

	b.Record(append(append(rest, noise...), frame2...))
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(data1, []byte{0x01}) || !bytes.Equal(b.Data(), []byte{0x02}) {
		t.Fatalf("frame contents corrupted: %x / %x", data1, b.Data())
	}
}

func TestFrameBuilderTakesFirstOfTwoMessages(t *testing.T) {
	b := NewFrameBuilder()
	frame1 := buildFrame(t, []byte{0xaa})
	frame2 := buildFrame(t, []byte{0xbb})
	b.Record(append(frame1, frame2...))
	if b.State() != StateComplete {
		t.Fatalf("state = %v, want StateComplete", b.State())
	}
	if !bytes.Equal(b.Data(), []byte{0xaa}) {
		t.Fatalf("Data() = % x, want first frame", b.Data())
	}
	if !bytes.Equal(b.Rest(), frame2) {
		t.Fatalf("Rest() = % x, want second frame verbatim", b.Rest())
	}
}

func TestFrameBuilderRecordAfterCompletePanics(t *testing.T) {
	b := NewFrameBuilder()
	b.Record(buildFrame(t, []byte{0x01}))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic recording into StateComplete")
		}
	}()
	b.Record([]byte{0x01})
}

func TestFrameBuilderResetReturnsToEmpty(t *testing.T) {
	b := NewFrameBuilder()
	b.Record(buildFrame(t, []byte{0x01}))
	b.Reset()
	if b.State() != StateEmpty {
		t.Fatalf("state after Reset = %v, want StateEmpty", b.State())
	}
}

// buildFrame wraps payload in the start/end delimiters and a 3-byte trailer,
// matching a real telegram's shape closely enough to drive FrameBuilder.
func buildFrame(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(startSequence)
	buf.Write(payload)
	buf.Write(endPrefix)
	buf.Write([]byte{0x00, 0xaa, 0xbb}) // padding + 2-byte CRC, unverified
	return buf.Bytes()
}
