// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

import (
	"bytes"
	"testing"
)

func TestScaleUnsignedNegativeScaler(t *testing.T) {
	got := Scale(Unsigned(100), -2)
	if got != Unsigned(1) {
		t.Fatalf("Scale(100, -2) = %v, want 1", got)
	}
}

func TestScaleSignedNegativeScaler(t *testing.T) {
	got := Scale(Signed(-250), -1)
	if got != Signed(-25) {
		t.Fatalf("Scale(-250, -1) = %v, want -25", got)
	}
}

func TestScalePositiveScaler(t *testing.T) {
	got := Scale(Unsigned(3), 2)
	if got != Unsigned(300) {
		t.Fatalf("Scale(3, 2) = %v, want 300", got)
	}
}

func TestScaleZeroScalerIsIdentity(t *testing.T) {
	if got := Scale(Signed(-7), 0); got != Signed(-7) {
		t.Fatalf("Scale(-7, 0) = %v, want -7", got)
	}
}

func TestScaleStringPassesThroughUnchanged(t *testing.T) {
	v := String("raw text")
	got := Scale(v, -3)
	s, ok := got.(String)
	if !ok || !bytes.Equal([]byte(s), []byte(v)) {
		t.Fatalf("Scale(String, -3) = %#v, want unchanged", got)
	}
}
