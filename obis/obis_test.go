// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package obis

import "testing"

func TestNameRecognisesCatalogEntries(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{SumActiveInstantaneousPower, "SumActiveInstantaneousPower"},
		{PositiveActiveEnergy, "PositiveActiveEnergy"},
		{PositiveActiveEnergyTarif1, "PositiveActiveEnergyTarif1"},
		{NegativeActiveEnergyTotal, "NegativeActiveEnergyTotal"},
	}
	for _, tc := range cases {
		name, ok := Name(tc.code)
		if !ok || name != tc.want {
			t.Errorf("Name(%v) = (%q, %v), want (%q, true)", tc.code, name, ok, tc.want)
		}
	}
}

func TestNameUnrecognisedCode(t *testing.T) {
	if _, ok := Name(Code{9, 9, 9, 9, 9, 9}); ok {
		t.Fatal("Name() recognised an unregistered code")
	}
}

func TestCodeString(t *testing.T) {
	got := PositiveActiveEnergy.String()
	want := "1-0:1.8.0*255"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFromBytesRoundTrips(t *testing.T) {
	b := []byte{1, 0, 16, 7, 0, 255}
	got := FromBytes(b)
	if got != SumActiveInstantaneousPower {
		t.Fatalf("FromBytes(%v) = %v, want %v", b, got, SumActiveInstantaneousPower)
	}
}

func TestFromBytesPanicsOnWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on wrong-length input")
		}
	}()
	FromBytes([]byte{1, 2, 3})
}
