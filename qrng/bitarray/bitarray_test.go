package bitarray

import (
	"bytes"
	"testing"
)

func TestFromBitsData(t *testing.T) {
	tcs := []struct {
		name string
		bits []byte
		eout []byte
	}{
		{
			name: "one byte",
			bits: []byte{1, 0, 1, 1, 0, 0, 0, 0},
			eout: []byte{0x0D},
		}, {
			name: "single bit",
			bits: []byte{1},
			eout: []byte{0x01},
		}, {
			name: "crosses byte boundary",
			bits: []byte{0, 0, 0, 0, 0, 0, 0, 1, 1},
			eout: []byte{0x80, 0x01},
		}, {
			name: "empty",
			bits: nil,
			eout: []byte{},
		}, {
			name: "nonzero values pack as ones",
			bits: []byte{2, 0, 7},
			eout: []byte{0x05},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := FromBits(tc.bits)
			if d.Size() != len(tc.bits) {
				t.Errorf("got bitarray of len %d, want %d", d.Size(), len(tc.bits))
			}
			if got := d.Data(); !bytes.Equal(got, tc.eout) {
				t.Errorf("FromBits(%v).Data() == %v, want %v", tc.bits, got, tc.eout)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tcs := [][]byte{
		{},
		{0},
		{1},
		{1, 0, 1, 1, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 0, 0, 1, 1, 0, 1, 0, 0, 0, 1, 1},
	}

	for _, bits := range tcs {
		d := FromBits(bits)
		back := NewDense(d.Data(), len(bits)).Bits()
		if len(bits) == 0 && len(back) == 0 {
			continue
		}
		if !bytes.Equal(back, bits) {
			t.Errorf("round trip of %v == %v", bits, back)
		}
	}
}

func TestPaddingDecodesZero(t *testing.T) {
	// Junk above the declared bit length must not leak into Data or Bits.
	d := NewDense([]byte{0xFF}, 4)
	if got := d.Data(); !bytes.Equal(got, []byte{0x0F}) {
		t.Errorf("Data() == %v, want [0x0F]", got)
	}
	for i := 4; i < 8; i++ {
		if d.Get(i) {
			t.Errorf("Get(%d) == true, want false", i)
		}
	}
}

func TestGetBeyondLen(t *testing.T) {
	d := FromBits([]byte{1, 1})
	if d.Get(2) || d.Get(100) {
		t.Errorf("Get beyond len returned true, want false")
	}
}

func TestParity(t *testing.T) {
	tcs := []struct {
		name string
		d    Dense
		eout bool
	}{
		{name: "empty", d: Empty(), eout: false},
		{name: "odd", d: FromBits([]byte{1, 0, 0}), eout: true},
		{name: "even", d: FromBits([]byte{1, 1, 0}), eout: false},
		{name: "ignores padding", d: NewDense([]byte{0xF1}, 4), eout: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Parity(); got != tc.eout {
				t.Errorf("Parity() == %v, want %v", got, tc.eout)
			}
		})
	}
}

func TestCountOnes(t *testing.T) {
	tcs := []struct {
		name string
		d    Dense
		eout int
	}{
		{name: "empty", d: Empty(), eout: 0},
		{name: "three", d: FromBits([]byte{1, 0, 1, 1}), eout: 3},
		{name: "ignores padding", d: NewDense([]byte{0xFF}, 2), eout: 2},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.CountOnes(); got != tc.eout {
				t.Errorf("CountOnes() == %d, want %d", got, tc.eout)
			}
		})
	}
}

func TestBytesFor(t *testing.T) {
	tcs := []struct {
		bits  int
		bytes int
	}{
		{0, 0}, {1, 1}, {8, 1}, {9, 2}, {16, 2}, {17, 3},
	}
	for _, tc := range tcs {
		if got := BytesFor(tc.bits); got != tc.bytes {
			t.Errorf("BytesFor(%d) == %d, want %d", tc.bits, got, tc.bytes)
		}
	}
}
