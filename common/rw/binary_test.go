package rw

import (
	"testing"
)

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(7)
	w.WriteUint32(0xdeadbeef)
	w.WriteInt32(-42)
	w.WriteFloat32(1.5)
	w.WriteFloat32s([]float32{0, -0.25, 3})

	r := NewReader(w.Bytes())
	if v := r.ReadUint8(); v != 7 {
		t.Errorf("ReadUint8 = %d, want 7", v)
	}
	if v := r.ReadUint32(); v != 0xdeadbeef {
		t.Errorf("ReadUint32 = %#x, want 0xdeadbeef", v)
	}
	if v := r.ReadInt32(); v != -42 {
		t.Errorf("ReadInt32 = %d, want -42", v)
	}
	if v := r.ReadFloat32(); v != 1.5 {
		t.Errorf("ReadFloat32 = %v, want 1.5", v)
	}
	fs := make([]float32, 3)
	r.ReadFloat32s(fs)
	if fs[0] != 0 || fs[1] != -0.25 || fs[2] != 3 {
		t.Errorf("ReadFloat32s = %v", fs)
	}
	if r.Err() != nil {
		t.Errorf("clean read reported error: %v", r.Err())
	}
}

func TestTruncated(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(1)

	r := NewReader(w.Bytes())
	r.ReadUint32()
	r.ReadUint32() // past the end
	if r.Err() == nil {
		t.Fatalf("short read must set Err")
	}
	// reads after the first failure stay zero and keep the error
	if v := r.ReadFloat32(); v != 0 {
		t.Errorf("read after error = %v, want 0", v)
	}
	if r.Err() == nil {
		t.Errorf("error must be sticky")
	}
}
