package bin

import "testing"

func TestReaderU32RoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.U32(0xdeadbeef); err != nil {
		t.Fatalf("U32 write: %v", err)
	}
	r := NewReader(w.Output())
	got, err := r.U32()
	if err != nil {
		t.Fatalf("U32 read: %v", err)
	}
	if got != 0xdeadbeef {
		t.Errorf("got %#x, want 0xdeadbeef", got)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderStringRejectsOverLength(t *testing.T) {
	w := NewWriter()
	if err := w.String("hello"); err != nil {
		t.Fatalf("String write: %v", err)
	}
	r := NewReader(w.Output())
	if _, err := r.String(3); err == nil {
		t.Errorf("expected an overflow error when maxLen is smaller than the encoded string")
	}
}

func TestReaderShortReadReportsError(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.U32(); err == nil {
		t.Errorf("expected an error reading a u32 from a 2-byte buffer")
	}
}

func TestWriterPatchRewritesField(t *testing.T) {
	w := NewWriter()
	if err := w.U32(0); err != nil {
		t.Fatalf("U32: %v", err)
	}
	if err := w.U32(0xffffffff); err != nil {
		t.Fatalf("U32: %v", err)
	}
	w.Patch(0, 42)

	r := NewReader(w.Output())
	first, _ := r.U32()
	second, _ := r.U32()
	if first != 42 {
		t.Errorf("patched field = %d, want 42", first)
	}
	if second != 0xffffffff {
		t.Errorf("unpatched field = %d, want 0xffffffff", second)
	}
}

func TestWriterOffsetTracksBytesWritten(t *testing.T) {
	w := NewWriter()
	if w.Offset() != 0 {
		t.Fatalf("fresh writer offset = %d, want 0", w.Offset())
	}
	w.U32(1)
	if w.Offset() != 4 {
		t.Errorf("offset after one U32 = %d, want 4", w.Offset())
	}
}
