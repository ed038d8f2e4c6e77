package buffer

import "testing"

func TestBuffer_PosOffsetRoundTrip(t *testing.T) {
	b := New("ab\n\ncde", Options{})
	if got, want := b.RowCount(), 3; got != want {
		t.Fatalf("rows=%d, want %d", got, want)
	}

	cases := []struct {
		off int
		pos Pos
	}{
		{off: 0, pos: Pos{Row: 0, Col: 0}},
		{off: 2, pos: Pos{Row: 0, Col: 2}},
		{off: 3, pos: Pos{Row: 1, Col: 0}},
		{off: 4, pos: Pos{Row: 2, Col: 0}},
		{off: 7, pos: Pos{Row: 2, Col: 3}},
	}
	for _, tc := range cases {
		if got := b.PosFromOffset(tc.off); got != tc.pos {
			t.Fatalf("PosFromOffset(%d)=%v, want %v", tc.off, got, tc.pos)
		}
		if got := b.OffsetFromPos(tc.pos); got != tc.off {
			t.Fatalf("OffsetFromPos(%v)=%d, want %d", tc.pos, got, tc.off)
		}
	}
}

func TestBuffer_OffsetFromPos_Clamps(t *testing.T) {
	b := New("ab\ncd", Options{})
	if got, want := b.OffsetFromPos(Pos{Row: 0, Col: 9}), 2; got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
	if got, want := b.OffsetFromPos(Pos{Row: 9, Col: 0}), 5; got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
	if got, want := b.OffsetFromPos(Pos{Row: -1}), 0; got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
}

func TestBuffer_ByteOffsets(t *testing.T) {
	b := New("aé b", Options{})

	got, ok := b.ByteOffset(3)
	if !ok {
		t.Fatalf("expected ok")
	}
	if want := len("aé "); got != want {
		t.Fatalf("byte offset=%d, want %d", got, want)
	}

	off, ok := b.OffsetFromByte(len("aé"))
	if !ok || off != 2 {
		t.Fatalf("offset=%d,%v, want 2,true", off, ok)
	}
	if _, ok := b.OffsetFromByte(2); ok {
		t.Fatalf("expected byte offset inside é to be rejected")
	}
	if off, ok := b.OffsetFromByte(len("aé b")); !ok || off != 4 {
		t.Fatalf("offset=%d,%v, want 4,true", off, ok)
	}
	if _, ok := b.ByteOffset(5); ok {
		t.Fatalf("expected out-of-range cluster offset to be rejected")
	}
}
