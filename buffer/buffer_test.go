package buffer

import (
	"errors"
	"testing"
)

func TestBuffer_New_SplitsClusters(t *testing.T) {
	b := New("a\u00a0e\u0301", Options{})
	if got, want := b.Len(), 3; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, ok := b.At(2); !ok || got != "e\u0301" {
		t.Fatalf("at(2)=%q,%v, want %q,true", got, ok, "e\u0301")
	}
	if _, ok := b.At(3); ok {
		t.Fatalf("expected At(len) to report false")
	}
	if _, ok := b.At(-1); ok {
		t.Fatalf("expected At(-1) to report false")
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_SetCursor_OutOfRangeFails(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	if err := b.SetCursor(4); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
	if err := b.SetCursor(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}

	if err := b.SetCursor(3); err != nil {
		t.Fatalf("set cursor: %v", err)
	}
	if got, want := b.SelectionEnd(), 3; got != want {
		t.Fatalf("selection end=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_Selection_PreservesDirection(t *testing.T) {
	b := New("hello", Options{})
	if err := b.SetSelection(Range{Start: 4, End: 1}); err != nil {
		t.Fatalf("set selection: %v", err)
	}

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected active selection")
	}
	if got, want := r, (Range{Start: 1, End: 4}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	raw, ok := b.SelectionRaw()
	if !ok {
		t.Fatalf("expected raw selection")
	}
	if got, want := raw, (Range{Start: 4, End: 1}); got != want {
		t.Fatalf("raw selection=%v, want %v", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_SetSelection_OutOfRangeFails(t *testing.T) {
	b := New("ab", Options{})
	if err := b.SetSelection(Range{Start: 0, End: 5}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := New("hello world", Options{})
	got, err := b.Slice(Range{Start: 6, End: 11})
	if err != nil {
		t.Fatalf("slice: %v", err)
	}
	if want := "world"; got != want {
		t.Fatalf("slice=%q, want %q", got, want)
	}
	if _, err := b.Slice(Range{Start: 6, End: 12}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err=%v, want ErrOutOfRange", err)
	}
}
