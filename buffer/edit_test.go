package buffer

import (
	"errors"
	"testing"
)

func TestBuffer_InsertText_AtCursor(t *testing.T) {
	b := New("ab", Options{})
	_ = b.SetCursor(1)
	v := b.Version()

	b.InsertText("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("hello", Options{})
	_ = b.SetSelection(Range{Start: 1, End: 4}) // "ell"

	b.InsertText("i")
	if got, want := b.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_DeleteBackwardForward(t *testing.T) {
	b := New("abc", Options{})
	_ = b.SetCursor(2)

	b.DeleteBackward()
	if got, want := b.Text(), "ac"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	b.DeleteForward()
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	v := b.Version()
	b.DeleteForward() // at EOF
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d (no-op)", got, v)
	}
}

func TestBuffer_Replace_OutOfRangeFailsWithoutMutation(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	cases := []Range{
		{Start: -1, End: 0},
		{Start: 0, End: 4},
		{Start: 2, End: 1},
	}
	for _, r := range cases {
		if err := b.Replace(r.Start, r.End, Plain("x")); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("replace %v: err=%v, want ErrOutOfRange", r, err)
		}
	}
	if got, want := b.Text(), "abc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
}

func TestBuffer_Replace_CursorAtInsertionPointAdvances(t *testing.T) {
	b := New("helloworld", Options{})
	_ = b.SetCursor(5)

	if err := b.Replace(5, 5, Plain(" X ")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := b.Text(), "hello X world"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 8; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Replace_CursorBeforeRangeStays(t *testing.T) {
	b := New("abc", Options{})
	_ = b.SetCursor(1)

	if err := b.Replace(3, 3, Plain(" end")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := b.Text(), "abc end"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Replace_CursorAfterRangeShifts(t *testing.T) {
	b := New("a b c", Options{})
	_ = b.SetCursor(5)

	if err := b.Replace(1, 2, Plain("---")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := b.Text(), "a---b c"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 7; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Replace_CursorInsideRangeMovesToEnd(t *testing.T) {
	b := New("abcdef", Options{})
	_ = b.SetCursor(3)

	if err := b.Replace(2, 4, Plain("XYZ")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := b.Text(), "abXYZef"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 5; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Replace_InsertsSpans(t *testing.T) {
	b := New("ab", Options{})
	err := b.Replace(1, 1, Spanned{
		Text:  " \u00a0 ",
		Spans: []Span{{Start: 1, End: 2, Value: "img"}},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	spans := b.Spans()
	if len(spans) != 1 {
		t.Fatalf("spans=%d, want 1", len(spans))
	}
	if got, want := spans[0], (Span{Start: 2, End: 3, Value: "img"}); got != want {
		t.Fatalf("span=%+v, want %+v", got, want)
	}
	if got := b.SpansIn(Range{Start: 2, End: 3}); len(got) != 1 {
		t.Fatalf("spans in placeholder=%d, want 1", len(got))
	}
	if got := b.SpansIn(Range{Start: 0, End: 2}); len(got) != 0 {
		t.Fatalf("spans before placeholder=%d, want 0", len(got))
	}
}

func TestBuffer_Replace_ShiftsExistingSpans(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		text     string
		want     []Span
	}{
		{name: "insert before", from: 0, to: 0, text: "xx", want: []Span{{Start: 4, End: 6, Value: 1}}},
		{name: "insert at start is outside", from: 2, to: 2, text: "x", want: []Span{{Start: 3, End: 5, Value: 1}}},
		{name: "insert at end is outside", from: 4, to: 4, text: "x", want: []Span{{Start: 2, End: 4, Value: 1}}},
		{name: "insert after", from: 5, to: 5, text: "x", want: []Span{{Start: 2, End: 4, Value: 1}}},
		{name: "insert inside grows", from: 3, to: 3, text: "xy", want: []Span{{Start: 2, End: 6, Value: 1}}},
		{name: "delete covering drops", from: 1, to: 5, text: "", want: nil},
		{name: "delete head trims", from: 1, to: 3, text: "", want: []Span{{Start: 1, End: 2, Value: 1}}},
		{name: "delete tail trims", from: 3, to: 5, text: "", want: []Span{{Start: 2, End: 3, Value: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New("abcdef", Options{})
			if err := b.Replace(2, 4, Spanned{Text: "cd", Spans: []Span{{Start: 0, End: 2, Value: 1}}}); err != nil {
				t.Fatalf("seed: %v", err)
			}
			if err := b.Replace(tc.from, tc.to, Plain(tc.text)); err != nil {
				t.Fatalf("replace: %v", err)
			}
			got := b.Spans()
			if len(got) != len(tc.want) {
				t.Fatalf("spans=%+v, want %+v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("span[%d]=%+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
