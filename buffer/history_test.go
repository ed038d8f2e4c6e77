package buffer

import "testing"

func TestBuffer_UndoRedo_BasicTyping(t *testing.T) {
	b := New("", Options{})
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("expected empty history")
	}

	b.InsertText("a")
	if !b.CanUndo() {
		t.Fatalf("expected CanUndo=true")
	}

	v := b.Version()
	if ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}

	if ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_UndoRedo_EmptyStacks_NoMutation(t *testing.T) {
	b := New("hi", Options{})
	_ = b.SetCursor(1)
	v := b.Version()

	if ok := b.Undo(); ok {
		t.Fatalf("expected Undo=false")
	}
	if ok := b.Redo(); ok {
		t.Fatalf("expected Redo=false")
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
}

func TestBuffer_Undo_RestoresSpans(t *testing.T) {
	b := New("ab", Options{})
	if err := b.Replace(1, 1, Spanned{Text: "\u00a0", Spans: []Span{{Start: 0, End: 1, Value: "img"}}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	b.DeleteSelection()
	_ = b.SetCursor(2)
	b.DeleteBackward()
	if got := len(b.Spans()); got != 0 {
		t.Fatalf("spans after delete=%d, want 0", got)
	}

	_ = b.Undo()
	if got := len(b.Spans()); got != 1 {
		t.Fatalf("spans after undo=%d, want 1", got)
	}
	if got, want := b.Text(), "a\u00a0b"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_History_Limit(t *testing.T) {
	b := New("", Options{HistoryLimit: 2})
	b.InsertText("a")
	b.InsertText("b")
	b.InsertText("c")

	undos := 0
	for b.Undo() {
		undos++
	}
	if undos != 2 {
		t.Fatalf("undos=%d, want 2", undos)
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_NewEditClearsRedo(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	_ = b.Undo()
	b.InsertText("b")
	if b.CanRedo() {
		t.Fatalf("expected redo cleared by new edit")
	}
}
