package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return c.err }

func keyDown() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyDown} }

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{}, // keep styles minimal for this test
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(keyRunes("X"))
	if got := m.buf.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != 2 {
		t.Fatalf("cursor after insert: got %d, want %d", got, 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after backspace: got %d, want %d", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.buf.Text(); got != "a " {
		t.Fatalf("text after space+delete: got %q, want %q", got, "a ")
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{
		Text:     "ab",
		ReadOnly: true,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after move: got %d, want %d", got, 1)
	}

	m, _ = m.Update(keyRunes("X"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after insert in read-only: got %q, want %q", got, "ab")
	}
}

func TestUpdate_LinesAndDocMoves(t *testing.T) {
	m := New(Config{Text: "abc\nde"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(keyDown())
	if got := m.buf.Cursor(); got != 6 {
		t.Fatalf("cursor after end+down: got %d, want %d", got, 6)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlHome})
	if got := m.buf.Cursor(); got != 0 {
		t.Fatalf("cursor after ctrl+home: got %d, want %d", got, 0)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if r, ok := m.buf.Selection(); !ok || r.Start != 0 || r.End != 2 {
		t.Fatalf("selection: got %v %v, want [0,2)", r, ok)
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(keyRunes("hi"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.buf.Text(); got != "" {
		t.Fatalf("text after undo: got %q, want empty", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.buf.Text(); got != "hi" {
		t.Fatalf("text after redo: got %q, want %q", got, "hi")
	}
}

func TestUpdate_ClipboardCopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "hello", Clipboard: cb})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cb.s != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", cb.s, "he")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}

	cb.s = "a\r\nb"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "a\nbllo" {
		t.Fatalf("text after paste: got %q, want %q", got, "a\nbllo")
	}

	cb.err = errors.New("no clipboard")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "a\nbllo" {
		t.Fatalf("text after failed paste: got %q, want %q", got, "a\nbllo")
	}
}

func TestUpdate_PasteEventInsertsLiterally(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ry"), Paste: true})
	if got := m.buf.Text(); got != "x\ny" {
		t.Fatalf("text after paste event: got %q, want %q", got, "x\ny")
	}
}
