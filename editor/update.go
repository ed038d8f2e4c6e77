package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/splice/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
		m.buf.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	}
	edit := func(fn func()) {
		if !m.cfg.ReadOnly {
			fn()
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		move(buffer.MoveLine, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		move(buffer.MoveLine, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		move(buffer.MoveLine, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		move(buffer.MoveLine, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		move(buffer.MoveDoc, buffer.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		edit(m.buf.DeleteBackward)
	case key.Matches(msg, km.Delete):
		edit(m.buf.DeleteForward)
	case key.Matches(msg, km.Enter):
		edit(m.buf.InsertNewline)

	case key.Matches(msg, km.Undo):
		edit(func() { m.buf.Undo() })
	case key.Matches(msg, km.Redo):
		edit(func() { m.buf.Redo() })

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if m.cfg.ReadOnly {
			m.copySelection()
		} else {
			m.cutSelection()
		}
	case key.Matches(msg, km.Paste):
		edit(m.pasteClipboard)

	default:
		if msg.Type == tea.KeyTab {
			edit(func() { m.buf.InsertText("\t") })
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			edit(func() { m.buf.InsertText(" ") })
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			edit(func() { m.buf.InsertText(string(msg.Runes)) })
		}
	}

	return m, nil
}

func (m Model) selectedText() string {
	r, ok := m.buf.Selection()
	if !ok {
		return ""
	}
	s, err := m.buf.Slice(r)
	if err != nil {
		return ""
	}
	return s
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	if s := m.selectedText(); s != "" {
		if err := m.cfg.Clipboard.WriteText(s); err != nil {
			m.cfg.Logger.Warn("clipboard write failed", "err", err)
		}
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	if _, ok := m.buf.Selection(); !ok {
		return
	}
	m.copySelection()
	m.buf.DeleteSelection()
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.cfg.Logger.Warn("clipboard read failed", "err", err)
		return
	}
	if s == "" {
		return
	}
	m.buf.InsertText(normalizeNewlines(s))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
