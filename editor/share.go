package editor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/splice/buffer"
	"github.com/iw2rmb/splice/share"
)

// SharedMsg delivers the resolved words of one shared object to the model
// that asked for them.
type SharedMsg struct {
	editor uint64

	At    share.InsertAt
	Words []buffer.Spanned
	Err   error
}

// Share returns a command that resolves obj off the update loop. The words
// are spliced in when the resulting SharedMsg reaches Update.
func (m Model) Share(ctx context.Context, obj share.Object, at share.InsertAt) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		words, err := obj.Words(ctx)
		return SharedMsg{editor: id, At: at, Words: words, Err: err}
	}
}

func (m Model) applyShared(msg SharedMsg) Model {
	if msg.editor != m.id {
		return m
	}
	if msg.Err != nil {
		m.shareErr = msg.Err
		m.cfg.Logger.Warn("share failed", "err", msg.Err)
		return m
	}
	if m.cfg.ReadOnly {
		return m
	}
	if err := share.InsertAll(m.buf, msg.At, msg.Words); err != nil {
		m.shareErr = err
		m.cfg.Logger.Warn("share insert failed", "err", err)
		return m
	}
	m.shareErr = nil
	m.cfg.Logger.Debug("shared", "words", len(msg.Words), "at", msg.At.String())
	return m
}
