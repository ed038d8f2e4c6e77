package editor

import (
	"github.com/iw2rmb/splice/buffer"
	"github.com/iw2rmb/splice/share"
)

type ChangeEvent struct {
	Version uint64
	Cursor  buffer.Pos
	Offset  int

	Selection struct {
		Range  buffer.Range
		Active bool
	}

	Text string

	// Attachments lists the shared files placed in the text, in order.
	Attachments []share.Suri

	// Detached lists the shared files the last change deleted from the
	// text. Undo can bring them back.
	Detached []share.Suri

	// Change is the last effective text change; cursor-only updates leave
	// HasChange false.
	Change    buffer.Change
	HasChange bool
}

func buildChangeEvent(b *buffer.Buffer, prevVersion uint64) ChangeEvent {
	off := b.Cursor()
	ev := ChangeEvent{
		Version:     b.Version(),
		Cursor:      b.PosFromOffset(off),
		Offset:      off,
		Text:        b.Text(),
		Attachments: share.Suris(b.Spans()),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	if ch, ok := b.LastChange(); ok && ch.VersionBefore >= prevVersion {
		ev.Change = ch
		ev.HasChange = true
		for _, e := range ch.AppliedEdits {
			ev.Detached = append(ev.Detached, share.Suris(e.DroppedSpans)...)
		}
	}
	return ev
}
