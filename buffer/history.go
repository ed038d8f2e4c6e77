package buffer

import "github.com/iw2rmb/splice/internal/grapheme"

type bufferSnapshot struct {
	clusters []string
	spans    []Span
	sel      selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		clusters: append([]string(nil), b.clusters...),
		spans:    append([]Span(nil), b.spans...),
		sel:      b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.clusters = append([]string(nil), s.clusters...)
	b.spans = append([]Span(nil), s.spans...)
	b.sel = s.sel
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.jump(cur, prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.jump(cur, next)
	return true
}

func (b *Buffer) jump(from, to bufferSnapshot) {
	change := b.beginChange(ChangeSourceHistory)
	b.restore(to)
	b.version++
	fromText, toText := grapheme.Join(from.clusters), grapheme.Join(to.clusters)
	if applied, ok := wholeDocumentEdit(fromText, toText, len(from.clusters), len(to.clusters)); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}
