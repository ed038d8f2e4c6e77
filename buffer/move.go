package buffer

import "github.com/iw2rmb/splice/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, keeps the selection anchor; if false collapses the selection
}

func (b *Buffer) Move(m Move) {
	prev := b.sel
	cur := b.moveCursor(prev.end, m)

	next := selectionState{anchor: cur, end: cur}
	if m.Extend {
		next.anchor = prev.anchor
	}
	if next == prev {
		return
	}
	b.sel = next
	b.version++
}

func (b *Buffer) moveCursor(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return max(off-1, 0)
	case DirRight:
		return min(off+1, len(b.clusters))
	case DirUp, DirDown, DirHome, DirEnd:
		return b.moveLine(off, dir)
	default:
		return off
	}
}

// Word boundary rules: skip whitespace, then skip non-whitespace.
func (b *Buffer) moveWord(off int, dir MoveDir) int {
	i := off
	switch dir {
	case DirLeft:
		for i > 0 && grapheme.IsSpace(b.clusters[i-1]) {
			i--
		}
		for i > 0 && !grapheme.IsSpace(b.clusters[i-1]) {
			i--
		}
	case DirRight:
		for i < len(b.clusters) && grapheme.IsSpace(b.clusters[i]) {
			i++
		}
		for i < len(b.clusters) && !grapheme.IsSpace(b.clusters[i]) {
			i++
		}
	default:
		return b.moveLine(off, dir)
	}
	return i
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	p := b.PosFromOffset(off)
	switch dir {
	case DirHome:
		return b.OffsetFromPos(Pos{Row: p.Row})
	case DirEnd:
		return b.OffsetFromPos(Pos{Row: p.Row, Col: b.rowLen(p.Row)})
	case DirUp:
		if p.Row == 0 {
			return off
		}
		return b.OffsetFromPos(Pos{Row: p.Row - 1, Col: p.Col})
	case DirDown:
		if p.Row == b.RowCount()-1 {
			return off
		}
		return b.OffsetFromPos(Pos{Row: p.Row + 1, Col: p.Col})
	default:
		return b.moveGrapheme(off, dir)
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return len(b.clusters)
	default:
		return off
	}
}
