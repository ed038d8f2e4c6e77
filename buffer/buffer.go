package buffer

import (
	"fmt"

	"github.com/iw2rmb/splice/internal/grapheme"
)

type Options struct {
	HistoryLimit int // default: 1000
}

// selectionState keeps the raw anchor and end so direction survives. The
// cursor is always end.
type selectionState struct {
	anchor int
	end    int
}

// Buffer is the document state: clusters, spans, cursor and selection.
//
// A Buffer is not safe for concurrent use. One goroutine owns it.
type Buffer struct {
	clusters []string
	spans    []Span
	version  uint64

	sel selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		clusters: grapheme.Split(text),
		opt:      opt,
	}
}

func (b *Buffer) Text() string { return grapheme.Join(b.clusters) }

// Len returns the document length in clusters.
func (b *Buffer) Len() int { return len(b.clusters) }

// At returns the cluster at off.
func (b *Buffer) At(off int) (string, bool) {
	if off < 0 || off >= len(b.clusters) {
		return "", false
	}
	return b.clusters[off], true
}

// Slice returns the text of r.
func (b *Buffer) Slice(r Range) (string, error) {
	r = NormalizeRange(r)
	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return grapheme.Join(b.clusters[r.Start:r.End]), nil
}

// Spans returns a copy of all spans ordered by start.
func (b *Buffer) Spans() []Span {
	return append([]Span(nil), b.spans...)
}

// SpansIn returns the spans intersecting r. An empty r matches spans that
// strictly contain its offset.
func (b *Buffer) SpansIn(r Range) []Span {
	r = NormalizeRange(r)
	var out []Span
	for _, sp := range b.spans {
		if r.IsEmpty() {
			if sp.Start < r.Start && r.Start < sp.End {
				out = append(out, sp)
			}
			continue
		}
		if sp.Start < r.End && r.Start < sp.End {
			out = append(out, sp)
		}
	}
	return out
}

func (b *Buffer) Version() uint64 { return b.version }

// Cursor returns the cursor offset, which is the selection end.
func (b *Buffer) Cursor() int { return b.sel.end }

// SelectionEnd is Cursor under the name text hosts use.
func (b *Buffer) SelectionEnd() int { return b.sel.end }

// SetCursor collapses the selection at off.
func (b *Buffer) SetCursor(off int) error {
	if off < 0 || off > len(b.clusters) {
		return fmt.Errorf("set cursor %d in [0,%d]: %w", off, len(b.clusters), ErrOutOfRange)
	}
	next := selectionState{anchor: off, end: off}
	if next == b.sel {
		return nil
	}
	b.sel = next
	b.version++
	return nil
}

// Selection returns the normalized selection, if non-empty.
func (b *Buffer) Selection() (Range, bool) {
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the selection anchor/end without normalization.
//
// This is useful for UI layers that need to preserve the selection direction
// while still treating empty selections as inactive.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

// SetSelection sets anchor to r.Start and the cursor to r.End.
func (b *Buffer) SetSelection(r Range) error {
	if err := b.checkRange(NormalizeRange(r)); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	next := selectionState{anchor: r.Start, end: r.End}
	if next == b.sel {
		return nil
	}
	b.sel = next
	b.version++
	return nil
}

func (b *Buffer) ClearSelection() {
	if b.sel.anchor == b.sel.end {
		return
	}
	b.sel.anchor = b.sel.end
	b.version++
}

func (b *Buffer) checkRange(r Range) error {
	if r.Start < 0 || r.End > len(b.clusters) || r.Start > r.End {
		return fmt.Errorf("range [%d,%d) in [0,%d]: %w", r.Start, r.End, len(b.clusters), ErrOutOfRange)
	}
	return nil
}
