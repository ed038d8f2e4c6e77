package buffer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/iw2rmb/splice/internal/grapheme"
)

// Replace replaces the clusters in [from, to) with s in one mutation.
//
// Selection offsets before from stay put, offsets at or after to shift by
// the length delta, and offsets inside the replaced range (or equal to
// from when the range is empty) move to the end of the inserted text.
// Spans shift the same way; spans whose whole range is deleted are dropped.
func (b *Buffer) Replace(from, to int, s Spanned) error {
	r := Range{Start: from, End: to}
	if err := b.checkRange(r); err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	applied, changed := b.replaceRange(r, s)
	if !changed {
		return nil
	}

	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
	return nil
}

// InsertText inserts text at the cursor, or replaces the active selection,
// and leaves the cursor after the inserted text.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		if _, ok := b.Selection(); ok {
			b.DeleteSelection()
		}
		return
	}
	b.insertCollapsing(Plain(s))
}

// InsertSpanned is InsertText for text carrying spans.
func (b *Buffer) InsertSpanned(s Spanned) {
	if s.Text == "" {
		return
	}
	b.insertCollapsing(s)
}

func (b *Buffer) insertCollapsing(s Spanned) {
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.sel.end, End: b.sel.end}
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	applied, changed := b.replaceRange(r, s)
	if !changed {
		return
	}

	end := applied.RangeAfter.End
	b.sel = selectionState{anchor: end, end: end}
	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}
	cur := b.sel.end
	if cur == 0 {
		return
	}
	b.deleteCollapsing(Range{Start: cur - 1, End: cur})
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}
	cur := b.sel.end
	if cur == len(b.clusters) {
		return
	}
	b.deleteCollapsing(Range{Start: cur, End: cur + 1})
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.deleteCollapsing(r)
}

func (b *Buffer) deleteCollapsing(r Range) {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	applied, changed := b.replaceRange(r, Spanned{})
	if !changed {
		return
	}
	b.sel = selectionState{anchor: r.Start, end: r.Start}
	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

// replaceRange splices s into r. r must already be validated.
func (b *Buffer) replaceRange(r Range, s Spanned) (applied AppliedEdit, changed bool) {
	ins := grapheme.Split(s.Text)
	if r.IsEmpty() && len(ins) == 0 {
		return AppliedEdit{}, false
	}

	deleted := grapheme.Join(b.clusters[r.Start:r.End])
	if deleted == s.Text && len(s.Spans) == 0 {
		return AppliedEdit{}, false
	}

	out := make([]string, 0, len(b.clusters)-r.Len()+len(ins))
	out = append(out, b.clusters[:r.Start]...)
	out = append(out, ins...)
	out = append(out, b.clusters[r.End:]...)
	b.clusters = out

	n := len(ins)
	var dropped, inserted []Span
	b.spans, dropped = shiftSpans(b.spans, r, n)
	for _, sp := range s.Spans {
		if sp.Start < 0 || sp.End > n || sp.Start >= sp.End {
			continue
		}
		inserted = append(inserted, Span{Start: r.Start + sp.Start, End: r.Start + sp.End, Value: sp.Value})
	}
	b.spans = append(b.spans, inserted...)
	sortSpans(b.spans)

	b.sel = selectionState{
		anchor: shiftOffset(b.sel.anchor, r, n),
		end:    shiftOffset(b.sel.end, r, n),
	}

	return AppliedEdit{
		RangeBefore:   r,
		RangeAfter:    Range{Start: r.Start, End: r.Start + n},
		InsertText:    s.Text,
		DeletedText:   deleted,
		InsertedSpans: inserted,
		DroppedSpans:  dropped,
	}, true
}

func shiftOffset(off int, r Range, n int) int {
	switch {
	case off < r.Start:
		return off
	case off >= r.End:
		return off + n - r.Len()
	default:
		return r.Start + n
	}
}

// shiftSpans moves spans across the replacement of r by n clusters and
// returns the kept spans and the ones the edit swallowed whole.
func shiftSpans(spans []Span, r Range, n int) (kept, dropped []Span) {
	if len(spans) == 0 {
		return spans, nil
	}
	delta := n - r.Len()
	kept = spans[:0]
	for _, sp := range spans {
		switch {
		case sp.End <= r.Start:
		case sp.Start >= r.End:
			sp.Start += delta
			sp.End += delta
		default:
			start, end := sp.Start, sp.End
			if start >= r.Start {
				start = r.Start + n
			}
			if end > r.End {
				end += delta
			} else {
				end = r.Start
			}
			if start >= end {
				dropped = append(dropped, sp)
				continue
			}
			sp.Start, sp.End = start, end
		}
		kept = append(kept, sp)
	}
	return kept, dropped
}

func sortSpans(spans []Span) {
	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}
