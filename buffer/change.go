package buffer

import "slices"

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceHistory
)

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective edit in a change transaction.
// Span offsets are document offsets after the edit for InsertedSpans and
// before it for DroppedSpans. History jumps carry no spans.
type AppliedEdit struct {
	RangeBefore   Range
	RangeAfter    Range
	InsertText    string
	DeletedText   string
	InsertedSpans []Span
	DroppedSpans  []Span
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    int
	CursorAfter     int
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    int
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent effective text change. Cursor-only
// moves do not replace it.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	out := b.lastChange
	out.AppliedEdits = make([]AppliedEdit, len(b.lastChange.AppliedEdits))
	for i, e := range b.lastChange.AppliedEdits {
		e.InsertedSpans = slices.Clone(e.InsertedSpans)
		e.DroppedSpans = slices.Clone(e.DroppedSpans)
		out.AppliedEdits[i] = e
	}
	return out, true
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.sel.end,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.sel.end,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}

// wholeDocumentEdit describes a history jump as one replacement.
func wholeDocumentEdit(beforeText, afterText string, beforeLen, afterLen int) (AppliedEdit, bool) {
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: Range{Start: 0, End: beforeLen},
		RangeAfter:  Range{Start: 0, End: afterLen},
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}
