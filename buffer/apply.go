package buffer

import "fmt"

// Apply applies a sequence of text edits in order. Each edit's range is
// interpreted against the buffer state at the time that edit is applied.
//
// Semantics:
//   - An out-of-range edit rolls back every earlier edit of the call and
//     returns an error wrapping ErrOutOfRange.
//   - Empty range + non-empty text inserts.
//   - Cursor moves to the end of the last applied (effective) edit.
//   - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) error {
	if len(edits) == 0 {
		return nil
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	anyChanged := false
	lastCursor := b.sel.end

	for i, e := range edits {
		r := NormalizeRange(e.Range)
		if err := b.checkRange(r); err != nil {
			b.restore(prev)
			return fmt.Errorf("apply edit %d: %w", i, err)
		}
		applied, changed := b.replaceRange(r, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = applied.RangeAfter.End
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		return nil
	}

	b.sel = selectionState{anchor: lastCursor, end: lastCursor}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
	return nil
}
