package share

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/splice/buffer"
)

// ErrEmptyContent is returned when asked to insert nothing.
var ErrEmptyContent = errors.New("share: empty content")

// InsertAt selects the insertion point.
type InsertAt uint8

const (
	// CurrentPosition inserts at the selection end.
	CurrentPosition InsertAt = iota
	// End inserts after the last character.
	End
)

func (a InsertAt) String() string {
	switch a {
	case CurrentPosition:
		return "cursor"
	case End:
		return "end"
	default:
		return fmt.Sprintf("InsertAt(%d)", uint8(a))
	}
}

// ParseInsertAt parses "cursor" or "end".
func ParseInsertAt(s string) (InsertAt, error) {
	switch s {
	case "cursor", "current":
		return CurrentPosition, nil
	case "end":
		return End, nil
	default:
		return 0, fmt.Errorf("share: unknown insert position %q", s)
	}
}

// Editable is the text host an insertion mutates. *buffer.Buffer
// implements it.
type Editable interface {
	Len() int
	SelectionEnd() int
	At(off int) (string, bool)
	Replace(from, to int, s buffer.Spanned) error
	SetCursor(off int) error
}

// Insertion is the outcome of planning one insert: replace [From, To) with
// Text, then, when MoveCursor is set, put the cursor at Cursor.
type Insertion struct {
	From, To   int
	Text       buffer.Spanned
	MoveCursor bool
	Cursor     int
}

// space is the only character that separates words for insertion purposes.
// A no-break space placeholder is not a space.
const space = " "

// Plan decides how to splice word into a document at pos. at returns the
// cluster at an offset inside [0, n).
func Plan(n, pos int, at func(int) string, word buffer.Spanned) (Insertion, error) {
	if word.Text == "" {
		return Insertion{}, ErrEmptyContent
	}
	if pos < 0 || pos > n {
		return Insertion{}, fmt.Errorf("insert at %d in [0,%d]: %w", pos, n, buffer.ErrOutOfRange)
	}

	startsWithSpace := word.First() == space
	endsWithSpace := word.Last() == space

	var before, after string
	if pos > 0 {
		before = at(pos - 1)
	}
	if pos < n {
		after = at(pos)
	}
	spaceBefore := pos > 0 && before == space
	nonSpaceBefore := pos > 0 && before != space
	spaceAfter := pos < n && after == space
	nonSpaceAfter := pos < n && after != space

	prepend := nonSpaceBefore && !startsWithSpace
	appendSpace := nonSpaceAfter && !endsWithSpace
	collapseBefore := spaceBefore && startsWithSpace
	collapseAfter := spaceAfter && endsWithSpace

	text := word
	if prepend {
		text = buffer.Plain(space).Concat(text)
	}
	if appendSpace {
		text = text.Concat(buffer.Plain(space))
	}

	from, to := pos, pos
	if collapseBefore {
		from = pos - 1
	}
	if collapseAfter {
		to = pos + 1
	}

	ins := Insertion{From: from, To: to, Text: text}
	if pos < to {
		ins.MoveCursor = true
		ins.Cursor = from + text.Len()
	}
	return ins, nil
}

// InsertAddingSpacesAsNeeded splices word into e at the anchor, padding it
// with a space where it would touch a non-space character and collapsing a
// boundary space the word already supplies. It returns the cursor after
// the insertion.
//
// The text change is a single Replace call. Must run on the goroutine that
// owns e.
func InsertAddingSpacesAsNeeded(e Editable, at InsertAt, word buffer.Spanned) (int, error) {
	n := e.Len()
	pos := n
	if at == CurrentPosition {
		pos = e.SelectionEnd()
	}

	ins, err := Plan(n, pos, func(off int) string {
		c, _ := e.At(off)
		return c
	}, word)
	if err != nil {
		return e.SelectionEnd(), err
	}

	if err := e.Replace(ins.From, ins.To, ins.Text); err != nil {
		return e.SelectionEnd(), fmt.Errorf("insert: %w", err)
	}
	if ins.MoveCursor {
		if err := e.SetCursor(ins.Cursor); err != nil {
			return e.SelectionEnd(), fmt.Errorf("insert: %w", err)
		}
	}
	return e.SelectionEnd(), nil
}

// InsertAll inserts words one after another at the anchor.
func InsertAll(e Editable, at InsertAt, words []buffer.Spanned) error {
	for i, w := range words {
		if _, err := InsertAddingSpacesAsNeeded(e, at, w); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}
