package buffer

import (
	"errors"

	"github.com/iw2rmb/splice/internal/grapheme"
)

// ErrOutOfRange is returned when an offset or range falls outside the
// document. Mutations never clamp silently.
var ErrOutOfRange = errors.New("buffer: offset out of range")

// Range is a half-open cluster range [Start, End).
type Range struct {
	Start int
	End   int
}

// TextEdit replaces the clusters in Range with Text.
type TextEdit struct {
	Range Range
	Text  Spanned
}

// Span attaches Value to the clusters in [Start, End). Spans are
// exclusive at both ends: text inserted exactly at Start or End is not
// covered.
type Span struct {
	Start int
	End   int
	Value any
}

// Spanned is text with spans whose offsets are relative to Text.
type Spanned struct {
	Text  string
	Spans []Span
}

// Plain wraps s without spans.
func Plain(s string) Spanned { return Spanned{Text: s} }

// Len returns the cluster count of the text.
func (s Spanned) Len() int { return grapheme.Count(s.Text) }

// First returns the first cluster, or "" for empty text.
func (s Spanned) First() string {
	cs := grapheme.Split(s.Text)
	if len(cs) == 0 {
		return ""
	}
	return cs[0]
}

// Last returns the last cluster, or "" for empty text.
func (s Spanned) Last() string {
	cs := grapheme.Split(s.Text)
	if len(cs) == 0 {
		return ""
	}
	return cs[len(cs)-1]
}

// Concat appends other to s, shifting other's spans. The shift is taken
// from the joined text, so a leading combining mark in other that merges
// into s's last cluster keeps other's spans on the right clusters.
func (s Spanned) Concat(other Spanned) Spanned {
	out := Spanned{
		Text:  s.Text + other.Text,
		Spans: make([]Span, 0, len(s.Spans)+len(other.Spans)),
	}
	off := out.Len() - other.Len()
	out.Spans = append(out.Spans, s.Spans...)
	for _, sp := range other.Spans {
		out.Spans = append(out.Spans, Span{Start: sp.Start + off, End: sp.End + off, Value: sp.Value})
	}
	return out
}

func NormalizeRange(r Range) Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) Len() int {
	r = NormalizeRange(r)
	return r.End - r.Start
}

// Pos is a (row, col) location used for display. Rows are split on "\n";
// Col counts clusters within the row.
type Pos struct {
	Row int
	Col int
}
