package share

import (
	"image"

	"github.com/iw2rmb/splice/buffer"
)

// PlaceholderText stands in for a shared file inside the text. It is a
// no-break space: plain spaces confuse some input methods, and a no-break
// space is not a word separator for spacing purposes.
const PlaceholderText = "\u00a0"

// ImageSpan marks a placeholder whose thumbnail loaded.
type ImageSpan struct {
	Suri      Suri
	Thumbnail image.Image
}

// FileSpan marks a placeholder shown without a thumbnail.
type FileSpan struct {
	Suri Suri
}

// Placeholder returns the one-character text carrying suri. A nil thumb
// yields a FileSpan.
func Placeholder(suri Suri, thumb image.Image) buffer.Spanned {
	var v any = FileSpan{Suri: suri}
	if thumb != nil {
		v = ImageSpan{Suri: suri, Thumbnail: thumb}
	}
	return buffer.Spanned{
		Text:  PlaceholderText,
		Spans: []buffer.Span{{Start: 0, End: 1, Value: v}},
	}
}

// SuriOf returns the shared URI behind a placeholder span value.
func SuriOf(v any) (Suri, bool) {
	switch s := v.(type) {
	case ImageSpan:
		return s.Suri, true
	case FileSpan:
		return s.Suri, true
	default:
		return Suri{}, false
	}
}

// Suris lists the shared URIs carried by spans, in order.
func Suris(spans []buffer.Span) []Suri {
	var out []Suri
	for _, sp := range spans {
		if s, ok := SuriOf(sp.Value); ok {
			out = append(out, s)
		}
	}
	return out
}
