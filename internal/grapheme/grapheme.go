// Package grapheme wraps uniseg and go-runewidth for cluster-accurate text
// handling.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters.
func Join(clusters []string) string {
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return clusters[0]
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the terminal cell width of text. Clusters that runewidth
// reports as zero-width fall back to uniseg's estimate.
func Width(text string) int {
	w := runewidth.StringWidth(text)
	if w == 0 && text != "" {
		w = uniseg.StringWidth(text)
	}
	if w < 0 {
		return 0
	}
	return w
}

// Truncate shortens text to at most width cells, ending with tail when cut.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	tw := Width(tail)
	if tw >= width {
		return tail
	}

	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		cw := Width(c)
		if used+cw > width-tw {
			break
		}
		sb.WriteString(c)
		used += cw
	}
	sb.WriteString(tail)
	return sb.String()
}

// IsSpace reports whether every rune in cluster is Unicode whitespace.
// A no-break space counts, which matters for word motion but not for
// insertion spacing (see share).
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
