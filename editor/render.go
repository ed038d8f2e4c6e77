package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/splice/buffer"
	"github.com/iw2rmb/splice/internal/grapheme"
	"github.com/iw2rmb/splice/share"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}
	st := m.cfg.Style

	n := m.buf.Len()
	cursor := m.buf.Cursor()
	cursorRow := m.buf.PosFromOffset(cursor).Row
	sel, selOK := m.buf.Selection()
	chips := placeholderIndex(m.buf.Spans())

	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(m.buf.RowCount())
	}

	var (
		out []string
		sb  strings.Builder
		row int
		col int
	)
	startRow := func() {
		if !m.cfg.ShowLineNums {
			return
		}
		numStyle := st.LineNum
		if m.focused && row == cursorRow {
			numStyle = st.LineNumActive
		}
		sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
		sb.WriteString(st.Gutter.Render(" "))
	}

	startRow()
	for off := 0; off <= n; off++ {
		hasCursor := m.focused && off == cursor
		if off == n {
			if hasCursor {
				sb.WriteString(st.Cursor.Render(" "))
			}
			break
		}

		c, _ := m.buf.At(off)
		if c == "\n" || c == "\r\n" {
			if hasCursor {
				sb.WriteString(st.Cursor.Render(" "))
			}
			out = append(out, sb.String())
			sb.Reset()
			row++
			col = 0
			startRow()
			continue
		}

		text, style := c, st.Text
		if v, ok := chips[off]; ok {
			text, style = m.chip(v)
		} else if c == "\t" {
			text = strings.Repeat(" ", tabAdvance(col, m.cfg.TabWidth))
		}
		switch {
		case hasCursor:
			style = st.Cursor
		case selOK && off >= sel.Start && off < sel.End:
			style = st.Selection.Inherit(style)
		}

		sb.WriteString(style.Render(text))
		col += grapheme.Width(text)
	}
	out = append(out, sb.String())

	return strings.Join(out, "\n")
}

// chip renders a placeholder as its bracketed file name.
func (m *Model) chip(v any) (string, lipgloss.Style) {
	suri, _ := share.SuriOf(v)
	name := suri.FileName
	if name == "" {
		name = "file"
	}
	text := "[" + grapheme.Truncate(name, m.cfg.ChipWidth, "…") + "]"
	if _, ok := v.(share.ImageSpan); ok {
		return text, m.cfg.Style.ImageChip
	}
	return text, m.cfg.Style.FileChip
}

// placeholderIndex maps the offset of every shared-file placeholder to its
// span value.
func placeholderIndex(spans []buffer.Span) map[int]any {
	var idx map[int]any
	for _, sp := range spans {
		if _, ok := share.SuriOf(sp.Value); !ok || sp.End-sp.Start != 1 {
			continue
		}
		if idx == nil {
			idx = make(map[int]any)
		}
		idx[sp.Start] = sp.Value
	}
	return idx
}

func gutterDigits(rows int) int {
	return len(strconv.Itoa(max(rows, 1)))
}

func tabAdvance(col, tabWidth int) int {
	if tabWidth <= 0 {
		return 1
	}
	return tabWidth - col%tabWidth
}
