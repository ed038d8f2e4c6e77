package buffer

// RowCount returns the number of "\n"-separated rows (at least 1).
func (b *Buffer) RowCount() int {
	n := 1
	for _, c := range b.clusters {
		if c == "\n" || c == "\r\n" {
			n++
		}
	}
	return n
}

// PosFromOffset converts a cluster offset into a display position. Offsets
// outside the document are clamped; this is a read-only view helper.
func (b *Buffer) PosFromOffset(off int) Pos {
	off = min(max(off, 0), len(b.clusters))
	p := Pos{}
	for _, c := range b.clusters[:off] {
		if c == "\n" || c == "\r\n" {
			p.Row++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// OffsetFromPos converts a display position into a cluster offset. Rows
// past the end map to the document end; columns past a row end map to the
// row end.
func (b *Buffer) OffsetFromPos(p Pos) int {
	if p.Row < 0 {
		return 0
	}
	row, off := 0, 0
	for row < p.Row {
		if off == len(b.clusters) {
			return off
		}
		if c := b.clusters[off]; c == "\n" || c == "\r\n" {
			row++
		}
		off++
	}
	col := min(max(p.Col, 0), b.rowLenFrom(off))
	return off + col
}

// ByteOffset returns the UTF-8 byte offset of a cluster offset.
func (b *Buffer) ByteOffset(off int) (int, bool) {
	if off < 0 || off > len(b.clusters) {
		return 0, false
	}
	n := 0
	for _, c := range b.clusters[:off] {
		n += len(c)
	}
	return n, true
}

// OffsetFromByte converts a UTF-8 byte offset into a cluster offset. Byte
// offsets inside a cluster are rejected.
func (b *Buffer) OffsetFromByte(byteOff int) (int, bool) {
	if byteOff < 0 {
		return 0, false
	}
	n := 0
	for i, c := range b.clusters {
		if n == byteOff {
			return i, true
		}
		n += len(c)
		if n > byteOff {
			return 0, false
		}
	}
	if n == byteOff {
		return len(b.clusters), true
	}
	return 0, false
}

func (b *Buffer) rowLen(row int) int {
	return b.rowLenFrom(b.OffsetFromPos(Pos{Row: row}))
}

func (b *Buffer) rowLenFrom(start int) int {
	n := 0
	for i := start; i < len(b.clusters); i++ {
		if c := b.clusters[i]; c == "\n" || c == "\r\n" {
			break
		}
		n++
	}
	return n
}
