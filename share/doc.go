// Package share inserts shared content into an editable buffer.
//
// Text and media placeholders are spliced at the cursor or at the end of
// the buffer, adding or collapsing the spaces around them so words never
// glue together and spaces never double up. Media objects resolve their
// thumbnails in the background; the splice itself runs once, on the
// goroutine that owns the buffer.
package share
