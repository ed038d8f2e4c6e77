// Package buffer implements the grapheme-accurate document model for splice.
//
// The document is a flat sequence of grapheme clusters. Offsets are 0-based
// cluster indexes; ranges are half-open [Start, End). Spans attach
// out-of-band values to cluster ranges and move with edits.
package buffer
