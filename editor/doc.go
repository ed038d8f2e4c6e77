// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// The Bubble Tea update loop owns the buffer. Shared content is resolved in
// a command and spliced in when its message comes back, so a share lands in
// the text all at once or not at all.
package editor
