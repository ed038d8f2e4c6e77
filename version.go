// Package splice inserts shared text and media placeholders into editable
// buffers. See the buffer, share, thumb and editor packages.
package splice

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the embedded SemVer string without the leading `v`.
func Version() string {
	v := strings.TrimSpace(embeddedVersion)
	if !semverRE.MatchString(v) {
		return "0.0.0-dev"
	}
	return v
}

// UserAgent is sent by remote thumbnail fetches.
func UserAgent() string {
	return "splice/" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
