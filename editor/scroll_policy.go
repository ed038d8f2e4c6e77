package editor

// ScrollPolicy controls whether the viewport may move away from the cursor.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the mouse wheel scroll the viewport without
	// moving the cursor.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores mouse scrolling. The viewport only moves
	// to keep the cursor visible.
	ScrollFollowCursorOnly
)
