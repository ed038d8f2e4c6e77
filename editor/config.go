package editor

import "log/slog"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	TabWidth     int

	// ChipWidth caps the file name shown inside a placeholder chip, in
	// cells. Zero means 16.
	ChipWidth int

	// KeyMap defaults to DefaultKeyMap when it has no bindings.
	KeyMap KeyMap

	ReadOnly  bool
	Clipboard Clipboard

	ScrollPolicy ScrollPolicy

	// OnChange runs after every update that changed the buffer version.
	OnChange func(ChangeEvent)

	// Forwarded to buffer.Options.
	HistoryLimit int

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.ChipWidth <= 0 {
		c.ChipWidth = 16
	}
	if len(c.KeyMap.Left.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
