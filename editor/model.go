package editor

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/splice/buffer"
)

var nextID atomic.Uint64

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	id  uint64
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model

	lastBufVersion uint64
	lastCursor     int

	// shareErr is the error of the last failed share, if any.
	shareErr error
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		id:       nextID.Add(1),
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

// Buffer returns the model's buffer. Mutate it only from the update loop.
func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// ShareErr returns the error of the most recent failed share.
func (m Model) ShareErr() error { return m.shareErr }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		if m.cfg.ScrollPolicy == ScrollAllowManual {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		// The host may have mutated the buffer outside of the editor.
		m.syncFromBuffer()
		return m, cmd
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case SharedMsg:
		m = m.applyShared(msg)
	}

	if m.syncFromBuffer() {
		m.followCursor()
	}
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// syncFromBuffer rebuilds the view and fires OnChange when the buffer
// changed since the last sync. It reports whether anything changed.
func (m *Model) syncFromBuffer() bool {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	prev := m.lastBufVersion
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	if m.cfg.OnChange != nil && ver != prev {
		m.cfg.OnChange(buildChangeEvent(m.buf, prev))
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	row := m.buf.PosFromOffset(m.buf.Cursor()).Row
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
