// Command splice opens an editor and shares text or files into it.
//
//	splice [-config path] [-at cursor|end] [-text "..."] [uri ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/splice"
	"github.com/iw2rmb/splice/editor"
	"github.com/iw2rmb/splice/internal/attempt"
	"github.com/iw2rmb/splice/internal/attempt/sqlite"
	"github.com/iw2rmb/splice/internal/config"
	"github.com/iw2rmb/splice/internal/logging"
	"github.com/iw2rmb/splice/share"
	"github.com/iw2rmb/splice/thumb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "splice:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath     = flag.String("config", config.Path(), "config file (toml, yaml or json)")
		at          = flag.String("at", "", "insert position: cursor or end (default from config)")
		text        = flag.String("text", "", "text to share")
		preloadOnly = flag.Bool("preload", false, "warm the thumbnail cache and exit")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(splice.Version())
		return nil
	}

	loader := config.NewLoader(*cfgPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	defer loader.Close()

	logFile, err := os.OpenFile(logPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sqlite.Open(cfg.Attempts.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker := attempt.New(store, attempt.Options{
		SuccessCooldown: cfg.SuccessCooldown(),
		Logger:          logger,
	})
	if err := tracker.Load(ctx); err != nil {
		logger.Warn("load attempts", "err", err)
	}
	if _, err := tracker.Prune(ctx, cfg.Retention()); err != nil {
		logger.Warn("prune attempts", "err", err)
	}

	thumbs := thumb.New(thumbConfig(cfg), thumb.Options{
		Attempts: tracker,
		Logger:   logger,
	})

	in := intentFromArgs(*text, flag.Args())
	if *preloadOnly {
		return share.Preload(ctx, thumbs, in)
	}

	insertAt := cfg.Share.InsertAt
	if *at != "" {
		insertAt = *at
	}
	pos, err := share.ParseInsertAt(insertAt)
	if err != nil {
		return err
	}

	var obj share.Object
	if len(in.Streams) > 0 || in.Text != "" {
		obj, err = share.FromIntent(in, thumbs)
		if err != nil {
			return err
		}
		if uo, ok := obj.(share.URIsObject); ok {
			uo.Parallel = cfg.Share.Parallel
			uo.Logger = logger
			obj = uo
		}
	}

	loader.OnChange(func(c *config.Config) {
		logger.Info("config changed; restart to apply", "path", *cfgPath)
	})
	if err := loader.Watch(); err != nil {
		logger.Warn("watch config", "err", err)
	} else {
		go func() {
			for err := range loader.Errors() {
				logger.Warn("reload config", "err", err)
			}
		}()
	}

	edCfg := editor.Config{
		ShowLineNums: true,
		Style:        editor.DefaultStyle(),
		HistoryLimit: cfg.Editor.HistoryLimit,
		Logger:       logger,
		OnChange: func(ev editor.ChangeEvent) {
			logger.Debug("buffer changed",
				"version", ev.Version,
				"offset", ev.Offset,
				"attachments", len(ev.Attachments))
		},
	}
	if editor.SystemClipboardAvailable() {
		edCfg.Clipboard = editor.SystemClipboard{}
	}

	m := app{
		ctx:    ctx,
		editor: editor.New(edCfg).SetSize(cfg.Editor.Width, cfg.Editor.Height),
		obj:    obj,
		at:     pos,
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config, f *os.File) (*slog.Logger, error) {
	lc := logging.DefaultConfig()
	var err error
	if lc.Level, err = logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	if lc.Format, err = logging.ParseFormat(cfg.Log.Format); err != nil {
		return nil, err
	}
	return logging.New(lc, f), nil
}

// logPath keeps the log out of the terminal the editor draws on.
func logPath() string {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return os.DevNull
	}
	return filepath.Join(dir, "splice.log")
}

func thumbConfig(cfg *config.Config) thumb.Config {
	tc := thumb.DefaultConfig()
	tc.MaxWidth = cfg.Thumbnail.MaxWidth
	tc.MaxHeight = cfg.Thumbnail.MaxHeight
	tc.CornerRadius = cfg.Thumbnail.CornerRadius
	tc.MaxBytes = cfg.Thumbnail.MaxBytes
	tc.MaxPixels = cfg.Thumbnail.MaxPixels
	tc.RequireTLS = cfg.Thumbnail.RequireTLS
	tc.Timeout = cfg.Timeout()
	tc.CacheDir = cfg.Thumbnail.CacheDir
	tc.MemoryEntries = cfg.Thumbnail.MemoryEntries
	return tc
}

func intentFromArgs(text string, uris []string) share.Intent {
	in := share.Intent{Action: share.ActionSend, Text: text, Streams: uris}
	if len(uris) > 1 {
		in.Action = share.ActionSendMultiple
	}
	return in
}

type app struct {
	ctx    context.Context
	editor editor.Model
	obj    share.Object
	at     share.InsertAt
}

func (m app) Init() tea.Cmd {
	if m.obj == nil {
		return nil
	}
	return m.editor.Share(m.ctx, m.obj, m.at)
}

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+q" {
		return m, tea.Quit
	}
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		// One row for the status line.
		msg = tea.WindowSizeMsg{Width: ws.Width, Height: max(ws.Height-1, 0)}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m app) View() string {
	status := "ctrl+q quit"
	if err := m.editor.ShareErr(); err != nil && !errors.Is(err, context.Canceled) {
		status = "share failed: " + err.Error()
	}
	return m.editor.View() + "\n" + status
}
