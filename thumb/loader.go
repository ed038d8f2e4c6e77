// Package thumb loads, crops and caches thumbnails for shared files.
package thumb

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iw2rmb/splice"
	"github.com/iw2rmb/splice/internal/attempt"
)

// ErrCoolingDown is returned for remote URIs that failed recently.
var ErrCoolingDown = errors.New("thumb: failed recently, not retrying yet")

// Config configures a Loader.
type Config struct {
	// Box the thumbnail fits in.
	MaxWidth  int
	MaxHeight int

	CornerRadius int

	// MaxBytes caps the size of the source file. Zero means no cap.
	MaxBytes int64

	// MaxPixels caps width*height of the source frame, checked from the
	// header before decoding. Zero means the default, negative means no cap.
	MaxPixels int64

	// RequireTLS refuses plain http sources.
	RequireTLS bool

	Timeout   time.Duration
	UserAgent string

	// CacheDir holds finished thumbnails as PNG. Empty disables the disk
	// cache.
	CacheDir string

	// MemoryEntries bounds the in-memory cache. Negative disables it.
	MemoryEntries int
}

func DefaultConfig() Config {
	return Config{
		MaxWidth:      160,
		MaxHeight:     120,
		CornerRadius:  8,
		MaxBytes:      10 << 20,
		MaxPixels:     40_000_000,
		Timeout:       30 * time.Second,
		UserAgent:     splice.UserAgent(),
		MemoryEntries: 64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxWidth <= 0 {
		c.MaxWidth = d.MaxWidth
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = d.MaxHeight
	}
	if c.CornerRadius < 0 {
		c.CornerRadius = 0
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = d.MaxPixels
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.MemoryEntries == 0 {
		c.MemoryEntries = d.MemoryEntries
	}
	return c
}

// Loader loads thumbnails. It is safe for concurrent use and implements
// share.Thumbnailer.
type Loader struct {
	cfg      Config
	client   *http.Client
	attempts *attempt.Tracker
	log      *slog.Logger

	mem   *memCache
	disk  diskCache
	group singleflight.Group
}

// Options carries a Loader's collaborators. All fields are optional.
type Options struct {
	Attempts *attempt.Tracker
	Client   *http.Client
	Logger   *slog.Logger
}

func New(cfg Config, opt Options) *Loader {
	cfg = cfg.withDefaults()

	client := opt.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if client.CheckRedirect == nil {
		c := *client
		c.CheckRedirect = checkRedirect
		client = &c
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Loader{
		cfg:      cfg,
		client:   client,
		attempts: opt.Attempts,
		log:      log.With("component", "thumb"),
		mem:      newMemCache(cfg.MemoryEntries),
		disk:     diskCache{dir: cfg.CacheDir},
	}
}

// Load returns the thumbnail for uri. Concurrent loads of the same uri
// share one fetch.
func (l *Loader) Load(ctx context.Context, uri string) (image.Image, error) {
	key := cacheKey(uri, l.cfg.MaxWidth, l.cfg.MaxHeight, l.cfg.CornerRadius)
	if img, ok := l.mem.get(key); ok {
		return img, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		return l.load(ctx, key, uri)
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

func (l *Loader) load(ctx context.Context, key, uri string) (image.Image, error) {
	if img, err := l.disk.get(key); err == nil {
		l.mem.put(key, img)
		return img, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.log.Warn("disk cache read failed", "uri", uri, "err", err)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, attempt.Errorf(attempt.MalformedURL, "%v", err)
	}
	track := isRemote(u) && l.attempts != nil
	if track && l.attempts.Info(uri) == attempt.FailedRecently {
		return nil, fmt.Errorf("%s: %w", u.Redacted(), ErrCoolingDown)
	}

	src, err := l.fetch(ctx, uri, u)
	if track && ctx.Err() == nil {
		code, perr := l.attempts.RecordResult(ctx, uri, err)
		if perr != nil {
			l.log.Warn("attempt not persisted", "uri", u.Redacted(), "err", perr)
		}
		if err != nil {
			l.log.Info("fetch failed", "uri", u.Redacted(), "code", int(code), "err", err)
		}
	}
	if err != nil {
		return nil, err
	}

	img := Thumbnail(src, l.cfg.MaxWidth, l.cfg.MaxHeight, l.cfg.CornerRadius)
	l.mem.put(key, img)
	if err := l.disk.put(key, img); err != nil {
		l.log.Warn("disk cache write failed", "uri", uri, "err", err)
	}
	return img, nil
}
