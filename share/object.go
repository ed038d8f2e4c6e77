package share

import (
	"context"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iw2rmb/splice/buffer"
)

// Object is something that can be shared into a buffer.
type Object interface {
	// Words blocks until every piece of content is ready. It runs off the
	// goroutine that owns the buffer.
	Words(ctx context.Context) ([]buffer.Spanned, error)
}

// Thumbnailer loads a thumbnail for a URI. thumb.Loader implements it.
type Thumbnailer interface {
	Load(ctx context.Context, uri string) (image.Image, error)
}

// TextObject shares plain text.
type TextObject struct {
	Text string
}

func (o TextObject) Words(context.Context) ([]buffer.Spanned, error) {
	if o.Text == "" {
		return nil, ErrEmptyContent
	}
	return []buffer.Spanned{buffer.Plain(o.Text)}, nil
}

// URIsObject shares files as placeholders, one per URI.
type URIsObject struct {
	Suris      []Suri
	Thumbnails Thumbnailer
	Logger     *slog.Logger

	// Parallel bounds concurrent thumbnail loads. Zero means 4.
	Parallel int
}

// Words loads all thumbnails and returns one placeholder per URI, in
// order. A failed load degrades that placeholder to a FileSpan; only
// cancellation fails the whole batch. Nothing is returned until every load
// has finished.
func (o URIsObject) Words(ctx context.Context) ([]buffer.Spanned, error) {
	thumbs, err := o.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]buffer.Spanned, len(o.Suris))
	for i, s := range o.Suris {
		words[i] = Placeholder(s, thumbs[i])
	}
	return words, nil
}

func (o URIsObject) loadAll(ctx context.Context) ([]image.Image, error) {
	thumbs := make([]image.Image, len(o.Suris))
	if o.Thumbnails == nil {
		return thumbs, ctx.Err()
	}

	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	limit := o.Parallel
	if limit <= 0 {
		limit = 4
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, s := range o.Suris {
		g.Go(func() error {
			img, err := o.Thumbnails.Load(ctx, s.URI)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Debug("thumbnail unavailable", "uri", s.URI, "err", err)
				return nil
			}
			thumbs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return thumbs, nil
}
