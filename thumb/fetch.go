package thumb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	// Decoders for every format a thumbnail may come from.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/iw2rmb/splice/internal/attempt"
)

func isRemote(u *url.URL) bool {
	s := strings.ToLower(u.Scheme)
	return s == "http" || s == "https"
}

func (l *Loader) fetch(ctx context.Context, uri string, u *url.URL) (image.Image, error) {
	switch strings.ToLower(u.Scheme) {
	case "":
		return l.openLocal(uri)
	case "file":
		return l.openLocal(u.Path)
	case "http":
		if l.cfg.RequireTLS {
			return nil, attempt.Errorf(attempt.SSLRequired, "%s", u.Redacted())
		}
		return l.fetchRemote(ctx, u)
	case "https":
		return l.fetchRemote(ctx, u)
	default:
		return nil, attempt.Errorf(attempt.MalformedURL, "unsupported scheme %q", u.Scheme)
	}
}

func (l *Loader) openLocal(p string) (image.Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if l.cfg.MaxBytes > 0 && fi.Size() > l.cfg.MaxBytes {
		return nil, attempt.Errorf(attempt.UnacceptableFileSize, "%s: %d bytes", p, fi.Size())
	}
	return l.decode(f, p)
}

func (l *Loader) fetchRemote(ctx context.Context, u *url.URL) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, attempt.Errorf(attempt.MalformedURL, "%v", err)
	}
	req.Header.Set("User-Agent", l.cfg.UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &attempt.CodeError{
			Code: attempt.Code(resp.StatusCode),
			Err:  fmt.Errorf("GET %s: %s", u.Redacted(), resp.Status),
		}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || !strings.HasPrefix(mt, "image/") {
			return nil, attempt.Errorf(attempt.UnacceptableMediaType, "%s: %q", u.Redacted(), ct)
		}
	}

	limit := l.cfg.MaxBytes
	if limit > 0 && resp.ContentLength > limit {
		return nil, attempt.Errorf(attempt.UnacceptableFileSize, "%s: %d bytes", u.Redacted(), resp.ContentLength)
	}
	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Redacted(), err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, attempt.Errorf(attempt.UnacceptableFileSize, "%s: more than %d bytes", u.Redacted(), limit)
	}

	return l.decode(bytes.NewReader(data), u.Redacted())
}

// decode reads the image header first and refuses frames larger than
// MaxPixels before any pixel memory is allocated.
func (l *Loader) decode(r io.ReadSeeker, name string) (image.Image, error) {
	if limit := l.cfg.MaxPixels; limit > 0 {
		c, _, err := image.DecodeConfig(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if px := int64(c.Width) * int64(c.Height); px > limit {
			return nil, attempt.Errorf(attempt.UnacceptableFileSize, "%s: %dx%d pixels", name, c.Width, c.Height)
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind %s: %w", name, err)
		}
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// checkRedirect refuses redirects that leave http(s).
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	if !isRemote(req.URL) {
		return attempt.Errorf(attempt.RedirectToNullStrategy, "redirect to %s", req.URL.Redacted())
	}
	return nil
}
