package share

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedScheme is returned for URIs that are neither local files
// nor http(s).
var ErrUnsupportedScheme = errors.New("share: unsupported uri scheme")

// Suri is a shared URI with the metadata needed to show and upload it.
type Suri struct {
	ID        string
	URI       string
	FileName  string
	MediaType string
	Size      int64 // -1 when unknown
}

// IsImage reports whether the media type is image/*.
func (s Suri) IsImage() bool { return strings.HasPrefix(s.MediaType, "image/") }

// IsRemote reports whether the URI is fetched over http(s).
func (s Suri) IsRemote() bool {
	return strings.HasPrefix(s.URI, "http://") || strings.HasPrefix(s.URI, "https://")
}

// SuriFromURI resolves uri. Local paths and file:// URIs must exist.
func SuriFromURI(uri string) (Suri, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Suri{}, fmt.Errorf("parse %q: %w", uri, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "", "file":
		p := uri
		if u.Scheme != "" {
			p = u.Path
		}
		return localSuri(uri, p)
	case "http", "https":
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			name = u.Host
		}
		return Suri{
			ID:        uuid.NewString(),
			URI:       uri,
			FileName:  name,
			MediaType: mediaTypeByName(name),
			Size:      -1,
		}, nil
	default:
		return Suri{}, fmt.Errorf("%q: %w", uri, ErrUnsupportedScheme)
	}
}

// SurisFromURIs resolves every uri, failing on the first error.
func SurisFromURIs(uris []string) ([]Suri, error) {
	out := make([]Suri, 0, len(uris))
	for _, uri := range uris {
		s, err := SuriFromURI(uri)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func localSuri(uri, p string) (Suri, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return Suri{}, fmt.Errorf("stat %s: %w", p, err)
	}
	if fi.IsDir() {
		return Suri{}, fmt.Errorf("%s: is a directory", p)
	}

	mt := mediaTypeByName(fi.Name())
	if mt == "application/octet-stream" {
		mt = sniffMediaType(p)
	}
	return Suri{
		ID:        uuid.NewString(),
		URI:       uri,
		FileName:  filepath.Base(p),
		MediaType: mt,
		Size:      fi.Size(),
	}, nil
}

func mediaTypeByName(name string) string {
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mt == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

func sniffMediaType(p string) string {
	f, err := os.Open(p)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "application/octet-stream"
	}
	mt := http.DetectContentType(head[:n])
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}
