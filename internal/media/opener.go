package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shortsgen/backend/internal/models"
)

// ErrUnsupportedMedia indicates the reference uses a scheme the opener cannot read.
var ErrUnsupportedMedia = errors.New("unsupported media reference")

// ObjectReader reads objects from a bucket store.
type ObjectReader interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
}

// Payload is an opened media asset. Callers must close Body.
type Payload struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Opener resolves media references to readable payloads.
type Opener struct {
	client  *http.Client
	objects ObjectReader
}

// NewOpener constructs an Opener. objects may be nil when no object store is configured, in which
// case s3:// references are rejected.
func NewOpener(client *http.Client, objects ObjectReader) *Opener {
	if client == nil {
		client = http.DefaultClient
	}
	return &Opener{client: client, objects: objects}
}

// Open returns the payload behind ref. http(s) references are fetched with GET and
// s3://bucket/key references are read from the object store.
func (o *Opener) Open(ctx context.Context, ref models.MediaReference) (Payload, error) {
	parsed, err := url.Parse(ref.URL)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return o.openHTTP(ctx, ref)
	case "s3":
		return o.openObject(ctx, parsed, ref)
	default:
		return Payload{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedMedia, parsed.Scheme)
	}
}

func (o *Opener) openHTTP(ctx context.Context, ref models.MediaReference) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("build media request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("fetch media: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return Payload{}, fmt.Errorf("fetch media: unexpected status %d", resp.StatusCode)
	}

	contentType := ref.ContentType
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}

	return Payload{Body: resp.Body, ContentType: contentType, Size: resp.ContentLength}, nil
}

func (o *Opener) openObject(ctx context.Context, parsed *url.URL, ref models.MediaReference) (Payload, error) {
	if o.objects == nil {
		return Payload{}, fmt.Errorf("%w: no object store configured", ErrUnsupportedMedia)
	}

	body, size, err := o.objects.Open(ctx, parsed.Host, parsed.Path)
	if err != nil {
		return Payload{}, err
	}

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}
	return Payload{Body: body, ContentType: contentType, Size: size}, nil
}
