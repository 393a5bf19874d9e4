package assetcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Origin obtiene un recurso del servidor de origen.
type Origin interface {
	Fetch(ctx context.Context, path string, header http.Header) (*Entry, error)
}

// forwardedHeaders cabeceras de la petición que se reenvían al origen.
var forwardedHeaders = []string{"Accept", "Accept-Language", "Cookie", "User-Agent"}

// HTTPOrigin origen HTTP (el servidor del frontend compilado).
type HTTPOrigin struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPOrigin base es la URL del servidor de origen.
func NewHTTPOrigin(base string, timeout time.Duration) (*HTTPOrigin, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("assetcache: origen inválido %q", base)
	}
	return &HTTPOrigin{base: u, client: &http.Client{Timeout: timeout}}, nil
}

// Fetch GET de path (con query) en el origen.
func (o *HTTPOrigin) Fetch(ctx context.Context, path string, header http.Header) (*Entry, error) {
	target := o.base.String() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for _, h := range forwardedHeaders {
		if v := header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body, StoredAt: time.Now()}, nil
}
