package assetcache

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// Strategy estrategia aplicada a una petición.
type Strategy string

const (
	StaleWhileRevalidate Strategy = "stale-while-revalidate"
	NetworkFirst         Strategy = "network-first"
	PassThrough          Strategy = "pass-through"
)

// DefaultExtensions extensiones de assets que se cachean.
var DefaultExtensions = []string{
	".js", ".css", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
	".woff", ".woff2", ".ttf", ".map", ".json",
}

// ErrOrigin el origen no respondió; el handler lo traduce a 502.
var ErrOrigin = errors.New("assetcache: origen no disponible")

// fetchTimeout tiempo máximo de una petición compartida al origen.
const fetchTimeout = 30 * time.Second

// credentialHeaders no viajan en peticiones cuya respuesta se comparte entre usuarios.
var credentialHeaders = []string{"Cookie", "Authorization"}

// Config de la política.
type Config struct {
	Version    string
	Prefix     string   // "/static/"
	Extensions []string // DefaultExtensions si está vacío
}

// Policy decide la estrategia y sirve desde caché u origen.
type Policy struct {
	prefix string
	exts   map[string]bool
	cache  *Cache
	origin Origin
	log    *logger.Logger

	group singleflight.Group
	bg    sync.WaitGroup
}

// NewPolicy abre la caché de la versión actual y borra las de versiones anteriores.
func NewPolicy(cfg Config, storage *Storage, origin Origin, log *logger.Logger) *Policy {
	log = logger.OrNop(log).Component("assetcache")
	name := CacheName(cfg.Version)
	cache := storage.Open(name)
	if deleted := storage.Activate(name); len(deleted) > 0 {
		log.Info().Strs("deleted", deleted).Str("current", name).Msg("cachés anteriores eliminadas")
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "/static/"
	}
	return &Policy{prefix: prefix, exts: set, cache: cache, origin: origin, log: log}
}

// Classify estrategia para un GET de rawPath con la cabecera Accept dada.
func (p *Policy) Classify(rawPath, accept string) Strategy {
	clean := rawPath
	if i := strings.IndexByte(clean, '?'); i >= 0 {
		clean = clean[:i]
	}
	ext := strings.ToLower(path.Ext(clean))
	if strings.HasPrefix(clean, p.prefix) && p.exts[ext] {
		return StaleWhileRevalidate
	}
	if strings.Contains(accept, "text/html") || ext == ".html" || ext == "" {
		return NetworkFirst
	}
	return PassThrough
}

// Serve resuelve rawPath (ruta con query). hit indica que la respuesta vino de la caché.
func (p *Policy) Serve(ctx context.Context, rawPath string, header http.Header) (e *Entry, s Strategy, hit bool, err error) {
	s = p.Classify(rawPath, header.Get("Accept"))
	switch s {
	case StaleWhileRevalidate:
		if cached, ok := p.cache.Get(rawPath); ok {
			p.revalidate(rawPath, header)
			return cached, s, true, nil
		}
		e, err = p.fetchAndStore(ctx, rawPath, header)
		return e, s, false, err
	default:
		e, err = p.origin.Fetch(ctx, rawPath, header)
		if err != nil {
			return nil, s, false, errors.Join(ErrOrigin, err)
		}
		return e, s, false, nil
	}
}

// fetchAndStore una sola petición al origen por ruta aunque lleguen varias a la vez.
// La petición no depende de la cancelación de quien llegó primero y su respuesta,
// compartida por todos, nunca lleva credenciales de un usuario.
func (p *Policy) fetchAndStore(ctx context.Context, rawPath string, header http.Header) (*Entry, error) {
	header = header.Clone()
	for _, h := range credentialHeaders {
		header.Del(h)
	}
	v, err, _ := p.group.Do(rawPath, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		e, err := p.origin.Fetch(fctx, rawPath, header)
		if err != nil {
			return nil, err
		}
		e = shareable(e)
		if e.Status == http.StatusOK && storable(e.Header) {
			p.cache.Put(rawPath, e)
		}
		return e, nil
	})
	if err != nil {
		return nil, errors.Join(ErrOrigin, err)
	}
	return v.(*Entry), nil
}

// revalidate refresca la entrada en segundo plano; los errores solo se registran.
func (p *Policy) revalidate(rawPath string, header http.Header) {
	header = header.Clone()
	p.bg.Add(1)
	go func() {
		defer p.bg.Done()
		if _, err := p.fetchAndStore(context.Background(), rawPath, header); err != nil {
			p.log.Debug().Err(err).Str("path", rawPath).Msg("revalidación fallida; se conserva la copia")
		}
	}()
}

// shareable copia de e sin Set-Cookie.
func shareable(e *Entry) *Entry {
	if e.Header.Get("Set-Cookie") == "" {
		return e
	}
	out := *e
	out.Header = e.Header.Clone()
	out.Header.Del("Set-Cookie")
	return &out
}

// storable false si el origen marcó la respuesta como privada o no almacenable.
func storable(h http.Header) bool {
	for _, v := range h.Values("Cache-Control") {
		for _, d := range strings.Split(v, ",") {
			switch strings.ToLower(strings.TrimSpace(d)) {
			case "private", "no-store":
				return false
			}
		}
	}
	return true
}

// Wait espera las revalidaciones en curso (apagado ordenado).
func (p *Policy) Wait() {
	p.bg.Wait()
}
