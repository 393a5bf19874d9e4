// Package assetcache sirve los archivos estáticos del frontend con la política del
// service worker: stale-while-revalidate para assets versionados, network-first sin
// caché para HTML y paso directo para lo demás.
package assetcache

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// NamePrefix prefijo de los nombres de caché; el sufijo es la versión.
const NamePrefix = "inventario-static-"

// CacheName nombre de la caché de una versión.
func CacheName(version string) string {
	return NamePrefix + version
}

// Entry respuesta almacenada.
type Entry struct {
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// Storage conjunto de cachés con nombre, como CacheStorage del navegador.
type Storage struct {
	mu     sync.RWMutex
	caches map[string]*Cache
}

// NewStorage crea un almacén vacío.
func NewStorage() *Storage {
	return &Storage{caches: map[string]*Cache{}}
}

// Open devuelve la caché name, creándola si no existe.
func (s *Storage) Open(name string) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		c = &Cache{entries: map[string]*Entry{}}
		s.caches[name] = c
	}
	return c
}

// Names nombres de las cachés existentes, ordenados.
func (s *Storage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.caches))
	for name := range s.caches {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Activate borra toda caché propia distinta de current y devuelve las borradas.
func (s *Storage) Activate(current string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted []string
	for name := range s.caches {
		if name != current && strings.HasPrefix(name, NamePrefix) {
			delete(s.caches, name)
			deleted = append(deleted, name)
		}
	}
	sort.Strings(deleted)
	return deleted
}

// Cache entradas por ruta.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// Get entrada de key.
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put guarda o reemplaza key.
func (c *Cache) Put(key string, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Len número de entradas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
