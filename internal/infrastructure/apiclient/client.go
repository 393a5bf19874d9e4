// Package apiclient es el único punto de entrada HTTP hacia el backend de inventario:
// sesión por cookies, token CSRF, normalización de respuestas y de errores.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// Config parámetros del cliente; se fijan una sola vez al construirlo.
type Config struct {
	BaseURL           string        // origen del backend, ej. https://crm.example.com
	BasePath          string        // prefijo de la API, ej. /api/inventory/
	Timeout           time.Duration // timeout global de cada petición
	CSRFCookieName    string
	CSRFHeaderName    string
	CSRFBootstrapPath string       // GET que emite la cookie CSRF
	HTTPClient        *http.Client // opcional; se le reemplaza el Jar
}

// Client envuelve net/http con la base fija, credenciales y CSRF.
type Client struct {
	cfg    Config
	origin *url.URL
	base   *url.URL
	http   *http.Client
	jar    http.CookieJar
	log    *logger.Logger

	// forwarded: las credenciales son de un tercero (gateway); nunca se emite
	// ni se refresca un token CSRF en su nombre.
	forwarded bool
}

// Response respuesta 2xx ya leída. Body es nil para 204/205 y para cuerpos vacíos.
type Response struct {
	Status int
	Header http.Header
	Body   json.RawMessage
}

// Multipart cuerpo binario ya codificado (multipart/form-data u otro) con su propio Content-Type.
type Multipart struct {
	ContentType string
	Data        []byte
}

// RequestOptions opciones por llamada.
type RequestOptions struct {
	Query  url.Values
	Body   any // nil, []byte, io.Reader, Multipart o cualquier valor serializable a JSON
	Header http.Header

	// CSRFRetry: antes de mutar obtiene la cookie CSRF si falta; ante un 403 la
	// refresca y reintenta exactamente una vez. Nunca reintenta tras un fallo de transporte.
	CSRFRetry bool
	// RawErrorBody: el mensaje de error es el texto del cuerpo de la respuesta.
	RawErrorBody bool
}

// New construye el cliente con un cookie jar propio.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: BaseURL es requerido")
	}
	origin, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("apiclient: BaseURL inválido %q", cfg.BaseURL)
	}
	origin.Path = "/"

	if cfg.BasePath == "" {
		cfg.BasePath = "/"
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}
	if !strings.HasSuffix(cfg.BasePath, "/") {
		cfg.BasePath += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.CSRFCookieName == "" {
		cfg.CSRFCookieName = "csrftoken"
	}
	if cfg.CSRFHeaderName == "" {
		cfg.CSRFHeaderName = "X-CSRFToken"
	}

	base := *origin
	base.Path = cfg.BasePath

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		origin: origin,
		base:   &base,
		jar:    jar,
		log:    logger.OrNop(log).Component("apiclient"),
	}
	c.http = c.httpClientFor(jar)
	return c, nil
}

func newJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
	}
	return jar, nil
}

func (c *Client) httpClientFor(jar http.CookieJar) *http.Client {
	if c.cfg.HTTPClient != nil {
		hc := *c.cfg.HTTPClient
		hc.Jar = jar
		if hc.Timeout == 0 {
			hc.Timeout = c.cfg.Timeout
		}
		return &hc
	}
	return &http.Client{Timeout: c.cfg.Timeout, Jar: jar}
}

// WithCookies devuelve una copia del cliente con un jar nuevo sembrado con las cookies
// dadas (típicamente la sesión y el CSRF del usuario que llama al gateway).
func (c *Client) WithCookies(cookies ...*http.Cookie) *Client {
	jar, err := newJar()
	if err != nil {
		// cookiejar.New solo falla con opciones inválidas; las nuestras son fijas.
		panic(err)
	}
	seeded := make([]*http.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		if ck == nil || ck.Name == "" {
			continue
		}
		seeded = append(seeded, &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"})
	}
	jar.SetCookies(c.origin, seeded)

	clone := *c
	clone.jar = jar
	clone.http = c.httpClientFor(jar)
	return &clone
}

// ForwardSession como WithCookies, pero el cliente resultante solo reenvía el token
// CSRF recibido: no arranca uno nuevo si falta ni reintenta tras un 403.
func (c *Client) ForwardSession(cookies ...*http.Cookie) *Client {
	clone := c.WithCookies(cookies...)
	clone.forwarded = true
	return clone
}

// Cookie devuelve el valor de una cookie del backend, o "" si no existe.
func (c *Client) Cookie(name string) string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// CSRFToken valor actual de la cookie CSRF.
func (c *Client) CSRFToken() string {
	return c.Cookie(c.cfg.CSRFCookieName)
}

// Get, Post, Put, Patch y Delete atajos sobre Do.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, RequestOptions{Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, RequestOptions{Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, RequestOptions{Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, RequestOptions{Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, RequestOptions{})
}

// Do ejecuta una llamada. Devuelve *APIError para cualquier fallo.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) (*Response, error) {
	payload, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: MsgGeneric, Detail: err.Error()}
	}

	retry := opts.CSRFRetry && !c.forwarded
	if retry && isMutating(method) && c.CSRFToken() == "" {
		if err := c.RefreshCSRF(ctx); err != nil {
			return nil, err
		}
	}

	raw, err := c.send(ctx, method, path, opts, payload, contentType)
	if err != nil {
		return nil, err
	}

	if retry && raw.status == http.StatusForbidden {
		c.log.Warn().Str("method", method).Str("path", path).Msg("403 en mutación; se refresca CSRF y se reintenta una vez")
		if err := c.RefreshCSRF(ctx); err != nil {
			return nil, err
		}
		raw, err = c.send(ctx, method, path, opts, payload, contentType)
		if err != nil {
			return nil, err
		}
	}

	if raw.status < 200 || raw.status > 299 {
		return nil, newHTTPError(raw.status, raw.body, opts.RawErrorBody)
	}
	resp := &Response{Status: raw.status, Header: raw.header}
	if raw.status != http.StatusNoContent && raw.status != http.StatusResetContent && len(bytes.TrimSpace(raw.body)) > 0 {
		resp.Body = json.RawMessage(raw.body)
	}
	return resp, nil
}

// RefreshCSRF fuerza al servidor a emitir la cookie CSRF con un GET al endpoint de arranque.
func (c *Client) RefreshCSRF(ctx context.Context) error {
	if c.cfg.CSRFBootstrapPath == "" {
		return nil
	}
	raw, err := c.send(ctx, http.MethodGet, c.cfg.CSRFBootstrapPath, RequestOptions{}, nil, "")
	if err != nil {
		return err
	}
	if raw.status < 200 || raw.status > 299 {
		return newHTTPError(raw.status, raw.body, false)
	}
	if c.CSRFToken() == "" {
		c.log.Warn().Str("cookie", c.cfg.CSRFCookieName).Msg("el endpoint CSRF no emitió la cookie")
	}
	return nil
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, method, path string, opts RequestOptions, payload []byte, contentType string) (*rawResponse, error) {
	u, err := c.resolve(path, opts.Query)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: MsgGeneric, Detail: err.Error()}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, ToAPIError(err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if payload != nil && contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if isMutating(method) {
		// Django exige un Referer del mismo origen en peticiones HTTPS.
		req.Header.Set("Referer", c.origin.String())
	}
	if token := c.CSRFToken(); token != "" {
		setHeaderExact(req.Header, c.cfg.CSRFHeaderName, token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := ToAPIError(err)
		c.log.Debug().
			Str("method", method).
			Str("url", u.Path).
			Str("request_id", requestID).
			Str("kind", string(apiErr.Kind)).
			Dur("duration", time.Since(start)).
			Msg("petición al backend fallida")
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ToAPIError(err)
	}
	c.log.Debug().
		Str("method", method).
		Str("url", u.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("petición al backend")

	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// resolve: rutas absolutas ("/api/csrf/") cuelgan del origen; relativas ("movements/") de la base.
func (c *Client) resolve(path string, query url.Values) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("ruta inválida %q: %w", path, err)
	}
	var u *url.URL
	if strings.HasPrefix(path, "/") {
		u = c.origin.ResolveReference(ref)
	} else {
		u = c.base.ResolveReference(ref)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// setHeaderExact escribe el header con la grafía exacta dada, borrando antes cualquier
// variante canonicalizada (X-Csrftoken) para que viaje una sola vez.
func setHeaderExact(h http.Header, name, value string) {
	for k := range h {
		if strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
	h[name] = []string{value}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

// encodeBody detecta cuerpos binarios por tipo; el resto se serializa como JSON.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case Multipart:
		return b.Data, b.ContentType, nil
	case *Multipart:
		if b == nil {
			return nil, "", nil
		}
		return b.Data, b.ContentType, nil
	case []byte:
		return b, "", nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, "", fmt.Errorf("leer cuerpo: %w", err)
		}
		return data, "", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("serializar cuerpo: %w", err)
	}
	return data, "application/json", nil
}

// Unwrap descarta el sobre de la respuesta y devuelve el cuerpo; 204/205 dan nil.
func Unwrap(resp *Response, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	return resp.Body, nil
}

// Decode deserializa el cuerpo en T. Una respuesta sin cuerpo devuelve el valor cero de T.
func Decode[T any](resp *Response, err error) (T, error) {
	var out T
	raw, err := Unwrap(resp, err)
	if err != nil || raw == nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &APIError{Status: resp.Status, Kind: KindDecode, Message: MsgInvalidResponse, Detail: err.Error()}
	}
	return out, nil
}
