package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/assetcache"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/recenterrors"
	apphttp "github.com/jhoicas/inventario-bodega/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSession = "sesion-de-prueba"
	testCSRF    = "token-de-prueba"
)

// fakeBackend backend REST mínimo. Registra la cookie de sesión y los tokens CSRF que recibe.
type fakeBackend struct {
	mu         sync.Mutex
	sessions   []string
	tokens     []string // cabecera X-CSRFToken de cada mutación
	bootstraps int
	csrf403    int // cantidad de 403 CSRF a responder antes de aceptar una mutación
}

func (b *fakeBackend) mutations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.tokens...)
}

func (b *fakeBackend) bootstrapCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bootstraps
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.bootstraps++
		b.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "nuevo", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/inventory/", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("sessionid"); err == nil {
			b.mu.Lock()
			b.sessions = append(b.sessions, ck.Value)
			b.mu.Unlock()
		}
		if r.Method != http.MethodGet {
			b.mu.Lock()
			b.tokens = append(b.tokens, r.Header.Get("X-CSRFToken"))
			fail := b.csrf403 > 0
			if fail {
				b.csrf403--
			}
			b.mu.Unlock()
			if fail {
				w.WriteHeader(http.StatusForbidden)
				_, _ = io.WriteString(w, `{"detail":"CSRF Failed: CSRF token missing or incorrect."}`)
				return
			}
		}
		path := strings.TrimPrefix(r.URL.Path, "/api/inventory/")
		switch {
		case path == "movements/" && r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `{"count":1,"results":[{"id":1,"date":"2026-10-01","type":"IN","user":"ana","note":"+ajuste","lines":[]}]}`)
		case path == "movements/3/" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case path == "movements/4/" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "El movimiento ya fue anulado.")
		case path == "min-levels/" && r.Method == http.MethodPost:
			var in dto.CreateMinLevelRequest
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.ProductID == 2 {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"min_qty":["Valor inválido."]}`)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":1}`)
		case strings.HasPrefix(path, "alerts/") && r.Method == http.MethodPatch:
			if path == "alerts/13/" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, `{"id":1,"resolved":true}`)
		case path == "part-requests/8/approve/":
			_, _ = io.WriteString(w, `{"id":8,"status":"APPROVED","movement":40}`)
		case path == "part-requests/8/reject/":
			_, _ = io.WriteString(w, `{"id":8,"status":"REJECTED"}`)
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

// buildTestApp gateway completo contra el backend falso y un origen de estáticos.
func buildTestApp(t *testing.T, b *fakeBackend) *fiber.App {
	t.Helper()
	backend := httptest.NewServer(b.handler(t))
	t.Cleanup(backend.Close)
	static := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>app</html>")
	}))
	t.Cleanup(static.Close)

	client, err := apiclient.New(apiclient.Config{
		BaseURL:           backend.URL,
		BasePath:          "/api/inventory/",
		Timeout:           2 * time.Second,
		CSRFBootstrapPath: "/api/csrf/",
	}, nil)
	require.NoError(t, err)
	store, err := recenterrors.NewFileStore(t.TempDir())
	require.NoError(t, err)
	origin, err := assetcache.NewHTTPOrigin(static.URL, time.Second)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(nil))
	apphttp.Router(app, apphttp.RouterDeps{
		Backend:  client,
		Services: apphttp.NewServicesFactory(store, export.CSVOptions{}, nil),
		Session:  apphttp.SessionConfig{SessionCookie: "sessionid", CSRFCookie: "csrftoken"},
		Assets:   assetcache.NewPolicy(assetcache.Config{Version: "test"}, assetcache.NewStorage(), origin, nil),
	})
	return app
}

func request(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: testSession})
	if method != http.MethodGet {
		withCSRF(req)
	}
	return req
}

// withCSRF doble envío del navegador: cookie y cabecera con el mismo token.
func withCSRF(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "csrftoken", Value: testCSRF})
	req.Header.Set("X-CSRFToken", testCSRF)
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_CSVConSesionReenviada(t *testing.T) {
	b := &fakeBackend{}
	app := buildTestApp(t, b)

	resp, err := app.Test(request(http.MethodGet, "/gateway/export/movements?format=csv&type=IN", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.MIMECSV, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="movements_`)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "'+ajuste")
	assert.Equal(t, []string{testSession}, b.sessions)
}

func TestExport_ParametrosInvalidos(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(request(http.MethodGet, "/gateway/export/movements?format=pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(request(http.MethodGet, "/gateway/export/users", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestExportTable_XLS(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})
	req := httptest.NewRequest(http.MethodPost, "/gateway/export/table?format=xls&filename=stock",
		strings.NewReader(`<table><tr><th>A</th></tr><tr><td>=1</td></tr></table>`))
	req.Header.Set("Content-Type", "text/html")
	withCSRF(req)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.MIMEXLS, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="stock_`)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `.xls"`)
}

func TestMinLevelsBulk_YPanelDeErrores(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(request(http.MethodPost, "/gateway/min-levels/bulk", map[string]any{
		"warehouse": 4, "products": []int64{1, 2, 3}, "min_qty": "5", "alert_enabled": true,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.BulkReport](t, resp)
	assert.Equal(t, "2/3 creados", report.Message)

	resp, err = app.Test(request(http.MethodGet, "/gateway/min-levels/recent-errors", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	batch := decode[entity.RecentErrorBatch](t, resp)
	require.Len(t, batch.Entries, 1)
	assert.EqualValues(t, 2, batch.Entries[0].ProductID)
	assert.Equal(t, "min_qty: Valor inválido.", batch.Entries[0].Message)

	other := httptest.NewRequest(http.MethodGet, "/gateway/min-levels/recent-errors", nil)
	other.AddCookie(&http.Cookie{Name: "sessionid", Value: "otra"})
	resp, err = app.Test(other)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "cada sesión ve solo sus errores")

	resp, err = app.Test(request(http.MethodDelete, "/gateway/min-levels/recent-errors", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, err = app.Test(request(http.MethodGet, "/gateway/min-levels/recent-errors", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAlertsBulk(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(request(http.MethodPost, "/gateway/alerts/bulk", dto.BulkAlertRequest{IDs: []int64{11, 12, 13}, Resolved: true}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.BulkReport](t, resp)
	assert.Equal(t, "2/3 actualizadas", report.Message)
	assert.Empty(t, report.Errors)
	require.Len(t, report.ItemErrors, 1)
	assert.EqualValues(t, 13, report.ItemErrors[0].ItemID)
	assert.Equal(t, apiclient.MsgNotFound, report.ItemErrors[0].Message)

	resp, err = app.Test(request(http.MethodPost, "/gateway/alerts/bulk", dto.BulkAlertRequest{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVoidMovement_ReenviaElTokenDelUsuario(t *testing.T) {
	b := &fakeBackend{}
	app := buildTestApp(t, b)

	resp, err := app.Test(request(http.MethodDelete, "/gateway/movements/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{testCSRF}, b.mutations())
	assert.Zero(t, b.bootstrapCount(), "el gateway no emite tokens en nombre del usuario")
}

func TestVoidMovement_403DelBackendSinReintento(t *testing.T) {
	b := &fakeBackend{csrf403: 1}
	app := buildTestApp(t, b)

	resp, err := app.Test(request(http.MethodDelete, "/gateway/movements/3", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "CSRF Failed")
	assert.Len(t, b.mutations(), 1)
	assert.Zero(t, b.bootstrapCount())
}

func TestGateway_MutacionSinDobleEnvioCSRF(t *testing.T) {
	b := &fakeBackend{}
	app := buildTestApp(t, b)

	// Petición cruzada: el navegador adjunta la cookie de sesión pero no la cabecera.
	req := httptest.NewRequest(http.MethodDelete, "/gateway/movements/3", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: testSession})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CSRF_FAILED", decode[dto.ErrorResponse](t, resp).Code)

	// Cabecera que no coincide con la cookie.
	req = httptest.NewRequest(http.MethodPost, "/gateway/part-requests/8/approve", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: testSession})
	req.AddCookie(&http.Cookie{Name: "csrftoken", Value: testCSRF})
	req.Header.Set("X-CSRFToken", "otro")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Empty(t, b.mutations(), "el backend no debe recibir la mutación")
	assert.Zero(t, b.bootstrapCount())

	// Las lecturas no exigen cabecera.
	resp, err = app.Test(request(http.MethodGet, "/gateway/min-levels/recent-errors", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestVoidMovement_ErrorDelBackend(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(request(http.MethodDelete, "/gateway/movements/4", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "El movimiento ya fue anulado.", decode[dto.ErrorResponse](t, resp).Message)

	resp, err = app.Test(request(http.MethodDelete, "/gateway/movements/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPartRequests_ApproveReject(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(request(http.MethodPost, "/gateway/part-requests/8/approve", dto.ReviewPartRequest{Note: "ok"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PartRequestApproved, decode[entity.PartRequest](t, resp).Status)

	resp, err = app.Test(request(http.MethodPost, "/gateway/part-requests/8/reject", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.PartRequestRejected, decode[entity.PartRequest](t, resp).Status)
}

func TestBackendCaido_502(t *testing.T) {
	client, err := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)
	require.NoError(t, err)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Backend:  client,
		Services: apphttp.NewServicesFactory(nil, export.CSVOptions{}, nil),
		Session:  apphttp.SessionConfig{SessionCookie: "sessionid", CSRFCookie: "csrftoken"},
	})

	resp, err := app.Test(request(http.MethodGet, "/gateway/export/stock", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "BACKEND_UNAVAILABLE", out.Code)
	assert.Equal(t, apiclient.MsgNetwork, out.Message)
}

func TestSesionRequerida(t *testing.T) {
	client, err := apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Backend:  client,
		Services: apphttp.NewServicesFactory(nil, export.CSVOptions{}, nil),
		Session:  apphttp.SessionConfig{SessionCookie: "sessionid", CSRFCookie: "csrftoken", Required: true},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gateway/min-levels/recent-errors", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOwnerOf(t *testing.T) {
	a := apphttp.OwnerOf("abc")
	assert.Len(t, a, 24)
	assert.Equal(t, a, apphttp.OwnerOf("abc"))
	assert.NotEqual(t, a, apphttp.OwnerOf("abd"))
	assert.NotContains(t, a, "abc")
	assert.Equal(t, "anonimo", apphttp.OwnerOf(""))
}

func TestStaticFallback(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})
	req := httptest.NewRequest(http.MethodGet, "/inventario/alertas", nil)
	req.Header.Set("Accept", "text/html")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "<html>app</html>", string(body))
}
