package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-bodega/internal/domain"
)

// Kind clasifica el origen de un APIError.
type Kind string

const (
	KindHTTP     Kind = "http"     // el servidor respondió con un estado de error
	KindNetwork  Kind = "network"  // no hubo respuesta
	KindTimeout  Kind = "timeout"  // se agotó el tiempo del cliente
	KindCanceled Kind = "canceled" // el contexto fue cancelado
	KindDecode   Kind = "decode"   // respuesta 2xx con cuerpo ilegible
	KindUnknown  Kind = "unknown"
)

// Mensajes para el usuario. El idioma es el de la interfaz.
const (
	MsgCanceled        = "La solicitud fue cancelada."
	MsgNetwork         = "No se pudo conectar con el servidor. Verifica tu conexión."
	MsgTimeout         = "El servidor tardó demasiado en responder. Intenta nuevamente."
	MsgGeneric         = "Ocurrió un error inesperado. Intenta nuevamente."
	MsgInvalidResponse = "El servidor devolvió una respuesta inválida."
	MsgUnauthorized    = "Tu sesión expiró. Inicia sesión nuevamente."
	MsgForbidden       = "No tienes permisos para realizar esta acción."
	MsgCSRF            = "La sesión de seguridad (CSRF) expiró. Recarga la página e intenta nuevamente."
	MsgNotFound        = "El recurso solicitado no existe."
	MsgTooLarge        = "El archivo o la solicitud es demasiado grande."
	MsgTooManyRequests = "Demasiadas solicitudes. Espera un momento e intenta nuevamente."
	MsgServer          = "Error del servidor. Intenta más tarde."
)

// APIError forma uniforme de cualquier fallo de una llamada al backend.
// Status es 0 para fallos de transporte.
type APIError struct {
	Status  int
	Kind    Kind
	Message string
	Detail  any // cuerpo crudo (json.RawMessage o texto) o el error original, para diagnóstico
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("apiclient: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("apiclient: HTTP %d: %s", e.Status, e.Message)
}

// Is permite errors.Is(err, domain.ErrNotFound) y similares según el estado HTTP.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrConflict:
		return e.Status == http.StatusConflict
	case domain.ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	case domain.ErrCanceled:
		return e.Kind == KindCanceled
	}
	return false
}

// IsTransport indica que no hubo respuesta del servidor.
func (e *APIError) IsTransport() bool {
	return e.Status == 0
}

// ToAPIError normaliza cualquier error. Un *APIError existente se devuelve tal cual.
func ToAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindCanceled, Message: MsgCanceled, Detail: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: MsgTimeout, Detail: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &APIError{Kind: KindTimeout, Message: MsgTimeout, Detail: err.Error()}
		}
		return &APIError{Kind: KindNetwork, Message: MsgNetwork, Detail: err.Error()}
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = MsgGeneric
	}
	return &APIError{Kind: KindUnknown, Message: msg, Detail: err.Error()}
}

// newHTTPError construye el error de una respuesta no 2xx aplicando la política de mensajes:
// detail del backend, luego el cuerpo aplanado, luego el mensaje por estado.
// Un 403 cuyo texto menciona "csrf" se reemplaza por la instrucción de refrescar la sesión.
func newHTTPError(status int, body []byte, rawBody bool) *APIError {
	detail := parseDetail(body)
	e := &APIError{Status: status, Kind: KindHTTP, Detail: detail}

	flat := FlattenDetail(detail)
	switch {
	case status == http.StatusForbidden && strings.Contains(strings.ToLower(flat), "csrf"):
		e.Message = MsgCSRF
	case detailField(detail) != "":
		e.Message = detailField(detail)
	case flat != "":
		e.Message = flat
	default:
		e.Message = statusMessage(status)
	}

	if rawBody {
		if text := strings.TrimSpace(string(body)); text != "" {
			e.Message = text
		}
	}
	return e
}

// parseDetail conserva el JSON crudo (para respetar el orden de claves al aplanar).
// Un cuerpo HTML (páginas de error del servidor) no aporta un mensaje útil y se descarta.
func parseDetail(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	if strings.HasPrefix(trimmed, "<") {
		return nil
	}
	return trimmed
}

// detailField devuelve body["detail"] si el cuerpo es un objeto con detail de tipo string.
func detailField(detail any) string {
	raw, ok := detail.(json.RawMessage)
	if !ok {
		return ""
	}
	var obj struct {
		Detail *string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Detail == nil {
		return ""
	}
	return strings.TrimSpace(*obj.Detail)
}

func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return MsgUnauthorized
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusNotFound:
		return MsgNotFound
	case status == http.StatusRequestEntityTooLarge:
		return MsgTooLarge
	case status == http.StatusTooManyRequests:
		return MsgTooManyRequests
	case status >= 500:
		return MsgServer
	}
	return MsgGeneric
}

// MessageOf devuelve siempre un texto para mostrar a partir de errores normalizados,
// errores de transporte, strings o cualquier otro valor.
func MessageOf(v any, fallback ...string) string {
	fb := MsgGeneric
	if len(fallback) > 0 && strings.TrimSpace(fallback[0]) != "" {
		fb = fallback[0]
	}
	var msg string
	switch t := v.(type) {
	case nil:
	case *APIError:
		if t != nil {
			msg = t.Message
		}
	case error:
		msg = ToAPIError(t).Message
	case string:
		msg = t
	case fmt.Stringer:
		msg = t.String()
	default:
		msg = FlattenDetail(t)
	}
	if msg = strings.TrimSpace(msg); msg == "" {
		return fb
	}
	return msg
}
