package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

// Locals keys de la sesión en Fiber.
const (
	LocalClient = "backend_client"
	LocalOwner  = "recent_errors_owner"
)

// anonymousOwner dueño de los errores recientes cuando no hay cookie de sesión.
const anonymousOwner = "anonimo"

// SessionConfig nombres de las cookies que se reenvían al backend.
type SessionConfig struct {
	SessionCookie string
	CSRFCookie    string
	CSRFHeader    string // por defecto X-CSRFToken
	Required      bool   // sin cookie de sesión responde 401
}

// SessionMiddleware crea un cliente por petición con la sesión y el CSRF del usuario
// y deriva el dueño del panel de errores recientes a partir de la sesión.
//
// Las peticiones que mutan exigen doble envío: la cabecera CSRF debe coincidir con la
// cookie CSRF. El cliente por petición solo reenvía ese token; nunca emite uno propio.
func SessionMiddleware(base *apiclient.Client, cfg SessionConfig) fiber.Handler {
	if cfg.CSRFHeader == "" {
		cfg.CSRFHeader = "X-CSRFToken"
	}
	return func(c *fiber.Ctx) error {
		session := c.Cookies(cfg.SessionCookie)
		if session == "" && cfg.Required {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_SESSION",
				Message: apiclient.MsgUnauthorized,
				Status:  fiber.StatusUnauthorized,
			})
		}
		csrf := c.Cookies(cfg.CSRFCookie)
		if !safeMethod(c.Method()) && !validCSRF(csrf, c.Get(cfg.CSRFHeader)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CSRF_FAILED",
				Message: apiclient.MsgCSRF,
				Status:  fiber.StatusForbidden,
			})
		}
		var cookies []*http.Cookie
		if session != "" {
			cookies = append(cookies, &http.Cookie{Name: cfg.SessionCookie, Value: session})
		}
		if csrf != "" {
			cookies = append(cookies, &http.Cookie{Name: cfg.CSRFCookie, Value: csrf})
		}
		c.Locals(LocalClient, base.ForwardSession(cookies...))
		c.Locals(LocalOwner, OwnerOf(session))
		return c.Next()
	}
}

func safeMethod(m string) bool {
	switch m {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

func validCSRF(cookie, header string) bool {
	if cookie == "" || header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) == 1
}

// OwnerOf identificador estable y no reversible de una sesión.
func OwnerOf(session string) string {
	if session == "" {
		return anonymousOwner
	}
	sum := sha256.Sum256([]byte(session))
	return hex.EncodeToString(sum[:12])
}

// GetClient cliente del backend de la petición (después de SessionMiddleware).
func GetClient(c *fiber.Ctx) *apiclient.Client {
	cl, _ := c.Locals(LocalClient).(*apiclient.Client)
	return cl
}

// GetOwner dueño de los errores recientes de la petición.
func GetOwner(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocalOwner).(string); ok && s != "" {
		return s
	}
	return anonymousOwner
}
