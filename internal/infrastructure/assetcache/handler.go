package assetcache

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// hopHeaders no se copian a la respuesta.
var hopHeaders = map[string]bool{
	"Connection": true, "Keep-Alive": true, "Transfer-Encoding": true,
	"Content-Length": true, "Upgrade": true, "Trailer": true,
}

// Handler sirve los GET que no atendió ninguna otra ruta.
func (p *Policy) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
			return fiber.ErrMethodNotAllowed
		}
		header := http.Header{}
		for k, vs := range c.GetReqHeaders() {
			for _, v := range vs {
				header.Add(k, v)
			}
		}
		e, s, hit, err := p.Serve(c.UserContext(), c.OriginalURL(), header)
		if err != nil {
			if errors.Is(err, ErrOrigin) {
				p.log.Warn().Err(err).Str("path", c.OriginalURL()).Str("strategy", string(s)).Msg("origen no disponible")
				return fiber.NewError(fiber.StatusBadGateway, "El servidor de archivos no está disponible.")
			}
			return err
		}
		for k, vs := range e.Header {
			if hopHeaders[http.CanonicalHeaderKey(k)] {
				continue
			}
			for _, v := range vs {
				c.Response().Header.Add(k, v)
			}
		}
		if s == NetworkFirst {
			c.Set(fiber.HeaderCacheControl, "no-store")
		}
		switch {
		case hit:
			c.Set("X-Cache", "HIT")
		case s == StaleWhileRevalidate:
			c.Set("X-Cache", "MISS")
		default:
			c.Set("X-Cache", "BYPASS")
		}
		c.Status(e.Status)
		if c.Method() == fiber.MethodHead {
			return nil
		}
		return c.Send(e.Body)
	}
}
