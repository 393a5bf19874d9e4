package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	HTTP         HTTPConfig
	Static       StaticConfig
	RecentErrors RecentErrorsConfig
	Export       ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// BackendConfig conexión con el backend REST de inventario (Django/DRF).
type BackendConfig struct {
	URL               string // origen del backend, ej. http://localhost:8000
	BasePath          string // prefijo fijo de la API de inventario
	Timeout           time.Duration
	CSRFCookieName    string
	CSRFHeaderName    string
	CSRFBootstrapPath string // GET que obliga al servidor a emitir la cookie CSRF
	SessionCookieName string
	SessionID         string // solo CLI: sesión con la que se autentica bodegactl
}

// HTTPConfig configuración del servidor HTTP (gateway).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StaticConfig origen y política de caché de los assets del front-end.
type StaticConfig struct {
	OriginURL    string
	Prefix       string
	CacheVersion string
}

// RecentErrorsConfig almacenamiento del panel de errores recientes (mínimos masivos).
type RecentErrorsConfig struct {
	Driver      string // file | redis | postgres
	Dir         string
	RedisAddr   string
	DatabaseURL string
	TTL         time.Duration
}

// ExportConfig opciones por defecto de las exportaciones.
type ExportConfig struct {
	Delimiter rune
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-bodega"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			URL:               getString(v, "BACKEND_URL", "http://localhost:8000"),
			BasePath:          getString(v, "BACKEND_BASE_PATH", "/api/inventory/"),
			Timeout:           time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
			CSRFCookieName:    getString(v, "CSRF_COOKIE_NAME", "csrftoken"),
			CSRFHeaderName:    getString(v, "CSRF_HEADER_NAME", "X-CSRFToken"),
			CSRFBootstrapPath: getString(v, "CSRF_BOOTSTRAP_PATH", "/api/csrf/"),
			SessionCookieName: getString(v, "SESSION_COOKIE_NAME", "sessionid"),
			SessionID:         getString(v, "BACKEND_SESSION_ID", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Static: StaticConfig{
			OriginURL:    getString(v, "STATIC_ORIGIN_URL", "http://localhost:5173"),
			Prefix:       getString(v, "STATIC_PREFIX", "/static/"),
			CacheVersion: getString(v, "STATIC_CACHE_VERSION", "v1"),
		},
		RecentErrors: RecentErrorsConfig{
			Driver:      getString(v, "RECENT_ERRORS_DRIVER", "file"),
			Dir:         getString(v, "RECENT_ERRORS_DIR", "./var/recent-errors"),
			RedisAddr:   getString(v, "REDIS_ADDR", "localhost:6379"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			TTL:         time.Duration(getInt(v, "RECENT_ERRORS_TTL_HOURS", 72)) * time.Hour,
		},
		Export: ExportConfig{
			Delimiter: getRune(v, "EXPORT_DELIMITER", ';'),
		},
	}

	if cfg.Backend.Timeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	switch cfg.RecentErrors.Driver {
	case "file", "redis":
	case "postgres":
		if cfg.RecentErrors.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL es obligatorio con RECENT_ERRORS_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("RECENT_ERRORS_DRIVER inválido: %q", cfg.RecentErrors.Driver)
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getRune(v *viper.Viper, key string, def rune) rune {
	s := getString(v, key, "")
	if s == "" {
		return def
	}
	if s == `\t` {
		return '\t'
	}
	return []rune(s)[0]
}
