package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente web (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	HTTP    HTTPConfig
	UI      UIConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig ubicación del servicio REST de inventario.
type APIConfig struct {
	BaseURL string
}

// HTTPConfig configuración del servidor HTTP del front-end.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UIConfig parámetros de las páginas.
type UIConfig struct {
	SearchDebounceMS int // espera antes de buscar mientras el usuario escribe
	ListLimit        int // tamaño fijo de página para movimientos y selector de productos
}

// SearchDebounce devuelve el debounce como time.Duration.
func (c UIConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// SessionConfig ciclo de vida de las sesiones del navegador.
type SessionConfig struct {
	IdleMinutes int
}

// IdleTimeout devuelve el tiempo de inactividad antes de cerrar una sesión.
func (c SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "stockly-web"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_URL", "http://localhost:8000"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		UI: UIConfig{
			SearchDebounceMS: getInt(v, "SEARCH_DEBOUNCE_MS", 300),
			ListLimit:        getInt(v, "LIST_LIMIT", 100),
		},
		Session: SessionConfig{
			IdleMinutes: getInt(v, "SESSION_IDLE_MINUTES", 30),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: API_URL vacío")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.UI.SearchDebounceMS < 0 {
		return fmt.Errorf("config: SEARCH_DEBOUNCE_MS no puede ser negativo")
	}
	if c.UI.ListLimit <= 0 || c.UI.ListLimit > 100 {
		return fmt.Errorf("config: LIST_LIMIT debe estar entre 1 y 100")
	}
	if c.Session.IdleMinutes <= 0 {
		return fmt.Errorf("config: SESSION_IDLE_MINUTES debe ser positivo")
	}
	return nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
