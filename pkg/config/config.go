package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la estación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Remote  RemoteConfig
	Session SessionConfig
	Policy  PolicyConfig
	Metrics MetricsConfig
	Events  EventsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP local que consume la UI.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas, ej: http://localhost:3000
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RemoteConfig API remota de pedidos, métricas y usuarios.
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout por llamada a la API remota.
func (c RemoteConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig almacenamiento local de la sesión (equivalente al localStorage del navegador).
// Si Secret está vacío el archivo se guarda sin sellar.
type SessionConfig struct {
	FilePath string
	Secret   string
}

// PolicyConfig tabla rol → estados permitidos.
type PolicyConfig struct {
	File   string // YAML con las políticas; vacío = política por defecto embebida
	Active string // sobrescribe active_policy del archivo
}

// MetricsConfig paginación y zona horaria para los filtros de métricas.
type MetricsConfig struct {
	PageSize int
	TimeZone string
}

// Location carga la zona horaria configurada.
func (c MetricsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// EventsConfig publicación opcional de eventos de cambio de estado en RabbitMQ.
type EventsConfig struct {
	AMQPURL  string // vacío = eventos deshabilitados
	Exchange string
}

// Enabled indica si hay broker configurado.
func (c EventsConfig) Enabled() bool {
	return c.AMQPURL != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, REMOTE_API_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
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
			Name:     getString(v, "APP_NAME", "sdt-pedidos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 8090),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:3000"),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Remote: RemoteConfig{
			BaseURL:        strings.TrimRight(getString(v, "REMOTE_API_URL", "https://incredible-charm-production.up.railway.app"), "/"),
			TimeoutSeconds: getInt(v, "REMOTE_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			FilePath: getString(v, "SESSION_FILE", "./data/session.json"),
			Secret:   getString(v, "SESSION_SECRET", ""),
		},
		Policy: PolicyConfig{
			File:   getString(v, "ROLE_POLICY_FILE", "./configs/roles.yaml"),
			Active: getString(v, "ROLE_POLICY", ""),
		},
		Metrics: MetricsConfig{
			PageSize: getInt(v, "METRICS_PAGE_SIZE", 10),
			TimeZone: getString(v, "METRICS_TIMEZONE", "America/Argentina/Buenos_Aires"),
		},
		Events: EventsConfig{
			AMQPURL:  getString(v, "AMQP_URL", ""),
			Exchange: getString(v, "AMQP_EXCHANGE", "order_status_changed"),
		},
	}

	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("REMOTE_API_URL no puede estar vacío")
	}
	if cfg.Metrics.PageSize <= 0 {
		cfg.Metrics.PageSize = 10
	}
	return cfg, nil
}

// CORSOriginList separa CORSOrigins en una lista limpia.
func (c HTTPConfig) CORSOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
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
