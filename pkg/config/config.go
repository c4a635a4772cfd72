package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	API  APIConfig
	Sync SyncConfig
	HTTP HTTPConfig
	Log  LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig backend de distribución remoto.
type APIConfig struct {
	BaseURL   string
	TokenFile string // vacío = ~/.distribution-console/token
}

// SyncConfig período del bucle de reconciliación.
type SyncConfig struct {
	IntervalMS int
}

// Interval período como duración; valores no positivos caen al default.
func (c SyncConfig) Interval() time.Duration {
	if c.IntervalMS <= 0 {
		return DefaultSyncIntervalMS * time.Millisecond
	}
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// HTTPConfig servidor HTTP local de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

const (
	DefaultAPIBaseURL     = "http://localhost:8080/api"
	DefaultSyncIntervalMS = 2000
)

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad: APP_ENV, API_BASE_URL, SYNC_INTERVAL_MS, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "distribution-console"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getString(v, "API_BASE_URL", DefaultAPIBaseURL), "/"),
			TokenFile: getString(v, "TOKEN_FILE", ""),
		},
		Sync: SyncConfig{
			IntervalMS: getInt(v, "SYNC_INTERVAL_MS", DefaultSyncIntervalMS),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL vacío")
	}
	if cfg.Sync.IntervalMS < 0 {
		return nil, fmt.Errorf("config: SYNC_INTERVAL_MS inválido (%d)", cfg.Sync.IntervalMS)
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
