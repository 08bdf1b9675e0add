package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Shop   ShopConfig
	Observ ObservabilityConfig
	Alerts AlertConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ShopConfig struct {
	Name     string
	Currency string
}

type ObservabilityConfig struct {
	TracingEnabled bool
	JaegerEndpoint string
}

type AlertConfig struct {
	HistoryLimit int
}

func Load() *Config {
	_ = godotenv.Load()

	tracingEnabled, _ := strconv.ParseBool(getEnv("TRACING_ENABLED", "false"))
	historyLimit, _ := strconv.Atoi(getEnv("ALERT_HISTORY_LIMIT", "50"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Shop: ShopConfig{
			Name:     getEnv("SHOP_NAME", "Stockroom"),
			Currency: getEnv("CURRENCY_SYMBOL", "$"),
		},
		Observ: ObservabilityConfig{
			TracingEnabled: tracingEnabled,
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Alerts: AlertConfig{
			HistoryLimit: historyLimit,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
