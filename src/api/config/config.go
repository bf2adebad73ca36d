package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MySQLDSN        string
	RedisURL        string
	JWTSecret       string
	Port            string
	FetchTimeoutSec int
	ProxyBase       string
	PlaceholderMode bool
	DiscoverAPIBase string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	_ = godotenv.Load()
	timeout, _ := strconv.Atoi(getenv("FETCH_TIMEOUT_SEC", "15"))
	placeholder, _ := strconv.ParseBool(getenv("PLACEHOLDER_MODE", "false"))
	return Config{
		MySQLDSN:        getenv("MYSQL_DSN", "artdetective:artdetective@tcp(127.0.0.1:3306)/artdetective?parseTime=true"),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:       getenv("JWT_SECRET", "dev-only-secret-change-me"),
		Port:            getenv("PORT", "8080"),
		FetchTimeoutSec: timeout,
		ProxyBase:       getenv("FETCH_PROXY_BASE", "https://r.jina.ai/"),
		PlaceholderMode: placeholder,
		DiscoverAPIBase: getenv("DISCOVER_API_BASE", "https://api.artic.edu/api/v1"),
	}
}
