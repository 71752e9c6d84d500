package config

import (
	"log"
	"os"
)

type Config struct {
	DBPath    string
	Port      string
	RedisAddr string
}

func Load() *Config {
	cfg := &Config{
		DBPath:    getEnv("DB_PATH", "db.sqlite"),
		Port:      getEnv("PORT", "8080"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
	}

	if os.Getenv("AUTH_SECRET") == "" {
		log.Fatal("Missing critical environment variables")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
