package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	LISTEN_ADDR     string
	LOG_LEVEL       string
	STORAGE_DRIVER  string
	STORAGE_PATH    string
	DATABASE_URL    string
	REDIS_ADDR      string
	REDIS_PASSWORD  string
	ES_URL          string
	ES_USER         string
	ES_PASSWORD     string
	KAFKA_ADDRESS   string
	JWT_SECRET      string
	ADMIN_EMAIL     string
	ADMIN_PASSWORD  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		LISTEN_ADDR:    getDefault("LISTEN_ADDR", ":8080"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		STORAGE_DRIVER: getDefault("STORAGE_DRIVER", "memory"),
		STORAGE_PATH:   getDefault("STORAGE_PATH", "localstore.db"),
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDR:     os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:     getDefault("JWT_SECRET", "localstore-dev-secret"),
		ADMIN_EMAIL:    getDefault("ADMIN_EMAIL", "7904084589y@gmail.com"),
		ADMIN_PASSWORD: getDefault("ADMIN_PASSWORD", "admin123"),
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
