package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/config"
)

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "blinkshare"),
			Password: getEnv("MYSQL_PASSWORD", "blinkshare"),
			Database: getEnv("MYSQL_DATABASE", "blinkshare"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", "localhost"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 50),
			AllowCORS:    strings.Split(getEnv("API_ALLOW_CORS", "http://localhost:3000"), ","),
		},
		WsProxyServer: config.ServerConfigs{
			Host:      getEnv("WS_PROXY_HOST", "localhost"),
			Port:      getEnv("WS_PROXY_PORT", "8081"),
			Cert:      getEnv("WS_PROXY_CERT", ""),
			Key:       getEnv("WS_PROXY_KEY", ""),
			AllowCORS: strings.Split(getEnv("WS_PROXY_ALLOW_CORS", "http://localhost:3000"), ","),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvAsDuration("REFRESH_TOKEN_DURATION", 24*30*time.Hour),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Storage: config.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
			Bucket:         getEnv("STORAGE_BUCKET", "blinkshare"),
			SSLDisabled:    getEnvAsBool("STORAGE_SSL_DISABLE", true),
		},
		File: config.FileConfigs{
			MaxMemory:       int64(getEnvAsInt("MAX_MEMORY_MULTIPART_FORM", 2<<20)),
			MaxSize:         int64(getEnvAsInt("MAX_FILE_SIZE", 2<<20)),
			AvatarCropWidth: uint(getEnvAsInt("AVATAR_CROP_WIDTH", 512)),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return fallback
}
