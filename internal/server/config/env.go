package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables take precedence over it (godotenv does not overwrite).
//
// Recognized variables:
//
//	MICROSTORY_ADDR           HTTP bind address
//	MICROSTORY_DATABASE_DSN   storage DSN
//	MICROSTORY_SECRET_KEY     token signing secret
//	MICROSTORY_TOKEN_VALIDITY session token lifetime ("24h")
//	MICROSTORY_BCRYPT_COST    bcrypt work factor
//	MICROSTORY_GIN_MODE       gin mode
//	MICROSTORY_S3_USER / _PASSWORD / _BUCKET / _REGION / _ENDPOINT
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MICROSTORY_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("MICROSTORY_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("MICROSTORY_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("MICROSTORY_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTokenValidity = d
		}
	}
	if v := os.Getenv("MICROSTORY_BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v := os.Getenv("MICROSTORY_GIN_MODE"); v != "" {
		config.GinMode = v
	}
	if v := os.Getenv("MICROSTORY_S3_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("MICROSTORY_S3_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("MICROSTORY_S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("MICROSTORY_S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("MICROSTORY_S3_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
