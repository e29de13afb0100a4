// Package config handles configuration for the Microstory server,
// including defaults, JSON overlay, environment variables, and
// command-line flags (applied in that order, last writer wins).
package config

import "time"

// Config holds runtime settings for the Microstory API server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: storage DSN. A "postgres://" DSN selects the pgx driver,
//     anything else is treated as a SQLite file path.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the development default in production.
//   - SessionTokenValidity: session token lifetime (24h by default).
//   - BcryptCost: bcrypt work factor for password hashing.
//   - GinMode: gin mode ("debug", "release", "test").
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: media storage settings.
type Config struct {
	EndpointAddr         string
	DatabaseDSN          string
	SecretKey            string
	SessionTokenValidity time.Duration
	BcryptCost           int
	GinMode              string
	S3RootUser           string
	S3RootPassword       string
	S3Bucket             string
	S3Region             string
	S3BaseEndpoint       string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key below is insecure and must be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = "microstory.db"
	c.SecretKey = "secretKey"
	c.SessionTokenValidity = 24 * time.Hour
	c.BcryptCost = 10
	c.GinMode = "release"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including a .env file if
// present), and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
