package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/microstory/server/internal/flagx"
	"github.com/microstory/server/internal/timex"
)

// jsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields accept both "24h" strings and integer nanoseconds;
// after unmarshalling, values are copied into the runtime Config.
type jsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	SessionTokenValidity timex.Duration `json:"session_token_validity"`
	BcryptCost           int            `json:"bcrypt_cost"`
	GinMode              string         `json:"gin_mode"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
}

// parseJSON overlays configuration from the JSON file named by the -c or
// -config flags. When neither flag is set, nothing is loaded. Only fields
// present in the file override the current values; an unreadable or invalid
// file panics, since starting with a half-applied config is worse than not
// starting.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTokenValidity.Duration != 0 {
		config.SessionTokenValidity = time.Duration(c.SessionTokenValidity.Duration)
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.GinMode != "" {
		config.GinMode = c.GinMode
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
