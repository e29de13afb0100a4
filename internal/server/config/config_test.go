package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "microstory.db", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.SessionTokenValidity)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, "admin", c.S3RootUser)
	assert.Equal(t, "secretpassword", c.S3RootPassword)
	assert.Equal(t, "media", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "http://127.0.0.1:9000/", c.S3BaseEndpoint)
}

func TestLoadConfig_UsesDefaultsWithoutOverrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "microstory.db", c.DatabaseDSN)
	assert.Equal(t, 24*time.Hour, c.SessionTokenValidity)
}

func Test_parseEnv_Overrides(t *testing.T) {
	t.Setenv("MICROSTORY_ADDR", ":9090")
	t.Setenv("MICROSTORY_DATABASE_DSN", "postgres://u:p@localhost/micro")
	t.Setenv("MICROSTORY_SECRET_KEY", "env-secret")
	t.Setenv("MICROSTORY_TOKEN_VALIDITY", "12h")
	t.Setenv("MICROSTORY_BCRYPT_COST", "12")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@localhost/micro", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 12*time.Hour, c.SessionTokenValidity)
	assert.Equal(t, 12, c.BcryptCost)
}

func Test_parseEnv_BadValuesIgnored(t *testing.T) {
	t.Setenv("MICROSTORY_TOKEN_VALIDITY", "soon")
	t.Setenv("MICROSTORY_BCRYPT_COST", "lots")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, 24*time.Hour, c.SessionTokenValidity)
	assert.Equal(t, 10, c.BcryptCost)
}
