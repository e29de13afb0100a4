package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin",
		"-a", ":9191",
		"-d", "flag.db",
		"-s", "flag-secret",
		"-t", "48",
		"-w", "12",
		"-m", "test",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9191", cfg.EndpointAddr)
	assert.Equal(t, "flag.db", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.SessionTokenValidity)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "test", cfg.GinMode)
}

func Test_parseFlags_UnrelatedFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-config", "some.json", "-a", ":7000"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7000", cfg.EndpointAddr)
	assert.Equal(t, "microstory.db", cfg.DatabaseDSN)
}
