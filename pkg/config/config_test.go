package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/pkg/config"
)

type testConfig struct {
	Name    string        `env:"TEST_CFG_NAME" envDefault:"authsvc"`
	Port    int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED_SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg testConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "authsvc", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_NAME", "override")
	t.Setenv("TEST_CFG_PORT", "9090")

	var cfg testConfig
	err := config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_NAME", "first")

	var cfg1 testConfig
	require.NoError(t, config.Load(&cfg1))

	// Env change after the first load must not leak into the cached value.
	t.Setenv("TEST_CFG_NAME", "second")

	var cfg2 testConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, "first", cfg2.Name)
}

func TestLoad_RequiredMissing(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv_NonExistentFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
