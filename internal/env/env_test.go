package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type basicConfig struct {
	Host    string        `env:"TEST_HOST" default:"localhost"`
	Port    int           `env:"TEST_PORT" default:"8080"`
	Debug   bool          `env:"TEST_DEBUG" default:"false"`
	Timeout time.Duration `env:"TEST_TIMEOUT" default:"5s"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg basicConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEST_HOST", "example.com")
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("TEST_TIMEOUT", "1m30s")

	var cfg basicConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadUnsetWithoutDefaultLeavesZero(t *testing.T) {
	var cfg struct {
		Name string `env:"TEST_UNSET_NAME"`
	}
	require.NoError(t, Load(&cfg))
	assert.Empty(t, cfg.Name)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("TEST_PORT", "not-a-number")

	var cfg basicConfig
	err := Load(&cfg)
	require.Error(t, err)

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Port", invalid.Field)
	assert.Equal(t, "TEST_PORT", invalid.EnvVar)
	assert.Equal(t, "not-a-number", invalid.Value)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "30")

	var cfg basicConfig
	err := Load(&cfg)
	require.Error(t, err, "durations need a unit")
}

func TestLoadNotStructPointer(t *testing.T) {
	var invalid ErrNotStructPointer

	require.ErrorAs(t, Load(basicConfig{}), &invalid)
	var n int
	require.ErrorAs(t, Load(&n), &invalid)
}

type nestedInner struct {
	Level string `env:"TEST_NESTED_LEVEL" default:"info"`
}

func (n *nestedInner) Validate() error {
	if n.Level != "info" && n.Level != "debug" {
		return assert.AnError
	}
	return nil
}

type nestedOuter struct {
	Name  string `env:"TEST_NESTED_NAME" default:"svc"`
	Inner nestedInner
}

func TestLoadNestedStruct(t *testing.T) {
	t.Setenv("TEST_NESTED_LEVEL", "debug")

	var cfg nestedOuter
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, "debug", cfg.Inner.Level)
}

func TestLoadNestedValidatorRuns(t *testing.T) {
	t.Setenv("TEST_NESTED_LEVEL", "loud")

	var cfg nestedOuter
	require.ErrorIs(t, Load(&cfg), assert.AnError)
}

func TestLoadSkipsUnexported(t *testing.T) {
	var cfg struct {
		Pub   string `env:"TEST_PUB" default:"set"`
		inner string
	}

	require.NoError(t, Load(&cfg))
	assert.Equal(t, "set", cfg.Pub)
	assert.Empty(t, cfg.inner)
}

func TestLoadUnsupportedType(t *testing.T) {
	t.Setenv("TEST_RATE", "0.5")
	var cfg struct {
		Rate float64 `env:"TEST_RATE"`
	}

	err := Load(&cfg)
	require.Error(t, err)

	var unsupported ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
}
