package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevelAndFields(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})

	logger := WithComponent("options")
	logger.Debug().Str(FieldKey, "lang").Msg("set")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "test", entry[FieldService])
	assert.Equal(t, "options", entry[FieldComponent])
	assert.Equal(t, "lang", entry[FieldKey])
	assert.Equal(t, "set", entry["message"])
}

func TestConfigureDefaultLevelDropsDebug(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	Configure(Config{Output: &buf})

	logger := Base()
	logger.Debug().Msg("hidden")
	logger.Info().Msg("hidden too")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureLevelFromEnv(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })
	t.Setenv("LOG_LEVEL", "info")

	var buf bytes.Buffer
	Configure(Config{Output: &buf})

	logger := Base()
	logger.Info().Msg("from env")
	assert.Contains(t, buf.String(), "from env")
}
