package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}

func TestGetInitializesLazily(t *testing.T) {
	Logger = nil
	l := Get()
	assert.NotNil(t, l)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
}

func TestConfigureJSON(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	Configure(&buf, "info", "json")
	Repository("partners").Info("Partner created", "partner_id", "p1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Partner created", line["msg"])
	assert.Equal(t, "repository", line["component"])
	assert.Equal(t, "partners", line["repository"])
	assert.Equal(t, "p1", line["partner_id"])
}

func TestConfigureFiltersByLevel(t *testing.T) {
	defer func() { Logger = nil }()

	var buf bytes.Buffer
	Configure(&buf, "warn", "logfmt")
	CLI().Info("hidden")
	CLI().Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "component=cli")
}
