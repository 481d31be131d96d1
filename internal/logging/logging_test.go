package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("WARN").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
}

func TestNew_JSONOutput(t *testing.T) {
	logger := New("info")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithField("component", "csmarket").Info("request done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request done", line["msg"])
	assert.Equal(t, "csmarket", line["component"])
	assert.Equal(t, "info", line["level"])
}
