package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/logger"
)

func TestNewWithWriter_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info").Named("entradas")

	log.Debug().Msg("no debe salir")
	log.Info().Int64("entrada_id", 7).Msg("entrada creada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), "una sola línea JSON")
	assert.Equal(t, "entradas", line["component"])
	assert.Equal(t, "entrada creada", line["message"])
	assert.EqualValues(t, 7, line["entrada_id"])
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info").WithField("request_id", "abc")

	log.Info().Msg("request")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "abc", line["request_id"])
}
