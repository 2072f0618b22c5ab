package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "brewery-tracker", Out: &buf})

	log.Component("inventory_ledger").Info().Str("ingredient_id", "malt").Msg("lote registrado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "brewery-tracker", line["service"])
	assert.Equal(t, "inventory_ledger", line["component"])
	assert.Equal(t, "malt", line["ingredient_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "WARN", Out: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelDesconocidoEsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verbose", Out: &buf})

	log.Debug().Msg("descartado")
	log.Info().Msg("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "descartado")
}
