package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-tracker-api/internal/application/seed"
	"github.com/jhoicas/brewery-tracker-api/internal/bootstrap"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/brewery-tracker-api/internal/interfaces/http"
	"github.com/jhoicas/brewery-tracker-api/pkg/config"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp API completa sobre el store en memoria con los datos de demostración.
func buildTestApp(t *testing.T) (*fiber.App, *seed.Result) {
	t.Helper()
	store := memory.New()
	svc, err := bootstrap.NewServices(store, config.BrewConfig{ConsumptionPolicy: "on_finish", ReorderTargetFactor: 1.5}, logger.Nop())
	require.NoError(t, err)

	res, err := seed.Load(context.Background(), seed.Services{
		Catalog:     svc.Catalog,
		Ingredients: svc.Ingredients,
		Ledger:      svc.Ledger,
		Recipes:     svc.Recipes,
		Batches:     svc.Batches,
	}, logger.Nop())
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:     "brewery-tracker-test",
		Catalog:     svc.Catalog,
		Ingredients: svc.Ingredients,
		Ledger:      svc.Ledger,
		Recipes:     svc.Recipes,
		Batches:     svc.Batches,
		Products:    svc.Products,
		Health:      store,
	})
	return app, res
}

// do lanza la petición y decodifica el cuerpo JSON (si lo hay) en un mapa.
func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func items(t *testing.T, body map[string]any) []any {
	t.Helper()
	list, ok := body["items"].([]any)
	require.True(t, ok, "respuesta sin items: %v", body)
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_LiveYReady(t *testing.T) {
	app, _ := buildTestApp(t)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "brewery-tracker-test", body["service"])

	status, body = do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["can_query"])
}

type downChecker struct{}

func (downChecker) CanConnect(context.Context) bool { return false }
func (downChecker) CanQuery(context.Context) bool   { return false }

var _ repository.HealthChecker = downChecker{}

func TestHealth_ReadySinAlmacenamiento(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AppName: "x", Health: downChecker{}})

	status, body := do(t, app, http.MethodGet, "/health/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", body["status"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Agenda
// ──────────────────────────────────────────────────────────────────────────────

func TestBatches_ProgramadosConAsOf(t *testing.T) {
	app, _ := buildTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/batches/scheduled?as_of=2024-11-01", "")
	require.Equal(t, http.StatusOK, status)
	list := items(t, body)
	require.Len(t, list, 2)
	assert.Equal(t, "West Coast IPA", list[0].(map[string]any)["recipe_name"])
	assert.Equal(t, "Oatmeal Stout", list[1].(map[string]any)["recipe_name"])

	status, body = do(t, app, http.MethodGet, "/api/batches/scheduled?as_of=ayer", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_AS_OF", body["code"])
}

func TestRecipes_UltimoBrew(t *testing.T) {
	app, res := buildTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/recipes/"+res.Recipes["West Coast IPA"]+"/last-brewed?as_of=2024-11-01", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2024-10-15T00:00:00Z", body["last_brewed"])

	status, body = do(t, app, http.MethodGet, "/api/recipes?as_of=2024-11-01", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, items(t, body), 2)

	status, _ = do(t, app, http.MethodGet, "/api/recipes/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestIngredients_ConsumoYReorden(t *testing.T) {
	app, res := buildTestApp(t)
	malt := res.Ingredients["Base Malt"]

	status, body := do(t, app, http.MethodPost, "/api/ingredients/"+malt+"/consumptions", `{"quantity":"45","reason":"ajuste"}`)
	require.Equal(t, http.StatusCreated, status, body)

	status, body = do(t, app, http.MethodGet, "/api/ingredients/"+malt+"/on-hand", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5", body["on_hand"])
	assert.Equal(t, true, body["below_reorder_point"])

	status, body = do(t, app, http.MethodGet, "/api/inventory/reorder-list", "")
	require.Equal(t, http.StatusOK, status)
	list := items(t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Base Malt", list[0].(map[string]any)["name"])

	status, body = do(t, app, http.MethodPost, "/api/ingredients/"+malt+"/consumptions", `{"quantity":"6"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_INVENTORY", body["code"])

	status, _ = do(t, app, http.MethodPost, "/api/ingredients/"+malt+"/consumptions", `{"quantity":"0"}`)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestIngredients_Errores(t *testing.T) {
	app, res := buildTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/ingredients", `{"name":"Base Malt","unit_type_id":"lb"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = do(t, app, http.MethodPost, "/api/ingredients", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", body["code"])

	status, _ = do(t, app, http.MethodGet, "/api/ingredients/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, app, http.MethodDelete, "/api/ingredients/"+res.Ingredients["Base Malt"], "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "REFERENTIAL_CONFLICT", body["code"])

	status, body = do(t, app, http.MethodPost, "/api/ingredients", `{"name":"Crystal 60","unit_type_id":"lb","reorder_point":"2"}`)
	require.Equal(t, http.StatusCreated, status)
	status, _ = do(t, app, http.MethodDelete, "/api/ingredients/"+body["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de un batch
// ──────────────────────────────────────────────────────────────────────────────

func TestBatches_FinishConFaltantes(t *testing.T) {
	app, res := buildTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/batches",
		`{"recipe_id":"`+res.Recipes["West Coast IPA"]+`","equipment_id":"fv-2","volume":"200","scheduled_start_date":"2099-01-10T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, status, body)
	id := body["id"].(string)
	assert.Equal(t, "SCHEDULED", body["state"])

	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/start", `{"date":"2099-01-10T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "IN_PROGRESS", body["state"])

	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/finish", `{"date":"2099-01-05T00:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_TIMELINE", body["code"])

	// 200 de volumen sobre una receta de 20: malta 120 (hay 50), lúpulo 60 (hay 32), levadura 10 (hay 10).
	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/finish", `{"date":"2099-01-20T00:00:00Z"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_INVENTORY", body["code"])
	details, ok := body["details"].([]any)
	require.True(t, ok, "detalle de faltantes: %v", body)
	assert.Len(t, details, 2)

	status, body = do(t, app, http.MethodGet, "/api/batches/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "IN_PROGRESS", body["state"])

	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/products", `{"product_container_size_id":"keg","quantity":"4"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
}

func TestBatches_CorregirFechasNoEsquivaConsumo(t *testing.T) {
	app, res := buildTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/batches",
		`{"recipe_id":"`+res.Recipes["West Coast IPA"]+`","volume":"200","scheduled_start_date":"2099-01-10T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, status, body)
	id := body["id"].(string)
	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/start", `{"date":"2099-01-10T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, status, body)

	status, body = do(t, app, http.MethodPut, "/api/batches/"+id+"/dates",
		`{"scheduled_start_date":"2099-01-10T00:00:00Z","start_date":"2099-01-10T00:00:00Z","finish_date":"2099-01-20T00:00:00Z"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_INVENTORY", body["code"])

	status, body = do(t, app, http.MethodPost, "/api/batches/"+id+"/products", `{"product_container_size_id":"keg","quantity":"4"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", body["code"])
}

func TestBatches_ProgramacionEnElPasado(t *testing.T) {
	app, res := buildTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/batches",
		`{"recipe_id":"`+res.Recipes["Oatmeal Stout"]+`","volume":"20","scheduled_start_date":"2020-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_SCHEDULE", body["code"])

	status, _ = do(t, app, http.MethodDelete, "/api/recipes/"+res.Recipes["Oatmeal Stout"], "")
	assert.Equal(t, http.StatusConflict, status, "tiene batches")
}

func TestCatalog_PutYListado(t *testing.T) {
	app, _ := buildTestApp(t)

	status, _ := do(t, app, http.MethodPut, "/api/styles/porter", `{"name":"Porter"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, app, http.MethodGet, "/api/styles", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, items(t, body), 3)
}
