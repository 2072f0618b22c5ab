// Package seed carga el conjunto de datos de demostración de la cervecería:
// dos recetas (West Coast IPA y Oatmeal Stout), cinco batches con fechas históricas
// y programadas, y un lote de Base Malt de 50 unidades.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/brewing"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/pkg/logger"
)

// Today fecha de referencia del conjunto de demostración.
var Today = day(2024, time.November, 1)

// Services casos de uso que usa la carga.
type Services struct {
	Catalog     *inventory.CatalogUseCase
	Ingredients *inventory.IngredientUseCase
	Ledger      *inventory.LedgerUseCase
	Recipes     *brewing.RecipeUseCase
	Batches     *brewing.BatchUseCase
}

// Result IDs generados, por nombre.
type Result struct {
	Ingredients map[string]string
	Recipes     map[string]string
	Batches     []string
}

type ingredientSeed struct {
	name     string
	unit     string
	reorder  int64
	cost     string
	lotQty   int64
	lotOrder time.Time
}

type lineSeed struct {
	ingredient string
	qty        string
	use        string
}

type recipeSeed struct {
	name    string
	version int
	style   string
	volume  int64
	brewer  string
	abv     string
	lines   []lineSeed
}

type batchSeed struct {
	recipe    string
	volume    int64
	scheduled time.Time
	start     *time.Time
	finish    *time.Time
}

var (
	unitTypes = []entity.UnitType{{ID: "lb", Name: "lb"}, {ID: "oz", Name: "oz"}, {ID: "pkg", Name: "pkg"}}
	styles    = []entity.Style{{ID: "ipa", Name: "IPA"}, {ID: "stout", Name: "Stout"}}

	ingredients = []ingredientSeed{
		{name: "Base Malt", unit: "lb", reorder: 10, cost: "1.20", lotQty: 50, lotOrder: day(2024, time.September, 1)},
		{name: "Cascade Hops", unit: "oz", reorder: 8, cost: "1.75", lotQty: 32, lotOrder: day(2024, time.September, 1)},
		{name: "Flaked Oats", unit: "lb", reorder: 2, cost: "0.95", lotQty: 10, lotOrder: day(2024, time.August, 10)},
		{name: "Roasted Barley", unit: "lb", reorder: 2, cost: "1.60", lotQty: 6, lotOrder: day(2024, time.August, 10)},
		{name: "US-05 Yeast", unit: "pkg", reorder: 2, cost: "4.50", lotQty: 10, lotOrder: day(2024, time.August, 10)},
	}

	recipes = []recipeSeed{
		{name: "West Coast IPA", version: 7, style: "ipa", volume: 20, brewer: "Test Brewer", abv: "6.8", lines: []lineSeed{
			{"Base Malt", "12", entity.UseDuringMash},
			{"Cascade Hops", "4", entity.UseDuringBoil},
			{"Cascade Hops", "2", entity.UseDuringDryHop},
			{"US-05 Yeast", "1", entity.UseDuringFerment},
		}},
		{name: "Oatmeal Stout", version: 3, style: "stout", volume: 20, brewer: "Test Brewer", abv: "5.4", lines: []lineSeed{
			{"Base Malt", "10", entity.UseDuringMash},
			{"Flaked Oats", "1.5", entity.UseDuringMash},
			{"Roasted Barley", "1", entity.UseDuringMash},
			{"US-05 Yeast", "1", entity.UseDuringFerment},
		}},
	}

	batches = []batchSeed{
		{recipe: "West Coast IPA", volume: 20, scheduled: day(2024, time.September, 1),
			start: ptr(day(2024, time.September, 1)), finish: ptr(day(2024, time.September, 21))},
		{recipe: "West Coast IPA", volume: 20, scheduled: day(2024, time.October, 15),
			start: ptr(day(2024, time.October, 15))},
		{recipe: "West Coast IPA", volume: 20, scheduled: day(2024, time.December, 15)},
		{recipe: "Oatmeal Stout", volume: 20, scheduled: day(2024, time.August, 20),
			start: ptr(day(2024, time.August, 20)), finish: ptr(day(2024, time.September, 10))},
		{recipe: "Oatmeal Stout", volume: 20, scheduled: day(2025, time.January, 5)},
	}
)

// Load carga el conjunto sobre un almacenamiento vacío. Si ya hay recetas devuelve
// domain.ErrDuplicate sin escribir nada.
//
// Las fechas de los batches se fijan con RecordHistory: son historia previa al libro
// de inventario y no generan consumos.
func Load(ctx context.Context, svc Services, log *logger.Logger) (*Result, error) {
	existing, err := svc.Recipes.ListWithLastBrewed(ctx, Today)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("datos de demostración: %w", domain.ErrDuplicate)
	}

	for _, u := range unitTypes {
		if err := svc.Catalog.PutUnitType(ctx, u); err != nil {
			return nil, fmt.Errorf("unidad %s: %w", u.ID, err)
		}
	}
	for _, s := range styles {
		if err := svc.Catalog.PutStyle(ctx, s); err != nil {
			return nil, fmt.Errorf("estilo %s: %w", s.ID, err)
		}
	}

	res := &Result{Ingredients: map[string]string{}, Recipes: map[string]string{}}
	for _, in := range ingredients {
		ing, err := svc.Ingredients.Create(ctx, dto.CreateIngredientRequest{
			Name:         in.name,
			ReorderPoint: decimal.NewFromInt(in.reorder),
			UnitTypeID:   in.unit,
			UnitCost:     decimal.RequireFromString(in.cost),
		})
		if err != nil {
			return nil, fmt.Errorf("ingrediente %s: %w", in.name, err)
		}
		res.Ingredients[in.name] = ing.ID
		if _, err := svc.Ledger.RecordAddition(ctx, dto.RecordAdditionRequest{
			IngredientID: ing.ID,
			Quantity:     decimal.NewFromInt(in.lotQty),
			UnitCost:     decimal.RequireFromString(in.cost),
			OrderDate:    in.lotOrder,
			SupplierID:   "demo-supplier",
		}); err != nil {
			return nil, fmt.Errorf("lote %s: %w", in.name, err)
		}
	}

	for _, r := range recipes {
		abv := decimal.RequireFromString(r.abv)
		req := dto.CreateRecipeRequest{
			Name:         r.name,
			Version:      r.version,
			StyleID:      r.style,
			Volume:       decimal.NewFromInt(r.volume),
			Brewer:       r.brewer,
			EstimatedABV: &abv,
		}
		for _, l := range r.lines {
			req.Ingredients = append(req.Ingredients, dto.RecipeIngredientInput{
				IngredientID: res.Ingredients[l.ingredient],
				Quantity:     decimal.RequireFromString(l.qty),
				UseDuring:    l.use,
			})
		}
		out, err := svc.Recipes.Create(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("receta %s: %w", r.name, err)
		}
		res.Recipes[r.name] = out.ID
	}

	for _, b := range batches {
		created, err := svc.Batches.Create(ctx, dto.CreateBatchRequest{
			RecipeID:    res.Recipes[b.recipe],
			EquipmentID: "fermenter-1",
			Volume:      decimal.NewFromInt(b.volume),
		})
		if err != nil {
			return nil, fmt.Errorf("batch %s: %w", b.recipe, err)
		}
		scheduled := b.scheduled
		if _, err := svc.Batches.RecordHistory(ctx, created.ID, dto.CorrectDatesRequest{
			ScheduledStartDate: &scheduled,
			StartDate:          b.start,
			FinishDate:         b.finish,
		}); err != nil {
			return nil, fmt.Errorf("fechas batch %s: %w", created.ID, err)
		}
		res.Batches = append(res.Batches, created.ID)
	}

	log.Info().
		Int("ingredients", len(res.Ingredients)).
		Int("recipes", len(res.Recipes)).
		Int("batches", len(res.Batches)).
		Msg("datos de demostración cargados")
	return res, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }
