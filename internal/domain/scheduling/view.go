// Package scheduling deriva vistas de lectura (último brew, agenda) a partir de los batches.
// Son proyecciones puras: se recalculan en cada consulta, sin estado desnormalizado.
package scheduling

import (
	"sort"
	"time"

	"github.com/jhoicas/brewery-tracker-api/internal/domain/batch"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// LastBrewed máximo StartDate <= asOf entre los batches de la receta; nil si ninguno inició.
func LastBrewed(recipeID string, batches []*entity.Batch, asOf time.Time) *time.Time {
	var last *time.Time
	for _, b := range batches {
		if b.RecipeID != recipeID || b.StartDate == nil || b.StartDate.After(asOf) {
			continue
		}
		if last == nil || b.StartDate.After(*last) {
			d := *b.StartDate
			last = &d
		}
	}
	return last
}

// UpcomingSchedule fechas programadas >= asOf de batches no iniciados, ascendente.
func UpcomingSchedule(recipeID string, batches []*entity.Batch, asOf time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for _, b := range batches {
		if b.RecipeID != recipeID || b.StartDate != nil || b.ScheduledStartDate == nil {
			continue
		}
		if b.ScheduledStartDate.Before(asOf) {
			continue
		}
		dates = append(dates, *b.ScheduledStartDate)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// AllScheduledBrews filtra con batch.IsScheduledBrew y ordena por ScheduledStartDate, luego por ID.
func AllScheduledBrews(rows []*entity.BatchWithRecipe, asOf time.Time) []*entity.BatchWithRecipe {
	out := make([]*entity.BatchWithRecipe, 0, len(rows))
	for _, r := range rows {
		if batch.IsScheduledBrew(&r.Batch, asOf) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ScheduledStartDate, out[j].ScheduledStartDate
		if !a.Equal(*b) {
			return a.Before(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LastBrewPerRecipe una pasada agrupando por receta; solo aparecen recetas con algún brew iniciado.
func LastBrewPerRecipe(batches []*entity.Batch, asOf time.Time) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, b := range batches {
		if b.StartDate == nil || b.StartDate.After(asOf) {
			continue
		}
		if cur, ok := out[b.RecipeID]; !ok || b.StartDate.After(cur) {
			out[b.RecipeID] = *b.StartDate
		}
	}
	return out
}
