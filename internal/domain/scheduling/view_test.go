package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/scheduling"
)

// ──────────────────────────────────────────────────────────────────────────────
// Datos de referencia: West Coast IPA (ipa) y Oatmeal Stout (stout), hoy = 2024-11-01.
// ──────────────────────────────────────────────────────────────────────────────

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var today = *at(2024, 11, 1)

func fixture() []*entity.BatchWithRecipe {
	ipa := func(b entity.Batch) *entity.BatchWithRecipe {
		b.RecipeID = "ipa"
		return &entity.BatchWithRecipe{Batch: b, RecipeName: "West Coast IPA", RecipeVersion: 7, StyleName: "IPA"}
	}
	stout := func(b entity.Batch) *entity.BatchWithRecipe {
		b.RecipeID = "stout"
		return &entity.BatchWithRecipe{Batch: b, RecipeName: "Oatmeal Stout", RecipeVersion: 3, StyleName: "Stout"}
	}
	return []*entity.BatchWithRecipe{
		ipa(entity.Batch{ID: "1", ScheduledStartDate: at(2024, 9, 1), StartDate: at(2024, 9, 1), FinishDate: at(2024, 9, 21)}),
		ipa(entity.Batch{ID: "2", ScheduledStartDate: at(2024, 10, 15), StartDate: at(2024, 10, 15)}),
		ipa(entity.Batch{ID: "3", ScheduledStartDate: at(2024, 12, 15)}),
		stout(entity.Batch{ID: "4", ScheduledStartDate: at(2024, 8, 20), StartDate: at(2024, 8, 20), FinishDate: at(2024, 9, 10)}),
		stout(entity.Batch{ID: "5", ScheduledStartDate: at(2025, 1, 5)}),
	}
}

func plain(rows []*entity.BatchWithRecipe) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(rows))
	for _, r := range rows {
		b := r.Batch
		out = append(out, &b)
	}
	return out
}

func TestLastBrewed(t *testing.T) {
	batches := plain(fixture())

	last := scheduling.LastBrewed("ipa", batches, today)
	require.NotNil(t, last)
	assert.True(t, last.Equal(*at(2024, 10, 15)))

	last = scheduling.LastBrewed("stout", batches, today)
	require.NotNil(t, last)
	assert.True(t, last.Equal(*at(2024, 8, 20)))

	// Antes de cualquier inicio no hay último brew.
	assert.Nil(t, scheduling.LastBrewed("ipa", batches, *at(2024, 8, 1)))
	assert.Nil(t, scheduling.LastBrewed("otra", batches, today))
}

func TestUpcomingSchedule(t *testing.T) {
	batches := plain(fixture())

	assert.Equal(t, []time.Time{*at(2024, 12, 15)}, scheduling.UpcomingSchedule("ipa", batches, today))
	assert.Equal(t, []time.Time{*at(2025, 1, 5)}, scheduling.UpcomingSchedule("stout", batches, today))
	assert.Empty(t, scheduling.UpcomingSchedule("ipa", batches, *at(2025, 1, 1)))
}

func TestAllScheduledBrews(t *testing.T) {
	scheduled := scheduling.AllScheduledBrews(fixture(), today)

	require.Len(t, scheduled, 2)
	assert.Equal(t, "West Coast IPA", scheduled[0].RecipeName)
	assert.True(t, scheduled[0].ScheduledStartDate.Equal(*at(2024, 12, 15)))
	assert.Equal(t, "IPA", scheduled[0].StyleName)
	assert.Equal(t, "Oatmeal Stout", scheduled[1].RecipeName)
	assert.True(t, scheduled[1].ScheduledStartDate.Equal(*at(2025, 1, 5)))
	assert.Equal(t, "Stout", scheduled[1].StyleName)
}

func TestAllScheduledBrews_MismaFechaOrdenaPorID(t *testing.T) {
	rows := []*entity.BatchWithRecipe{
		{Batch: entity.Batch{ID: "b", ScheduledStartDate: at(2024, 12, 1)}},
		{Batch: entity.Batch{ID: "a", ScheduledStartDate: at(2024, 12, 1)}},
	}
	out := scheduling.AllScheduledBrews(rows, today)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestLastBrewPerRecipe(t *testing.T) {
	last := scheduling.LastBrewPerRecipe(plain(fixture()), today)

	assert.Len(t, last, 2)
	assert.True(t, last["ipa"].Equal(*at(2024, 10, 15)))
	assert.True(t, last["stout"].Equal(*at(2024, 8, 20)))
}
