package batch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/batch"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var now = time.Date(2024, 11, 1, 10, 30, 0, 0, time.UTC)

func TestDeriveState(t *testing.T) {
	cases := []struct {
		name                     string
		scheduled, start, finish *time.Time
		want                     batch.State
	}{
		{"sin fechas", nil, nil, nil, batch.StateDraft},
		{"solo programada", at(2024, 12, 15), nil, nil, batch.StateScheduled},
		{"iniciada", at(2024, 10, 15), at(2024, 10, 15), nil, batch.StateInProgress},
		{"iniciada sin programar", nil, at(2024, 10, 15), nil, batch.StateInProgress},
		{"terminada", at(2024, 9, 1), at(2024, 9, 1), at(2024, 9, 21), batch.StateFinished},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, batch.DeriveState(tc.scheduled, tc.start, tc.finish))
		})
	}
}

func TestValidateDates_LineasDeTiempoInvalidas(t *testing.T) {
	assert.ErrorIs(t, batch.ValidateDates(nil, nil, at(2024, 9, 21)), domain.ErrInvalidTimeline, "fin sin inicio")
	assert.ErrorIs(t, batch.ValidateDates(nil, at(2024, 9, 21), at(2024, 9, 1)), domain.ErrInvalidTimeline, "fin antes de inicio")
	assert.NoError(t, batch.ValidateDates(nil, at(2024, 9, 1), at(2024, 9, 1)), "mismo día es válido")
	assert.NoError(t, batch.ValidateDates(at(2024, 9, 1), nil, nil))
}

func TestCicloCompleto(t *testing.T) {
	b := &entity.Batch{ID: "b1"}

	require.NoError(t, batch.Schedule(b, at(2024, 12, 15), now))
	assert.Equal(t, batch.StateScheduled, batch.StateOf(b))

	// Reprogramar antes de iniciar está permitido.
	require.NoError(t, batch.Schedule(b, at(2024, 12, 20), now))
	assert.True(t, b.ScheduledStartDate.Equal(*at(2024, 12, 20)))

	// Iniciar antes de la fecha programada también.
	require.NoError(t, batch.Start(b, at(2024, 12, 18)))
	assert.Equal(t, batch.StateInProgress, batch.StateOf(b))

	require.NoError(t, batch.Finish(b, at(2025, 1, 10)))
	assert.Equal(t, batch.StateFinished, batch.StateOf(b))
}

func TestSchedule_FechaPasadaONula(t *testing.T) {
	b := &entity.Batch{}
	assert.ErrorIs(t, batch.Schedule(b, nil, now), domain.ErrInvalidSchedule)
	assert.ErrorIs(t, batch.Schedule(b, at(2024, 10, 31), now), domain.ErrInvalidSchedule)
	assert.Nil(t, b.ScheduledStartDate)

	// Hoy (aunque sea antes de la hora actual) es válido.
	assert.NoError(t, batch.Schedule(b, at(2024, 11, 1), now))
}

func TestTransicionesNoPermitidas(t *testing.T) {
	draft := &entity.Batch{}
	assert.ErrorIs(t, batch.Start(draft, at(2024, 11, 2)), domain.ErrInvalidTransition)
	assert.ErrorIs(t, batch.Finish(draft, at(2024, 11, 2)), domain.ErrInvalidTransition)

	inProgress := &entity.Batch{ScheduledStartDate: at(2024, 10, 15), StartDate: at(2024, 10, 15)}
	assert.ErrorIs(t, batch.Schedule(inProgress, at(2024, 12, 1), now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, batch.Start(inProgress, at(2024, 10, 16)), domain.ErrInvalidTransition)

	finished := &entity.Batch{StartDate: at(2024, 9, 1), FinishDate: at(2024, 9, 21)}
	assert.ErrorIs(t, batch.Finish(finished, at(2024, 9, 22)), domain.ErrInvalidTransition)
}

func TestStart_SinFecha(t *testing.T) {
	b := &entity.Batch{ScheduledStartDate: at(2024, 12, 15)}
	assert.ErrorIs(t, batch.Start(b, nil), domain.ErrInvalidTimeline)
	assert.Equal(t, batch.StateScheduled, batch.StateOf(b))
}

func TestFinish_AntesDelInicioNoMuta(t *testing.T) {
	b := &entity.Batch{ScheduledStartDate: at(2024, 10, 15), StartDate: at(2024, 10, 15)}

	err := batch.Finish(b, at(2024, 10, 1))

	assert.ErrorIs(t, err, domain.ErrInvalidTimeline)
	assert.Nil(t, b.FinishDate)
	assert.Equal(t, batch.StateInProgress, batch.StateOf(b))
}

func TestCorrectDates(t *testing.T) {
	b := &entity.Batch{ScheduledStartDate: at(2024, 9, 1), StartDate: at(2024, 9, 1), FinishDate: at(2024, 9, 21)}

	// Retroceder a Scheduled limpiando inicio y fin.
	require.NoError(t, batch.CorrectDates(b, at(2024, 12, 1), nil, nil))
	assert.Equal(t, batch.StateScheduled, batch.StateOf(b))

	err := batch.CorrectDates(b, nil, nil, at(2024, 12, 2))
	assert.ErrorIs(t, err, domain.ErrInvalidTimeline)
	assert.Equal(t, batch.StateScheduled, batch.StateOf(b), "un trío inválido no se aplica")
}

func TestIsScheduledBrew(t *testing.T) {
	ref := *at(2024, 11, 1)
	assert.True(t, batch.IsScheduledBrew(&entity.Batch{ScheduledStartDate: at(2024, 12, 15)}, ref))
	assert.False(t, batch.IsScheduledBrew(&entity.Batch{ScheduledStartDate: at(2024, 11, 1)}, ref), "igual a la referencia no cuenta")
	assert.False(t, batch.IsScheduledBrew(&entity.Batch{ScheduledStartDate: at(2024, 12, 15), StartDate: at(2024, 12, 15)}, ref))
	assert.False(t, batch.IsScheduledBrew(&entity.Batch{}, ref))
}
