// Package batch contiene la máquina de estados de un lote de producción.
// El estado es función pura de las tres fechas del batch; nunca se persiste.
package batch

import (
	"time"

	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
)

// State estado derivado de un batch.
type State string

const (
	StateDraft      State = "DRAFT"
	StateScheduled  State = "SCHEDULED"
	StateInProgress State = "IN_PROGRESS"
	StateFinished   State = "FINISHED"
)

// DeriveState calcula el estado a partir de las fechas:
// (nil,nil,nil) Draft, (d,nil,nil) Scheduled, (*,s,nil) InProgress, (*,s,f) Finished.
func DeriveState(scheduled, start, finish *time.Time) State {
	switch {
	case finish != nil:
		return StateFinished
	case start != nil:
		return StateInProgress
	case scheduled != nil:
		return StateScheduled
	default:
		return StateDraft
	}
}

// StateOf atajo de DeriveState para un batch.
func StateOf(b *entity.Batch) State {
	return DeriveState(b.ScheduledStartDate, b.StartDate, b.FinishDate)
}

// ValidateDates verifica que el trío de fechas sea coherente:
// FinishDate exige StartDate y FinishDate >= StartDate.
func ValidateDates(scheduled, start, finish *time.Time) error {
	if finish == nil {
		return nil
	}
	if start == nil || finish.Before(*start) {
		return domain.ErrInvalidTimeline
	}
	return nil
}

// Schedule Draft -> Scheduled (o reprogramación de un batch aún no iniciado).
// La fecha no puede ser nula ni anterior al día de now.
func Schedule(b *entity.Batch, date *time.Time, now time.Time) error {
	st := StateOf(b)
	if st != StateDraft && st != StateScheduled {
		return domain.ErrInvalidTransition
	}
	if err := ValidateScheduleDate(date, now); err != nil {
		return err
	}
	d := *date
	b.ScheduledStartDate = &d
	return nil
}

// ValidateScheduleDate fecha programada presente o futura respecto a now (granularidad de día).
func ValidateScheduleDate(date *time.Time, now time.Time) error {
	if date == nil || date.IsZero() {
		return domain.ErrInvalidSchedule
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return domain.ErrInvalidSchedule
	}
	return nil
}

// Start Scheduled -> InProgress. StartDate puede ser anterior o posterior a la programada.
func Start(b *entity.Batch, date *time.Time) error {
	if StateOf(b) != StateScheduled {
		return domain.ErrInvalidTransition
	}
	if date == nil || date.IsZero() {
		return domain.ErrInvalidTimeline
	}
	d := *date
	b.StartDate = &d
	return nil
}

// Finish InProgress -> Finished. Exige FinishDate >= StartDate; si falla no muta el batch.
func Finish(b *entity.Batch, date *time.Time) error {
	if StateOf(b) != StateInProgress {
		return domain.ErrInvalidTransition
	}
	if date == nil || date.IsZero() {
		return domain.ErrInvalidTimeline
	}
	if err := ValidateDates(b.ScheduledStartDate, b.StartDate, date); err != nil {
		return err
	}
	d := *date
	b.FinishDate = &d
	return nil
}

// CorrectDates actualización compensatoria: reemplaza las tres fechas a la vez.
// Es el único camino que permite retroceder un batch (p. ej. limpiar FinishDate y StartDate).
func CorrectDates(b *entity.Batch, scheduled, start, finish *time.Time) error {
	if err := ValidateDates(scheduled, start, finish); err != nil {
		return err
	}
	b.ScheduledStartDate = copyTime(scheduled)
	b.StartDate = copyTime(start)
	b.FinishDate = copyTime(finish)
	return nil
}

// IsScheduledBrew predicado de "brews programados": programado después de ref y sin iniciar.
func IsScheduledBrew(b *entity.Batch, ref time.Time) bool {
	return b.ScheduledStartDate != nil && b.ScheduledStartDate.After(ref) && b.StartDate == nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
