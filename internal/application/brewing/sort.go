package brewing

import (
	"sort"

	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
)

// sortByScheduledDesc fecha programada descendente; sin fecha al final; desempate por ID.
func sortByScheduledDesc(list []dto.BatchResponse) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].ScheduledStartDate, list[j].ScheduledStartDate
		switch {
		case a == nil && b == nil:
			return list[i].ID < list[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return list[i].ID < list[j].ID
	})
}
