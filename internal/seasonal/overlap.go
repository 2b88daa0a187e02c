package seasonal

import (
	"sort"

	"github.com/varoOP/seasonal/internal/domain"
)

// Overlap is a pair of enabled records with equal priority whose windows
// share at least one day. Which of the two wins on those days is decided
// only by the start date ordering.
type Overlap struct {
	First      domain.SeasonalImage
	Second     domain.SeasonalImage
	SharedDays int
	// FirstDay is the earliest shared day of the calendar year, as MM-DD
	FirstDay string
}

// FindOverlaps reports every ambiguous pair among the enabled records.
// The result is ordered by the ids of the pair.
func FindOverlaps(images []domain.SeasonalImage) []Overlap {
	var enabled []domain.SeasonalImage
	for _, img := range images {
		if img.Enabled {
			enabled = append(enabled, img)
		}
	}

	var overlaps []Overlap
	for i := 0; i < len(enabled); i++ {
		for j := i + 1; j < len(enabled); j++ {
			a, b := enabled[i], enabled[j]
			if a.Priority != b.Priority {
				continue
			}
			if a.ID > b.ID {
				a, b = b, a
			}

			shared, first := sharedDays(a, b)
			if shared == 0 {
				continue
			}

			overlaps = append(overlaps, Overlap{
				First:      a,
				Second:     b,
				SharedDays: shared,
				FirstDay:   first,
			})
		}
	}

	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].First.ID != overlaps[j].First.ID {
			return overlaps[i].First.ID < overlaps[j].First.ID
		}
		return overlaps[i].Second.ID < overlaps[j].Second.ID
	})

	return overlaps
}

// sharedDays walks the fixed 366 day calendar shape
func sharedDays(a, b domain.SeasonalImage) (int, string) {
	count := 0
	first := ""
	for month := 1; month <= 12; month++ {
		for day := 1; day <= domain.DaysInMonth(month); day++ {
			if a.Matches(month, day) && b.Matches(month, day) {
				if count == 0 {
					first = domain.FormatDate(month, day)
				}
				count++
			}
		}
	}
	return count, first
}
