package seasonal

import (
	"time"

	"github.com/varoOP/seasonal/internal/domain"
)

// NextStart returns the first day on or after now's date on which img's
// window begins. Feb 29 in a non-leap year rolls to Mar 1.
func NextStart(now time.Time, img domain.SeasonalImage) time.Time {
	return nextOnOrAfter(now, img.StartMonth, img.StartDay)
}

// ActiveUntil returns the last day of the window occurrence that contains
// now's date, or the next occurrence when now is outside the window
func ActiveUntil(now time.Time, img domain.SeasonalImage) time.Time {
	if !img.Matches(int(now.Month()), now.Day()) {
		start := NextStart(now, img)
		return nextOnOrAfter(start, img.EndMonth, img.EndDay)
	}
	return nextOnOrAfter(now, img.EndMonth, img.EndDay)
}

func nextOnOrAfter(now time.Time, month, day int) time.Time {
	year := now.Year()
	if domain.EncodeDate(month, day) < domain.EncodeDate(int(now.Month()), now.Day()) {
		year++
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
}
