package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/pkg/errors"
	"github.com/varoOP/seasonal/internal/domain"
)

const (
	ProdID   = "-//seasonal//Seasonal Images//EN"
	CalName  = "Seasonal Images"
	uidHost  = "seasonal"
	propName = "X-WR-CALNAME"

	// MimeType is the content type of the encoded feed
	MimeType = "text/calendar; charset=utf-8"
)

// stub is written when no record is enabled; an empty VCALENDAR is
// refused by the encoder
const stub = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ProdID + "\r\nEND:VCALENDAR\r\n"

// Encode writes one all-day, yearly recurring event per enabled image.
// Occurrences are anchored on the window that contains now, or the next one.
func Encode(w io.Writer, images []domain.SeasonalImage, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProdID)
	cal.Props.SetText(propName, CalName)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, img := range images {
		if !img.Enabled {
			continue
		}
		cal.Children = append(cal.Children, newEvent(img, now).Component)
	}

	if len(cal.Children) == 0 {
		_, err := io.WriteString(w, stub)
		return err
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return errors.Wrap(err, "failed to encode iCalendar data")
	}
	return nil
}

func newEvent(img domain.SeasonalImage, now time.Time) *ical.Event {
	start, end := occurrence(img, now)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("image-%d@%s", img.ID, uidHost))
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

	summary := img.Description
	if summary == "" {
		summary = img.ImagePath
	}
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, fmt.Sprintf("%s (%s, priority %d)", img.ImagePath, img.Position, img.Priority))

	event.Props.SetDate(ical.PropDateTimeStart, start)
	// DTEND is exclusive for all-day events
	event.Props.SetDate(ical.PropDateTimeEnd, end.AddDate(0, 0, 1))

	// set by hand to avoid a VALUE=TEXT parameter
	rrule := ical.NewProp(ical.PropRecurrenceRule)
	rrule.Value = "FREQ=YEARLY"
	event.Props.Set(rrule)

	return event
}

// occurrence returns the first and last day of the window occurrence that
// contains now, or of the next one when now is outside the window
func occurrence(img domain.SeasonalImage, now time.Time) (time.Time, time.Time) {
	year := now.Year()
	today := domain.EncodeDate(int(now.Month()), now.Day())

	if img.Wraps() && today <= domain.EncodeDate(img.EndMonth, img.EndDay) {
		// still in the tail of the window that started last year
		year--
	} else if !img.Wraps() && today > domain.EncodeDate(img.EndMonth, img.EndDay) {
		year++
	}

	endYear := year
	if img.Wraps() {
		endYear++
	}

	// a Feb 29 anchor must land in a leap year or the yearly rule drifts to Mar 1
	wrap := endYear - year
	if img.StartMonth == 2 && img.StartDay == 29 {
		year = domain.NextLeapYear(year)
		endYear = year + wrap
	} else if img.EndMonth == 2 && img.EndDay == 29 {
		endYear = domain.NextLeapYear(endYear)
		year = endYear - wrap
	}

	start := time.Date(year, time.Month(img.StartMonth), img.StartDay, 0, 0, 0, 0, now.Location())
	end := time.Date(endYear, time.Month(img.EndMonth), img.EndDay, 0, 0, 0, 0, now.Location())
	return start, end
}
