package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// daysInMonth is the calendar shape used for validation. February is fixed
// at 29 days regardless of the year.
var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the maximum day for month, or 0 if month is out of range
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month-1]
}

// ValidateDate reports whether month/day exists in the fixed calendar shape
func ValidateDate(month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth[month-1]
}

// IsLeapYear reports whether year has a Feb 29
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// NextLeapYear returns the first leap year on or after year
func NextLeapYear(year int) int {
	for !IsLeapYear(year) {
		year++
	}
	return year
}

// YearFor returns year, or the next leap year when month/day is Feb 29, so
// that time.Date does not roll the date over to Mar 1
func YearFor(year, month, day int) int {
	if month == 2 && day == 29 {
		return NextLeapYear(year)
	}
	return year
}

// EncodeDate maps month/day onto a total order (month*100 + day)
func EncodeDate(month, day int) int {
	return month*100 + day
}

// InRange reports whether month/day falls inside the window start..end,
// both ends inclusive. A window whose end sorts before its start crosses
// the year boundary.
func InRange(month, day, startMonth, startDay, endMonth, endDay int) bool {
	current := EncodeDate(month, day)
	start := EncodeDate(startMonth, startDay)
	end := EncodeDate(endMonth, endDay)

	if start <= end {
		return current >= start && current <= end
	}

	// e.g. Dec 20 - Jan 5
	return current >= start || current <= end
}

// FormatDate formats month/day as MM-DD
func FormatDate(month, day int) string {
	return fmt.Sprintf("%02d-%02d", month, day)
}

// ParseDate parses MM-DD (or M-D, M/D) and validates it against the
// calendar shape
func ParseDate(s string) (month, day int, err error) {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) != 2 {
		return 0, 0, &ValidationError{Field: "date", Reason: fmt.Sprintf("expected MM-DD, got %q", s)}
	}

	month, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid month in %q", s)}
	}
	day, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid day in %q", s)}
	}

	if !ValidateDate(month, day) {
		return 0, 0, &ValidationError{Field: "date", Reason: fmt.Sprintf("%s is not a calendar date", FormatDate(month, day))}
	}

	return month, day, nil
}
