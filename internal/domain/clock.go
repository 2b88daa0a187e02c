package domain

import "time"

// Clock abstracts time.Now() so "today" can be pinned in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reports the current time in the deployment's local calendar
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
