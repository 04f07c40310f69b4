package validation

import "time"

// DateLayout is the ISO date format produced by date inputs.
const DateLayout = "2006-01-02"

// ParseDate reads an ISO date in loc, at midnight.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, raw, loc)
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Age returns the completed years between birth and now, decremented when the
// birthday has not yet occurred in now's calendar year.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
