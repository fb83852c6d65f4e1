package domain

import (
	"time"
	_ "time/tzdata" // reference time zone must resolve on zoneless hosts
)

// Date and timestamp layouts used for persisted practice dates.
// Practice start/finish dates are calendar days, correct-answer times
// carry minute precision.
const (
	DateFormat      = "20060102"
	TimestampFormat = "20060102 15:04"
)

// referenceTimeZone is the fixed zone all practice dates are expressed in.
const referenceTimeZone = "Europe/Rome"

var referenceLocation = func() *time.Location {
	loc, err := time.LoadLocation(referenceTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}()

// CalendarDay formats t as a YYYYMMDD calendar day in the reference time zone.
func CalendarDay(t time.Time) string {
	return t.In(referenceLocation).Format(DateFormat)
}

// AnswerTimestamp formats t as "YYYYMMDD HH:mm" in the reference time zone.
func AnswerTimestamp(t time.Time) string {
	return t.In(referenceLocation).Format(TimestampFormat)
}
