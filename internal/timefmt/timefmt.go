// Package timefmt converts between times and the string forms reclog uses
// for log keys and command-line time arguments.
//
// All conversions use the local time zone.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Layouts for ISO time and standard date strings.
const (
	ISOLayout  = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// ISOTime formats t as "YYYY-MM-DD HH:MM:SS".
func ISOTime(t time.Time) string {
	return t.In(time.Local).Format(ISOLayout)
}

// StdDate formats t as "YYYY-MM-DD".
func StdDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// ParseISO parses a "YYYY-MM-DD HH:MM:SS" string.
func ParseISO(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISOLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse iso time %q: %w", s, err)
	}
	return t, nil
}

// Parse accepts any of:
//
//	14:09
//	14:09:01
//	2015-06-15
//	2015-06-15 14:09
//	2015-06-15 14:09:01
//
// Missing seconds are taken as zero. A bare date means midnight. A bare
// time is placed on now's date.
func Parse(s string, now time.Time) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, fmt.Errorf("parse time %q: expected [date] [time]", s)
	}

	last := len(fields) - 1
	if strings.Count(fields[last], ":") == 1 {
		fields[last] += ":00"
	}

	if len(fields) == 1 {
		if strings.Contains(fields[0], "-") {
			fields = append(fields, "00:00:00")
		} else {
			fields = append([]string{StdDate(now)}, fields...)
		}
	}

	return ParseISO(strings.Join(fields, " "))
}
