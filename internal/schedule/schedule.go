// Package schedule interprets the departure and arrival tokens stored on a
// flight. Tokens are opaque to the reservation core; they are only parsed here
// for display, filtering and sorting.
package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

var ErrUnparseable = errors.New("unparseable schedule time")

// Zones known by abbreviation. Anything else goes through time.LoadLocation.
var (
	UTC  = time.UTC
	WIB  = time.FixedZone("WIB", 7*60*60)
	WITA = time.FixedZone("WITA", 8*60*60)
	WIT  = time.FixedZone("WIT", 9*60*60)
)

var dateTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockFormats = []string{
	"15:04",
	"15:04:05",
	"1504",
	"3:04PM",
	"3:04pm",
}

// Time is a parsed schedule token. Clock-only tokens carry no date, so two of
// them can only be compared within a single day.
type Time struct {
	At        time.Time
	ClockOnly bool
}

func (t Time) MinuteOfDay() int {
	return t.At.Hour()*60 + t.At.Minute()
}

// Parse reads a schedule token as a full timestamp or as a time of day. Zoneless
// timestamps are interpreted in loc, which defaults to UTC.
func Parse(token string, loc *time.Location) (Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Time{}, ErrUnparseable
	}
	if loc == nil {
		loc = UTC
	}
	for _, format := range dateTimeFormats {
		if t, err := time.ParseInLocation(format, token, loc); err == nil {
			return Time{At: t}, nil
		}
	}
	for _, format := range clockFormats {
		if t, err := time.ParseInLocation(format, token, loc); err == nil {
			return Time{At: t, ClockOnly: true}, nil
		}
	}
	return Time{}, &time.ParseError{Value: token, Message: ": " + ErrUnparseable.Error()}
}

// MinuteOfDay parses a token and returns minutes since midnight.
func MinuteOfDay(token string) (int, error) {
	t, err := Parse(token, nil)
	if err != nil {
		return 0, err
	}
	return t.MinuteOfDay(), nil
}

// Duration is the flight time between two tokens. A clock-only arrival earlier
// than the departure is taken to land the next day.
func Duration(departure, arrival string) (time.Duration, error) {
	dep, err := Parse(departure, nil)
	if err != nil {
		return 0, err
	}
	arr, err := Parse(arrival, nil)
	if err != nil {
		return 0, err
	}
	if dep.ClockOnly != arr.ClockOnly {
		return 0, errors.New("cannot mix a time of day with a full timestamp")
	}
	if dep.ClockOnly {
		d := time.Duration(arr.MinuteOfDay()-dep.MinuteOfDay()) * time.Minute
		if d < 0 {
			d += 24 * time.Hour
		}
		return d, nil
	}
	d := arr.At.Sub(dep.At)
	if d < 0 {
		return 0, errors.New("arrival precedes departure")
	}
	return d, nil
}

// LocationByName resolves a zone abbreviation, a UTC offset alias or an IANA
// name. Unknown names fall back to UTC.
func LocationByName(name string) *time.Location {
	switch strings.ToUpper(name) {
	case "", "UTC", "Z":
		return UTC
	case "WIB", "UTC+7":
		return WIB
	case "WITA", "UTC+8":
		return WITA
	case "WIT", "UTC+9":
		return WIT
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return UTC
}

func ToModel(d time.Duration) models.Duration {
	total := int(d / time.Minute)
	return models.Duration{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
	}
}
