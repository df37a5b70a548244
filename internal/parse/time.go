package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	LayoutDateTimeSeconds = "2006-01-02T15:04:05"
	LayoutDateTimeSpace   = "2006-01-02 15:04:05"
	LayoutDateTime        = "2006-01-02 15:04"
	LayoutDate            = "2006-01-02"
)

// Layouts are tried in this order. Layouts with a zone offset ignore the location.
var Layouts = []string{
	time.RFC3339Nano,
	LayoutDateTimeSeconds,
	LayoutDateTimeSpace,
	LayoutDateTime,
	LayoutDate,
}

// Location returns UTC for an empty name.
func Location(location string) (*time.Location, error) {
	if location == "" {
		return time.UTC, nil
	}
	l, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("invalid location (example: Europe/Berlin): %s: %w", location, err)
	}
	return l, nil
}

func TimeInLocation(datetime string, loc *time.Location) (time.Time, error) {
	datetime = strings.TrimSpace(datetime)
	if datetime == "" {
		return time.Time{}, errors.New("empty time string")
	}

	var errs []error
	for _, layout := range Layouts {
		t, err := time.ParseInLocation(layout, datetime, loc)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}

	return time.Time{},
		fmt.Errorf("invalid time: `%s`: expected one of the following formats: `%s`: %w",
			datetime,
			strings.Join(Layouts, "`, `"),
			errors.Join(errs...),
		)
}
