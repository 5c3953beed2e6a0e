package model

import (
	"fmt"
	"time"
)

// fechaLayouts are the accepted wire formats for date inputs, tried in
// order. Everything date-shaped in the API funnels through ParseFecha so
// a malformed value never travels past the boundary.
var fechaLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseFecha(value string) (time.Time, error) {
	for _, layout := range fechaLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", value)
}
