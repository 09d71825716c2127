// Package dateparse resolves due-date tokens from task shorthand into
// calendar dates.
package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats are tried in order; the first successful parse wins.
var dateFormats = []string{
	"2006-01-02",
	"01-02-2006",
	"01/02/2006",
	"2006/01/02",
}

// Parser converts due-date tokens to absolute dates in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone string, e.g. "UTC".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ParseDueToken resolves a due token ("today", "tomorrow", "nextweek" or a
// calendar date) relative to baseTime. The second return is false when the
// token is unrecognized; callers leave the due date unset in that case.
func (p *Parser) ParseDueToken(token string, baseTime time.Time) (time.Time, bool) {
	token = strings.ToLower(strings.TrimSpace(token))

	switch token {
	case "":
		return time.Time{}, false
	case "today":
		return p.StartOfDay(baseTime), true
	case "tomorrow":
		return p.StartOfDay(baseTime.AddDate(0, 0, 1)), true
	case "nextweek", "next-week":
		return p.StartOfDay(baseTime.AddDate(0, 0, 7)), true
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, token, p.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a plain YYYY-MM-DD date string.
func (p *Parser) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, p.location)
}

// StartOfDay returns midnight at the start of the given day in the parser's
// timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// SameDay reports whether a and b fall on the same calendar day.
func (p *Parser) SameDay(a, b time.Time) bool {
	return p.StartOfDay(a).Equal(p.StartOfDay(b))
}
