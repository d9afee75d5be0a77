package csvimport

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

var (
	// ErrNoDateValue means the cell was blank; callers apply their default
	// without warning.
	ErrNoDateValue = errors.New("no date value")
	// ErrInvalidDate means the cell had text that is not a real calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

var (
	dayFirst  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	yearFirst = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
)

// NormalizeDate converts D/M/YYYY, YYYY-M-D and anything else dateparse
// understands into YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrNoDateValue
	}

	if m := dayFirst.FindStringSubmatch(s); m != nil {
		return calendarDate(m[3], m[2], m[1])
	}
	if m := yearFirst.FindStringSubmatch(s); m != nil {
		return calendarDate(m[1], m[2], m[3])
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.UTC().Format(isoDate), nil
}

// calendarDate rejects values time.Date would silently roll over, such as
// 31/02 or month 13.
func calendarDate(year, month, day string) (string, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", ErrInvalidDate
	}
	return t.Format(isoDate), nil
}
