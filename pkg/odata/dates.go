package odata

import (
	"fmt"
	"regexp"
	"time"

	"github.com/araddon/dateparse"
)

var (
	isoDatePattern = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?)?$`)
	dateTimeOffsetPattern = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)
)

// ParseISODate parses the body of a datetime'...' literal. A date without a
// zone designator is taken as UTC. The result is always in UTC.
func ParseISODate(s string) (time.Time, error) {
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date", s)
	}
	return parseTimestamp(s)
}

// ParseDateTimeOffset parses the body of a datetimeoffset'...' literal.
// A time of day is required.
func ParseDateTimeOffset(s string) (time.Time, error) {
	if !dateTimeOffsetPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date time offset", s)
	}
	return parseTimestamp(s)
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q: %w", s, err)
	}

	return t.UTC(), nil
}
