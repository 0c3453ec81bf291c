package valueobject

import (
	"strings"
	"time"

	"github.com/peatti/auth-server/internal/domain/apperror"
)

// DateTime is an instant normalized to UTC.
type DateTime struct {
	t time.Time
}

// clock is replaced in tests.
var clock = time.Now

func Now() DateTime {
	return DateTime{t: clock().UTC()}
}

func FromTime(t time.Time) (DateTime, error) {
	if t.IsZero() {
		return DateTime{}, apperror.InvalidDateTime(t.String(), nil)
	}
	return DateTime{t: t.UTC()}, nil
}

// ParseDateTime accepts RFC 3339 with optional fractional seconds.
func ParseDateTime(raw string) (DateTime, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return DateTime{}, apperror.InvalidDateTime(raw, err)
	}
	return DateTime{t: t.UTC()}, nil
}

func (d DateTime) Time() time.Time        { return d.t }
func (d DateTime) IsZero() bool           { return d.t.IsZero() }
func (d DateTime) Equal(o DateTime) bool  { return d.t.Equal(o.t) }
func (d DateTime) Before(o DateTime) bool { return d.t.Before(o.t) }
func (d DateTime) After(o DateTime) bool  { return d.t.After(o.t) }
func (d DateTime) String() string         { return d.t.Format(time.RFC3339Nano) }
