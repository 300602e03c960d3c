// Package timefmt converts the time values seen around a trading bot (epoch
// numbers from exchanges, time.Time values, textual dates) into a single
// timestamp string anchored to one configured timezone.
package timefmt

import (
	"math"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
)

// Layout is the rendering used for every normalized timestamp, e.g.
// "2025-03-01 08:00:00 UTC+08:00". "UTC" is a literal, not a layout token.
const Layout = "2006-01-02 15:04:05 UTC-07:00"

// DateLayout is the calendar date layout used for rotated file names.
const DateLayout = "2006-01-02"

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e10 seconds is in the year 2286, so anything larger is taken as milliseconds.
const epochMillisThreshold = 1e10

// Naive is a wall-clock date time without a zone.
// Its year/month/day/hour/minute/second are read in the normalizer's zone;
// the location carried by the embedded time.Time is ignored.
type Naive struct {
	time.Time
}

// NewNaive builds a Naive from wall-clock parts.
func NewNaive(year int, month time.Month, day, hour, minute, sec int) Naive {
	return Naive{Time: time.Date(year, month, day, hour, minute, sec, 0, time.UTC)}
}

// naiveLayouts are parsed in the target zone.
var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// zonedLayouts carry their own offset and are converted to the target zone.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	Layout,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// Normalizer renders heterogeneous time input in one zone.
type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock replaces the clock used when the input is nil.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// NewNormalizer creates a Normalizer for loc. A nil loc means UTC.
func NewNormalizer(loc *time.Location, opts ...Option) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}

	n := &Normalizer{
		loc: loc,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NewNormalizerForZone resolves an IANA zone name such as "Asia/Taipei".
func NewNormalizerForZone(zone string, opts ...Option) (*Normalizer, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidTimezone, err, "unknown timezone %q", zone)
	}

	return NewNormalizer(loc, opts...), nil
}

// Location returns the target zone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Now returns the current time in the target zone.
func (n *Normalizer) Now() time.Time {
	return n.now().In(n.loc)
}

// Format renders t in the target zone.
func (n *Normalizer) Format(t time.Time) string {
	return t.In(n.loc).Format(Layout)
}

// Date returns the calendar date of t in the target zone.
func (n *Normalizer) Date(t time.Time) string {
	return t.In(n.loc).Format(DateLayout)
}

// Normalize parses input and renders it with Layout.
func (n *Normalizer) Normalize(input any) (string, error) {
	t, err := n.Parse(input)
	if err != nil {
		return "", err
	}

	return n.Format(t), nil
}

// Parse converts input into a time.Time in the target zone.
//
// Accepted inputs: nil (now), signed/unsigned integers and floats as epoch
// seconds (milliseconds above 1e10), time.Time, *time.Time, Naive and strings
// in one of the layouts above.
func (n *Normalizer) Parse(input any) (time.Time, error) {
	switch v := input.(type) {
	case nil:
		return n.Now(), nil
	case time.Time:
		return v.In(n.loc), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errors.New(errors.ErrCodeInvalidTimeFormat, "nil *time.Time")
		}

		return v.In(n.loc), nil
	case Naive:
		return n.fromWall(v.Time), nil
	case int:
		return n.fromEpoch(float64(v))
	case int32:
		return n.fromEpoch(float64(v))
	case int64:
		return n.fromEpoch(float64(v))
	case uint:
		return n.fromEpoch(float64(v))
	case uint32:
		return n.fromEpoch(float64(v))
	case uint64:
		return n.fromEpoch(float64(v))
	case float32:
		return n.fromEpoch(float64(v))
	case float64:
		return n.fromEpoch(v)
	case string:
		return n.parseString(v)
	default:
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidTimeFormat, "unsupported time input of type %T", input)
	}
}

func (n *Normalizer) fromWall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), n.loc)
}

func (n *Normalizer) fromEpoch(v float64) (time.Time, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidTimeFormat, "invalid epoch value %v", v)
	}

	if v > epochMillisThreshold {
		v /= 1000
	}

	sec, frac := math.Modf(v)

	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).In(n.loc), nil
}

func (n *Normalizer) parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidTimeFormat, "empty time string")
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(n.loc), nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidTimeFormat, "unsupported time string %q", s)
}
