package feed

import (
	"encoding/json"
	"time"
)

// TimeConvertible matches structured timestamp values that carry their own
// zero-argument conversion.
type TimeConvertible interface {
	Time() time.Time
}

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime normalizes the timestamp encodings observed across the
// activity stores: ISO-8601 strings, numeric epoch milliseconds, objects
// carrying integer seconds (under "seconds" or "_seconds"), and values with
// their own conversion method. Returns ok=false instead of failing the
// caller; an unparsable timestamp is a per-record condition, never fatal.
func ParseFlexibleTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case TimeConvertible:
		t := val.Time()
		return t, !t.IsZero()
	case string:
		for _, layout := range stringLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case float64:
		return fromEpochMillis(int64(val))
	case int64:
		return fromEpochMillis(val)
	case int:
		return fromEpochMillis(int64(val))
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return fromEpochMillis(n)
		}
		if f, err := val.Float64(); err == nil {
			return fromEpochMillis(int64(f))
		}
		return time.Time{}, false
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			if secs, ok := numericField(val[key]); ok {
				return fromEpochSeconds(secs)
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func numericField(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

func fromEpochMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

func fromEpochSeconds(secs int64) (time.Time, bool) {
	if secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}
