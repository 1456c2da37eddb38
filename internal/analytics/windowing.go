package analytics

import (
	"fmt"
	"time"
)

// Timeframe selects the grouped-breakdown resolution.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "7d"  // daily buckets
	TimeframeQuarter Timeframe = "3m"  // weekly buckets
	TimeframeYear    Timeframe = "12m" // monthly buckets
	TimeframeAll     Timeframe = "all" // monthly buckets
)

// Timeframes lists all supported grouped-breakdown windows.
var Timeframes = []Timeframe{TimeframeWeek, TimeframeQuarter, TimeframeYear, TimeframeAll}

// Bucket returns the period resolution for the timeframe.
func (tf Timeframe) Bucket() string {
	switch tf {
	case TimeframeWeek:
		return "day"
	case TimeframeQuarter:
		return "week"
	default:
		return "month"
	}
}

// Window builds the bucketed window for the timeframe ending at now. For the
// all-time frame the start falls back to twelve months when no earliest
// record date is known.
func (tf Timeframe) Window(now, earliest time.Time) Window {
	var start time.Time
	switch tf {
	case TimeframeWeek:
		start = now.AddDate(0, 0, -6)
	case TimeframeQuarter:
		start = now.AddDate(0, -3, 0)
	case TimeframeYear:
		start = now.AddDate(0, -12, 0)
	case TimeframeAll:
		if earliest.IsZero() {
			start = now.AddDate(0, -12, 0)
		} else {
			start = earliest
		}
	default:
		start = now.AddDate(0, 0, -6)
	}
	return NewWindow(start, now, tf.Bucket())
}

// Window defines the temporal context for a bucketed series.
type Window struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Bucket string    `json:"bucket"` // "day", "week", "month"
}

// NewWindow creates a window with boundaries snapped to bucket edges.
func NewWindow(start, end time.Time, bucket string) Window {
	if bucket == "" {
		bucket = "day"
	}
	return Window{
		Start:  SnapToStart(start, bucket),
		End:    SnapToEnd(end, bucket),
		Bucket: bucket,
	}
}

// SnapToStart normalizes a timestamp to the beginning of its bucket: day
// zeroes the time-of-day, week rolls back to the ISO Monday, month to day 1.
func SnapToStart(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	switch bucket {
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case "week":
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday -> 7
		}
		return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
	default: // day
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// SnapToEnd normalizes a timestamp to the very end of its bucket.
func SnapToEnd(t time.Time, bucket string) time.Time {
	if t.IsZero() {
		return t
	}
	switch bucket {
	case "month":
		nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
		return nextMonth.Add(-time.Nanosecond)
	case "week":
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(t.Year(), t.Month(), t.Day()+(7-weekday), 23, 59, 59, 999999999, t.Location())
	default: // day
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
	}
}

// PeriodKey returns the ISO date of the period start. This is the only
// cross-component bucket identity.
func PeriodKey(t time.Time, bucket string) string {
	return SnapToStart(t, bucket).Format("2006-01-02")
}

// Subdivide returns the start time of every bucket within the window.
func (w Window) Subdivide() []time.Time {
	var buckets []time.Time
	current := w.Start
	for current.Before(w.End) {
		buckets = append(buckets, current)
		switch w.Bucket {
		case "month":
			current = current.AddDate(0, 1, 0)
		case "week":
			current = current.AddDate(0, 0, 7)
		default: // day
			current = current.AddDate(0, 0, 1)
		}
	}
	return buckets
}

// FindBucketIndex returns the index of the bucket containing t, or -1 when t
// falls outside the window.
func (w Window) FindBucketIndex(t time.Time) int {
	if t.IsZero() {
		return -1
	}
	tNorm := SnapToStart(t, w.Bucket)
	if tNorm.Before(w.Start) || tNorm.After(w.End) {
		return -1
	}

	switch w.Bucket {
	case "month":
		return (tNorm.Year()-w.Start.Year())*12 + int(tNorm.Month()-w.Start.Month())
	case "week":
		// Integer division on hours avoids floating point drift
		return int(tNorm.Sub(w.Start).Hours() / (24 * 7))
	default: // day
		return int(tNorm.Sub(w.Start).Hours() / 24)
	}
}

// Label returns a human-readable bucket label.
func (w Window) Label(t time.Time) string {
	switch w.Bucket {
	case "month":
		return t.Format("Jan 2006")
	case "week":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default: // day
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	}
}
