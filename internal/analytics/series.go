package analytics

import (
	"time"

	"bidboard/internal/board"
	"bidboard/internal/feed"
)

// DefaultVolumeDays is the volume-series span when the caller passes none.
const DefaultVolumeDays = 30

// BuildVolumeSeries builds the fixed daily volume series: exactly one bucket
// per day for the last days days, counting analysis-like records (chat
// excluded). Records with an unparsable timestamp never land in a bucket.
func BuildVolumeSeries(records []feed.Record, days int, now time.Time) []VolumePoint {
	if days <= 0 {
		days = DefaultVolumeDays
	}

	window := NewWindow(now.AddDate(0, 0, -(days-1)), now, "day")
	starts := window.Subdivide()
	series := make([]VolumePoint, len(starts))
	for i, start := range starts {
		series[i] = VolumePoint{
			Date:  start,
			Label: window.Label(start),
		}
	}

	for _, rec := range records {
		if !rec.AnalysisLike() {
			continue
		}
		if idx := window.FindBucketIndex(rec.OccurredAt); idx >= 0 && idx < len(series) {
			series[idx].Count++
		}
	}

	return series
}

// BuildBreakdown builds the grouped new/submitted/declined series for one
// timeframe. Every period in range gets a bucket, including empty ones; each
// item is evaluated independently per category, so one item can contribute
// to several buckets (created in one, declined in another).
func BuildBreakdown(
	items []board.Item,
	moves []board.MoveEvent,
	counts map[string]ItemActivity,
	tf Timeframe,
	now time.Time,
	cls *Classifier,
) []PeriodBucket {
	earliest := earliestCreation(items)
	window := tf.Window(now, earliest)

	starts := window.Subdivide()
	buckets := make([]PeriodBucket, len(starts))
	for i, start := range starts {
		buckets[i] = PeriodBucket{
			Start:          start,
			Key:            PeriodKey(start, window.Bucket),
			Label:          window.Label(start),
			NewItems:       []BreakdownItem{},
			SubmittedItems: []BreakdownItem{},
			DeclinedItems:  []BreakdownItem{},
		}
	}

	for _, item := range items {
		detail := func(date time.Time) BreakdownItem {
			d := BreakdownItem{
				ID:      item.ID,
				Title:   item.Title,
				TypeTag: item.TypeTag,
				Date:    date,
			}
			if c, ok := counts[item.ID]; ok {
				d.Analyses = c.Analyses
				d.Reviews = c.Reviews
			}
			return d
		}

		if idx := window.FindBucketIndex(item.CreatedAt); idx >= 0 && idx < len(buckets) {
			buckets[idx].New++
			buckets[idx].NewItems = append(buckets[idx].NewItems, detail(item.CreatedAt))
		}

		if cls.IsSubmitted(item) {
			at := cls.SubmittedAt(item, moves)
			if idx := window.FindBucketIndex(at); idx >= 0 && idx < len(buckets) {
				buckets[idx].Submitted++
				buckets[idx].SubmittedItems = append(buckets[idx].SubmittedItems, detail(at))
			}
		}

		if cls.IsDeclined(item) {
			at := cls.DeclinedAt(item, moves)
			if idx := window.FindBucketIndex(at); idx >= 0 && idx < len(buckets) {
				buckets[idx].Declined++
				buckets[idx].DeclinedItems = append(buckets[idx].DeclinedItems, detail(at))
			}
		}
	}

	return buckets
}

// BuildAllBreakdowns computes the grouped series for every supported timeframe.
func BuildAllBreakdowns(
	items []board.Item,
	moves []board.MoveEvent,
	counts map[string]ItemActivity,
	now time.Time,
	cls *Classifier,
) map[Timeframe][]PeriodBucket {
	out := make(map[Timeframe][]PeriodBucket, len(Timeframes))
	for _, tf := range Timeframes {
		out[tf] = BuildBreakdown(items, moves, counts, tf, now, cls)
	}
	return out
}

func earliestCreation(items []board.Item) time.Time {
	var earliest time.Time
	for _, item := range items {
		if item.CreatedAt.IsZero() {
			continue
		}
		if earliest.IsZero() || item.CreatedAt.Before(earliest) {
			earliest = item.CreatedAt
		}
	}
	return earliest
}
