package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"bidboard/internal/board"
	"bidboard/internal/feed"
)

const (
	// LeaderboardSize is the number of analysts exposed in the summary.
	LeaderboardSize = 8
	// ActivityCandidates bounds the expensive per-item update-count fetch.
	ActivityCandidates = 10
	// MostActiveSize is the number of items exposed in the summary.
	MostActiveSize = 3
)

// BusiestDay returns the label of the highest-volume bucket, or "none" when
// every bucket is zero.
func BusiestDay(volume []VolumePoint) string {
	best := -1
	label := "none"
	for _, p := range volume {
		if p.Count > 0 && p.Count > best {
			best = p.Count
			label = p.Label
		}
	}
	return label
}

// WeekOverWeekChange returns the percentage delta between the most recent 7
// buckets and the preceding 7. Nil (not NaN, not a panic) when the prior
// week sums to zero.
func WeekOverWeekChange(volume []VolumePoint) *float64 {
	if len(volume) < 14 {
		return nil
	}

	recent, prior := 0, 0
	for _, p := range volume[len(volume)-7:] {
		recent += p.Count
	}
	for _, p := range volume[len(volume)-14 : len(volume)-7] {
		prior += p.Count
	}

	if prior == 0 {
		return nil
	}
	change := math.Round((float64(recent-prior)/float64(prior))*1000) / 10
	return &change
}

// WindowAverage is the per-day average over the volume series, used when the
// all-time history fetch is unavailable.
func WindowAverage(volume []VolumePoint) float64 {
	if len(volume) == 0 {
		return 0
	}
	total := 0
	for _, p := range volume {
		total += p.Count
	}
	return math.Round(float64(total)/float64(len(volume))*10) / 10
}

// AllTimeAverage divides the full history count by the days elapsed since
// the earliest dated record. ok=false when no record carries a usable date.
func AllTimeAverage(records []feed.Record, now time.Time) (float64, bool) {
	var earliest time.Time
	total := 0
	for _, rec := range records {
		if !rec.AnalysisLike() || rec.OccurredAt.IsZero() {
			continue
		}
		total++
		if earliest.IsZero() || rec.OccurredAt.Before(earliest) {
			earliest = rec.OccurredAt
		}
	}
	if total == 0 || earliest.IsZero() {
		return 0, false
	}

	days := int(now.Sub(earliest).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return math.Round(float64(total)/float64(days)*10) / 10, true
}

// NormalizeActor reduces an actor identity to a display name: the email
// local-part with underscores and dots as spaces, title-cased. Empty input
// maps to "Unknown".
func NormalizeActor(actor string) string {
	local := actor
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}
	local = strings.NewReplacer("_", " ", ".", " ").Replace(local)

	words := strings.Fields(local)
	if len(words) == 0 {
		return "Unknown"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// BuildLeaderboard ranks analysts by activity count across every record kind,
// chat included. Top n by count, name ascending on ties for determinism.
func BuildLeaderboard(records []feed.Record, n int) []AnalystRank {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[NormalizeActor(rec.Actor)]++
	}

	ranks := make([]AnalystRank, 0, len(counts))
	for name, count := range counts {
		ranks = append(ranks, AnalystRank{Name: name, Count: count})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Name < ranks[j].Name
	})

	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// CountItemActivity tallies per-item activity across all record kinds.
// Records that resolve to no item are left out here but still count toward
// volume and the leaderboard upstream.
func CountItemActivity(items []board.Item, records []feed.Record) map[string]ItemActivity {
	counts := make(map[string]ItemActivity, len(items))
	for _, item := range items {
		counts[item.ID] = ItemActivity{ID: item.ID, Title: item.Title}
	}

	for _, rec := range records {
		item, ok := FindItem(rec, items)
		if !ok {
			continue
		}
		c := counts[item.ID]
		switch rec.Kind {
		case feed.KindAnalysis:
			c.Analyses++
		case feed.KindReview:
			c.Reviews++
		case feed.KindFOIA:
			c.FOIA++
		case feed.KindChat:
			c.Chat++
		}
		counts[item.ID] = c
	}

	for id, c := range counts {
		c.Total = c.Analyses + c.Reviews + c.FOIA + c.Chat + c.Updates
		counts[id] = c
	}
	return counts
}

// RankItemActivity orders per-item tallies by descending unweighted total.
// All five activity kinds count equally; no weighting has been asked for.
func RankItemActivity(counts map[string]ItemActivity) []ItemActivity {
	ranked := make([]ItemActivity, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
