package analytics

import (
	"time"
)

// VolumePoint is one day in the fixed daily volume series.
type VolumePoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"` // numeric month/day, e.g. "3/14"
	Count int       `json:"count"`
}

// BreakdownItem is the drill-down detail for one work item inside a bucket.
type BreakdownItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	TypeTag  string    `json:"typeTag,omitempty"`
	Date     time.Time `json:"date"`
	Analyses int       `json:"analyses"`
	Reviews  int       `json:"reviews"`
}

// PeriodBucket is one day/week/month slot in a grouped breakdown series.
// Buckets are pre-seeded for every period in range, so a series never has
// holes even when nothing happened.
type PeriodBucket struct {
	Start          time.Time       `json:"start"`
	Key            string          `json:"key"` // ISO date of the period start
	Label          string          `json:"label"`
	New            int             `json:"new"`
	Submitted      int             `json:"submitted"`
	Declined       int             `json:"declined"`
	NewItems       []BreakdownItem `json:"newItems"`
	SubmittedItems []BreakdownItem `json:"submittedItems"`
	DeclinedItems  []BreakdownItem `json:"declinedItems"`
}

// FlowNode is one node in the flow graph. Node 0 is the aggregate root.
type FlowNode struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FlowLink connects the root node to one lifecycle group.
type FlowLink struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Value  int    `json:"value"`
	Color  string `json:"color,omitempty"`
}

// FlowGraph is the two-level current-state distribution diagram.
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// AnalystRank is one leaderboard row.
type AnalystRank struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ItemActivity is the activity tally for one work item. Total is a plain
// unweighted sum across all activity types.
type ItemActivity struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Analyses int    `json:"analyses"`
	Reviews  int    `json:"reviews"`
	FOIA     int    `json:"foia"`
	Chat     int    `json:"chat"`
	Updates  int    `json:"updates"`
	Total    int    `json:"total"`
}

// Totals carries the headline numbers shown above the charts.
type Totals struct {
	Items        int `json:"items"`
	Analyses     int `json:"analyses"`
	Reviews      int `json:"reviews"`
	FOIARequests int `json:"foiaRequests"`
	ChatSessions int `json:"chatSessions"`
}

// DateRange is the span the summary covers.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SummaryResult is the full computed payload, cached as a unit.
type SummaryResult struct {
	Volume       []VolumePoint                `json:"volume"`
	Breakdowns   map[Timeframe][]PeriodBucket `json:"breakdowns"`
	Flow         FlowGraph                    `json:"flow"`
	Leaderboard  []AnalystRank                `json:"leaderboard"`
	MostActive   []ItemActivity               `json:"mostActive"`
	BusiestDay   string                       `json:"busiestDay"`
	WeekOverWeek *float64                     `json:"weekOverWeek"` // percent, nil when the prior week is empty
	AvgPerDay    float64                      `json:"avgPerDay"`
	Totals       Totals                       `json:"totals"`
	Range        DateRange                    `json:"range"`
	ComputedAt   time.Time                    `json:"computedAt"`
}

// CacheEntry is the serialized cache value wrapping one SummaryResult.
type CacheEntry struct {
	Data       SummaryResult `json:"data"`
	ComputedAt time.Time     `json:"computedAt"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}
