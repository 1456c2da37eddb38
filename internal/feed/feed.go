package feed

import (
	"context"
	"time"
)

// Kind identifies which activity store a normalized record came from.
type Kind string

const (
	KindAnalysis Kind = "analysis"
	KindReview   Kind = "review"
	KindFOIA     Kind = "foia"
	KindChat     Kind = "chat"
)

// Record is the single normalized shape all four activity feeds reduce to.
// OccurredAt is the zero time when the source timestamp was unparsable; such
// records still count toward totals and the leaderboard but are excluded
// from every period placement.
type Record struct {
	Kind        Kind
	OccurredAt  time.Time
	Actor       string
	EntityIDs   []string // foreign-key alias candidates, priority order
	EntityTitle string
}

// AnalysisLike reports whether the record counts toward the volume series
// (chat sessions do not).
func (r Record) AnalysisLike() bool {
	return r.Kind != KindChat
}

// Query bounds a store fetch. A zero Query means unfiltered full history.
type Query struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Store is the interface over the four activity-result stores.
type Store interface {
	FetchAnalyses(ctx context.Context, q Query) ([]AnalysisDTO, error)
	FetchReviews(ctx context.Context, q Query) ([]ReviewDTO, error)
	FetchFOIAAnalyses(ctx context.Context, q Query) ([]FOIAAnalysisDTO, error)
	FetchChatSessions(ctx context.Context, q Query) ([]ChatSessionDTO, error)
}

// Config holds connection settings for the records API backing the stores.
type Config struct {
	BaseURL string
	Token   string
}

// NewStore creates a Store backed by the records API.
func NewStore(cfg Config) Store {
	return newHTTPStore(cfg)
}
