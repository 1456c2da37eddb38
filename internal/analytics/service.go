package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bidboard/internal/board"
	"bidboard/internal/feed"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// SummaryCacheKey is the single logical summary resource this engine
	// serves; the cache is not caller-parameterized.
	SummaryCacheKey = "dashboard-summary"

	// DefaultSummaryTTL is how long a computed summary stays fresh.
	DefaultSummaryTTL = 24 * time.Hour

	// DefaultFetchLimit bounds feed queries when the caller passes none.
	DefaultFetchLimit = 500

	auditLogLimit = 500
)

// SummaryCache is the external cache collaborator: get/set/delete of the
// serialized CacheEntry under a fixed key.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// Service orchestrates the source fetches and the pure builders into one
// cached SummaryResult.
type Service struct {
	board   board.Client
	feeds   feed.Store
	cache   SummaryCache
	cls     *Classifier
	palette map[string]string
	ttl     time.Duration
	now     func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClassifier overrides the default lifecycle classifier.
func WithClassifier(cls *Classifier) ServiceOption {
	return func(s *Service) { s.cls = cls }
}

// WithPalette overrides the default color palette.
func WithPalette(palette map[string]string) ServiceOption {
	return func(s *Service) { s.palette = palette }
}

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a summary service over the given collaborators.
func NewService(b board.Client, f feed.Store, c SummaryCache, opts ...ServiceOption) *Service {
	s := &Service{
		board:   b,
		feeds:   f,
		cache:   c,
		cls:     NewClassifier(DefaultClassifierConfig()),
		palette: DefaultPalette(),
		ttl:     DefaultSummaryTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSummary returns the dashboard summary, read-through cached. A forced
// refresh bypasses the read path and unconditionally overwrites the entry.
// Cache-store failures are logged and never fail the summary itself.
func (s *Service) GetSummary(ctx context.Context, windowDays, itemLimit int, forceRefresh bool) (*SummaryResult, error) {
	reqID := uuid.NewString()[:8]

	if !forceRefresh {
		if entry, ok := s.readCache(ctx); ok {
			log.Debug().Str("req", reqID).Time("expires", entry.ExpiresAt).Msg("Summary cache hit")
			return &entry.Data, nil
		}
	}

	started := s.now()
	log.Info().Str("req", reqID).Int("windowDays", windowDays).Bool("refresh", forceRefresh).Msg("Computing dashboard summary")

	result, err := s.compute(ctx, windowDays, itemLimit)
	if err != nil {
		return nil, err
	}

	log.Info().Str("req", reqID).Dur("took", s.now().Sub(started)).Msg("Summary computed")
	s.writeCache(ctx, result)
	return result, nil
}

// ClearCache drops the stored summary so the next read recomputes.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Delete(ctx, SummaryCacheKey)
}

func (s *Service) readCache(ctx context.Context) (*CacheEntry, bool) {
	payload, ok, err := s.cache.Get(ctx, SummaryCacheKey)
	if err != nil {
		log.Warn().Err(err).Msg("Summary cache read failed, recomputing")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry CacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		log.Warn().Err(err).Msg("Discarding undecodable summary cache entry")
		return nil, false
	}
	if !s.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return &entry, true
}

func (s *Service) writeCache(ctx context.Context, result *SummaryResult) {
	entry := CacheEntry{
		Data:       *result,
		ComputedAt: result.ComputedAt,
		ExpiresAt:  result.ComputedAt.Add(s.ttl),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to serialize summary cache entry")
		return
	}
	if err := s.cache.Set(ctx, SummaryCacheKey, payload); err != nil {
		log.Warn().Err(err).Msg("Summary cache write failed, result still served")
	}
}

// compute performs the full multi-source join. Every primary fetch runs
// concurrently and all must succeed: a partial join would silently
// misrepresent totals, so primary failure is fatal to the whole computation.
func (s *Service) compute(ctx context.Context, windowDays, itemLimit int) (*SummaryResult, error) {
	if windowDays <= 0 {
		windowDays = DefaultVolumeDays
	}
	if itemLimit <= 0 {
		itemLimit = DefaultFetchLimit
	}

	now := s.now()
	q := feed.Query{
		From:  now.AddDate(0, 0, -windowDays),
		To:    now,
		Limit: itemLimit,
	}

	var (
		items    []board.Item
		moves    []board.MoveEvent
		analyses []feed.AnalysisDTO
		reviews  []feed.ReviewDTO
		foia     []feed.FOIAAnalysisDTO
		chats    []feed.ChatSessionDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.board.FetchItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		moves, err = s.board.FetchMoveEvents(gctx, auditLogLimit)
		return err
	})
	g.Go(func() (err error) {
		analyses, err = s.feeds.FetchAnalyses(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.feeds.FetchReviews(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		foia, err = s.feeds.FetchFOIAAnalyses(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		chats, err = s.feeds.FetchChatSessions(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("primary source fetch failed: %w", err)
	}

	log.Debug().
		Int("items", len(items)).
		Int("moves", len(moves)).
		Int("analyses", len(analyses)).
		Int("reviews", len(reviews)).
		Int("foia", len(foia)).
		Int("chats", len(chats)).
		Msg("Primary fetches settled")

	records := make([]feed.Record, 0, len(analyses)+len(reviews)+len(foia)+len(chats))
	records = append(records, feed.NormalizeAnalyses(analyses)...)
	records = append(records, feed.NormalizeReviews(reviews)...)
	records = append(records, feed.NormalizeFOIAAnalyses(foia)...)
	records = append(records, feed.NormalizeChatSessions(chats)...)

	counts := CountItemActivity(items, records)
	volume := BuildVolumeSeries(records, windowDays, now)

	result := &SummaryResult{
		Volume:       volume,
		Breakdowns:   BuildAllBreakdowns(items, moves, counts, now, s.cls),
		Flow:         BuildFlowGraph(items, s.palette),
		Leaderboard:  BuildLeaderboard(records, LeaderboardSize),
		BusiestDay:   BusiestDay(volume),
		WeekOverWeek: WeekOverWeekChange(volume),
		AvgPerDay:    s.averagePerDay(ctx, volume, now),
		MostActive:   s.mostActiveItems(ctx, counts),
		Totals: Totals{
			Items:        len(items),
			Analyses:     len(analyses),
			Reviews:      len(reviews),
			FOIARequests: len(foia),
			ChatSessions: len(chats),
		},
		Range: DateRange{
			From: SnapToStart(now.AddDate(0, 0, -(windowDays-1)), "day"),
			To:   now,
		},
		ComputedAt: now,
	}

	return result, nil
}

// averagePerDay prefers the all-time average over the full unfiltered
// history; when that fetch fails the requested-window average stands in.
func (s *Service) averagePerDay(ctx context.Context, volume []VolumePoint, now time.Time) float64 {
	var (
		analyses []feed.AnalysisDTO
		reviews  []feed.ReviewDTO
		foia     []feed.FOIAAnalysisDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		analyses, err = s.feeds.FetchAnalyses(gctx, feed.Query{})
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.feeds.FetchReviews(gctx, feed.Query{})
		return err
	})
	g.Go(func() (err error) {
		foia, err = s.feeds.FetchFOIAAnalyses(gctx, feed.Query{})
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("All-time history fetch failed, using window average")
		return WindowAverage(volume)
	}

	history := make([]feed.Record, 0, len(analyses)+len(reviews)+len(foia))
	history = append(history, feed.NormalizeAnalyses(analyses)...)
	history = append(history, feed.NormalizeReviews(reviews)...)
	history = append(history, feed.NormalizeFOIAAnalyses(foia)...)

	if avg, ok := AllTimeAverage(history, now); ok {
		return avg
	}
	return WindowAverage(volume)
}

// mostActiveItems enriches only the top candidates with per-item update
// counts. The audit fetch is expensive, so it is bounded to the candidates
// and any individual failure is swallowed as zero.
func (s *Service) mostActiveItems(ctx context.Context, counts map[string]ItemActivity) []ItemActivity {
	ranked := RankItemActivity(counts)
	if len(ranked) > ActivityCandidates {
		ranked = ranked[:ActivityCandidates]
	}

	var g errgroup.Group
	for i := range ranked {
		i := i
		g.Go(func() error {
			updates, err := s.board.FetchItemUpdateCount(ctx, ranked[i].ID)
			if err != nil {
				log.Debug().Err(err).Str("item", ranked[i].ID).Msg("Update count fetch failed, counting zero")
				return nil
			}
			ranked[i].Updates = updates
			ranked[i].Total += updates
			return nil
		})
	}
	_ = g.Wait()

	reranked := make(map[string]ItemActivity, len(ranked))
	for _, c := range ranked {
		reranked[c.ID] = c
	}
	top := RankItemActivity(reranked)
	if len(top) > MostActiveSize {
		top = top[:MostActiveSize]
	}
	return top
}
