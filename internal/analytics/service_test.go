package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"bidboard/internal/board"
	"bidboard/internal/feed"
)

type fakeBoard struct {
	items      []board.Item
	moves      []board.MoveEvent
	updates    map[string]int
	itemsErr   error
	updatesErr error

	fetchCalls  int
	updateCalls int
}

func (f *fakeBoard) FetchItems(ctx context.Context) ([]board.Item, error) {
	f.fetchCalls++
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items, nil
}

func (f *fakeBoard) FetchMoveEvents(ctx context.Context, limit int) ([]board.MoveEvent, error) {
	f.fetchCalls++
	return f.moves, nil
}

func (f *fakeBoard) FetchItemUpdateCount(ctx context.Context, itemID string) (int, error) {
	f.updateCalls++
	if f.updatesErr != nil {
		return 0, f.updatesErr
	}
	return f.updates[itemID], nil
}

type fakeFeeds struct {
	analyses []feed.AnalysisDTO
	reviews  []feed.ReviewDTO
	foia     []feed.FOIAAnalysisDTO
	chats    []feed.ChatSessionDTO

	analysesErr error
	historyErr  error // fails only unfiltered (zero Query) fetches

	fetchCalls int
}

func (f *fakeFeeds) FetchAnalyses(ctx context.Context, q feed.Query) ([]feed.AnalysisDTO, error) {
	f.fetchCalls++
	if f.analysesErr != nil {
		return nil, f.analysesErr
	}
	if q.From.IsZero() && f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.analyses, nil
}

func (f *fakeFeeds) FetchReviews(ctx context.Context, q feed.Query) ([]feed.ReviewDTO, error) {
	f.fetchCalls++
	return f.reviews, nil
}

func (f *fakeFeeds) FetchFOIAAnalyses(ctx context.Context, q feed.Query) ([]feed.FOIAAnalysisDTO, error) {
	f.fetchCalls++
	return f.foia, nil
}

func (f *fakeFeeds) FetchChatSessions(ctx context.Context, q feed.Query) ([]feed.ChatSessionDTO, error) {
	f.fetchCalls++
	return f.chats, nil
}

type memCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, payload []byte) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = payload
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func testService(b *fakeBoard, f *fakeFeeds, c SummaryCache) *Service {
	return NewService(b, f, c,
		WithClassifier(testClassifier()),
		WithClock(fixedNow),
	)
}

func scenarioFixtures() (*fakeBoard, *fakeFeeds) {
	now := fixedNow()
	b := &fakeBoard{
		items: []board.Item{
			{ID: "i-1", Title: "City RFP", GroupTitle: "Submitted", GroupColor: "green", CreatedAt: now.AddDate(0, 0, -5)},
			{ID: "i-2", Title: "County Job", GroupTitle: "Not Pursuing", GroupColor: "red", CreatedAt: now.AddDate(0, 0, -5)},
			{ID: "i-3", Title: "State Bid", GroupTitle: "Active", GroupColor: "blue", CreatedAt: now.AddDate(0, 0, -5)},
		},
		moves: []board.MoveEvent{
			{EntityID: "i-1", DestGroupTitle: "Submitted", OccurredAt: now.AddDate(0, 0, -3)},
			{EntityID: "i-2", DestGroupTitle: "Not Pursuing", OccurredAt: now.AddDate(0, 0, -1)},
		},
		updates: map[string]int{"i-1": 7},
	}
	f := &fakeFeeds{
		analyses: []feed.AnalysisDTO{
			{CreatedAt: now.AddDate(0, 0, -2).Format(time.RFC3339), UserEmail: "jane.doe@x.com", JobID: "i-1"},
			{CreatedAt: now.AddDate(0, 0, -1).Format(time.RFC3339), UserEmail: "jane.doe@x.com", JobID: "i-1"},
		},
		reviews: []feed.ReviewDTO{
			{ReviewedAt: now.AddDate(0, 0, -1).Format(time.RFC3339), Reviewer: "bob@x.com", ItemID: "i-2"},
		},
		chats: []feed.ChatSessionDTO{
			{StartedAt: now.Format(time.RFC3339), UserEmail: "ann@x.com", ContextItemID: "i-3"},
		},
	}
	return b, f
}

func TestGetSummary_EndToEnd(t *testing.T) {
	b, f := scenarioFixtures()
	svc := testService(b, f, newMemCache())

	result, err := svc.GetSummary(context.Background(), 30, 100, false)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if len(result.Volume) != 30 {
		t.Errorf("Expected 30 volume buckets, got %d", len(result.Volume))
	}
	if result.Totals.Items != 3 || result.Totals.Analyses != 2 {
		t.Errorf("Totals wrong: %+v", result.Totals)
	}

	week := result.Breakdowns[TimeframeWeek]
	if len(week) != 7 {
		t.Fatalf("Expected 7 weekly-breakdown buckets, got %d", len(week))
	}
	var submitted, declined int
	for _, bucket := range week {
		submitted += bucket.Submitted
		declined += bucket.Declined
	}
	if submitted != 1 || declined != 1 {
		t.Errorf("Expected submitted=1 declined=1 across the week, got %d/%d", submitted, declined)
	}

	// Flow: root plus three current groups.
	if len(result.Flow.Links) != 3 {
		t.Errorf("Expected 3 flow links, got %+v", result.Flow.Links)
	}

	if len(result.Leaderboard) == 0 || result.Leaderboard[0].Name != "Jane Doe" {
		t.Errorf("Expected Jane Doe leading, got %+v", result.Leaderboard)
	}

	// i-1 has 2 analyses + 7 updates fetched in enrichment.
	if len(result.MostActive) == 0 || result.MostActive[0].ID != "i-1" {
		t.Fatalf("Expected i-1 most active, got %+v", result.MostActive)
	}
	if result.MostActive[0].Updates != 7 || result.MostActive[0].Total != 9 {
		t.Errorf("Enriched totals wrong: %+v", result.MostActive[0])
	}
}

func TestGetSummary_CacheHitIssuesNoFetches(t *testing.T) {
	b, f := scenarioFixtures()
	svc := testService(b, f, newMemCache())

	first, err := svc.GetSummary(context.Background(), 30, 100, false)
	if err != nil {
		t.Fatalf("First GetSummary failed: %v", err)
	}
	if b.fetchCalls == 0 || f.fetchCalls == 0 {
		t.Fatal("Expected primary fetches on the first call")
	}

	b.fetchCalls, f.fetchCalls, b.updateCalls = 0, 0, 0

	second, err := svc.GetSummary(context.Background(), 30, 100, false)
	if err != nil {
		t.Fatalf("Second GetSummary failed: %v", err)
	}
	if b.fetchCalls != 0 || f.fetchCalls != 0 || b.updateCalls != 0 {
		t.Errorf("Expected no fetches on cache hit, got board=%d feeds=%d updates=%d",
			b.fetchCalls, f.fetchCalls, b.updateCalls)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if !reflect.DeepEqual(firstJSON, secondJSON) {
		t.Error("Cached result differs from computed result")
	}
}

func TestGetSummary_ForceRefreshBypassesCache(t *testing.T) {
	b, f := scenarioFixtures()
	svc := testService(b, f, newMemCache())

	if _, err := svc.GetSummary(context.Background(), 30, 100, false); err != nil {
		t.Fatalf("First GetSummary failed: %v", err)
	}
	b.fetchCalls, f.fetchCalls = 0, 0

	if _, err := svc.GetSummary(context.Background(), 30, 100, true); err != nil {
		t.Fatalf("Forced GetSummary failed: %v", err)
	}
	if b.fetchCalls == 0 || f.fetchCalls == 0 {
		t.Error("Expected fresh fetches on forced refresh")
	}
}

func TestGetSummary_ExpiredEntryRecomputes(t *testing.T) {
	b, f := scenarioFixtures()
	cache := newMemCache()
	svc := NewService(b, f, cache,
		WithClassifier(testClassifier()),
		WithClock(fixedNow),
		WithTTL(-time.Hour), // every entry is born expired
	)

	if _, err := svc.GetSummary(context.Background(), 30, 100, false); err != nil {
		t.Fatalf("First GetSummary failed: %v", err)
	}
	b.fetchCalls, f.fetchCalls = 0, 0

	if _, err := svc.GetSummary(context.Background(), 30, 100, false); err != nil {
		t.Fatalf("Second GetSummary failed: %v", err)
	}
	if b.fetchCalls == 0 {
		t.Error("Expected recompute for an expired entry")
	}
}

func TestGetSummary_PrimaryFailureIsFatal(t *testing.T) {
	b, f := scenarioFixtures()
	f.analysesErr = errors.New("store unavailable")
	cache := newMemCache()
	svc := testService(b, f, cache)

	if _, err := svc.GetSummary(context.Background(), 30, 100, false); err == nil {
		t.Fatal("Expected error when a primary feed fails")
	}
	if len(cache.entries) != 0 {
		t.Error("No partial result may be cached on primary failure")
	}
}

func TestGetSummary_SecondaryFailuresSwallowed(t *testing.T) {
	b, f := scenarioFixtures()
	b.updatesErr = errors.New("audit API down")
	f.historyErr = errors.New("history too large")
	svc := testService(b, f, newMemCache())

	result, err := svc.GetSummary(context.Background(), 30, 100, false)
	if err != nil {
		t.Fatalf("Secondary failures must not fail the summary: %v", err)
	}
	for _, item := range result.MostActive {
		if item.Updates != 0 {
			t.Errorf("Expected zero updates on enrichment failure, got %+v", item)
		}
	}
	// All-time fetch failed: window average stands in.
	if result.AvgPerDay == 0 {
		t.Error("Expected window-average fallback, got 0")
	}
}

func TestGetSummary_CacheStoreFailureStillServes(t *testing.T) {
	b, f := scenarioFixtures()
	cache := newMemCache()
	cache.getErr = errors.New("disk full")
	cache.setErr = errors.New("disk full")
	svc := testService(b, f, cache)

	result, err := svc.GetSummary(context.Background(), 30, 100, false)
	if err != nil {
		t.Fatalf("Cache failure must not fail the summary: %v", err)
	}
	if result.Totals.Items != 3 {
		t.Errorf("Unexpected result under cache failure: %+v", result.Totals)
	}
}

func TestClearCache(t *testing.T) {
	b, f := scenarioFixtures()
	cache := newMemCache()
	svc := testService(b, f, cache)

	if _, err := svc.GetSummary(context.Background(), 30, 100, false); err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("Expected one cached entry, got %d", len(cache.entries))
	}

	if err := svc.ClearCache(context.Background()); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	if len(cache.entries) != 0 {
		t.Error("Expected cache emptied")
	}
}
