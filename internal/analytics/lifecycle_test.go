package analytics

import (
	"testing"
	"time"

	"bidboard/internal/board"
)

func testClassifier() *Classifier {
	cfg := DefaultClassifierConfig()
	cfg.SubmittedGroupIDs["g-sub"] = true
	cfg.DeclinedGroupIDs["g-dec"] = true
	return NewClassifier(cfg)
}

func TestNormalizePhrase(t *testing.T) {
	cases := map[string]string{
		"Not Pursuing":      "not pursuing",
		"Not_Pursuing":      "not pursuing",
		"not-pursuing":      "not pursuing",
		"  NOT   pursuing ": "not pursuing",
		"no/bid":            "no bid",
	}
	for in, want := range cases {
		if got := NormalizePhrase(in); got != want {
			t.Errorf("NormalizePhrase(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestClassifier_GroupIDBeatsConflictingText(t *testing.T) {
	cls := testClassifier()

	// Group id is in the submitted allow-list even though the status text
	// reads like a decline. The explicit id match must win.
	item := board.Item{ID: "i-1", GroupID: "g-sub", StatusText: "Not Pursuing"}
	if !cls.IsSubmitted(item) {
		t.Error("Expected submitted classification via group-id allow-list")
	}
}

func TestClassifier_TextFallback(t *testing.T) {
	cls := testClassifier()

	byStatus := board.Item{ID: "i-1", StatusText: "Proposal_Submitted"}
	if !cls.IsSubmitted(byStatus) {
		t.Error("Expected submitted via normalized status text")
	}

	byGroupTitle := board.Item{ID: "i-2", GroupTitle: "Not Pursuing"}
	if !cls.IsDeclined(byGroupTitle) {
		t.Error("Expected declined via normalized group title")
	}

	unclassified := board.Item{ID: "i-3", GroupTitle: "Active Leads", StatusText: "Working"}
	if cls.IsSubmitted(unclassified) || cls.IsDeclined(unclassified) {
		t.Error("Expected no classification for unrecognized signals")
	}
}

func TestClassifier_MoveDatePreferredOverCreation(t *testing.T) {
	cls := testClassifier()
	created := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	moved := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // earlier than creation

	item := board.Item{ID: "i-1", GroupID: "g-dec", CreatedAt: created}
	moves := []board.MoveEvent{
		{EntityID: "i-1", DestGroupID: "g-dec", OccurredAt: moved},
	}

	got := cls.DeclinedAt(item, moves)
	if !got.Equal(moved) {
		t.Errorf("Expected move date %v even though it precedes creation, got %v", moved, got)
	}
}

func TestClassifier_MoveMatchByDestTitle(t *testing.T) {
	cls := testClassifier()
	created := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	moved := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)

	item := board.Item{ID: "i-1", GroupTitle: "Submitted", CreatedAt: created}
	moves := []board.MoveEvent{
		{EntityID: "i-1", DestGroupTitle: "Submitted", OccurredAt: moved},
	}

	if got := cls.SubmittedAt(item, moves); !got.Equal(moved) {
		t.Errorf("Expected move date %v, got %v", moved, got)
	}
}

func TestClassifier_CreationFallbackWithoutMove(t *testing.T) {
	cls := testClassifier()
	created := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	item := board.Item{ID: "i-1", GroupID: "g-sub", CreatedAt: created}
	moves := []board.MoveEvent{
		{EntityID: "other", DestGroupID: "g-sub", OccurredAt: created.AddDate(0, 0, 3)},
	}

	if got := cls.SubmittedAt(item, moves); !got.Equal(created) {
		t.Errorf("Expected creation fallback %v, got %v", created, got)
	}
}
