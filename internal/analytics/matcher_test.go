package analytics

import (
	"testing"

	"bidboard/internal/board"
	"bidboard/internal/feed"
)

func TestMatchesItem_CrossProduct(t *testing.T) {
	item := board.Item{ID: "i-1", ExternalID: "ext-1"}

	cases := []struct {
		name string
		ids  []string
		want bool
	}{
		{"primary id, first alias", []string{"i-1"}, true},
		{"primary id, second alias", []string{"other", "i-1"}, true},
		{"external id", []string{"ext-1"}, true},
		{"no match", []string{"x", "y"}, false},
		{"no aliases", nil, false},
	}

	for _, tc := range cases {
		rec := feed.Record{EntityIDs: tc.ids}
		if got := MatchesItem(rec, item); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMatchesItem_EmptyAliasNeverMatchesEmptyExternalID(t *testing.T) {
	item := board.Item{ID: "i-1"} // no external id
	rec := feed.Record{EntityIDs: []string{""}}
	if MatchesItem(rec, item) {
		t.Error("Empty alias must not match an item with no external id")
	}
}

func TestFindItem(t *testing.T) {
	items := []board.Item{
		{ID: "i-1"},
		{ID: "i-2", ExternalID: "rfp-2"},
	}

	rec := feed.Record{EntityIDs: []string{"rfp-2"}}
	item, ok := FindItem(rec, items)
	if !ok || item.ID != "i-2" {
		t.Errorf("Expected i-2 via external id, got %+v (ok=%v)", item, ok)
	}

	if _, ok := FindItem(feed.Record{EntityIDs: []string{"nope"}}, items); ok {
		t.Error("Expected no match for unknown alias")
	}
}
