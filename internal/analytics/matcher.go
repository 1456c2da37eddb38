package analytics

import (
	"bidboard/internal/board"
	"bidboard/internal/feed"
)

// MatchesItem reports whether an activity record belongs to a work item.
// The four feeds never agreed on a canonical foreign-key field, so the
// record carries an ordered list of alias candidates and the item answers
// to both its primary and external ID; the full cross-product is checked.
func MatchesItem(rec feed.Record, item board.Item) bool {
	for _, id := range rec.EntityIDs {
		if id == "" {
			continue
		}
		if id == item.ID {
			return true
		}
		if item.ExternalID != "" && id == item.ExternalID {
			return true
		}
	}
	return false
}

// FindItem resolves a record to the first matching item, if any.
func FindItem(rec feed.Record, items []board.Item) (board.Item, bool) {
	for _, item := range items {
		if MatchesItem(rec, item) {
			return item, true
		}
	}
	return board.Item{}, false
}
