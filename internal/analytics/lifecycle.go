package analytics

import (
	"strings"
	"time"

	"bidboard/internal/board"
)

// ClassifierConfig holds the recognized group IDs and status phrasings per
// lifecycle state. Treated as immutable configuration: built once at startup
// and injected, never mutated.
type ClassifierConfig struct {
	SubmittedGroupIDs map[string]bool
	DeclinedGroupIDs  map[string]bool
	SubmittedPhrases  map[string]bool
	DeclinedPhrases   map[string]bool
}

// DefaultClassifierConfig returns the phrasings observed across the synced
// boards. Group-ID allow-lists are board-specific and default to empty.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		SubmittedGroupIDs: map[string]bool{},
		DeclinedGroupIDs:  map[string]bool{},
		SubmittedPhrases: phraseSet(
			"submitted",
			"proposal submitted",
			"application submitted",
			"sent",
			"sent to client",
		),
		DeclinedPhrases: phraseSet(
			"declined",
			"not pursuing",
			"no bid",
			"rejected",
			"lost",
			"passed",
		),
	}
}

func phraseSet(phrases ...string) map[string]bool {
	set := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		set[NormalizePhrase(p)] = true
	}
	return set
}

// NormalizePhrase lowercases and collapses separators and whitespace runs so
// "Not_Pursuing" and "not  pursuing" compare equal.
func NormalizePhrase(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '/':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Classifier decides an item's lifecycle states from heterogeneous signals.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// IsSubmitted reports whether the item counts as submitted. Precedence is
// fixed: explicit group-ID match wins over any text signal, so an item in a
// submitted group keeps that classification even when its status text reads
// otherwise.
func (c *Classifier) IsSubmitted(item board.Item) bool {
	return c.classify(item, c.cfg.SubmittedGroupIDs, c.cfg.SubmittedPhrases)
}

// IsDeclined reports whether the item counts as declined. Evaluated
// independently of IsSubmitted.
func (c *Classifier) IsDeclined(item board.Item) bool {
	return c.classify(item, c.cfg.DeclinedGroupIDs, c.cfg.DeclinedPhrases)
}

func (c *Classifier) classify(item board.Item, groupIDs, phrases map[string]bool) bool {
	if item.GroupID != "" && groupIDs[item.GroupID] {
		return true
	}
	if phrases[NormalizePhrase(item.StatusText)] {
		return true
	}
	if phrases[NormalizePhrase(item.GroupTitle)] {
		return true
	}
	return false
}

// SubmittedAt returns the date the item transitioned to submitted.
func (c *Classifier) SubmittedAt(item board.Item, moves []board.MoveEvent) time.Time {
	return c.transitionDate(item, moves, c.cfg.SubmittedGroupIDs, c.cfg.SubmittedPhrases)
}

// DeclinedAt returns the date the item transitioned to declined.
func (c *Classifier) DeclinedAt(item board.Item, moves []board.MoveEvent) time.Time {
	return c.transitionDate(item, moves, c.cfg.DeclinedGroupIDs, c.cfg.DeclinedPhrases)
}

// transitionDate prefers the timestamp of a historical move into a matching
// group. Current group membership is observed at read time; the series needs
// the day the transition actually happened, which may be much earlier. Falls
// back to the item's creation date when no move event exists.
func (c *Classifier) transitionDate(item board.Item, moves []board.MoveEvent, groupIDs, phrases map[string]bool) time.Time {
	for _, m := range moves {
		if m.EntityID != item.ID && (item.ExternalID == "" || m.EntityID != item.ExternalID) {
			continue
		}
		if m.DestGroupID != "" && groupIDs[m.DestGroupID] {
			return m.OccurredAt
		}
		if phrases[NormalizePhrase(m.DestGroupTitle)] {
			return m.OccurredAt
		}
	}
	return item.CreatedAt
}
