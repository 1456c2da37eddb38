package board

import (
	"context"
	"time"
)

// Item is the current snapshot of one tracked work item (a résumé job or an
// RFP record) as synced from the upstream board. Read-only to this service.
type Item struct {
	ID         string
	ExternalID string
	Title      string
	GroupID    string
	GroupTitle string
	GroupColor string
	StatusText string
	TypeTag    string
	TypeColor  string
	CreatedAt  time.Time
}

// MoveEvent is a board-movement audit entry: an item was moved into a group
// at a known instant. Used to recover historical transition dates.
type MoveEvent struct {
	EntityID       string
	DestGroupID    string
	DestGroupTitle string
	OccurredAt     time.Time
}

// Client is the interface for interacting with the upstream board.
type Client interface {
	FetchItems(ctx context.Context) ([]Item, error)
	FetchMoveEvents(ctx context.Context, limit int) ([]MoveEvent, error)
	FetchItemUpdateCount(ctx context.Context, itemID string) (int, error)
}

// Config holds the authentication and connection settings for the board API.
type Config struct {
	BaseURL string
	BoardID string
	Token   string

	// Performance Settings
	RequestDelay time.Duration
}

// NewClient creates a new board client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newHTTPClient(cfg)
}
