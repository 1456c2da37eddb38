package board

import (
	"encoding/json"
	"time"
)

// ItemsResponse is the top-level container for the board item snapshot.
type ItemsResponse struct {
	Total int       `json:"total"`
	Items []ItemDTO `json:"items"`
}

// ItemDTO represents a single work item in the snapshot response.
type ItemDTO struct {
	ID         string   `json:"id"`
	ExternalID string   `json:"externalId,omitempty"`
	Name       string   `json:"name"`
	CreatedAt  string   `json:"createdAt"`
	Group      GroupDTO `json:"group"`
	Status     struct {
		Text string `json:"text"`
	} `json:"status"`
	Kind struct {
		Tag   string `json:"tag"`
		Color string `json:"color,omitempty"`
	} `json:"kind"`
}

// GroupDTO is the board group an item currently sits in.
type GroupDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// ActivityLogResponse is the container for the board audit log.
type ActivityLogResponse struct {
	Events []AuditEventDTO `json:"events"`
}

// AuditEventDTO is one raw audit-log entry. Data is an event-specific payload
// whose shape depends on Event, so it is decoded lazily.
type AuditEventDTO struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"createdAt"`
}

// moveEventData is the Data payload of a "move_item_to_group" event.
type moveEventData struct {
	ItemID         string `json:"itemId"`
	DestGroupID    string `json:"destGroupId"`
	DestGroupTitle string `json:"destGroupTitle"`
}

// UpdateCountResponse carries the per-item update tally.
type UpdateCountResponse struct {
	Count int `json:"count"`
}

// ParseTime is a helper for the board API time format.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.000-0700", s)
}
