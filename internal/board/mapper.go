package board

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// MapItem transforms a board DTO into a domain Item.
func MapItem(dto ItemDTO) Item {
	item := Item{
		ID:         dto.ID,
		ExternalID: dto.ExternalID,
		Title:      dto.Name,
		GroupID:    dto.Group.ID,
		GroupTitle: dto.Group.Title,
		GroupColor: dto.Group.Color,
		StatusText: dto.Status.Text,
		TypeTag:    dto.Kind.Tag,
		TypeColor:  dto.Kind.Color,
	}

	if t, err := ParseTime(dto.CreatedAt); err == nil {
		item.CreatedAt = t
	}

	return item
}

// MapMoveEvents extracts group-movement events from raw audit-log entries.
// Entries with an undecodable payload or timestamp are skipped, not fatal:
// the audit log mixes many event shapes and only moves matter here.
func MapMoveEvents(events []AuditEventDTO) []MoveEvent {
	moves := make([]MoveEvent, 0, len(events))
	for _, e := range events {
		if e.Event != "move_item_to_group" {
			continue
		}

		var data moveEventData
		if err := json.Unmarshal(e.Data, &data); err != nil {
			log.Debug().Err(err).Msg("Skipping audit entry with undecodable move payload")
			continue
		}
		if data.ItemID == "" {
			continue
		}

		t, err := ParseTime(e.CreatedAt)
		if err != nil {
			log.Debug().Str("item", data.ItemID).Msg("Skipping move event with unparsable timestamp")
			continue
		}

		moves = append(moves, MoveEvent{
			EntityID:       data.ItemID,
			DestGroupID:    data.DestGroupID,
			DestGroupTitle: data.DestGroupTitle,
			OccurredAt:     t,
		})
	}
	return moves
}
