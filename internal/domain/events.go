package domain

import "time"

// Table names a stream of room-scoped records that observers can follow.
type Table string

const (
	TableFavorites Table = "favorites"
	TableVotes     Table = "votes"
	TableMessages  Table = "messages"
	TableNotes     Table = "notes"
	TableTimeline  Table = "timeline"
)

var Tables = []Table{TableFavorites, TableVotes, TableMessages, TableNotes, TableTimeline}

func ParseTable(s string) (Table, bool) {
	for _, t := range Tables {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent signals that a table changed in a room. Events may arrive more
// than once or out of order relative to the writer's own response; observers
// re-read the table instead of applying the event as a delta.
type ChangeEvent struct {
	Type      ChangeType `json:"type"`
	Table     Table      `json:"table"`
	RoomID    string     `json:"room_id"`
	RecordID  string     `json:"record_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func NewChangeEvent(changeType ChangeType, table Table, roomID, recordID string) ChangeEvent {
	return ChangeEvent{
		Type:      changeType,
		Table:     table,
		RoomID:    roomID,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
	}
}
