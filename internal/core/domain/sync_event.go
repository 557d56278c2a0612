package domain

import "time"

// SyncEventType distinguishes the payloads of a SyncEvent.
type SyncEventType string

const (
	SyncEventState  SyncEventType = "state"
	SyncEventRecord SyncEventType = "record"
)

// SyncEvent is one item of a session's live sync stream: either a state transition or
// a remote change to the user's record.
type SyncEvent struct {
	Type   SyncEventType `json:"type"`
	State  SyncState     `json:"state,omitempty"`
	Record Document      `json:"record,omitempty"`
	At     time.Time     `json:"at"`
}
