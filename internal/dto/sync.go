package dto

import "github.com/SscSPs/finsync/internal/core/domain"

// SyncStateResponse reports the state of the caller's sync controller.
type SyncStateResponse struct {
	State domain.SyncState `json:"state"`
}

// PushRequest carries the local snapshot to merge into the remote record.
type PushRequest struct {
	Record map[string]any `json:"record" binding:"required"`
}

// PushResponse reports whether the push reached the store.
type PushResponse struct {
	Success bool             `json:"success"`
	State   domain.SyncState `json:"state"`
}

// PullResponse carries the remote record, or null when there is none.
type PullResponse struct {
	State  domain.SyncState `json:"state"`
	Record map[string]any   `json:"record"`
}
