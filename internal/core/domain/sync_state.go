package domain

// SyncState is the status of the most recent push or pull against the remote store.
type SyncState string

const (
	SyncDisconnected SyncState = "disconnected"
	SyncConnected    SyncState = "connected"
	SyncSyncing      SyncState = "syncing"
	SyncSynced       SyncState = "synced"
	SyncLoading      SyncState = "loading"
	SyncLoaded       SyncState = "loaded"
	SyncError        SyncState = "error"
	SyncNoData       SyncState = "no_data"
)

// IsBusy reports whether an operation is in flight.
func (s SyncState) IsBusy() bool {
	return s == SyncSyncing || s == SyncLoading
}
