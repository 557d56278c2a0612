package domain

import "time"

// AuditFields holds the bookkeeping timestamps of a stored record. LastUpdatedAt is set
// by the store on every write.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
