package domain

import "time"

// UsersCollection holds one document per principal: profile fields plus the synced snapshot.
const UsersCollection = "users"

// Document fields stamped onto every sync push.
const (
	FieldLastSyncedAt = "lastSyncedAt"
	FieldUserID       = "userId"
	FieldEmail        = "email"
	FieldDisplayName  = "displayName"
	FieldPhotoURL     = "photoURL"
	FieldRole         = "role"
	FieldCreatedAt    = "createdAt"
)

// Document is the schemaless body of a stored record.
type Document map[string]any

// DocumentSnapshot is a document together with its location and last write time.
type DocumentSnapshot struct {
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Data       Document  `json:"data"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Clone returns a shallow copy so callers can stamp fields without aliasing.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the field as a string, or "" if absent or of another type.
func (d Document) String(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Time parses an RFC 3339 string field.
func (d Document) Time(field string) (time.Time, bool) {
	s := d.String(field)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
