package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/models"
)

// ToDomainDocumentSnapshot decodes a documents row.
func ToDomainDocumentSnapshot(m models.Document) (domain.DocumentSnapshot, error) {
	data := domain.Document{}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return domain.DocumentSnapshot{}, fmt.Errorf("failed to decode document %s/%s: %w", m.Collection, m.DocID, err)
		}
	}
	if data == nil {
		data = domain.Document{}
	}
	return domain.DocumentSnapshot{
		Collection: m.Collection,
		ID:         m.DocID,
		Data:       data,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// EncodeDocumentData encodes a document body for a JSONB parameter.
func EncodeDocumentData(d domain.Document) ([]byte, error) {
	if d == nil {
		d = domain.Document{}
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}

// ToDomainUserProfile reads the profile fields of a users document.
func ToDomainUserProfile(snap domain.DocumentSnapshot) domain.UserProfile {
	profile := domain.UserProfile{
		UID:         snap.ID,
		Email:       snap.Data.String(domain.FieldEmail),
		DisplayName: snap.Data.String(domain.FieldDisplayName),
		PhotoURL:    snap.Data.String(domain.FieldPhotoURL),
		Role:        domain.Role(snap.Data.String(domain.FieldRole)),
	}
	if !profile.Role.IsValid() {
		profile.Role = domain.RoleUser
	}
	if t, ok := snap.Data.Time(domain.FieldLastSyncedAt); ok {
		profile.LastSyncedAt = &t
	}
	if t, ok := snap.Data.Time(domain.FieldCreatedAt); ok {
		profile.CreatedAt = t
	}
	profile.LastUpdatedAt = snap.UpdatedAt
	return profile
}
