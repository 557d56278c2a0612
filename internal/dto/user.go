package dto

import (
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// UserResponse is the public view of a user profile.
type UserResponse struct {
	UID          string      `json:"uid"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"displayName"`
	PhotoURL     string      `json:"photoURL,omitempty"`
	Role         domain.Role `json:"role"`
	LastSyncedAt *time.Time  `json:"lastSyncedAt,omitempty"`
	CreatedAt    *time.Time  `json:"createdAt,omitempty"`
}

// ToUserResponse converts a domain.UserProfile to a UserResponse DTO
func ToUserResponse(p *domain.UserProfile) UserResponse {
	resp := UserResponse{
		UID:          p.UID,
		Email:        p.Email,
		DisplayName:  p.DisplayName,
		PhotoURL:     p.PhotoURL,
		Role:         p.Role,
		LastSyncedAt: p.LastSyncedAt,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	PageToken string `form:"pageToken"`
}

// ListUsersResponse wraps one page of users.
type ListUsersResponse struct {
	Users         []UserResponse `json:"users"`
	NextPageToken *string        `json:"nextPageToken,omitempty"`
}

// ToListUsersResponse converts a page of profiles.
func ToListUsersResponse(profiles []domain.UserProfile, nextToken string) ListUsersResponse {
	users := make([]UserResponse, len(profiles))
	for i := range profiles {
		users[i] = ToUserResponse(&profiles[i])
	}
	resp := ListUsersResponse{Users: users}
	if nextToken != "" {
		resp.NextPageToken = &nextToken
	}
	return resp
}

// UpdateRoleRequest assigns a role to a user.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" binding:"required"`
}
