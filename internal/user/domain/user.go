package domain

import "time"

type UserID string

// User is the stored identity record. PasswordHash never leaves the service
// layer; API responses carry Profile instead.
type User struct {
	ID           UserID
	Username     string
	DisplayName  string
	PasswordHash string
	Bio          string
	AvatarURL    string
	CreatedAt    time.Time
}

// Profile is the public view of a user.
type Profile struct {
	ID          UserID `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
	}
}
