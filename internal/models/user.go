// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an account that can author posts and comments.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Needs2FASetup returns true if the user has opted into 2FA but has not
// completed enrollment yet.
func (u *User) Needs2FASetup() bool {
	return u.TOTPSecret != nil && !u.TOTPEnabled
}

// Profile holds the public-facing details of a user: a bio and an avatar
// image stored inline as a blob with its MIME type.
type Profile struct {
	UserID     uuid.UUID `json:"user_id"`
	Bio        string    `json:"bio"`
	Avatar     []byte    `json:"-"`
	AvatarType *string   `json:"avatar_type,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AvatarDataURL returns the avatar as a data URL suitable for an <img> src,
// or "" when no avatar is set.
func (p *Profile) AvatarDataURL() string {
	if len(p.Avatar) == 0 || p.AvatarType == nil {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", *p.AvatarType, base64.StdEncoding.EncodeToString(p.Avatar))
}
