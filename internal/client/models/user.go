package models

import "github.com/dmitrijs2005/coursemanager/internal/timex"

// User is the session view of a registered user. It never carries a password.
type User struct {
	Email          string       `json:"email"`
	Username       string       `json:"username"`
	ProfilePicture *string      `json:"profilePicture"`
	CreatedAt      timex.Millis `json:"createdAt"`
	IsAdmin        bool         `json:"isAdmin"`
}

// StoredUser is a registry record. Password holds an argon2id hash once the
// record has passed through the auth service.
type StoredUser struct {
	User
	Password string `json:"password,omitempty"`
}

// Strip returns the record without its password.
func (u StoredUser) Strip() User {
	return u.User
}

// Avatar returns the profile picture data URI, or "" when none is set.
func (u User) Avatar() string {
	if u.ProfilePicture == nil {
		return ""
	}
	return *u.ProfilePicture
}

// UserUpdate is a partial update of a user's own profile. Nil fields are left
// unchanged; a ProfilePicture pointing at "" removes the picture.
type UserUpdate struct {
	Username       *string
	ProfilePicture *string
}

// Apply returns u with the update merged in.
func (p UserUpdate) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.ProfilePicture != nil {
		if *p.ProfilePicture == "" {
			u.ProfilePicture = nil
		} else {
			pic := *p.ProfilePicture
			u.ProfilePicture = &pic
		}
	}
	return u
}

// StoredUserUpdate is an administrative partial update. Password is the new
// plaintext password; the auth service hashes it before storing.
type StoredUserUpdate struct {
	UserUpdate
	Password *string
}
