// Package models defines client-side data models used by the NexaBoard CLI.
package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultAvatar is used when no identity field carries a usable name.
const DefaultAvatar = "U"

// User is the signed-in identity as returned by /auth/profile.
type User struct {
	ID        string     `json:"_id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Name      string     `json:"name,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	Email     string     `json:"email,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// Avatar is derived by ProjectUser and never set anywhere else.
	Avatar string `json:"avatar,omitempty"`
}

// DisplayName returns the first non-empty of username, name, firstName
// and email.
func (u User) DisplayName() string {
	for _, s := range u.nameFields() {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (u User) nameFields() []string {
	return []string{u.Username, u.Name, u.FirstName, u.Email}
}

// ProjectAvatar returns the upper-cased first character of the first
// non-empty name field, or DefaultAvatar.
func ProjectAvatar(u User) string {
	name := strings.TrimSpace(u.DisplayName())
	if name == "" {
		return DefaultAvatar
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// ProjectUser returns a copy of u with Avatar re-derived from its fields.
// Every path that stores an identity goes through here.
func ProjectUser(u User) User {
	u.Avatar = ProjectAvatar(u)
	return u
}
