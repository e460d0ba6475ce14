package domain

import "time"

// DMPolicy controls who may open a direct message thread with the account.
type DMPolicy string

const (
	DMEveryone  DMPolicy = "everyone"
	DMFollowers DMPolicy = "followers"
	DMNone      DMPolicy = "none"
)

func (p DMPolicy) Valid() bool {
	switch p {
	case DMEveryone, DMFollowers, DMNone:
		return true
	}
	return false
}

type PrivacySettings struct {
	IsPrivate           bool
	AllowFollowRequests bool
	ShowOnlineStatus    bool
	AllowDirectMessages DMPolicy
}

// DefaultPrivacySettings is what a fresh signup gets: a public account that
// accepts follow requests and DMs from anyone.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		IsPrivate:           false,
		AllowFollowRequests: true,
		ShowOnlineStatus:    true,
		AllowDirectMessages: DMEveryone,
	}
}

// PrivacyPatch is a partial settings update. Nil fields are left untouched.
type PrivacyPatch struct {
	IsPrivate           *bool
	AllowFollowRequests *bool
	ShowOnlineStatus    *bool
	AllowDirectMessages *DMPolicy
}

type Account struct {
	ID           string
	Username     string
	DisplayName  string
	AvatarURL    string
	PasswordHash string // argon2 encoded
	Privacy      PrivacySettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
