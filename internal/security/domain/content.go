package domain

type PrivacyLevel string

const (
	VisibilityPublic      PrivacyLevel = "public"
	VisibilityOnlyMe      PrivacyLevel = "only_me"
	VisibilityFollowers   PrivacyLevel = "followers"
	VisibilitySelectUsers PrivacyLevel = "select_users"
)

func (l PrivacyLevel) Valid() bool {
	switch l {
	case VisibilityPublic, VisibilityOnlyMe, VisibilityFollowers, VisibilitySelectUsers:
		return true
	}
	return false
}

// PrivacyScope is the visibility rule attached to a piece of content.
type PrivacyScope struct {
	Level           PrivacyLevel
	SelectedUserIDs []string // only meaningful for VisibilitySelectUsers
}

// ContentRef is the slice of a post this service needs for an access
// decision. A nil Scope means the content predates per-post privacy and is
// treated as public.
type ContentRef struct {
	ID      string
	OwnerID string
	Scope   *PrivacyScope
}

// ScopeAllows is the pure visibility decision for a single piece of content.
// viewerFollowing is the set of account ids the viewer follows; a nil set
// denies followers-scoped content rather than guessing the relationship.
func ScopeAllows(content ContentRef, viewerID string, viewerFollowing map[string]bool) bool {
	if viewerID == content.OwnerID {
		return true
	}
	if content.Scope == nil {
		return true
	}

	switch content.Scope.Level {
	case VisibilityPublic:
		return true
	case VisibilityOnlyMe:
		return false
	case VisibilityFollowers:
		return viewerFollowing[content.OwnerID]
	case VisibilitySelectUsers:
		for _, id := range content.Scope.SelectedUserIDs {
			if id == viewerID {
				return true
			}
		}
		return false
	default:
		// Unknown levels deny. New levels must be mapped here before any
		// content is stored with them.
		return false
	}
}
