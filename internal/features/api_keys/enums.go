package api_keys

type ApiKeyStatus string

const (
	ApiKeyStatusActive   ApiKeyStatus = "ACTIVE"
	ApiKeyStatusRevoked  ApiKeyStatus = "REVOKED"
	ApiKeyStatusNotFound ApiKeyStatus = "NOT_FOUND"
)

type Scope string

// Scopes are a flat set: no hierarchy, no wildcards. write:bookmarks does
// not imply read:bookmarks; every capability must be granted explicitly.
const (
	ScopeReadBookmarks    Scope = "read:bookmarks"
	ScopeWriteBookmarks   Scope = "write:bookmarks"
	ScopeDeleteBookmarks  Scope = "delete:bookmarks"
	ScopeReadCollections  Scope = "read:collections"
	ScopeWriteCollections Scope = "write:collections"
	ScopeReadTags         Scope = "read:tags"
	ScopeWriteWebhooks    Scope = "write:webhooks"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeReadBookmarks,
		ScopeWriteBookmarks,
		ScopeDeleteBookmarks,
		ScopeReadCollections,
		ScopeWriteCollections,
		ScopeReadTags,
		ScopeWriteWebhooks:
		return true
	default:
		return false
	}
}

func AllScopes() []Scope {
	return []Scope{
		ScopeReadBookmarks,
		ScopeWriteBookmarks,
		ScopeDeleteBookmarks,
		ScopeReadCollections,
		ScopeWriteCollections,
		ScopeReadTags,
		ScopeWriteWebhooks,
	}
}
