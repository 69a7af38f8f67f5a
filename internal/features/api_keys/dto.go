package api_keys

import (
	"time"

	"github.com/google/uuid"
)

type CreateApiKeyRequestDTO struct {
	Name             string     `json:"name"             binding:"required,min=1,max=100"`
	Scopes           []Scope    `json:"scopes"           binding:"required"`
	RateLimitPerHour *int       `json:"rateLimitPerHour,omitempty"`
	RateLimitPerDay  *int       `json:"rateLimitPerDay,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	AllowedOrigins   []string   `json:"allowedOrigins,omitempty"`
	IPWhitelist      []string   `json:"ipWhitelist,omitempty"`
}

type GetApiKeysResponseDTO struct {
	ApiKeys []*ApiKey `json:"apiKeys"`
}

// CachedApiKey carries everything the gateway needs to authenticate and
// admit a request without touching the database.
type CachedApiKey struct {
	ID               uuid.UUID    `json:"id"`
	KeyID            string       `json:"keyId"`
	OwnerUserID      uuid.UUID    `json:"ownerUserId"`
	SecretHash       string       `json:"secretHash"`
	Scopes           []Scope      `json:"scopes"`
	RateLimitPerHour int          `json:"rateLimitPerHour"`
	RateLimitPerDay  int          `json:"rateLimitPerDay"`
	ExpiresAt        *time.Time   `json:"expiresAt,omitempty"`
	AllowedOrigins   []string     `json:"allowedOrigins"`
	IPWhitelist      []string     `json:"ipWhitelist"`
	Status           ApiKeyStatus `json:"status"`
}

func newCachedApiKey(apiKey *ApiKey) *CachedApiKey {
	status := ApiKeyStatusActive
	if apiKey.IsRevoked {
		status = ApiKeyStatusRevoked
	}

	return &CachedApiKey{
		ID:               apiKey.ID,
		KeyID:            apiKey.KeyID,
		OwnerUserID:      apiKey.OwnerUserID,
		SecretHash:       apiKey.SecretHash,
		Scopes:           apiKey.Scopes,
		RateLimitPerHour: apiKey.RateLimitPerHour,
		RateLimitPerDay:  apiKey.RateLimitPerDay,
		ExpiresAt:        apiKey.ExpiresAt,
		AllowedOrigins:   apiKey.AllowedOrigins,
		IPWhitelist:      apiKey.IPWhitelist,
		Status:           status,
	}
}

func (c *CachedApiKey) toApiKey() *ApiKey {
	return &ApiKey{
		ID:               c.ID,
		KeyID:            c.KeyID,
		OwnerUserID:      c.OwnerUserID,
		SecretHash:       c.SecretHash,
		Scopes:           c.Scopes,
		RateLimitPerHour: c.RateLimitPerHour,
		RateLimitPerDay:  c.RateLimitPerDay,
		ExpiresAt:        c.ExpiresAt,
		AllowedOrigins:   c.AllowedOrigins,
		IPWhitelist:      c.IPWhitelist,
		IsRevoked:        c.Status == ApiKeyStatusRevoked,
	}
}
