package api_keys

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKey struct {
	ID           uuid.UUID `json:"id"           gorm:"column:id"`
	KeyID        string    `json:"keyId"        gorm:"column:key_id"` // Public identifier, safe to log
	OwnerUserID  uuid.UUID `json:"ownerUserId"  gorm:"column:owner_user_id"`
	Name         string    `json:"name"         gorm:"column:name"`
	SecretHash   string    `json:"-"            gorm:"column:secret_hash"` // Never expose in JSON
	SecretPrefix string    `json:"secretPrefix" gorm:"column:secret_prefix"`

	ScopesRaw string  `json:"-"      gorm:"column:scopes_raw"`
	Scopes    []Scope `json:"scopes" gorm:"-"`

	RateLimitPerHour int        `json:"rateLimitPerHour" gorm:"column:rate_limit_per_hour"`
	RateLimitPerDay  int        `json:"rateLimitPerDay"  gorm:"column:rate_limit_per_day"`
	ExpiresAt        *time.Time `json:"expiresAt"        gorm:"column:expires_at"`

	AllowedOriginsRaw string   `json:"-"              gorm:"column:allowed_origins_raw"`
	AllowedOrigins    []string `json:"allowedOrigins" gorm:"-"`
	IPWhitelistRaw    string   `json:"-"              gorm:"column:ip_whitelist_raw"`
	IPWhitelist       []string `json:"ipWhitelist"    gorm:"-"`

	IsRevoked bool      `json:"isRevoked" gorm:"column:is_revoked"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	Secret string `json:"secret,omitempty" gorm:"-"` // Temporary field only populated during creation
}

func (ApiKey) TableName() string {
	return "api_keys"
}

func (k *ApiKey) BeforeSave(tx *gorm.DB) error {
	k.ScopesRaw = joinScopes(k.Scopes)
	k.AllowedOriginsRaw = joinStrings(k.AllowedOrigins)
	k.IPWhitelistRaw = joinStrings(k.IPWhitelist)

	return nil
}

func (k *ApiKey) AfterFind(tx *gorm.DB) error {
	k.Scopes = splitScopes(k.ScopesRaw)
	k.AllowedOrigins = splitStrings(k.AllowedOriginsRaw)
	k.IPWhitelist = splitStrings(k.IPWhitelistRaw)

	return nil
}

func (k *ApiKey) HasScope(scope Scope) bool {
	for _, granted := range k.Scopes {
		if granted == scope {
			return true
		}
	}

	return false
}

func (k *ApiKey) IsExpired() bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now().UTC())
}

func joinScopes(scopes []Scope) string {
	parts := make([]string, len(scopes))
	for i, scope := range scopes {
		parts[i] = string(scope)
	}

	return strings.Join(parts, ",")
}

func splitScopes(raw string) []Scope {
	if raw == "" {
		return []Scope{}
	}

	parts := strings.Split(raw, ",")
	scopes := make([]Scope, len(parts))
	for i, part := range parts {
		scopes[i] = Scope(strings.TrimSpace(part))
	}

	return scopes
}

func joinStrings(values []string) string {
	return strings.Join(values, ",")
}

func splitStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	return parts
}
