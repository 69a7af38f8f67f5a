package api_keys

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"hittags/internal/features/audit_logs"
	users_models "hittags/internal/features/users/models"
	cache_utils "hittags/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type ApiKeyService struct {
	apiKeyRepository *ApiKeyRepository
	auditLogService  *audit_logs.AuditLogService

	apiKeyCacheUtil *cache_utils.CacheUtil[CachedApiKey]
	singleflight    singleflight.Group // Prevents thundering herd on DB calls
}

const (
	KeyIDPrefix  = "ht_"
	KeyIDLength  = 16
	SecretLength = 32

	DefaultRateLimitPerHour = 1000
	DefaultRateLimitPerDay  = 10000
)

// ErrInvalidApiKey is the single validation failure returned to callers.
// Missing, revoked, expired and wrong-secret all collapse into it so the
// response never acts as a credential-guessing oracle.
var ErrInvalidApiKey = errors.New("invalid or expired API key")

func (s *ApiKeyService) CreateApiKey(
	owner *users_models.User,
	request *CreateApiKeyRequestDTO,
) (*ApiKey, error) {
	if err := s.validateCreateRequest(request); err != nil {
		return nil, err
	}

	keyID, err := s.generateKeyID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key id: %w", err)
	}

	secret, secretPrefix, secretHash, err := s.generateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	rateLimitPerHour := DefaultRateLimitPerHour
	if request.RateLimitPerHour != nil {
		rateLimitPerHour = *request.RateLimitPerHour
	}

	rateLimitPerDay := DefaultRateLimitPerDay
	if request.RateLimitPerDay != nil {
		rateLimitPerDay = *request.RateLimitPerDay
	}

	apiKey := &ApiKey{
		ID:               uuid.New(),
		KeyID:            keyID,
		OwnerUserID:      owner.ID,
		Name:             request.Name,
		SecretHash:       secretHash,
		SecretPrefix:     secretPrefix,
		Scopes:           request.Scopes,
		RateLimitPerHour: rateLimitPerHour,
		RateLimitPerDay:  rateLimitPerDay,
		ExpiresAt:        request.ExpiresAt,
		AllowedOrigins:   request.AllowedOrigins,
		IPWhitelist:      request.IPWhitelist,
		IsRevoked:        false,
	}

	if err := s.apiKeyRepository.CreateApiKey(apiKey); err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}

	// Pre-warm cache with new API key for immediate availability
	s.apiKeyCacheUtil.Set(keyID, newCachedApiKey(apiKey))

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("API key created: %s (%s)", request.Name, keyID),
		&owner.ID,
		&apiKey.ID,
	)

	// Set the full secret in the response (only returned once)
	apiKey.Secret = secret

	return apiKey, nil
}

func (s *ApiKeyService) GetUserApiKeys(owner *users_models.User) (*GetApiKeysResponseDTO, error) {
	apiKeys, err := s.apiKeyRepository.GetApiKeysByOwner(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return &GetApiKeysResponseDTO{
		ApiKeys: apiKeys,
	}, nil
}

func (s *ApiKeyService) RevokeApiKey(apiKeyID uuid.UUID, owner *users_models.User) error {
	apiKey, err := s.GetOwnedApiKey(apiKeyID, owner)
	if err != nil {
		return err
	}

	if err := s.apiKeyRepository.RevokeApiKey(apiKeyID); err != nil {
		return fmt.Errorf("failed to revoke API key: %w", err)
	}

	s.apiKeyCacheUtil.Invalidate(apiKey.KeyID)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("API key revoked: %s (%s)", apiKey.Name, apiKey.KeyID),
		&owner.ID,
		&apiKey.ID,
	)

	return nil
}

// GetOwnedApiKey returns the key only for its owner. Foreign and missing
// keys are indistinguishable to the caller.
func (s *ApiKeyService) GetOwnedApiKey(apiKeyID uuid.UUID, owner *users_models.User) (*ApiKey, error) {
	apiKey, err := s.apiKeyRepository.GetApiKeyByID(apiKeyID)
	if err != nil {
		return nil, errors.New("API key not found")
	}

	if apiKey.OwnerUserID != owner.ID {
		return nil, errors.New("API key not found")
	}

	return apiKey, nil
}

// ValidateApiKey authenticates a presented (key id, secret) pair. It fails
// closed: unknown key, revoked key, expired key, secret mismatch and store
// errors all return ErrInvalidApiKey.
func (s *ApiKeyService) ValidateApiKey(keyID, secret string) (*ApiKey, error) {
	if keyID == "" || secret == "" || !strings.HasPrefix(keyID, KeyIDPrefix) {
		return nil, ErrInvalidApiKey
	}

	// Tier 1: Check cache
	if cachedKey := s.apiKeyCacheUtil.Get(keyID); cachedKey != nil {
		return s.validateAgainstCached(cachedKey, secret)
	}

	// Tier 2: Database lookup with singleflight protection (prevents thundering herd)
	result, err, _ := s.singleflight.Do(keyID, func() (any, error) {
		return s.apiKeyRepository.GetApiKeyByKeyID(keyID)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Cache the unknown key id to prevent future DB hits
			s.apiKeyCacheUtil.Set(keyID, &CachedApiKey{
				KeyID:  keyID,
				Status: ApiKeyStatusNotFound,
			})
		}

		return nil, ErrInvalidApiKey
	}

	apiKey, ok := result.(*ApiKey)
	if !ok {
		return nil, ErrInvalidApiKey
	}

	cachedKey := newCachedApiKey(apiKey)
	s.apiKeyCacheUtil.Set(keyID, cachedKey)

	return s.validateAgainstCached(cachedKey, secret)
}

// LookupKeyIDForAccounting resolves a presented key id to the stored key
// so rejected attempts can still be accounted against it. Internal use
// only; it must never shape a client-visible response.
func (s *ApiKeyService) LookupKeyIDForAccounting(keyID string) *uuid.UUID {
	if cachedKey := s.apiKeyCacheUtil.Get(keyID); cachedKey != nil {
		if cachedKey.Status == ApiKeyStatusNotFound {
			return nil
		}

		id := cachedKey.ID
		return &id
	}

	apiKey, err := s.apiKeyRepository.GetApiKeyByKeyID(keyID)
	if err != nil {
		return nil
	}

	id := apiKey.ID
	return &id
}

func (s *ApiKeyService) validateAgainstCached(cachedKey *CachedApiKey, secret string) (*ApiKey, error) {
	if cachedKey.Status != ApiKeyStatusActive {
		return nil, ErrInvalidApiKey
	}

	if cachedKey.ExpiresAt != nil && cachedKey.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrInvalidApiKey
	}

	presentedHash := s.hashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(presentedHash), []byte(cachedKey.SecretHash)) != 1 {
		return nil, ErrInvalidApiKey
	}

	return cachedKey.toApiKey(), nil
}

func (s *ApiKeyService) validateCreateRequest(request *CreateApiKeyRequestDTO) error {
	if len(request.Scopes) == 0 {
		return errors.New("scopes cannot be empty")
	}

	for _, scope := range request.Scopes {
		if !scope.IsValid() {
			return fmt.Errorf("unknown scope: %s", scope)
		}
	}

	if request.RateLimitPerHour != nil && *request.RateLimitPerHour <= 0 {
		return errors.New("rate limit per hour must be positive")
	}

	if request.RateLimitPerDay != nil && *request.RateLimitPerDay <= 0 {
		return errors.New("rate limit per day must be positive")
	}

	if request.ExpiresAt != nil && request.ExpiresAt.Before(time.Now().UTC()) {
		return errors.New("expiration time must be in the future")
	}

	return nil
}

func (s *ApiKeyService) generateKeyID() (string, error) {
	idBytes := make([]byte, KeyIDLength/2) // hex encoding doubles the length
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}

	return KeyIDPrefix + hex.EncodeToString(idBytes), nil
}

func (s *ApiKeyService) generateSecret() (secret, prefix, hash string, err error) {
	secretBytes := make([]byte, SecretLength/2)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", "", "", err
	}

	secret = hex.EncodeToString(secretBytes)
	prefix = secret[:6] + "..."
	hash = s.hashSecret(secret)

	return secret, prefix, hash, nil
}

func (s *ApiKeyService) hashSecret(secret string) string {
	hasher := sha256.New()
	hasher.Write([]byte(secret))
	return hex.EncodeToString(hasher.Sum(nil))
}
