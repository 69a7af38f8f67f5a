package api_keys

import (
	"time"

	"hittags/internal/storage"

	"github.com/google/uuid"
)

type ApiKeyRepository struct{}

func (r *ApiKeyRepository) CreateApiKey(apiKey *ApiKey) error {
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}

	if apiKey.CreatedAt.IsZero() {
		apiKey.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(apiKey).Error
}

func (r *ApiKeyRepository) GetApiKeysByOwner(ownerUserID uuid.UUID) ([]*ApiKey, error) {
	var apiKeys []*ApiKey

	err := storage.GetDb().
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&apiKeys).Error

	return apiKeys, err
}

func (r *ApiKeyRepository) GetApiKeyByID(apiKeyID uuid.UUID) (*ApiKey, error) {
	var apiKey ApiKey

	err := storage.GetDb().
		Where("id = ?", apiKeyID).
		First(&apiKey).Error

	if err != nil {
		return nil, err
	}

	return &apiKey, nil
}

func (r *ApiKeyRepository) GetApiKeyByKeyID(keyID string) (*ApiKey, error) {
	var apiKey ApiKey

	err := storage.GetDb().
		Where("key_id = ?", keyID).
		First(&apiKey).Error

	if err != nil {
		return nil, err
	}

	return &apiKey, nil
}

// RevokeApiKey soft-deletes: usage history keeps referencing the row.
func (r *ApiKeyRepository) RevokeApiKey(apiKeyID uuid.UUID) error {
	return storage.GetDb().Model(&ApiKey{}).
		Where("id = ?", apiKeyID).
		Update("is_revoked", true).Error
}
