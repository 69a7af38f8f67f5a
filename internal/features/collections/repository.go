package collections

import (
	"time"

	"hittags/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionRepository struct{}

func (r *CollectionRepository) CreateCollection(collection *Collection) error {
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}

	now := time.Now().UTC()
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = now
	}
	collection.UpdatedAt = now

	return storage.GetDb().Create(collection).Error
}

func (r *CollectionRepository) GetCollectionByID(collectionID uuid.UUID) (*Collection, error) {
	var collection Collection

	err := storage.GetDb().
		Where("id = ?", collectionID).
		First(&collection).Error

	if err != nil {
		return nil, err
	}

	return &collection, nil
}

func (r *CollectionRepository) GetCollectionsByUser(userID uuid.UUID) ([]*Collection, error) {
	var collections = make([]*Collection, 0)

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&collections).Error

	return collections, err
}

func (r *CollectionRepository) UpdateCollection(collection *Collection) error {
	collection.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(collection).Error
}

// DeleteCollection removes the collection and detaches its bookmarks
// in a single transaction. Bookmarks themselves survive deletion.
func (r *CollectionRepository) DeleteCollection(collectionID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"UPDATE bookmarks SET collection_id = NULL WHERE collection_id = ?",
			collectionID,
		).Error
		if err != nil {
			return err
		}

		return tx.Delete(&Collection{}, collectionID).Error
	})
}
