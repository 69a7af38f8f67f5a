package bookmarks

import (
	"time"

	"hittags/internal/storage"

	"github.com/google/uuid"
)

type BookmarkRepository struct{}

func (r *BookmarkRepository) CreateBookmark(bookmark *Bookmark) error {
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}

	now := time.Now().UTC()
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = now
	}
	bookmark.UpdatedAt = now

	return storage.GetDb().Create(bookmark).Error
}

func (r *BookmarkRepository) GetBookmarkByID(bookmarkID uuid.UUID) (*Bookmark, error) {
	var bookmark Bookmark

	err := storage.GetDb().
		Where("id = ?", bookmarkID).
		First(&bookmark).Error

	if err != nil {
		return nil, err
	}

	return &bookmark, nil
}

func (r *BookmarkRepository) GetBookmarksByUser(
	userID uuid.UUID,
	tag string,
	collectionID *uuid.UUID,
	limit, offset int,
) ([]*Bookmark, int64, error) {
	var bookmarks = make([]*Bookmark, 0)
	var total int64

	query := storage.GetDb().Model(&Bookmark{}).Where("user_id = ?", userID)

	if tag != "" {
		// Tags are stored comma-joined; match whole tags only
		query = query.Where(
			"tags_raw = ? OR tags_raw LIKE ? OR tags_raw LIKE ? OR tags_raw LIKE ?",
			tag, tag+",%", "%,"+tag, "%,"+tag+",%",
		)
	}

	if collectionID != nil {
		query = query.Where("collection_id = ?", *collectionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookmarks).Error

	return bookmarks, total, err
}

func (r *BookmarkRepository) GetRecentByUser(userID uuid.UUID, limit int) ([]*Bookmark, error) {
	var bookmarks = make([]*Bookmark, 0)

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookmarks).Error

	return bookmarks, err
}

func (r *BookmarkRepository) GetUserTags(userID uuid.UUID) ([]string, error) {
	var rawValues []string

	err := storage.GetDb().Model(&Bookmark{}).
		Where("user_id = ? AND tags_raw <> ''", userID).
		Pluck("tags_raw", &rawValues).Error

	if err != nil {
		return nil, err
	}

	return collectDistinctTags(rawValues), nil
}

func (r *BookmarkRepository) UpdateBookmark(bookmark *Bookmark) error {
	bookmark.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(bookmark).Error
}

func (r *BookmarkRepository) DeleteBookmark(bookmarkID uuid.UUID) error {
	return storage.GetDb().Delete(&Bookmark{}, bookmarkID).Error
}
