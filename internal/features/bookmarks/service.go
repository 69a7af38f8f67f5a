package bookmarks

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type BookmarkService struct {
	bookmarkRepository *BookmarkRepository
}

func (s *BookmarkService) CreateBookmark(
	userID uuid.UUID,
	request *CreateBookmarkRequestDTO,
) (*Bookmark, error) {
	bookmark := &Bookmark{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: request.CollectionID,
		URL:          request.URL,
		Title:        request.Title,
		Description:  request.Description,
		Tags:         normalizeTags(request.Tags),
	}

	if err := s.bookmarkRepository.CreateBookmark(bookmark); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	return bookmark, nil
}

func (s *BookmarkService) GetBookmark(bookmarkID, userID uuid.UUID) (*Bookmark, error) {
	return s.getOwnedBookmark(bookmarkID, userID)
}

func (s *BookmarkService) ListBookmarks(
	userID uuid.UUID,
	query *ListBookmarksQueryDTO,
) (*GetBookmarksResponseDTO, error) {
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := max(query.Offset, 0)

	var collectionID *uuid.UUID
	if query.CollectionID != "" {
		parsed, err := uuid.Parse(query.CollectionID)
		if err != nil {
			return nil, errors.New("invalid collection ID")
		}
		collectionID = &parsed
	}

	bookmarks, total, err := s.bookmarkRepository.GetBookmarksByUser(
		userID, query.Tag, collectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	return &GetBookmarksResponseDTO{
		Bookmarks: bookmarks,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *BookmarkService) ListRecentBookmarks(userID uuid.UUID, limit int) ([]*Bookmark, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	return s.bookmarkRepository.GetRecentByUser(userID, limit)
}

func (s *BookmarkService) ListTags(userID uuid.UUID) (*GetTagsResponseDTO, error) {
	tags, err := s.bookmarkRepository.GetUserTags(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return &GetTagsResponseDTO{Tags: tags}, nil
}

func (s *BookmarkService) UpdateBookmark(
	bookmarkID, userID uuid.UUID,
	request *UpdateBookmarkRequestDTO,
) (*Bookmark, error) {
	bookmark, err := s.getOwnedBookmark(bookmarkID, userID)
	if err != nil {
		return nil, err
	}

	if request.URL != nil {
		bookmark.URL = *request.URL
	}

	if request.Title != nil {
		bookmark.Title = *request.Title
	}

	if request.Description != nil {
		bookmark.Description = *request.Description
	}

	if request.Tags != nil {
		bookmark.Tags = normalizeTags(request.Tags)
	}

	if request.CollectionID != nil {
		bookmark.CollectionID = request.CollectionID
	}

	if err := s.bookmarkRepository.UpdateBookmark(bookmark); err != nil {
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	return bookmark, nil
}

func (s *BookmarkService) DeleteBookmark(bookmarkID, userID uuid.UUID) error {
	if _, err := s.getOwnedBookmark(bookmarkID, userID); err != nil {
		return err
	}

	if err := s.bookmarkRepository.DeleteBookmark(bookmarkID); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return nil
}

// getOwnedBookmark applies ownership filtering: foreign and missing
// bookmarks are indistinguishable to the caller.
func (s *BookmarkService) getOwnedBookmark(bookmarkID, userID uuid.UUID) (*Bookmark, error) {
	bookmark, err := s.bookmarkRepository.GetBookmarkByID(bookmarkID)
	if err != nil {
		return nil, errors.New("bookmark not found")
	}

	if bookmark.UserID != userID {
		return nil, errors.New("bookmark not found")
	}

	return bookmark, nil
}
