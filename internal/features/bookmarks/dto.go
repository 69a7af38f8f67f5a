package bookmarks

import (
	"github.com/google/uuid"
)

type CreateBookmarkRequestDTO struct {
	URL          string     `json:"url"          binding:"required,url"`
	Title        string     `json:"title"        binding:"required,min=1,max=300"`
	Description  string     `json:"description"  binding:"max=5000"`
	Tags         []string   `json:"tags,omitempty"`
	CollectionID *uuid.UUID `json:"collectionId,omitempty"`
}

type UpdateBookmarkRequestDTO struct {
	URL          *string    `json:"url,omitempty"   binding:"omitempty,url"`
	Title        *string    `json:"title,omitempty" binding:"omitempty,min=1,max=300"`
	Description  *string    `json:"description,omitempty" binding:"omitempty,max=5000"`
	Tags         []string   `json:"tags,omitempty"`
	CollectionID *uuid.UUID `json:"collectionId,omitempty"`
}

type ListBookmarksQueryDTO struct {
	Tag          string `form:"tag"`
	CollectionID string `form:"collectionId"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

type GetBookmarksResponseDTO struct {
	Bookmarks []*Bookmark `json:"bookmarks"`
	Total     int64       `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}

type GetTagsResponseDTO struct {
	Tags []string `json:"tags"`
}
