package bookmarks

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bookmark struct {
	ID           uuid.UUID  `json:"id"           gorm:"column:id"`
	UserID       uuid.UUID  `json:"userId"       gorm:"column:user_id"`
	CollectionID *uuid.UUID `json:"collectionId" gorm:"column:collection_id"`
	URL          string     `json:"url"          gorm:"column:url"`
	Title        string     `json:"title"        gorm:"column:title"`
	Description  string     `json:"description"  gorm:"column:description"`

	TagsRaw string   `json:"-"    gorm:"column:tags_raw"`
	Tags    []string `json:"tags" gorm:"-"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (b *Bookmark) BeforeSave(tx *gorm.DB) error {
	if len(b.Tags) > 0 {
		b.TagsRaw = strings.Join(b.Tags, ",")
	} else {
		b.TagsRaw = ""
	}

	return nil
}

func (b *Bookmark) AfterFind(tx *gorm.DB) error {
	if b.TagsRaw != "" {
		b.Tags = strings.Split(b.TagsRaw, ",")
		for i, tag := range b.Tags {
			b.Tags[i] = strings.TrimSpace(tag)
		}
	} else {
		b.Tags = []string{}
	}

	return nil
}
