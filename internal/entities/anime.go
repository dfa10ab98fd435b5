package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NamedTag is a genre or theme label attached to an anime.
type NamedTag struct {
	Name string `json:"name" bson:"name"`
}

type ImageSet struct {
	ImageURL string `gorm:"size:2048" json:"image_url" bson:"image_url"`
}

// Images mirrors the {"jpg": {"image_url": ...}} shape clients send.
type Images struct {
	JPG ImageSet `gorm:"embedded;embeddedPrefix:jpg_" json:"jpg" bson:"jpg"`
}

// Anime is a library entry. (CreatorID, Title) is unique.
type Anime struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Title     string     `gorm:"size:512;not null;uniqueIndex:idx_animes_creator_title,priority:2" json:"title" bson:"title"`
	Images    Images     `gorm:"embedded" json:"images" bson:"images"`
	Rating    string     `gorm:"size:100" json:"rating,omitempty" bson:"rating,omitempty"`
	Score     *float64   `json:"score,omitempty" bson:"score,omitempty"`
	Genres    []NamedTag `gorm:"serializer:json;type:text" json:"genres" bson:"genres"`
	Themes    []NamedTag `gorm:"serializer:json;type:text" json:"themes" bson:"themes"`
	CreatorID string     `gorm:"size:36;not null;index;uniqueIndex:idx_animes_creator_title,priority:1" json:"creator" bson:"creator"`
	Creator   *User      `gorm:"foreignKey:CreatorID" json:"-" bson:"-"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func (Anime) TableName() string {
	return "animes"
}

// BeforeCreate assigns a UUID and normalizes nil tag lists so they
// serialize as [] instead of null.
func (a *Anime) BeforeCreate(tx *gorm.DB) error {
	a.Prepare()
	return nil
}

// Prepare fills store-assigned defaults. Stores that bypass gorm hooks call
// it directly.
func (a *Anime) Prepare() {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Genres == nil {
		a.Genres = []NamedTag{}
	}
	if a.Themes == nil {
		a.Themes = []NamedTag{}
	}
}
