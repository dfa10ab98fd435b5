package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username" bson:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-" bson:"password"`
	Animes       []Anime   `gorm:"foreignKey:CreatorID" json:"animes,omitempty" bson:"-"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
