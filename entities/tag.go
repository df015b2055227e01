package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User    *User     `gorm:"foreignKey:UserID"`
	Recipes []*Recipe `gorm:"many2many:recipe_tags;" json:"-"`
	Timestamp
}
