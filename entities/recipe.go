package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `gorm:"type:numeric(10,2)" json:"price"`
	Link        string    `json:"link,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	User        *User         `gorm:"foreignKey:UserID"`
	Tags        []*Tag        `gorm:"many2many:recipe_tags;" json:"tags,omitempty"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients;" json:"ingredients,omitempty"`
	Timestamp
}
