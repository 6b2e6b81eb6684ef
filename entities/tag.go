package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"size:100;not null" json:"name"`
	Slug  string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Color string    `gorm:"size:7;not null;uniqueIndex" json:"color"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	newID(&t.ID)
	return nil
}
