package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultPriority = 10

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"size:140;not null;uniqueIndex" json:"slug"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	Priority  int       `gorm:"not null;default:10;index" json:"priority"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Banner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	Link      string    `gorm:"size:255" json:"link"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	Priority  int       `gorm:"not null;default:10;index" json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
