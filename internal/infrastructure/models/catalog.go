package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description *string   `gorm:"type:text"`
	Icon        *string   `gorm:"type:varchar(100)"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	Currency    string    `gorm:"type:varchar(3);not null"`
	Images      []string  `gorm:"type:jsonb;serializer:json"`
	Rating      float64   `gorm:"type:numeric(3,2);not null"`
	ReviewCount int       `gorm:"not null"`
	IsActive    bool      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Provider *User     `gorm:"foreignKey:ProviderID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}
