package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(20);not null;index"`
	ScheduledDate      string    `gorm:"type:varchar(10);not null"`
	ScheduledTime      string    `gorm:"type:varchar(5);not null"`
	Duration           int       `gorm:"not null"`
	Price              float64   `gorm:"type:numeric(12,2);not null"`
	Currency           string    `gorm:"type:varchar(3);not null"`
	Notes              *string   `gorm:"type:text"`
	Address            *string   `gorm:"type:text"`
	CancellationReason *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time

	Service  *Service `gorm:"foreignKey:ServiceID"`
	Client   *User    `gorm:"foreignKey:ClientID"`
	Provider *User    `gorm:"foreignKey:ProviderID"`
}
