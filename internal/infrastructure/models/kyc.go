package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCVerification struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentType    string     `gorm:"type:varchar(50);not null"`
	DocumentNumber  string     `gorm:"type:varchar(100);not null"`
	DocumentFront   string     `gorm:"type:text;not null"`
	DocumentBack    *string    `gorm:"type:text"`
	Selfie          *string    `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	RejectionReason *string    `gorm:"type:text"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	User     *User `gorm:"foreignKey:UserID"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy"`
}

func (KYCVerification) TableName() string {
	return "kyc_verifications"
}
