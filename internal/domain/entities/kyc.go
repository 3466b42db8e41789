package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents KYC verification status
type KYCStatus string

const (
	KYCStatusPending     KYCStatus = "pending"
	KYCStatusUnderReview KYCStatus = "under_review"
	KYCStatusApproved    KYCStatus = "approved"
	KYCStatusRejected    KYCStatus = "rejected"
)

var kycTransitions = map[KYCStatus][]KYCStatus{
	KYCStatusPending:     {KYCStatusUnderReview, KYCStatusApproved, KYCStatusRejected},
	KYCStatusUnderReview: {KYCStatusApproved, KYCStatusRejected},
	KYCStatusApproved:    {KYCStatusApproved},
}

// ParseKYCStatus validates a status name.
func ParseKYCStatus(s string) (KYCStatus, bool) {
	switch st := KYCStatus(s); st {
	case KYCStatusPending, KYCStatusUnderReview, KYCStatusApproved, KYCStatusRejected:
		return st, true
	}
	return "", false
}

// CanTransition reports whether a review may move a record from s to next.
// Re-approving an approved record is allowed; rejected is terminal.
func (s KYCStatus) CanTransition(next KYCStatus) bool {
	for _, allowed := range kycTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BlocksResubmission reports whether a user whose latest record is in s may
// not submit a new one.
func (s KYCStatus) BlocksResubmission() bool {
	return s == KYCStatusPending || s == KYCStatusUnderReview || s == KYCStatusApproved
}

// KYCVerification is one identity document submission
type KYCVerification struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"userId"`
	DocumentType    string        `json:"documentType"`
	DocumentNumber  string        `json:"documentNumber"`
	DocumentFront   string        `json:"documentFront"`
	DocumentBack    null.String   `json:"documentBack"`
	Selfie          null.String   `json:"selfie"`
	Status          KYCStatus     `json:"status"`
	RejectionReason null.String   `json:"rejectionReason"`
	ReviewedBy      uuid.NullUUID `json:"reviewedBy"`
	ReviewedAt      null.Time     `json:"reviewedAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	User            *UserSummary  `json:"user,omitempty"`
	Reviewer        *UserSummary  `json:"reviewer,omitempty"`
}

// KYCFilter narrows the admin listing
type KYCFilter struct {
	Status KYCStatus
}

// SubmitKYCInput represents a document submission
type SubmitKYCInput struct {
	UserID         string `json:"userId"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	DocumentFront  string `json:"documentFront"`
	DocumentBack   string `json:"documentBack"`
	Selfie         string `json:"selfie"`
}

// ReviewKYCInput represents an admin decision
type ReviewKYCInput struct {
	ID              string `json:"id" binding:"required"`
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
	ReviewedBy      string `json:"reviewedBy"`
}
