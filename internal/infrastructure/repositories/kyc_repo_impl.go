package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/infrastructure/models"
)

// KYCRepository implements KYC verification data operations
type KYCRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

// Create creates a new verification record
func (r *KYCRepository) Create(ctx context.Context, kyc *entities.KYCVerification) error {
	m := &models.KYCVerification{
		ID:              kyc.ID,
		UserID:          kyc.UserID,
		DocumentType:    kyc.DocumentType,
		DocumentNumber:  kyc.DocumentNumber,
		DocumentFront:   kyc.DocumentFront,
		DocumentBack:    kyc.DocumentBack.Ptr(),
		Selfie:          kyc.Selfie.Ptr(),
		Status:          string(kyc.Status),
		RejectionReason: kyc.RejectionReason.Ptr(),
		ReviewedBy:      uuidPtr(kyc.ReviewedBy),
		ReviewedAt:      kyc.ReviewedAt.Ptr(),
		CreatedAt:       kyc.CreatedAt,
		UpdatedAt:       kyc.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a verification record with submitter and reviewer
func (r *KYCRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
	var m models.KYCVerification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("User").Preload("Reviewer").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return kycToEntity(&m), nil
}

// GetLatestByUserID returns the user's most recent submission
func (r *KYCRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error) {
	var m models.KYCVerification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return kycToEntity(&m), nil
}

// ListByUserID returns all of a user's submissions, latest first
func (r *KYCRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.KYCVerification, error) {
	var rows []models.KYCVerification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Reviewer").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return kycListToEntities(rows), nil
}

// List returns submissions across users, latest first
func (r *KYCRepository) List(ctx context.Context, filter entities.KYCFilter) ([]*entities.KYCVerification, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Preload("User").Preload("Reviewer").
		Order("created_at DESC").Order("id DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []models.KYCVerification
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return kycListToEntities(rows), nil
}

// UpdateReview is a compare-and-swap on the current status
func (r *KYCRepository) UpdateReview(ctx context.Context, kyc *entities.KYCVerification, from entities.KYCStatus) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.KYCVerification{}).
		Where("id = ? AND status = ?", kyc.ID, string(from)).
		Updates(map[string]interface{}{
			"status":           string(kyc.Status),
			"rejection_reason": kyc.RejectionReason.Ptr(),
			"reviewed_by":      uuidPtr(kyc.ReviewedBy),
			"reviewed_at":      kyc.ReviewedAt.Ptr(),
			"updated_at":       kyc.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.KYCVerification{}).Where("id = ?", kyc.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidTransition
}

// CountByStatus counts submissions in status
func (r *KYCRepository) CountByStatus(ctx context.Context, status entities.KYCStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.KYCVerification{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func kycListToEntities(rows []models.KYCVerification) []*entities.KYCVerification {
	out := make([]*entities.KYCVerification, 0, len(rows))
	for i := range rows {
		out = append(out, kycToEntity(&rows[i]))
	}
	return out
}

func kycToEntity(m *models.KYCVerification) *entities.KYCVerification {
	return &entities.KYCVerification{
		ID:              m.ID,
		UserID:          m.UserID,
		DocumentType:    m.DocumentType,
		DocumentNumber:  m.DocumentNumber,
		DocumentFront:   m.DocumentFront,
		DocumentBack:    null.StringFromPtr(m.DocumentBack),
		Selfie:          null.StringFromPtr(m.Selfie),
		Status:          entities.KYCStatus(m.Status),
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		ReviewedBy:      nullUUID(m.ReviewedBy),
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		User:            userSummary(m.User),
		Reviewer:        userSummary(m.Reviewer),
	}
}
