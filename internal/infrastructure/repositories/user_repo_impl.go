package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		Phone:        user.Phone.Ptr(),
		AvatarURL:    user.AvatarURL.Ptr(),
		IsVerified:   user.IsVerified,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return userToEntity(&m), nil
}

// Update updates profile fields. Role and verification are not touched here.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone.Ptr(),
		"avatar_url": user.AvatarURL.Ptr(),
		"is_active":  user.IsActive,
		"updated_at": time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetVerified writes the KYC verification flag
func (r *UserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": verified, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search and role filters
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	var userModels []models.User
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if filter.Search != "" {
		term := likePattern(filter.Search)
		query = query.Where("(LOWER(first_name) LIKE ?"+likeEscape+" OR LOWER(last_name) LIKE ?"+likeEscape+" OR LOWER(email) LIKE ?"+likeEscape+")", term, term, term)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// CountByRole returns the number of users per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS count").Group("role").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.UserRole]int64, len(rows))
	for _, row := range rows {
		counts[entities.UserRole(row.Role)] = row.Count
	}
	return counts, nil
}
