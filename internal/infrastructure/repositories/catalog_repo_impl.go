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

// CategoryRepository implements category data operations
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	m := &models.Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description.Ptr(),
		Icon:        category.Icon.Ptr(),
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var m models.Category
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return categoryToEntity(&m), nil
}

// ListActive returns active categories ordered by name with their active service counts
func (r *CategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []models.Category
	if err := db.Where("is_active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		CategoryID uuid.UUID
		Count      int64
	}
	if err := db.Model(&models.Service{}).
		Select("category_id, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byCategory := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Count
	}

	out := make([]*entities.Category, 0, len(rows))
	for i := range rows {
		cat := categoryToEntity(&rows[i])
		cat.ServiceCount = byCategory[cat.ID]
		out = append(out, cat)
	}
	return out, nil
}

func categoryToEntity(m *models.Category) *entities.Category {
	return &entities.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		Icon:        null.StringFromPtr(m.Icon),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ServiceRepository implements service listing data operations
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a new service
func (r *ServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	images := service.Images
	if images == nil {
		images = []string{}
	}
	m := &models.Service{
		ID:          service.ID,
		ProviderID:  service.ProviderID,
		CategoryID:  service.CategoryID,
		Title:       service.Title,
		Description: service.Description,
		Price:       service.Price,
		Currency:    service.Currency,
		Images:      images,
		Rating:      service.Rating,
		ReviewCount: service.ReviewCount,
		IsActive:    service.IsActive,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a service with its provider and category
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Provider").
		Preload("Category").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return serviceToEntity(&m), nil
}

// List returns active services matching filter and the total match count
func (r *ServiceRepository) List(ctx context.Context, filter entities.ServiceFilter) ([]*entities.Service, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	scope := serviceFilterScope(filter)

	var total int64
	if err := db.Model(&models.Service{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !entities.ValidServiceSort(sortBy) {
		sortBy = entities.ServiceSortCreatedAt
	}
	dir := " DESC"
	if filter.SortAsc {
		dir = " ASC"
	}

	query := db.Scopes(scope).
		Preload("Provider").
		Preload("Category").
		Order(sortBy + dir).
		Order("id ASC")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []models.Service
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Service, 0, len(rows))
	for i := range rows {
		out = append(out, serviceToEntity(&rows[i]))
	}
	return out, total, nil
}

func serviceFilterScope(filter entities.ServiceFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.ProviderID != nil {
			db = db.Where("provider_id = ?", *filter.ProviderID)
		}
		if filter.Search != "" {
			term := likePattern(filter.Search)
			db = db.Where("(LOWER(title) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")", term, term)
		}
		if filter.MinPrice != nil {
			db = db.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			db = db.Where("price <= ?", *filter.MaxPrice)
		}
		if filter.MinRating != nil {
			db = db.Where("rating >= ?", *filter.MinRating)
		}
		return db
	}
}

func serviceToEntity(m *models.Service) *entities.Service {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	s := &entities.Service{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Currency:    m.Currency,
		Images:      images,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Provider:    userSummary(m.Provider),
	}
	if m.Category != nil {
		s.Category = &entities.CategorySummary{
			ID:   m.Category.ID,
			Name: m.Category.Name,
			Icon: null.StringFromPtr(m.Category.Icon),
		}
	}
	return s
}
