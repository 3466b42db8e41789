package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/utils"
)

// CatalogUsecase handles services and categories
type CatalogUsecase struct {
	serviceRepo  repositories.ServiceRepository
	categoryRepo repositories.CategoryRepository
	currency     string
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(serviceRepo repositories.ServiceRepository, categoryRepo repositories.CategoryRepository, defaultCurrency string) *CatalogUsecase {
	if defaultCurrency == "" {
		defaultCurrency = entities.DefaultCurrency
	}
	return &CatalogUsecase{
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		currency:     defaultCurrency,
	}
}

// ServiceListQuery carries the raw listing parameters
type ServiceListQuery struct {
	Category  string
	Provider  string
	Search    string
	MinPrice  string
	MaxPrice  string
	MinRating string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListServices returns active services matching the query. Limit 0 returns
// every match.
func (u *CatalogUsecase) ListServices(ctx context.Context, query ServiceListQuery) ([]*entities.Service, utils.PaginationMeta, error) {
	var meta utils.PaginationMeta
	filter := entities.ServiceFilter{Search: strings.TrimSpace(query.Search)}

	var err error
	if filter.CategoryID, err = optionalUUID("category", query.Category); err != nil {
		return nil, meta, err
	}
	if filter.ProviderID, err = optionalUUID("provider", query.Provider); err != nil {
		return nil, meta, err
	}
	if filter.MinPrice, err = optionalFloat("minPrice", query.MinPrice); err != nil {
		return nil, meta, err
	}
	if filter.MaxPrice, err = optionalFloat("maxPrice", query.MaxPrice); err != nil {
		return nil, meta, err
	}
	if filter.MinRating, err = optionalFloat("minRating", query.MinRating); err != nil {
		return nil, meta, err
	}

	filter.SortBy = strings.ToLower(strings.TrimSpace(query.SortBy))
	if filter.SortBy == "" {
		filter.SortBy = entities.ServiceSortCreatedAt
	}
	if !entities.ValidServiceSort(filter.SortBy) {
		return nil, meta, domainerrors.Validation("sortBy must be one of created_at, price, rating, title")
	}
	switch strings.ToLower(strings.TrimSpace(query.SortOrder)) {
	case "", "desc":
	case "asc":
		filter.SortAsc = true
	default:
		return nil, meta, domainerrors.Validation("sortOrder must be asc or desc")
	}

	params := utils.GetPaginationParams(query.Page, query.Limit, DefaultServicePageLimit)
	filter.Page = params.Page
	filter.Limit = params.Limit

	services, total, err := u.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, meta, err
	}
	return services, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// GetService gets a service by ID
func (u *CatalogUsecase) GetService(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	return u.serviceRepo.GetByID(ctx, id)
}

// CreateService publishes a listing. Providers always own what they create;
// admins must name the provider.
func (u *CatalogUsecase) CreateService(ctx context.Context, actor entities.Actor, input *entities.CreateServiceInput) (*entities.Service, error) {
	var providerID uuid.UUID
	switch actor.Role {
	case entities.UserRoleProvider:
		requested, err := optionalUUID("providerId", input.ProviderID)
		if err != nil {
			return nil, err
		}
		if requested != nil && *requested != actor.UserID {
			return nil, domainerrors.Forbidden("providers can only create their own services")
		}
		providerID = actor.UserID
	case entities.UserRoleAdmin:
		id, err := requireUUID("providerId", input.ProviderID)
		if err != nil {
			return nil, err
		}
		providerID = id
	default:
		return nil, domainerrors.Forbidden("only providers can create services")
	}

	categoryID, err := requireUUID("categoryId", input.CategoryID)
	if err != nil {
		return nil, err
	}
	title, err := requireString("title", input.Title)
	if err != nil {
		return nil, err
	}
	if input.Price == nil {
		return nil, domainerrors.Validation("price is required")
	}
	if *input.Price < 0 {
		return nil, domainerrors.Validation("price must not be negative")
	}
	currency, err := optionalCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Validation("categoryId does not name a category")
		}
		return nil, err
	}

	if currency == "" {
		currency = u.currency
	}
	images := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}

	ts := now()
	service := &entities.Service{
		ID:          utils.GenerateUUIDv7(),
		ProviderID:  providerID,
		CategoryID:  categoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Currency:    currency,
		Images:      images,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := u.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Service created", zap.String("service_id", service.ID.String()), zap.String("provider_id", providerID.String()))
	return service, nil
}

// ListCategories returns active categories ordered by name
func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.categoryRepo.ListActive(ctx)
}

// CreateCategory creates an active category
func (u *CatalogUsecase) CreateCategory(ctx context.Context, input *entities.CreateCategoryInput) (*entities.Category, error) {
	name, err := requireString("name", input.Name)
	if err != nil {
		return nil, err
	}
	ts := now()
	category := &entities.Category{
		ID:          utils.GenerateUUIDv7(),
		Name:        name,
		Description: optionalString(input.Description),
		Icon:        optionalString(input.Icon),
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := u.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("category already exists")
		}
		return nil, err
	}
	return category, nil
}

func optionalFloat(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, domainerrors.Validation("%s must be a number", field)
	}
	return &f, nil
}
