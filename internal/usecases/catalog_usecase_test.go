package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/usecases"
)

func newCatalogUsecaseForTest() (*usecases.CatalogUsecase, *MockServiceRepository, *MockCategoryRepository) {
	services := new(MockServiceRepository)
	categories := new(MockCategoryRepository)
	return usecases.NewCatalogUsecase(services, categories, ""), services, categories
}

func TestCatalogUsecase_ListServices_Filters(t *testing.T) {
	uc, services, _ := newCatalogUsecaseForTest()
	categoryID := uuid.New()

	services.On("List", mock.Anything, mock.MatchedBy(func(f entities.ServiceFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.Search == "clean" &&
			f.MinPrice != nil && *f.MinPrice == 1000 &&
			f.MaxPrice != nil && *f.MaxPrice == 5000.5 &&
			f.MinRating != nil && *f.MinRating == 4 &&
			f.SortBy == "price" && f.SortAsc &&
			f.Limit == 0
	})).Return([]*entities.Service{{}, {}}, int64(2), nil).Once()

	list, meta, err := uc.ListServices(context.Background(), usecases.ServiceListQuery{
		Category: categoryID.String(), Search: " clean ", MinPrice: "1000", MaxPrice: "5000.5",
		MinRating: "4", SortBy: "Price", SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, meta.Pages)
	assert.Equal(t, 2, meta.Limit)
}

func TestCatalogUsecase_ListServices_Defaults(t *testing.T) {
	uc, services, _ := newCatalogUsecaseForTest()
	services.On("List", mock.Anything, mock.MatchedBy(func(f entities.ServiceFilter) bool {
		return f.SortBy == entities.ServiceSortCreatedAt && !f.SortAsc && f.Limit == 10 && f.Page == 3
	})).Return([]*entities.Service{}, int64(25), nil).Once()

	_, meta, err := uc.ListServices(context.Background(), usecases.ServiceListQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Pages)
}

func TestCatalogUsecase_ListServices_Validation(t *testing.T) {
	uc, services, _ := newCatalogUsecaseForTest()

	for _, q := range []usecases.ServiceListQuery{
		{SortBy: "provider_id; drop table services"},
		{SortOrder: "sideways"},
		{MinPrice: "cheap"},
		{Category: "cleaning"},
	} {
		_, _, err := uc.ListServices(context.Background(), q)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	}
	services.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_CreateService(t *testing.T) {
	categoryID := uuid.New()
	price := 7500.0

	t.Run("provider owns what it creates", func(t *testing.T) {
		uc, services, categories := newCatalogUsecaseForTest()
		provider := providerActor()
		categories.On("GetByID", mock.Anything, categoryID).Return(&entities.Category{ID: categoryID}, nil).Once()
		services.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.Service) bool {
			return s.ProviderID == provider.UserID && s.Currency == "XAF" && s.IsActive &&
				s.Rating == 0 && s.ReviewCount == 0 && len(s.Images) == 0 && s.Images != nil
		})).Return(nil).Once()

		svc, err := uc.CreateService(context.Background(), provider, &entities.CreateServiceInput{
			CategoryID: categoryID.String(), Title: "Plumbing", Price: &price,
		})
		require.NoError(t, err)
		assert.Equal(t, "Plumbing", svc.Title)
		services.AssertExpectations(t)
	})

	t.Run("admin names the provider", func(t *testing.T) {
		uc, services, categories := newCatalogUsecaseForTest()
		providerID := uuid.New()
		categories.On("GetByID", mock.Anything, categoryID).Return(&entities.Category{ID: categoryID}, nil).Once()
		services.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.Service) bool {
			return s.ProviderID == providerID && s.Currency == "USD"
		})).Return(nil).Once()

		_, err := uc.CreateService(context.Background(), adminActor(), &entities.CreateServiceInput{
			ProviderID: providerID.String(), CategoryID: categoryID.String(), Title: "Plumbing", Price: &price, Currency: "usd",
		})
		require.NoError(t, err)
	})

	t.Run("rejections", func(t *testing.T) {
		uc, services, categories := newCatalogUsecaseForTest()

		_, err := uc.CreateService(context.Background(), clientActor(), &entities.CreateServiceInput{CategoryID: categoryID.String(), Title: "x", Price: &price})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = uc.CreateService(context.Background(), providerActor(), &entities.CreateServiceInput{
			ProviderID: uuid.New().String(), CategoryID: categoryID.String(), Title: "x", Price: &price,
		})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		_, err = uc.CreateService(context.Background(), providerActor(), &entities.CreateServiceInput{CategoryID: categoryID.String(), Title: "x"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

		categories.On("GetByID", mock.Anything, categoryID).Return(nil, domainerrors.ErrNotFound).Once()
		_, err = uc.CreateService(context.Background(), providerActor(), &entities.CreateServiceInput{CategoryID: categoryID.String(), Title: "x", Price: &price})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

		services.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("currency must be a 3-letter code", func(t *testing.T) {
		for _, currency := range []string{"DOLLAR", "EU", "X4F"} {
			uc, services, categories := newCatalogUsecaseForTest()

			_, err := uc.CreateService(context.Background(), providerActor(), &entities.CreateServiceInput{
				CategoryID: categoryID.String(), Title: "Plumbing", Price: &price, Currency: currency,
			})
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput, currency)
			categories.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			services.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})
}

func TestCatalogUsecase_Categories(t *testing.T) {
	uc, _, categories := newCatalogUsecaseForTest()

	categories.On("ListActive", mock.Anything).Return([]*entities.Category{{Name: "Cleaning"}}, nil).Once()
	list, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	categories.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool {
		return c.Name == "Gardening" && c.IsActive && !c.Icon.Valid
	})).Return(nil).Once()
	_, err = uc.CreateCategory(context.Background(), &entities.CreateCategoryInput{Name: "Gardening"})
	require.NoError(t, err)

	categories.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()
	_, err = uc.CreateCategory(context.Background(), &entities.CreateCategoryInput{Name: "Gardening"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}
