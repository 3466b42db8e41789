package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/utils"
)

type catalogServiceStub struct {
	listServicesFn   func(ctx context.Context, query usecases.ServiceListQuery) ([]*entities.Service, utils.PaginationMeta, error)
	getServiceFn     func(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	createServiceFn  func(ctx context.Context, actor entities.Actor, input *entities.CreateServiceInput) (*entities.Service, error)
	listCategoriesFn func(ctx context.Context) ([]*entities.Category, error)
	createCategoryFn func(ctx context.Context, input *entities.CreateCategoryInput) (*entities.Category, error)
}

func (s catalogServiceStub) ListServices(ctx context.Context, query usecases.ServiceListQuery) ([]*entities.Service, utils.PaginationMeta, error) {
	return s.listServicesFn(ctx, query)
}
func (s catalogServiceStub) GetService(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	return s.getServiceFn(ctx, id)
}
func (s catalogServiceStub) CreateService(ctx context.Context, actor entities.Actor, input *entities.CreateServiceInput) (*entities.Service, error) {
	return s.createServiceFn(ctx, actor, input)
}
func (s catalogServiceStub) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return s.listCategoriesFn(ctx)
}
func (s catalogServiceStub) CreateCategory(ctx context.Context, input *entities.CreateCategoryInput) (*entities.Category, error) {
	return s.createCategoryFn(ctx, input)
}

func TestCatalogHandler_Services(t *testing.T) {
	provider := testActor(entities.UserRoleProvider)
	client := testActor(entities.UserRoleClient)
	known := uuid.New()
	var query usecases.ServiceListQuery
	h := NewCatalogHandler(catalogServiceStub{
		listServicesFn: func(_ context.Context, q usecases.ServiceListQuery) ([]*entities.Service, utils.PaginationMeta, error) {
			query = q
			if q.SortBy == "bogus" {
				return nil, utils.PaginationMeta{}, domainerrors.Validation("unknown sortBy")
			}
			return []*entities.Service{{ID: known}}, utils.CalculateMeta(1, 1, 0), nil
		},
		getServiceFn: func(_ context.Context, id uuid.UUID) (*entities.Service, error) {
			if id != known {
				return nil, domainerrors.ErrNotFound
			}
			return &entities.Service{ID: id, Title: "Deep clean"}, nil
		},
		createServiceFn: func(_ context.Context, actor entities.Actor, input *entities.CreateServiceInput) (*entities.Service, error) {
			if actor.Role == entities.UserRoleClient {
				return nil, domainerrors.Forbidden("only providers can create services")
			}
			return &entities.Service{ID: uuid.New(), ProviderID: actor.UserID, Title: input.Title, Currency: "XAF"}, nil
		},
	})
	r := newTestRouter()
	r.GET("/services", h.ListServices)
	r.GET("/services/:id", h.GetService)
	r.POST("/services", asActor(provider), h.CreateService)
	r.POST("/client/services", asActor(client), h.CreateService)

	w := doJSON(r, http.MethodGet, "/services?search=clean&minPrice=10&sortBy=price&sortOrder=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clean", query.Search)
	assert.Equal(t, "10", query.MinPrice)
	assert.Equal(t, "price", query.SortBy)
	assert.Equal(t, "asc", query.SortOrder)
	assert.Len(t, decodeBody(t, w)["services"], 1)

	w = doJSON(r, http.MethodGet, "/services?sortBy=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/services/"+known.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deep clean")

	w = doJSON(r, http.MethodGet, "/services/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	input := map[string]interface{}{"title": "Plumbing", "categoryId": uuid.NewString(), "price": 5000}
	w = doJSON(r, http.MethodPost, "/services", input)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), provider.UserID.String())

	w = doJSON(r, http.MethodPost, "/client/services", input)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/services", map[string]interface{}{"title": "No price", "categoryId": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_Categories(t *testing.T) {
	h := NewCatalogHandler(catalogServiceStub{
		listCategoriesFn: func(context.Context) ([]*entities.Category, error) {
			return []*entities.Category{{ID: uuid.New(), Name: "Cleaning"}}, nil
		},
		createCategoryFn: func(_ context.Context, input *entities.CreateCategoryInput) (*entities.Category, error) {
			if input.Name == "Cleaning" {
				return nil, domainerrors.Conflict("category already exists")
			}
			return &entities.Category{ID: uuid.New(), Name: input.Name}, nil
		},
	})
	r := newTestRouter()
	r.GET("/categories", h.ListCategories)
	r.POST("/admin/categories", h.CreateCategory)

	w := doJSON(r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cleaning")

	w = doJSON(r, http.MethodPost, "/admin/categories", map[string]string{"name": "Gardening"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/categories", map[string]string{"name": "Cleaning"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/categories", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
