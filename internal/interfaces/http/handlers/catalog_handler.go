package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/utils"
)

type CatalogService interface {
	ListServices(ctx context.Context, query usecases.ServiceListQuery) ([]*entities.Service, utils.PaginationMeta, error)
	GetService(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	CreateService(ctx context.Context, actor entities.Actor, input *entities.CreateServiceInput) (*entities.Service, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	CreateCategory(ctx context.Context, input *entities.CreateCategoryInput) (*entities.Category, error)
}

// CatalogHandler handles service listing and category endpoints
type CatalogHandler struct {
	catalogUsecase CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogUsecase CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

// ListServices lists active services
// GET /api/v1/services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, meta, err := h.catalogUsecase.ListServices(c.Request.Context(), usecases.ServiceListQuery{
		Category:  c.Query("category"),
		Provider:  c.Query("provider"),
		Search:    c.Query("search"),
		MinPrice:  c.Query("minPrice"),
		MaxPrice:  c.Query("maxPrice"),
		MinRating: c.Query("minRating"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"services":   services,
		"pagination": meta,
	})
}

// GetService gets a service by ID
// GET /api/v1/services/:id
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := pathUUID(c, "id", "service")
	if !ok {
		return
	}

	service, err := h.catalogUsecase.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"service": service})
}

// CreateService publishes a service listing
// POST /api/v1/services
func (h *CatalogHandler) CreateService(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := h.catalogUsecase.CreateService(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"service": service})
}

// ListCategories lists active categories
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a category
// POST /api/v1/admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var input entities.CreateCategoryInput
	if !bindJSON(c, &input) {
		return
	}

	category, err := h.catalogUsecase.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"category": category})
}
