package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/response"
)

type AdminService interface {
	ListUsers(ctx context.Context, search, role string) ([]*entities.User, error)
	Stats(ctx context.Context) (*entities.PlatformStats, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers lists users
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetStats returns platform counters
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
