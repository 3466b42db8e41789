package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/internal/usecases"
)

type UploadService interface {
	Upload(ctx context.Context, actor entities.Actor, input *entities.UploadInput) (*entities.UploadResult, error)
}

// UploadHandler accepts raw file uploads
type UploadHandler struct {
	uploadUsecase UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadUsecase UploadService) *UploadHandler {
	return &UploadHandler{uploadUsecase: uploadUsecase}
}

// Upload stores the request body
// POST /api/v1/uploads?filename=&type=
func (h *UploadHandler) Upload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	// one byte past the limit lets the usecase tell "too large" from "exactly max"
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, usecases.MaxUploadSize+1))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Failed to read request body"))
		return
	}

	result, err := h.uploadUsecase.Upload(c.Request.Context(), actor, &entities.UploadInput{
		Filename: c.Query("filename"),
		Type:     c.Query("type"),
		Body:     body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}
