package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/response"
)

type KYCService interface {
	Submit(ctx context.Context, actor entities.Actor, input *entities.SubmitKYCInput) (*entities.KYCVerification, error)
	Review(ctx context.Context, actor entities.Actor, input *entities.ReviewKYCInput) (*entities.KYCVerification, error)
	Latest(ctx context.Context, actor entities.Actor, userID *uuid.UUID) (*entities.KYCVerification, error)
	List(ctx context.Context, actor entities.Actor, status string) ([]*entities.KYCVerification, error)
	History(ctx context.Context, actor entities.Actor) ([]*entities.KYCVerification, error)
}

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	kycUsecase KYCService
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase KYCService) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// Submit files a new verification
// POST /api/v1/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.SubmitKYCInput
	if !bindJSON(c, &input) {
		return
	}

	kyc, err := h.kycUsecase.Submit(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"verification": kyc})
}

// Review records an admin decision
// PUT /api/v1/kyc
func (h *KYCHandler) Review(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.ReviewKYCInput
	if !bindJSON(c, &input) {
		return
	}

	kyc, err := h.kycUsecase.Review(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verification": kyc})
}

// Get returns the latest verification of a user. Without userId an admin
// gets every verification, optionally filtered by status.
// GET /api/v1/kyc
func (h *KYCHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	if userID == nil && actor.IsAdmin() {
		list, err := h.kycUsecase.List(c.Request.Context(), actor, c.Query("status"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"verifications": list})
		return
	}

	kyc, err := h.kycUsecase.Latest(c.Request.Context(), actor, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verification": kyc})
}

// History lists every verification the caller submitted
// GET /api/v1/kyc/history
func (h *KYCHandler) History(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	list, err := h.kycUsecase.History(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verifications": list})
}
