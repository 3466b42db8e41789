package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/metrics"
	"houseman.backend/pkg/utils"
)

// KYCUsecase handles identity verification submissions and reviews
type KYCUsecase struct {
	kycRepo  repositories.KYCRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(kycRepo repositories.KYCRepository, userRepo repositories.UserRepository, uow repositories.UnitOfWork) *KYCUsecase {
	return &KYCUsecase{
		kycRepo:  kycRepo,
		userRepo: userRepo,
		uow:      uow,
	}
}

// Submit records a new document submission for the caller
func (u *KYCUsecase) Submit(ctx context.Context, actor entities.Actor, input *entities.SubmitKYCInput) (*entities.KYCVerification, error) {
	requested, err := optionalUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	userID, err := resolveSubject(actor, requested)
	if err != nil {
		return nil, err
	}
	docType, err := requireString("documentType", input.DocumentType)
	if err != nil {
		return nil, err
	}
	docNumber, err := requireString("documentNumber", input.DocumentNumber)
	if err != nil {
		return nil, err
	}
	docFront, err := requireString("documentFront", input.DocumentFront)
	if err != nil {
		return nil, err
	}

	if userID != actor.UserID {
		if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("user not found")
			}
			return nil, err
		}
	}

	latest, err := u.kycRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status.BlocksResubmission() {
		return nil, domainerrors.Conflict("a verification is already " + string(latest.Status))
	}

	ts := now()
	kyc := &entities.KYCVerification{
		ID:             utils.GenerateUUIDv7(),
		UserID:         userID,
		DocumentType:   docType,
		DocumentNumber: docNumber,
		DocumentFront:  docFront,
		DocumentBack:   optionalString(input.DocumentBack),
		Selfie:         optionalString(input.Selfie),
		Status:         entities.KYCStatusPending,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if err := u.kycRepo.Create(ctx, kyc); err != nil {
		return nil, err
	}

	logger.Info(ctx, "KYC submitted", zap.String("kyc_id", kyc.ID.String()), zap.String("user_id", userID.String()))
	return kyc, nil
}

// Review applies an admin decision. Approval flags the user as verified in
// the same transaction as the status change.
func (u *KYCUsecase) Review(ctx context.Context, actor entities.Actor, input *entities.ReviewKYCInput) (*entities.KYCVerification, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("only admins can review verifications")
	}
	id, err := requireUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	next, ok := entities.ParseKYCStatus(strings.TrimSpace(input.Status))
	if !ok {
		return nil, domainerrors.Validation("unknown verification status %q", input.Status)
	}
	reason := optionalString(input.RejectionReason)
	if next == entities.KYCStatusRejected && !reason.Valid {
		return nil, domainerrors.Validation("rejectionReason is required when rejecting")
	}
	if next != entities.KYCStatusRejected {
		reason = null.String{}
	}
	if input.ReviewedBy != "" && input.ReviewedBy != actor.UserID.String() {
		logger.Warn(ctx, "Ignoring reviewedBy that differs from the session user",
			zap.String("reviewed_by", input.ReviewedBy),
			zap.String("actor_id", actor.UserID.String()),
		)
	}

	kyc, err := u.kycRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current := kyc.Status
	if !current.CanTransition(next) {
		return nil, domainerrors.InvalidTransition(string(current), string(next))
	}

	ts := now()
	kyc.Status = next
	kyc.RejectionReason = reason
	kyc.ReviewedBy = uuid.NullUUID{UUID: actor.UserID, Valid: true}
	kyc.ReviewedAt = null.TimeFrom(ts)
	kyc.UpdatedAt = ts

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.kycRepo.UpdateReview(txCtx, kyc, current); err != nil {
			return err
		}
		if next == entities.KYCStatusApproved {
			return u.userRepo.SetVerified(txCtx, kyc.UserID, true)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidTransition) {
			return nil, domainerrors.InvalidTransition(string(current), string(next))
		}
		return nil, err
	}

	metrics.RecordKYCReview(string(next))
	logger.Info(ctx, "KYC reviewed",
		zap.String("kyc_id", kyc.ID.String()),
		zap.String("from", string(current)),
		zap.String("to", string(next)),
		zap.String("reviewer_id", actor.UserID.String()),
	)

	return u.kycRepo.GetByID(ctx, id)
}

// Latest returns the newest record for userID, or nil when there is none.
// Non-admins may only read their own.
func (u *KYCUsecase) Latest(ctx context.Context, actor entities.Actor, userID *uuid.UUID) (*entities.KYCVerification, error) {
	subject, err := resolveSubject(actor, userID)
	if err != nil {
		return nil, err
	}
	kyc, err := u.kycRepo.GetLatestByUserID(ctx, subject)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return kyc, nil
}

// List returns every verification for admins, optionally by status
func (u *KYCUsecase) List(ctx context.Context, actor entities.Actor, status string) ([]*entities.KYCVerification, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("only admins can list verifications")
	}
	filter := entities.KYCFilter{}
	if status = strings.TrimSpace(status); status != "" {
		st, ok := entities.ParseKYCStatus(status)
		if !ok {
			return nil, domainerrors.Validation("unknown verification status %q", status)
		}
		filter.Status = st
	}
	return u.kycRepo.List(ctx, filter)
}

// History returns all of the caller's submissions, latest first
func (u *KYCUsecase) History(ctx context.Context, actor entities.Actor) ([]*entities.KYCVerification, error) {
	return u.kycRepo.ListByUserID(ctx, actor.UserID)
}
