package usecases

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/logger"
)

// DefaultUploadType is the key prefix used when the caller names none.
const DefaultUploadType = "general"

var (
	uploadTypePattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)
	unsafeNameChars   = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// UploadUsecase stores user files in object storage
type UploadUsecase struct {
	storage repositories.FileStorage
}

// NewUploadUsecase creates a new upload usecase. A nil storage disables uploads.
func NewUploadUsecase(storage repositories.FileStorage) *UploadUsecase {
	return &UploadUsecase{storage: storage}
}

// Enabled reports whether a storage backend is configured
func (u *UploadUsecase) Enabled() bool {
	return u.storage != nil
}

// Upload sniffs the content type, accepts images and PDF only, and stores
// the body under type/<unix-ms>-<filename>.
func (u *UploadUsecase) Upload(ctx context.Context, actor entities.Actor, input *entities.UploadInput) (*entities.UploadResult, error) {
	if !u.Enabled() {
		return nil, domainerrors.Unavailable("file uploads are not configured")
	}
	if len(input.Body) == 0 {
		return nil, domainerrors.Validation("file body is required")
	}
	if len(input.Body) > MaxUploadSize {
		return nil, domainerrors.TooLarge(fmt.Sprintf("file exceeds %d bytes", MaxUploadSize))
	}

	filename := sanitizeFilename(input.Filename)
	if filename == "" {
		return nil, domainerrors.Validation("filename is required")
	}
	uploadType := strings.ToLower(strings.TrimSpace(input.Type))
	if uploadType == "" {
		uploadType = DefaultUploadType
	}
	if !uploadTypePattern.MatchString(uploadType) {
		return nil, domainerrors.Validation("type may only contain lowercase letters, digits, '-' and '_'")
	}

	mt := mimetype.Detect(input.Body)
	if !allowedUpload(mt) {
		return nil, domainerrors.Validation("unsupported file type %s", mt.String())
	}
	contentType := mt.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	key := fmt.Sprintf("%s/%d-%s", uploadType, nowFunc().UnixMilli(), filename)
	url, err := u.storage.Put(ctx, key, input.Body, contentType)
	if err != nil {
		logger.Error(ctx, "Failed to store upload", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "File uploaded",
		zap.String("key", key),
		zap.String("user_id", actor.UserID.String()),
		zap.Int("size", len(input.Body)),
	)
	return &entities.UploadResult{
		URL:         url,
		Key:         key,
		Filename:    filename,
		Size:        len(input.Body),
		ContentType: contentType,
	}, nil
}

func allowedUpload(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/pdf") || strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeNameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}
