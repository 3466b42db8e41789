package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func seedUser(t *testing.T, db *gorm.DB, role entities.UserRole, email string) *entities.User {
	t.Helper()
	now := time.Now()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "First " + string(role),
		LastName:     "Last",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, name string, active bool) *entities.Category {
	t.Helper()
	now := time.Now()
	c := &entities.Category{ID: uuid.New(), Name: name, IsActive: active, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func seedService(t *testing.T, db *gorm.DB, providerID, categoryID uuid.UUID, title string, price, rating float64, createdAt time.Time) *entities.Service {
	t.Helper()
	s := &entities.Service{
		ID:          uuid.New(),
		ProviderID:  providerID,
		CategoryID:  categoryID,
		Title:       title,
		Description: title + " description",
		Price:       price,
		Currency:    entities.DefaultCurrency,
		Images:      []string{"https://cdn.example/" + title + ".png"},
		Rating:      rating,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, NewServiceRepository(db).Create(context.Background(), s))
	return s
}

func seedBooking(t *testing.T, db *gorm.DB, client, provider *entities.User, service *entities.Service, status entities.BookingStatus, date string, createdAt time.Time) *entities.Booking {
	t.Helper()
	b := &entities.Booking{
		ID:            uuid.New(),
		ClientID:      client.ID,
		ProviderID:    provider.ID,
		ServiceID:     service.ID,
		Status:        status,
		ScheduledDate: date,
		ScheduledTime: "10:00",
		Duration:      entities.DefaultBookingDuration,
		Price:         service.Price,
		Currency:      service.Currency,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, NewBookingRepository(db).Create(context.Background(), b))
	return b
}
