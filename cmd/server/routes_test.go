package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseman.backend/internal/interfaces/http/handlers"
	"houseman.backend/internal/interfaces/http/middleware"
	"houseman.backend/pkg/jwt"
)

func testRouteDeps(authMiddleware gin.HandlerFunc) routeDeps {
	return routeDeps{
		authHandler:         &handlers.AuthHandler{},
		bookingHandler:      &handlers.BookingHandler{},
		kycHandler:          &handlers.KYCHandler{},
		conversationHandler: &handlers.ConversationHandler{},
		catalogHandler:      &handlers.CatalogHandler{},
		uploadHandler:       &handlers.UploadHandler{},
		adminHandler:        &handlers.AdminHandler{},
		authMiddleware:      authMiddleware,
	}
}

func TestRegisterAPIV1Routes_RegistersExpectedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIV1Routes(r, testRouteDeps(func(c *gin.Context) { c.Next() }))

	expects := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/register"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/refresh"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/services"},
		{http.MethodGet, "/api/v1/services/:id"},
		{http.MethodPost, "/api/v1/services"},
		{http.MethodGet, "/api/v1/categories"},
		{http.MethodPost, "/api/v1/bookings"},
		{http.MethodGet, "/api/v1/bookings"},
		{http.MethodGet, "/api/v1/bookings/:id"},
		{http.MethodPatch, "/api/v1/bookings/:id/status"},
		{http.MethodPost, "/api/v1/kyc"},
		{http.MethodPut, "/api/v1/kyc"},
		{http.MethodGet, "/api/v1/kyc"},
		{http.MethodGet, "/api/v1/kyc/history"},
		{http.MethodPost, "/api/v1/conversations"},
		{http.MethodGet, "/api/v1/conversations"},
		{http.MethodPost, "/api/v1/conversations/:id/read"},
		{http.MethodPost, "/api/v1/messages"},
		{http.MethodGet, "/api/v1/messages"},
		{http.MethodPost, "/api/v1/uploads"},
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodGet, "/api/v1/admin/stats"},
		{http.MethodPost, "/api/v1/admin/categories"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_ProtectedRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := jwt.NewJWTService("secret", time.Hour, time.Hour)
	r := gin.New()
	registerAPIV1Routes(r, testRouteDeps(middleware.AuthMiddleware(svc, nil)))

	for _, path := range []string{"/api/v1/bookings", "/api/v1/kyc", "/api/v1/conversations", "/api/v1/admin/stats"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRegisterAPIV1Routes_AdminRoutesRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := jwt.NewJWTService("secret", time.Hour, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "c@x.com", "client")
	require.NoError(t, err)

	r := gin.New()
	registerAPIV1Routes(r, testRouteDeps(middleware.AuthMiddleware(svc, nil)))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil),
		httptest.NewRequest(http.MethodPut, "/api/v1/kyc", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/categories", nil),
	} {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+pair.AccessToken)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, req.URL.Path)
	}
}

func TestApplyCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r, []string{"http://localhost:3000"})
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterHealthAndMetricsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerMetricsRoute(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
