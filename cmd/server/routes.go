package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/handlers"
	"houseman.backend/internal/interfaces/http/middleware"
	"houseman.backend/pkg/metrics"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	bookingHandler      *handlers.BookingHandler
	kycHandler          *handlers.KYCHandler
	conversationHandler *handlers.ConversationHandler
	catalogHandler      *handlers.CatalogHandler
	uploadHandler       *handlers.UploadHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Public catalog routes
		v1.GET("/services", d.catalogHandler.ListServices)
		v1.GET("/services/:id", d.catalogHandler.GetService)
		v1.GET("/categories", d.catalogHandler.ListCategories)

		protected := v1.Group("")
		protected.Use(d.authMiddleware)
		{
			protected.POST("/services", middleware.RequireRole(entities.UserRoleProvider, entities.UserRoleAdmin), d.catalogHandler.CreateService)

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", middleware.IdempotencyMiddleware(), d.bookingHandler.CreateBooking)
				bookings.GET("", d.bookingHandler.ListBookings)
				bookings.GET("/:id", d.bookingHandler.GetBooking)
				bookings.PATCH("/:id/status", d.bookingHandler.UpdateStatus)
			}

			kyc := protected.Group("/kyc")
			{
				kyc.POST("", d.kycHandler.Submit)
				kyc.PUT("", middleware.RequireAdmin(), d.kycHandler.Review)
				kyc.GET("", d.kycHandler.Get)
				kyc.GET("/history", d.kycHandler.History)
			}

			conversations := protected.Group("/conversations")
			{
				conversations.POST("", d.conversationHandler.CreateConversation)
				conversations.GET("", d.conversationHandler.ListConversations)
				conversations.POST("/:id/read", d.conversationHandler.MarkRead)
			}

			messages := protected.Group("/messages")
			{
				messages.POST("", d.conversationHandler.SendMessage)
				messages.GET("", d.conversationHandler.ListMessages)
			}

			protected.POST("/uploads", d.uploadHandler.Upload)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", d.adminHandler.ListUsers)
				admin.GET("/stats", d.adminHandler.GetStats)
				admin.POST("/categories", d.catalogHandler.CreateCategory)
			}
		}
	}
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader, middleware.IdempotencyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotencyHitHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "houseman-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
