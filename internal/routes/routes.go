package routes

import (
	"net/http"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/handlers"
	"yamdb_backend/internal/middleware"
	"yamdb_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the whole API under /api/v1.
func RegisterRoutes(
	router *gin.Engine,
	db *gorm.DB,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(tokens, userRepo)

	v1 := router.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(v1)
		appHandlers.Users.RegisterRoutes(v1, authMW)
		appHandlers.Taxonomy.RegisterRoutes(v1, authMW)
		appHandlers.Titles.RegisterRoutes(v1, authMW)
		appHandlers.Reviews.RegisterRoutes(v1, authMW)
		appHandlers.Comments.RegisterRoutes(v1, authMW)
	}
}
