package routes

import (
	"fmt"
	"net/http"

	"yamdb/config"
	"yamdb/internal/api/auth"
	catalogapi "yamdb/internal/api/catalog"
	reviewsapi "yamdb/internal/api/reviews"
	usersapi "yamdb/internal/api/users"
	"yamdb/internal/api/validation"
	"yamdb/internal/app/http/middleware"
	"yamdb/internal/domain/access"
	"yamdb/internal/infra/tokens"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health probe and the versioned API on r.
func RegisterRoutes(r *gin.Engine) error {
	validation.Register()

	issuer, err := tokens.Default()
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}
	limiter := middleware.NewIPRateLimiter(config.AUTH_RATE_LIMIT, config.AUTH_RATE_BURST)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.SanitizeAndCleanInputMiddleware())

	public := api.Group("/auth")
	public.Use(middleware.RateLimit(limiter))
	public.POST("/signup", auth.Signup)
	public.POST("/token", auth.Token)
	public.POST("/token/refresh", auth.Refresh)

	authed := api.Group("/")
	authed.Use(middleware.Authenticate(issuer))

	// Catalog: reads are public, writes are for admins.
	catalog := authed.Group("/")
	catalog.Use(middleware.Require(access.SafeMethodAdminPermission{}))
	catalog.GET("/categories", catalogapi.ListCategories)
	catalog.POST("/categories", catalogapi.CreateCategory)
	catalog.DELETE("/categories/:slug", catalogapi.DeleteCategory)

	catalog.GET("/genres", catalogapi.ListGenres)
	catalog.POST("/genres", catalogapi.CreateGenre)
	catalog.DELETE("/genres/:slug", catalogapi.DeleteGenre)

	catalog.GET("/titles", catalogapi.ListTitles)
	catalog.POST("/titles", catalogapi.CreateTitle)
	catalog.GET("/titles/:title_id", catalogapi.GetTitle)
	catalog.PATCH("/titles/:title_id", catalogapi.UpdateTitle)
	catalog.DELETE("/titles/:title_id", catalogapi.DeleteTitle)

	// Reviews and comments: authors edit their own, moderators and admins edit any.
	feedback := authed.Group("/titles/:title_id/reviews")
	feedback.Use(middleware.Require(access.AdminOrAuthorOrReadOnly{}))
	feedback.GET("", reviewsapi.ListReviews)
	feedback.POST("", reviewsapi.CreateReview)
	feedback.GET("/:review_id", reviewsapi.GetReview)
	feedback.PATCH("/:review_id", reviewsapi.UpdateReview)
	feedback.DELETE("/:review_id", reviewsapi.DeleteReview)

	feedback.GET("/:review_id/comments", reviewsapi.ListComments)
	feedback.POST("/:review_id/comments", reviewsapi.CreateComment)
	feedback.GET("/:review_id/comments/:comment_id", reviewsapi.GetComment)
	feedback.PATCH("/:review_id/comments/:comment_id", reviewsapi.UpdateComment)
	feedback.DELETE("/:review_id/comments/:comment_id", reviewsapi.DeleteComment)

	me := authed.Group("/users/me")
	me.Use(middleware.RequireAuth())
	me.GET("", usersapi.GetCurrentUser)
	me.PATCH("", usersapi.UpdateCurrentUser)

	admin := authed.Group("/users")
	admin.Use(middleware.Require(access.AdminOnly{}))
	admin.GET("", usersapi.ListUsers)
	admin.POST("", usersapi.CreateUser)
	admin.GET("/:username", usersapi.GetUser)
	admin.PATCH("/:username", usersapi.UpdateUser)
	admin.DELETE("/:username", usersapi.DeleteUser)

	return nil
}
