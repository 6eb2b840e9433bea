package router

import (
	"lirivelle/internal/handlers"
	"lirivelle/internal/middleware"
	"lirivelle/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the routes need, built once in main.
type Deps struct {
	DB           *gorm.DB
	Comments     *services.CommentService
	Contents     *services.ContentService
	SessionStore sessions.Store
	SessionName  string
	AdminToken   string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Handlers
	commentHandler := handlers.NewCommentHandler(deps.Comments)
	contentHandler := handlers.NewContentHandler(deps.Contents)
	sessionHandler := handlers.NewSessionHandler()
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.GET("/healthz", healthHandler.Check)

	// Routes below know the visitor through the session cookie
	api := r.Group("/")
	api.Use(sessions.Sessions(deps.SessionName, deps.SessionStore), middleware.ClientState())
	{
		api.GET("/comments", commentHandler.GetThread)
		api.POST("/comments", commentHandler.PostComment)
		api.DELETE("/comments", commentHandler.DeleteComment)

		api.GET("/session", sessionHandler.Show)
		api.PUT("/session/author", sessionHandler.RememberAuthor)
	}

	// Public content browsing
	r.GET("/contents", contentHandler.List)
	r.GET("/contents/:id", contentHandler.Detail)
	r.GET("/search", contentHandler.Search)
	r.GET("/categories", contentHandler.Categories)

	// Content management
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired(deps.AdminToken))
	{
		admin.POST("/contents", contentHandler.Create)
		admin.PATCH("/contents/:id", contentHandler.Update)
		admin.DELETE("/contents/:id", contentHandler.Delete)
	}
}
