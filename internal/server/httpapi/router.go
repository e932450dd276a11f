// Package httpapi exposes the collection store over HTTP/JSON for the
// single-page client. All routes below /api except the auth ones require a
// bearer access token.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/dmitrijs2005/collectkeeper/internal/server/services"
	"github.com/dmitrijs2005/collectkeeper/internal/server/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by all route handlers.
type Handler struct {
	users  *services.UserService
	media  *services.MediaService
	stores *store.Manager
	logger logging.Logger
}

func NewHandler(users *services.UserService, media *services.MediaService, stores *store.Manager, logger logging.Logger) *Handler {
	return &Handler{users: users, media: media, stores: stores, logger: logger}
}

// NewRouter wires the gin engine: CORS for the SPA origin, recovery, request
// logging, and the API routes.
func NewRouter(h *Handler, allowedOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.POST("/refresh", h.Refresh)
	}

	protected := api.Group("")
	protected.Use(RequireAuth(h.users))
	{
		protected.POST("/auth/logout", h.Logout)

		protected.GET("/categories", h.ListCategories)
		protected.POST("/categories", h.CreateCategory)
		protected.PATCH("/categories/:id", h.UpdateCategory)
		protected.DELETE("/categories/:id", h.DeleteCategory)

		protected.GET("/items", h.ListItems)
		protected.GET("/items/:id", h.GetItem)
		protected.POST("/items", h.CreateItem)
		protected.PATCH("/items/:id", h.UpdateItem)
		protected.DELETE("/items/:id", h.DeleteItem)

		protected.GET("/wishlist", h.ListWishlist)
		protected.POST("/wishlist", h.CreateWishlistItem)
		protected.PATCH("/wishlist/:id", h.UpdateWishlistItem)
		protected.DELETE("/wishlist/:id", h.DeleteWishlistItem)

		protected.GET("/reports", h.ListReports)
		protected.POST("/reports", h.CreateReport)
		protected.DELETE("/reports/:id", h.DeleteReport)
		protected.POST("/reports/generate", h.GenerateReport)
		protected.GET("/reports/:id/result", h.ReportResult)
		protected.GET("/reports/:id/export", h.ExportReport)

		protected.POST("/media/upload-url", h.MediaUploadURL)
		protected.POST("/media/download-url", h.MediaDownloadURL)
	}

	return r
}
