package http

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/animeshelf/library/internal/apperr"
	"github.com/animeshelf/library/internal/auth"
)

var registerTagNamesOnce sync.Once

// registerJSONTagNames makes validation errors report fields by their JSON
// names (images.jpg.image_url rather than Images.JPG.ImageURL).
func registerJSONTagNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	registerJSONTagNames()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(ErrorHandler())
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(CORSMiddleware())

	health := NewHealthController(cfg.Store, cfg.Driver, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Library endpoints; reads are public, writes need a bearer token
	libraryController := NewLibraryController(cfg.Library)
	requireBearer := auth.RequireBearer(cfg.AuthService)
	library := api.Group("/library")
	library.GET("/:uid", libraryController.GetAnimesByUserID)
	library.GET("/:uid/:title", libraryController.GetAnimesByTitle)
	library.POST("/:uid", requireBearer, libraryController.AddAnime)
	library.DELETE("/:uid/:aid", requireBearer, libraryController.DeleteAnime)

	// User endpoints
	users := api.Group("/users")
	if cfg.ClientLimiter != nil {
		users.Use(cfg.ClientLimiter.Middleware())
	}
	cfg.AuthController.RegisterRoutes(users)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Could not find this route.", Code: apperr.KindNotFound})
	})

	return router
}
