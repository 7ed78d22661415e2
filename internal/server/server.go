package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/api"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/service"
)

// Server wires the HTTP router, services, and database together.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	cfg    *config.Config
}

// New builds the router and all handlers. redisClient and s3 may be nil;
// rate limiting and image uploads are disabled respectively.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3 *config.S3Config) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	profileService := service.NewProfileService(db)

	var imageService *service.ImageService
	if s3 != nil {
		imageService = service.NewImageService(s3)
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRecipeMutationRateLimiter(redisClient)
	}

	api.NewHealthHandler(db, redisClient).RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, authService, imageService, limiter).RegisterRoutes(v1)
	api.NewProfileHandler(profileService, imageService, authService).RegisterRoutes(v1)

	return &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
