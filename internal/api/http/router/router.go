package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/api/http/handler"
	"github.com/ratehub/ratehub-server/internal/api/http/middleware"
	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
	"github.com/ratehub/ratehub-server/internal/service"
)

// Router wires handlers, middleware and route groups. Every protected
// group passes the token gate first and then its static allowed-role
// check before any handler runs.
type Router struct {
	authService  *service.Auth
	tokenService *service.TokenService
	ratingSvc    *service.Rating
	catalog      *service.Catalog
	adminService *service.Admin
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	ratingSvc *service.Rating,
	catalog *service.Catalog,
	adminService *service.Admin,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:  authService,
		tokenService: tokenService,
		ratingSvc:    ratingSvc,
		catalog:      catalog,
		adminService: adminService,
		logger:       logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.ratingSvc, r.catalog, r.authService, r.logger)
	ownerHandler := handler.NewStoreOwner(r.ratingSvc, r.logger)
	adminHandler := handler.NewAdmin(r.adminService, r.catalog, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle())

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	user := api.Group("/user", authenticate.Handle())
	{
		user.POST("/ratings", middleware.RequireRole(model.RoleUser), userHandler.SubmitRating)
		user.GET("/stores", middleware.RequireRole(model.RoleUser, model.RoleStoreOwner), userHandler.ListStores)
		user.GET("/stores/:id", middleware.RequireRole(model.RoleUser, model.RoleStoreOwner), userHandler.GetStore)
		user.PUT("/update-password", userHandler.UpdatePassword)
	}

	owner := api.Group("/store-owner", authenticate.Handle(), middleware.RequireRole(model.RoleStoreOwner))
	{
		owner.GET("/ratings", ownerHandler.ListRatings)
		owner.GET("/average-rating", ownerHandler.AverageRating)
	}

	admin := api.Group("/admin", authenticate.Handle(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.POST("/users", adminHandler.CreateUser)
		admin.POST("/stores", adminHandler.CreateStore)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/stores", adminHandler.ListStores)
		admin.GET("/users/:id", adminHandler.GetUser)
	}

	return engine
}
