package http

import (
	"context"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps are the collaborators the HTTP layer is built from.
type RouterDeps struct {
	UserUsecase    usecasecontract.IUserUseCase
	EmailUsecase   usecasecontract.IEmailVerificationUC
	PlaceUsecase   usecasecontract.IPlaceUseCase
	ReviewUsecase  usecasecontract.IReviewUseCase
	VehicleUsecase usecasecontract.IVehicleUseCase
	AdminUsecase   usecasecontract.IAdminUseCase

	// Optional.
	Limiter  *limiter.Limiter
	Metrics  middleware.HTTPObserver
	Gatherer prometheus.Gatherer
	Health   HealthChecker
}

type Router struct {
	userHandler    *UserHandler
	emailHandler   *EmailHandler
	placeHandler   *PlaceHandler
	reviewHandler  *ReviewHandler
	vehicleHandler *VehicleHandler
	adminHandler   *AdminHandler
	userUsecase    usecasecontract.IUserUseCase
	deps           RouterDeps
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		userHandler:    NewUserHandler(deps.UserUsecase),
		emailHandler:   NewEmailHandler(deps.EmailUsecase),
		placeHandler:   NewPlaceHandler(deps.PlaceUsecase, deps.ReviewUsecase),
		reviewHandler:  NewReviewHandler(deps.ReviewUsecase),
		vehicleHandler: NewVehicleHandler(deps.VehicleUsecase),
		adminHandler:   NewAdminHandler(deps.AdminUsecase, deps.ReviewUsecase),
		userUsecase:    deps.UserUsecase,
		deps:           deps,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if r.deps.Metrics != nil {
		router.Use(middleware.Metrics(r.deps.Metrics))
	}
	if r.deps.Limiter != nil {
		router.Use(middleware.RateLimiter(r.deps.Limiter))
	}

	gatherer := r.deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/health", r.health)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.GET("/verify-email/:token", r.emailHandler.HandleVerifyEmailToken)
		auth.POST("/resend-verification", r.emailHandler.HandleResendVerification)
	}

	v1.GET("/places", r.placeHandler.ListPlaces)
	v1.GET("/places/:id", r.placeHandler.GetPlace)
	v1.GET("/places/:id/reviews", r.placeHandler.ListPlaceReviews)
	v1.GET("/vehicles", r.vehicleHandler.ListVehicles)
	v1.GET("/vehicles/:id", r.vehicleHandler.GetVehicle)

	// Protected routes (authentication required)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleWare(r.userUsecase))
	{
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.GET("/me/reviews", r.reviewHandler.ListMyReviews)

		protected.POST("/places", r.placeHandler.CreatePlace)
		protected.PUT("/places/:id", r.placeHandler.UpdatePlace)
		protected.DELETE("/places/:id", r.placeHandler.DeletePlace)

		protected.POST("/vehicles", r.vehicleHandler.CreateVehicle)
		protected.PUT("/vehicles/:id", r.vehicleHandler.UpdateVehicle)
		protected.DELETE("/vehicles/:id", r.vehicleHandler.DeleteVehicle)

		protected.POST("/reviews", r.reviewHandler.CreateReview)
		protected.POST("/reviews/:id/flag", r.reviewHandler.FlagReview)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(entity.UserRoleAdmin, entity.UserRoleSuperAdmin))
	{
		admin.PUT("/students/:id/verify", r.adminHandler.VerifyAccount(entity.AccountKindStudent))
		admin.PUT("/businesses/:id/verify", r.adminHandler.VerifyAccount(entity.AccountKindBusiness))
		admin.GET("/students/pending", r.adminHandler.ListPending(entity.AccountKindStudent))
		admin.GET("/businesses/pending", r.adminHandler.ListPending(entity.AccountKindBusiness))

		admin.PUT("/reviews/:id/moderate", r.adminHandler.ModerateReview)
		admin.GET("/reviews/flagged", r.adminHandler.ListFlaggedReviews)

		admin.GET("/stats", r.adminHandler.GetStats)
		admin.GET("/users/:id", r.userHandler.GetUser)
		admin.PUT("/users/:id/role", middleware.RequireRoles(entity.UserRoleSuperAdmin), r.adminHandler.SetUserRole)
	}
}

func (r *Router) health(c *gin.Context) {
	if r.deps.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := r.deps.Health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
