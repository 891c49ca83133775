package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/CampusGuide/internal/handler/http"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/middleware"
	redisclient "github.com/mikiasgoitom/CampusGuide/internal/infrastructure/cache"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/config"
	database "github.com/mikiasgoitom/CampusGuide/internal/infrastructure/database"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/logger"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/metrics"
	passwordservice "github.com/mikiasgoitom/CampusGuide/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/CampusGuide/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/store"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/CampusGuide/internal/infrastructure/validator"
	"github.com/mikiasgoitom/CampusGuide/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(appConfig.IsProduction())
	defer func() { _ = appLogger.Sync() }()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()
	db := mongoClient.Database(appConfig.MongoDBName)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndexes()
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}
	cancelIndexes()

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(db.Collection(mongodb.UsersCollection))
	placeRepo := mongodb.NewPlaceRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher(0)
	jwtManager := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.GetAccessTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	var notifier contract.INotifier
	switch {
	case !appConfig.SendEmails:
		appLogger.Warnf("SEND_EMAILS=false; notifications are logged, not delivered")
		notifier = external_services.NewLogNotifier(appLogger)
	case appConfig.RabbitMQURL != "":
		publisher, err := external_services.NewRabbitPublisher(appConfig.RabbitMQURL, appConfig.RabbitMQEmailQueue)
		if err != nil {
			appLogger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifier = external_services.NewQueueNotifier(publisher)
	default:
		mailService := external_services.NewEmailService(appConfig.EmailHost, appConfig.EmailPort,
			appConfig.EmailUsername, appConfig.EmailAppPassword, appConfig.EmailFrom)
		notifier = external_services.NewMailNotifier(mailService)
	}

	// Dependency Injection: Usecases
	emailUsecase := usecase.NewEmailVerificationUseCase(userRepo, notifier, hasher, randomGenerator, appLogger, appConfig, appMetrics)
	userUsecase := usecase.NewUserUsecase(userRepo, emailUsecase, hasher, jwtService, notifier, appLogger, appConfig, appValidator, uuidGenerator, appMetrics)
	aggregator := usecase.NewRatingAggregator(reviewRepo, placeRepo, appLogger)
	placeUsecase := usecase.NewPlaceUseCase(placeRepo, userRepo, uuidGenerator, appLogger)
	reviewUsecase := usecase.NewReviewUseCase(reviewRepo, placeRepo, aggregator, uuidGenerator, appLogger, appMetrics)
	vehicleUsecase := usecase.NewVehicleUseCase(vehicleRepo, uuidGenerator, appLogger)
	adminUsecase := usecase.NewAdminUseCase(userRepo, placeRepo, reviewRepo, notifier, appLogger, appMetrics)

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(context.Background(), appConfig.RedisURL)
		if err != nil {
			appLogger.Warnf("Redis unavailable, running without place cache: %v", err)
		} else {
			defer redisclient.Close(rdb)
			placeCache := store.NewPlaceCacheStore(rdb)
			placeUsecase.SetPlaceCache(placeCache)
			aggregator.SetPlaceCache(placeCache)
		}
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userUsecase.EnsureSuperAdmin(seedCtx, appConfig.SuperAdminEmail, appConfig.SuperAdminPassword); err != nil {
		appLogger.Errorf("Failed to seed super admin: %v", err)
	}
	cancelSeed()

	// Setup API routes
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	appRouter := handlerHttp.NewRouter(handlerHttp.RouterDeps{
		UserUsecase:    userUsecase,
		EmailUsecase:   emailUsecase,
		PlaceUsecase:   placeUsecase,
		ReviewUsecase:  reviewUsecase,
		VehicleUsecase: vehicleUsecase,
		AdminUsecase:   adminUsecase,
		Limiter:        middleware.NewLimiter(appConfig.RateLimitPerSecond),
		Metrics:        appMetrics,
		Gatherer:       prometheus.DefaultGatherer,
		Health:         mongoClient,
	})
	appRouter.SetupRoutes(router)

	// Start the server
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	appLogger.Infof("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
