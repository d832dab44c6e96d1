package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/tkaraca/menubook-backend/internal/config"
	"github.com/tkaraca/menubook-backend/internal/handler"
	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/database"
	"github.com/tkaraca/menubook-backend/pkg/email"
	jwtpkg "github.com/tkaraca/menubook-backend/pkg/jwt"
	"github.com/tkaraca/menubook-backend/pkg/logger"
	"github.com/tkaraca/menubook-backend/pkg/storage"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer zlog.Sync()

	db, err := database.New(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Storage backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case config.StorageS3:
		store, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			zlog.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
	default:
		store, err = storage.NewLocalStorage(cfg.UploadsDir)
		if err != nil {
			zlog.Fatal("failed to initialize local storage", zap.Error(err))
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Services
	tokens := jwtpkg.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
	mailer := email.NewEmailService(cfg.Email, zlog)
	authService := service.NewAuthService(userRepo, sessionRepo, tokens, mailer,
		cfg.SessionLifetime, cfg.CORSOrigin+"/reset-password")
	userService := service.NewUserService(userRepo, sessionRepo)
	menuService := service.NewMenuService(eventRepo, store)
	photoService := service.NewPhotoService(photoRepo, eventRepo, store, int64(cfg.MaxUploadBytes))

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	eventHandler := handler.NewEventHandler(menuService, validator)
	photoHandler := handler.NewPhotoHandler(photoService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	adminHandler := handler.NewAdminHandler(userService, validator)
	healthHandler := handler.NewHealthHandler(db)
	viewHandler := handler.NewViewHandler(menuService, photoService, authService,
		userService, validator, !cfg.IsDevelopment())

	auth := middleware.NewAuth(tokens, authService)

	engine := html.New("./web/views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    cfg.MaxUploadBytes,
		ErrorHandler: middleware.ErrorHandler(zlog, cfg.IsDevelopment()),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.AccessLog(zlog))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if cfg.StorageBackend == config.StorageLocal {
		app.Static("/uploads", cfg.UploadsDir)
	}

	// Health
	app.Get("/health", healthHandler.Health)
	app.Get("/health/db", healthHandler.HealthDB)

	// JSON API
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/logout", auth.Optional(), authHandler.Logout)

	// Public catalog reads
	api.Get("/events", eventHandler.ListEvents)
	api.Get("/events/year/:year", eventHandler.GetEventsByYear)
	api.Get("/stats", eventHandler.GetStats)
	api.Get("/events/:id", eventHandler.GetEvent)
	api.Get("/events/:id/photos", photoHandler.GetEventPhotos)

	// Authenticated
	profile := api.Group("/profile", auth.RequireAuth())
	profile.Get("/", userHandler.GetProfile)
	profile.Put("/", userHandler.UpdateProfile)
	profile.Post("/password", userHandler.ChangePassword)

	// Catalog writes are admin-only
	api.Post("/events", auth.RequireAuth(), auth.RequireAdmin(), eventHandler.CreateEvent)
	api.Put("/events/:id", auth.RequireAuth(), auth.RequireAdmin(), eventHandler.UpdateEvent)
	api.Delete("/events/:id", auth.RequireAuth(), auth.RequireAdmin(), eventHandler.DeleteEvent)
	api.Post("/events/:id/photos", auth.RequireAuth(), auth.RequireAdmin(), photoHandler.UploadPhoto)
	api.Put("/photos/:photoId", auth.RequireAuth(), auth.RequireAdmin(), photoHandler.UpdatePhoto)
	api.Delete("/photos/:photoId", auth.RequireAuth(), auth.RequireAdmin(), photoHandler.DeletePhoto)

	admin := api.Group("/admin", auth.RequireAuth(), auth.RequireAdmin())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	// Server-rendered views
	app.Get("/", auth.Optional(), viewHandler.Home)
	app.Get("/menus/:id", auth.Optional(), viewHandler.MenuDetail)
	app.Get("/login", auth.Optional(), viewHandler.LoginForm)
	app.Post("/login", viewHandler.Login)
	app.Get("/register", auth.Optional(), viewHandler.RegisterForm)
	app.Post("/register", viewHandler.Register)
	app.Post("/logout", auth.Optional(), viewHandler.Logout)
	app.Get("/admin", auth.RequireAuthView(), auth.RequireAdminView(), viewHandler.AdminDashboard)
	app.Get("/admin/users", auth.RequireAuthView(), auth.RequireAdminView(), viewHandler.AdminUsers)

	zlog.Info("starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := app.Listen(cfg.Addr()); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
