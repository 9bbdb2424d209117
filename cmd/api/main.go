package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sensordash/backend/docs"
	httphandlers "github.com/sensordash/backend/internal/handlers/http"
	"github.com/sensordash/backend/internal/handlers/middleware"
	"github.com/sensordash/backend/internal/handlers/ws"
	"github.com/sensordash/backend/internal/infrastructure/config"
	"github.com/sensordash/backend/internal/infrastructure/i18n"
	"github.com/sensordash/backend/internal/infrastructure/logging"
	"github.com/sensordash/backend/internal/infrastructure/persistence/mongodb"
	"github.com/sensordash/backend/internal/services"
)

//	@title			SensorDash API
//	@version		1.0
//	@description	API de leituras de sensores e gestão de usuários do dashboard.
//	@BasePath		/

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting sensordash backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao MongoDB. Falha de ping não derruba o processo:
	// as requisições degradam para erro de infraestrutura.
	client, err := mongodb.Connect(&cfg.Mongo, logger)
	if err != nil {
		logger.Error("failed to create mongodb client", "error", err)
		log.Fatal(err)
	}
	defer mongodb.Disconnect(client, logger)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	mongodb.EnsureUserIndexes(indexCtx, client, &cfg.Mongo, logger)
	cancelIndex()

	// Inicializar i18n (catálogos embutidos, pt-BR padrão)
	i18nService, err := i18n.NewService("pt-BR")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	db := client.Database(cfg.Mongo.Database)
	userRepo := mongodb.NewUserRepository(db, cfg.Mongo.UsersCollection)
	readingRepo := mongodb.NewReadingRepository(client, db, cfg.Mongo.ReadingsCollection)

	// Hub websocket para eventos da tabela de usuários
	hub := ws.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	// Inicializar services
	userService := services.NewUserService(userRepo, hub, logger)
	readingService := services.NewReadingService(readingRepo, logger)

	// Inicializar handlers
	userHandler := httphandlers.NewUserHandler(userService, logger)
	readingHandler := httphandlers.NewReadingHandler(
		readingService,
		cfg.Mongo.Database,
		cfg.Mongo.ReadingsCollection,
		logger,
	)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	router.Use(middleware.RequestID())

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/data", readingHandler.GetData)
		api.GET("/health", readingHandler.Health)
		api.GET("/test", readingHandler.Test)
		api.GET("/stats", readingHandler.Stats)

		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)

		api.POST("/login", userHandler.Login)

		api.GET("/ws", hub.Serve)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
