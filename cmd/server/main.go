package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chatbot/internal/config"
	"chatbot/internal/handler"
	"chatbot/internal/logger"
	"chatbot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	zapLogger.Info("catalog chatbot starting",
		zap.String("version", Version),
		zap.String("buildTime", BuildTime),
		zap.String("gitCommit", GitCommit))

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize completion client
	groqClient := service.NewGroqClient(&cfg.Groq, zapLogger)
	if cfg.Groq.Enabled {
		zapLogger.Info("completion client initialized",
			zap.String("apiBase", cfg.Groq.APIBase),
			zap.String("model", cfg.Groq.Model))
	} else {
		zapLogger.Warn("GROQ_API_KEY not set - intent extraction will use the local parser only and chat replies will fail")
	}

	// Initialize services
	catalogClient := service.NewCatalogClient(&cfg.Catalog, zapLogger)
	intentExtractor := service.NewIntentExtractor(groqClient, cfg.Groq.IntentMaxTokens, zapLogger)
	responseComposer := service.NewResponseComposer(catalogClient, groqClient, cfg.Groq.ReplyTemperature, zapLogger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(catalogClient)
	chatHandler := handler.NewChatHandler(intentExtractor, responseComposer)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(corsConfigFor(&cfg.Server)))

	// Root and health endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "catalog chatbot is running"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "catalog-chatbot",
			"version": Version,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.GET("/products/", productHandler.List)
		api.POST("/chat/", chatHandler.Chat)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server stopped")
}

// corsConfigFor builds the CORS middleware config from the comma-separated
// env-sourced lists
func corsConfigFor(cfg *config.ServerConfig) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.AllowedOrigins}
	corsConfig.AllowMethods = splitList(cfg.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.AllowedHeaders)
	return corsConfig
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
