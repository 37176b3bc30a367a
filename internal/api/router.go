package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-ingest/internal/api/handlers/health"
	importerHandler "recipe-ingest/internal/api/handlers/importer"
	photoHandler "recipe-ingest/internal/api/handlers/photo"
	recipeHandler "recipe-ingest/internal/api/handlers/recipe"
	"recipe-ingest/internal/api/middleware"
	"recipe-ingest/internal/core/ai/cache"
	"recipe-ingest/internal/core/ai/image"
	"recipe-ingest/internal/core/ai/openrouter"
	"recipe-ingest/internal/core/ai/service"
	"recipe-ingest/internal/core/ocr"
	"recipe-ingest/internal/core/photo"
	"recipe-ingest/internal/core/pipeline"
	"recipe-ingest/internal/core/scrape"
	"recipe-ingest/internal/core/store"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 匯入流程含 AI 呼叫，整體超時要比單次模型呼叫寬
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)，圖片以 base64 傳入
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, recipeStore *store.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 初始化 AI 提供者與服務
	provider := openrouter.NewClient(cfg)
	aiService, err := service.NewService(cfg, provider, cacheManager)
	if err != nil {
		common.LogError("Failed to initialize AI service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	// 圖片前處理、OCR、網頁擷取、圖片搜尋
	imageProcessor := image.NewProcessor(cfg.Image.MaxSizeBytes)
	ocrService := ocr.NewService(cfg, provider, imageProcessor)
	scrapeService := scrape.NewService(cfg)
	photoService := photo.NewService(cfg)

	// 匯入管線
	importPipeline := pipeline.NewImporter(cfg, aiService, ocrService, scrapeService)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 全局中間件：請求超時與服務注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("ai_service", aiService)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		importHandlerInstance := importerHandler.NewHandler(importPipeline)
		recipeHandlerInstance := recipeHandler.NewHandler(recipeStore)
		photoHandlerInstance := photoHandler.NewHandler(photoService, recipeStore)

		// 匯入路由：四種來源
		importGroup := api.Group("/import")
		{
			importGroup.POST("/text", importHandlerInstance.HandleImportText)
			importGroup.POST("/generate", importHandlerInstance.HandleGenerate)
			importGroup.POST("/ocr", importHandlerInstance.HandleImportImage)
			importGroup.POST("/url", importHandlerInstance.HandleImportURL)
		}

		// 食譜路由：合併、套用、驗證、存取
		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/merge", recipeHandlerInstance.HandleMerge)
			recipeGroup.POST("/apply", recipeHandlerInstance.HandleApply)
			recipeGroup.POST("/validate", recipeHandlerInstance.HandleValidate)
			recipeGroup.POST("/save", recipeHandlerInstance.HandleSave)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGet)
		}

		// 圖片搜尋路由
		photoGroup := api.Group("/photo")
		{
			photoGroup.GET("/search", photoHandlerInstance.HandleSearch)
			photoGroup.POST("/attach", photoHandlerInstance.HandleAttach)
		}
	}

	common.LogInfo("Router setup completed",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
