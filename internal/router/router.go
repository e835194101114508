package router

import (
	_ "github.com/Hemantbam/Catalog-management/docs"
	"github.com/Hemantbam/Catalog-management/internal/config"
	"github.com/Hemantbam/Catalog-management/internal/handler"
	"github.com/Hemantbam/Catalog-management/internal/infra"
	"github.com/Hemantbam/Catalog-management/internal/middleware"
	"github.com/Hemantbam/Catalog-management/internal/repository"
	"github.com/Hemantbam/Catalog-management/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Limits bundles the request limiter with the pieces the composition root
// has to manage: the in-memory buckets need a purge loop, and the breaker
// (nil without Redis) is reported by /health.
type Limits struct {
	Limiter middleware.Limiter
	Memory  *middleware.MemoryLimiter
	Breaker *infra.CircuitBreaker
}

// NewLimits uses Redis for shared counters when a client is configured and
// falls back to per-process token buckets otherwise.
func NewLimits(cfg *config.Config, rdb *redis.Client) Limits {
	mem := middleware.NewMemoryLimiter(cfg.RateLimitPerMinute)
	if rdb == nil {
		return Limits{Limiter: mem, Memory: mem}
	}
	breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig("redis-rate-limit"))
	return Limits{
		Limiter: middleware.NewRedisLimiter(rdb, breaker, mem, cfg.RateLimitPerMinute),
		Memory:  mem,
		Breaker: breaker,
	}
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, limits Limits) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	metrics := middleware.NewMetrics()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(metrics.Handler())

	// ── Repositories ─────────────────────────────────────────────────────────
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	attributeRepo := repository.NewAttributeRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	attributeSvc := service.NewAttributeService(attributeRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	attributesH := handler.NewAttributesHandler(attributeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Operational endpoints are not rate limited.
	r.GET("/health", handler.Health(db, rdb, limits.Breaker))
	r.GET("/metrics", metrics.Expose())

	api := r.Group("", middleware.RateLimit(limits.Limiter))
	{
		categories := api.Group("/categories")
		{
			categories.POST("", categoriesH.AddCategory)
			categories.POST("/:id", categoriesH.AddSubCategory)
			categories.PUT("/:id", categoriesH.UpdateCategoryName)
			categories.DELETE("/:id", categoriesH.DeleteCategory)
			categories.GET("/:id", categoriesH.FetchSubtree)
		}

		products := api.Group("/products")
		{
			products.GET("", productsH.SearchProducts)
			products.POST("/:id", productsH.AddProduct)
			products.PUT("/:id", productsH.UpdateProduct)
			products.DELETE("/:id", productsH.DeleteProduct)

			products.POST("/:id/attributes", attributesH.AddAttribute)
			products.PUT("/:id/attributes/:attribute_id", attributesH.UpdateAttribute)
			products.DELETE("/:id/attributes/:attribute_id", attributesH.DeleteAttribute)
		}
	}

	// Swagger UI outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
