package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hemantbam/Catalog-management/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRouter(t *testing.T, cfg *config.Config) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return New(cfg, db, nil, NewLimits(cfg, nil)), mock
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewLimits_MemoryWithoutRedis(t *testing.T) {
	limits := NewLimits(&config.Config{RateLimitPerMinute: 10}, nil)
	assert.Nil(t, limits.Breaker)
	assert.Same(t, limits.Memory, limits.Limiter)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	r, mock := testRouter(t, &config.Config{Env: "development", RateLimitPerMinute: 100})
	mock.ExpectPing()

	w := serve(r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `catalog_http_requests_total{method="GET",route="/health",status="200"} 1`)

	w = serve(r, http.MethodGet, "/swagger/doc.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/products/{id}/attributes/{attribute_id}")
}

func TestRouter_SwaggerHiddenInProduction(t *testing.T) {
	r, _ := testRouter(t, &config.Config{Env: "production", RateLimitPerMinute: 100})
	w := serve(r, http.MethodGet, "/swagger/doc.json")
	assert.Equal(t, http.StatusNotFound, w.Code)
	gin.SetMode(gin.TestMode)
}

func TestRouter_RateLimitsCatalogRoutes(t *testing.T) {
	r, _ := testRouter(t, &config.Config{Env: "development", RateLimitPerMinute: 1})

	// Malformed ids never reach the database.
	w := serve(r, http.MethodGet, "/categories/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/categories/not-a-uuid")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
