package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/plantstore/backend/internal/application/catalog"
	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/infrastructure/event"
	"github.com/plantstore/backend/internal/infrastructure/persistence"
	"github.com/plantstore/backend/internal/interfaces/http/dto"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

func newCategoryTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Category{}, &catalog.Product{}))

	bus := event.NewInMemoryEventBus(zap.NewNop())
	service := catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db), bus)
	h := NewCategoryHandler(service)

	engine := gin.New()
	engine.Use(middleware.Locale())
	engine.GET("/categories", h.List)
	engine.GET("/categories/:id", h.Get)
	engine.POST("/categories", h.Create)
	engine.PUT("/categories/:id", h.Update)
	engine.DELETE("/categories/:id", h.Delete)
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCategoryEndpoints(t *testing.T) {
	engine := newCategoryTestRouter(t)

	var createdID string

	t.Run("create", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/categories", gin.H{
			"name":        "Succulents",
			"description": "Drought tolerant plants",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		require.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		createdID = data["id"].(string)
		assert.Equal(t, "Succulents", data["name"])
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/categories", gin.H{"name": "Succulents"})
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/categories", gin.H{"description": "nameless"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/categories/"+createdID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Succulents", data["name"])
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/categories/00000000-0000-0000-0000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get malformed id is 400", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/categories/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list with meta", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/categories?page=1&page_size=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(engine, http.MethodPut, "/categories/"+createdID, gin.H{
			"name": "Cacti & Succulents",
		})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Cacti & Succulents", data["name"])
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(engine, http.MethodDelete, "/categories/"+createdID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(engine, http.MethodGet, "/categories/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategoryErrorLocalization(t *testing.T) {
	engine := newCategoryTestRouter(t)
	missingID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

	t.Run("default locale", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/categories/"+missingID, nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Resource not found", resp.Error.Message)
	})

	t.Run("persian locale", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/categories/"+missingID, nil)
		req.Header.Set("Accept-Language", "fa")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "موردی یافت نشد", resp.Error.Message)
	})
}
