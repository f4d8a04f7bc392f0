package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"japan-address-api/docs"
	"japan-address-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	importSvc := new(MockImportService)
	importSvc.On("Status").Return(models.ImportStatus{})

	r := NewRouter(Handlers{
		Import:    NewImportHandler(importSvc, 1<<20),
		Addresses: NewAddressHandler(new(MockAddressService), 100),
		Stats:     NewStatsHandler(new(MockStatsService)),
	})

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{path: "/health", expectedStatus: http.StatusOK},
		{path: "/import/process", expectedStatus: http.StatusOK},
		{path: "/prefectures", expectedStatus: http.StatusOK},
		{path: "/metrics", expectedStatus: http.StatusOK},
		{path: "/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestNewRouter_SwaggerDocCoversRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	r := NewRouter(Handlers{
		Import:    NewImportHandler(new(MockImportService), 1<<20),
		Addresses: NewAddressHandler(new(MockAddressService), 100),
		Stats:     NewStatsHandler(new(MockStatsService)),
	})

	undocumented := map[string]bool{"/health": true, "/metrics": true, "/swagger/*any": true}
	param := regexp.MustCompile(`:(\w+)`)
	for _, route := range r.Routes() {
		if undocumented[route.Path] {
			continue
		}
		path := param.ReplaceAllString(route.Path, "{$1}")
		ops, ok := doc.Paths[path]
		require.True(t, ok, "no swagger path for %s", path)
		assert.Contains(t, ops, strings.ToLower(route.Method), "no swagger operation for %s %s", route.Method, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPrefectures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/prefectures", nil)

	Prefectures(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Regions, 8)
	assert.Len(t, body.Prefectures, 47)
	assert.Equal(t, models.Prefecture{Code: "01", Name: "北海道", Region: "北海道"}, body.Prefectures[0])
}
