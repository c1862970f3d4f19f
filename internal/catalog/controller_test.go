package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Errors struct {
		Code string `json:"code"`
	} `json:"errors"`
}

func setupCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupCatalogRoutes(r.Group("/api/v1"), NewController(Default()))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestListBooths_FilterByCategory(t *testing.T) {
	r := setupCatalogRouter()

	want := 0
	for _, b := range Default().All() {
		if b.Category == CategoryCraft {
			want++
		}
	}

	w, body := doGet(t, r, "/api/v1/booths?category=craft")
	require.Equal(t, http.StatusOK, w.Code)

	var list BoothListResponse
	require.NoError(t, json.Unmarshal(body.Data, &list))
	assert.Equal(t, want, list.Total)
	assert.Len(t, list.Booths, want)
	for _, b := range list.Booths {
		assert.Equal(t, CategoryCraft, b.Category)
	}
}

func TestGetBooth(t *testing.T) {
	r := setupCatalogRouter()

	w, body := doGet(t, r, "/api/v1/booths/17")
	require.Equal(t, http.StatusOK, w.Code)

	var b BoothResponse
	require.NoError(t, json.Unmarshal(body.Data, &b))
	assert.Equal(t, 17, b.ID)
	assert.Equal(t, CategoryCraft, b.Category)
	assert.True(t, decimal.NewFromInt(350).Equal(b.Price))
}

func TestGetBooth_Errors(t *testing.T) {
	r := setupCatalogRouter()

	w, body := doGet(t, r, "/api/v1/booths/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOOTH_NOT_FOUND", body.Errors.Code)

	w, body = doGet(t, r, "/api/v1/booths/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Errors.Code)
}
