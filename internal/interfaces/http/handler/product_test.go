package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/gasflow/backend/internal/application/catalog"
	"github.com/gasflow/backend/internal/domain/catalog"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func setupProductRouter(repo *MockProductRepository) *gin.Engine {
	h := NewProductHandler(catalogapp.NewProductService(repo))

	router := gin.New()
	router.POST("/products", h.Create)
	router.GET("/products", h.List)
	router.GET("/products/:id", h.GetByID)
	router.PUT("/products/:id/price", h.UpdatePrice)
	router.PUT("/products/:id/active", h.SetActive)
	return router
}

func TestProductHandler_Create(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	router := setupProductRouter(repo)

	body, _ := json.Marshal(map[string]any{
		"name":          "Commercial 19kg",
		"category_name": "Commercial",
		"is_commercial": true,
		"selling_price": "1450.00",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp APIResponse[catalogapp.ProductResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Commercial 19kg", resp.Data.Name)
	assert.True(t, resp.Data.IsCommercial)
	assert.True(t, resp.Data.IsActive)
	repo.AssertExpectations(t)
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	router := setupProductRouter(new(MockProductRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/products", bytes.NewReader([]byte(`{"category_name":"Domestic"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List(t *testing.T) {
	p1, err := catalog.NewProduct("Domestic 14kg", "Domestic", false, decimal.NewFromInt(1100))
	require.NoError(t, err)
	p2, err := catalog.NewProduct("Commercial 19kg", "Commercial", true, decimal.NewFromInt(1450))
	require.NoError(t, err)

	repo := new(MockProductRepository)
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]catalog.Product{*p1, *p2}, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products?page=1&page_size=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[[]catalogapp.ProductResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestProductHandler_GetByID_InvalidID(t *testing.T) {
	router := setupProductRouter(new(MockProductRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestProductHandler_UpdatePrice(t *testing.T) {
	p, err := catalog.NewProduct("Domestic 14kg", "Domestic", false, decimal.NewFromInt(1100))
	require.NoError(t, err)

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)
	router := setupProductRouter(repo)

	body := []byte(`{"selling_price":"1200.00"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/products/"+p.ID.String()+"/price", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse[catalogapp.ProductResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.SellingPrice.Equal(decimal.NewFromInt(1200)))
}

func TestProductHandler_UpdatePrice_Negative(t *testing.T) {
	repo := new(MockProductRepository)
	router := setupProductRouter(repo)

	body := []byte(`{"selling_price":"-5.00"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/products/"+uuid.NewString()+"/price", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Aggregate validation codes map to 400
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_SetActive(t *testing.T) {
	p, err := catalog.NewProduct("Domestic 14kg", "Domestic", false, decimal.NewFromInt(1100))
	require.NoError(t, err)

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)
	router := setupProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/products/"+p.ID.String()+"/active", bytes.NewReader([]byte(`{"active":false}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, p.IsActive)
}
