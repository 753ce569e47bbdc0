package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
)

type fakeCatalog struct {
	lastWindow      repository.PageWindow
	listProductsFn  func(ctx context.Context, window repository.PageWindow) (*repository.ProductPage, error)
	getDepartmentFn func(ctx context.Context, id int) (*models.Department, error)
	departments     []models.Department
	categories      []models.Category
}

func (f *fakeCatalog) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return f.departments, nil
}

func (f *fakeCatalog) GetDepartment(ctx context.Context, id int) (*models.Department, error) {
	if f.getDepartmentFn != nil {
		return f.getDepartmentFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return nil, errors.New("not found")
}

func (f *fakeCatalog) ListCategoriesInDepartment(ctx context.Context, departmentID int) (*repository.CategoryPage, error) {
	return &repository.CategoryPage{}, nil
}

func (f *fakeCatalog) ListProducts(ctx context.Context, window repository.PageWindow) (*repository.ProductPage, error) {
	f.lastWindow = window
	if f.listProductsFn != nil {
		return f.listProductsFn(ctx, window)
	}
	return &repository.ProductPage{}, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, queryString string, window repository.PageWindow) (*repository.ProductPage, error) {
	f.lastWindow = window
	return &repository.ProductPage{}, nil
}

func (f *fakeCatalog) ListProductsInCategory(ctx context.Context, categoryID int, window repository.PageWindow) (*repository.ProductPage, error) {
	f.lastWindow = window
	return &repository.ProductPage{}, nil
}

func (f *fakeCatalog) ListProductsInDepartment(ctx context.Context, departmentID int, window repository.PageWindow) (*repository.ProductPage, error) {
	f.lastWindow = window
	return &repository.ProductPage{}, nil
}

func (f *fakeCatalog) GetProductSummary(ctx context.Context, id int) (*repository.ProductSummary, error) {
	return nil, errors.New("not found")
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
		Status  int    `json:"status"`
	} `json:"error"`
}

func productRouter(catalog *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewProductController(catalog, zap.NewNop())
	router := gin.New()
	router.GET("/products", controller.GetAllProducts)
	router.GET("/products/search", controller.SearchProducts)
	router.GET("/products/:product_id", controller.GetProduct)
	router.GET("/departments", controller.GetAllDepartments)
	router.GET("/departments/:department_id", controller.GetDepartment)
	return router
}

func TestGetAllProductsWindowArithmetic(t *testing.T) {
	catalog := &fakeCatalog{}
	router := productRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/products?page=2&limit=10&description_length=120", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	// offset is page*limit and the fetch limit is offset+limit
	assert.Equal(t, 20, catalog.lastWindow.Offset)
	assert.Equal(t, 30, catalog.lastWindow.Limit)
	assert.Equal(t, 120, catalog.lastWindow.DescriptionLength)

	var body struct {
		PaginationMeta struct {
			CurrentPage     string `json:"currentPage"`
			CurrentPageSize string `json:"currentPageSize"`
			TotalPages      int    `json:"totalPages"`
		} `json:"paginationMeta"`
		Rows struct {
			Products json.RawMessage `json:"products"`
		} `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "2", body.PaginationMeta.CurrentPage)
	assert.Equal(t, "10", body.PaginationMeta.CurrentPageSize)
	assert.Equal(t, 3, body.PaginationMeta.TotalPages)
	assert.NotNil(t, body.Rows.Products)
}

func TestGetAllProductsDefaults(t *testing.T) {
	catalog := &fakeCatalog{}
	router := productRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 20, catalog.lastWindow.Offset)
	assert.Equal(t, 40, catalog.lastWindow.Limit)
	assert.Equal(t, 200, catalog.lastWindow.DescriptionLength)
}

func TestSearchProductsMissingParams(t *testing.T) {
	router := productRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/products/search?query_string=shirt", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body errorBody
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "PRO_01", body.Error.Code)
	// legacy quirk: the body status says 400 even under a 422 response
	assert.Equal(t, http.StatusBadRequest, body.Error.Status)
}

func TestGetProductNotNumeric(t *testing.T) {
	router := productRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body errorBody
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "PRO_04", body.Error.Code)
}

func TestGetProductMissing(t *testing.T) {
	router := productRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body errorBody
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "API_04", body.Error.Code)
	assert.Equal(t, "Product with id 999 does not exist", body.Error.Message)
}

func TestGetAllDepartmentsBareArray(t *testing.T) {
	catalog := &fakeCatalog{departments: []models.Department{
		{DepartmentID: 1, Name: "Regional"},
		{DepartmentID: 2, Name: "Nature"},
	}}
	router := productRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/departments", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var departments []models.Department
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &departments))
	assert.Len(t, departments, 2)
	assert.Equal(t, "Regional", departments[0].Name)
}

func TestGetDepartmentNotNumber(t *testing.T) {
	router := productRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/departments/xyz", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body errorBody
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "DEP_01", body.Error.Code)
	assert.Equal(t, "The ID is not a number", body.Error.Message)
}

func TestGetDepartmentMissing(t *testing.T) {
	router := productRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/departments/42", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body errorBody
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "DEP_02", body.Error.Code)
	assert.Equal(t, "Department with id 42 does not exist", body.Error.Message)
}
