package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tksilicon/tshirtshop/errors"
	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
	"github.com/tksilicon/tshirtshop/utils"
)

// CatalogAPI is the slice of the catalog repository the product
// controller uses.
type CatalogAPI interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int) (*models.Department, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	ListCategoriesInDepartment(ctx context.Context, departmentID int) (*repository.CategoryPage, error)
	ListProducts(ctx context.Context, window repository.PageWindow) (*repository.ProductPage, error)
	SearchProducts(ctx context.Context, queryString string, window repository.PageWindow) (*repository.ProductPage, error)
	ListProductsInCategory(ctx context.Context, categoryID int, window repository.PageWindow) (*repository.ProductPage, error)
	ListProductsInDepartment(ctx context.Context, departmentID int, window repository.PageWindow) (*repository.ProductPage, error)
	GetProductSummary(ctx context.Context, id int) (*repository.ProductSummary, error)
}

type ProductController struct {
	catalog CatalogAPI
	logger  *zap.Logger
}

func NewProductController(catalog CatalogAPI, logger *zap.Logger) *ProductController {
	return &ProductController{catalog: catalog, logger: logger}
}

// paginationMeta mirrors the legacy pagination envelope. currentPage and
// currentPageSize echo the normalized raw query values; totalPages keeps
// the legacy window/limit arithmetic.
type paginationMeta struct {
	CurrentPage     string `json:"currentPage"`
	CurrentPageSize string `json:"currentPageSize"`
	TotalPages      int    `json:"totalPages"`
	TotalRecords    int64  `json:"totalRecords"`
}

// pageWindow derives the legacy fetch window from the query: offset is
// page*limit and the fetch limit is offset+limit.
func pageWindow(c *gin.Context) (page, limit string, window repository.PageWindow) {
	page = utils.Page(c.Query("page"))
	limit = utils.Limit(c.Query("limit"))
	descriptionLength := utils.DescriptionLength(c.Query("description_length"))

	p := utils.Atoi(page)
	l := utils.Atoi(limit)
	offset := p * l

	window = repository.PageWindow{
		Offset:            offset,
		Limit:             offset + l,
		DescriptionLength: utils.Atoi(descriptionLength),
	}
	return page, limit, window
}

func meta(page, limit string, window repository.PageWindow, totalRecords int64) paginationMeta {
	l := utils.Atoi(limit)
	totalPages := 0
	if l > 0 {
		totalPages = window.Limit / l
	}
	return paginationMeta{
		CurrentPage:     page,
		CurrentPageSize: limit,
		TotalPages:      totalPages,
		TotalRecords:    totalRecords,
	}
}

// GetAllProducts returns a paginated product listing.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	page, limit, window := pageWindow(c)

	products, err := pc.catalog.ListProducts(c.Request.Context(), window)
	if err != nil {
		pc.logger.Error("listing products failed", zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeProductsList, errors.ErrorOccurred, "products", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paginationMeta": meta(page, limit, window, products.Count),
		"rows":           gin.H{"products": products},
	})
}

// SearchProducts returns products matching the query string in name or
// description.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	queryString := c.Query("query_string")
	allWords := c.Query("all_words")
	if queryString == "" || allWords == "" {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeSearchParams, "Check that query params are not empty", "query_string/allwords", http.StatusBadRequest))
		return
	}

	page, limit, window := pageWindow(c)

	products, err := pc.catalog.SearchProducts(c.Request.Context(), queryString, window)
	if err != nil {
		pc.logger.Error("product search failed", zap.String("query", queryString), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeProductsList, errors.ErrorOccurred, "products", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paginationMeta": meta(page, limit, window, products.Count),
		"rows":           gin.H{"products": products},
	})
}

// GetProductsByCategory returns the products attached to a category.
func (pc *ProductController) GetProductsByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeCategoryParam, "Check that category_id is numeric", "category_id", http.StatusBadRequest))
		return
	}

	page, limit, window := pageWindow(c)

	products, err := pc.catalog.ListProductsInCategory(c.Request.Context(), categoryID, window)
	if err != nil {
		pc.logger.Error("listing products by category failed", zap.Int("category_id", categoryID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New("API_02", errors.ErrorOccurred, "products", http.StatusBadRequest))
		return
	}

	// This family of endpoints wraps the meta under "params", not
	// "paginationMeta".
	c.JSON(http.StatusOK, gin.H{
		"params": meta(page, limit, window, products.Count),
		"rows":   gin.H{"products": products},
	})
}

// GetProductsByDepartment returns the products in a department.
func (pc *ProductController) GetProductsByDepartment(c *gin.Context) {
	departmentID, err := strconv.Atoi(c.Param("department_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeDepartmentNum, "Check that department_id is numeric", "department_id", http.StatusBadRequest))
		return
	}

	page, limit, window := pageWindow(c)

	products, err := pc.catalog.ListProductsInDepartment(c.Request.Context(), departmentID, window)
	if err != nil {
		pc.logger.Error("listing products by department failed", zap.Int("department_id", departmentID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New("API_03", errors.ErrorOccurred, "products", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"params": meta(page, limit, window, products.Count),
		"rows":   gin.H{"products": products},
	})
}

// GetProduct returns a single product with its description truncated to
// 200 characters.
func (pc *ProductController) GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeProductNum, "Check that product_id is numeric", "product_id", http.StatusBadRequest))
		return
	}

	product, err := pc.catalog.GetProductSummary(c.Request.Context(), productID)
	if err != nil {
		errors.Respond(c, http.StatusNotFound,
			errors.New(errors.CodeProductMiss, fmt.Sprintf("Product with id %d does not exist", productID), "product_id", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetAllDepartments returns every department in insertion order.
func (pc *ProductController) GetAllDepartments(c *gin.Context) {
	departments, err := pc.catalog.ListDepartments(c.Request.Context())
	if err != nil {
		pc.logger.Error("listing departments failed", zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeDeptGeneric, errors.ErrorOccurred, "departments", http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, departments)
}

// GetDepartment returns a single department.
func (pc *ProductController) GetDepartment(c *gin.Context) {
	departmentID, err := strconv.Atoi(c.Param("department_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeDeptNotNumber, "The ID is not a number", "department_id", http.StatusBadRequest))
		return
	}

	department, err := pc.catalog.GetDepartment(c.Request.Context(), departmentID)
	if err != nil {
		errors.Respond(c, http.StatusNotFound,
			errors.New(errors.CodeDeptNotFound, fmt.Sprintf("Department with id %d does not exist", departmentID), "department_id", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, department)
}

// GetAllCategories returns every category.
func (pc *ProductController) GetAllCategories(c *gin.Context) {
	categories, err := pc.catalog.ListCategories(c.Request.Context())
	if err != nil {
		pc.logger.Error("listing categories failed", zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCatGeneric, errors.ErrorOccurred, "categories", http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetSingleCategory returns one category.
func (pc *ProductController) GetSingleCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeCatNotFound, "The category_id is not a number", "category_id", http.StatusBadRequest))
		return
	}

	category, err := pc.catalog.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		errors.Respond(c, http.StatusNotFound,
			errors.New(errors.CodeCatNotFound, fmt.Sprintf("Category with id %d does not exist", categoryID), "category_id", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetDepartmentCategories lists the categories of a department.
func (pc *ProductController) GetDepartmentCategories(c *gin.Context) {
	departmentID, err := strconv.Atoi(c.Param("department_id"))
	if err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeDeptGeneric, "Check that department_id is numeric", "department_id", http.StatusBadRequest))
		return
	}

	categories, err := pc.catalog.ListCategoriesInDepartment(c.Request.Context(), departmentID)
	if err != nil {
		pc.logger.Error("listing department categories failed", zap.Int("department_id", departmentID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeDeptGeneric, errors.ErrorOccurred, "departments", http.StatusBadRequest))
		return
	}

	// Legacy response keeps the department key even though the rows are
	// categories.
	c.JSON(http.StatusOK, gin.H{
		"rows": gin.H{"departments": categories},
	})
}
