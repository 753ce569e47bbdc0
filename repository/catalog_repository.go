package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
)

// ProductSummary is the catalog projection returned by list and lookup
// endpoints: the description is truncated in SQL to the requested length.
type ProductSummary struct {
	ProductID       int     `json:"product_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	DiscountedPrice float64 `json:"discounted_price"`
	Thumbnail       string  `json:"thumbnail"`
}

// ProductPage mirrors the legacy find-and-count result shape.
type ProductPage struct {
	Count int64            `json:"count"`
	Rows  []ProductSummary `json:"rows"`
}

// CategoryPage is the find-and-count shape for category listings.
type CategoryPage struct {
	Count int64             `json:"count"`
	Rows  []models.Category `json:"rows"`
}

// PageWindow carries the legacy pagination arithmetic: Offset is
// page×limit and Limit is the fetch window offset+limit.
type PageWindow struct {
	Offset            int
	Limit             int
	DescriptionLength int
}

// CatalogRepository exposes the read-only department/category/product
// queries.
type CatalogRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int) (*models.Department, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	ListCategoriesInDepartment(ctx context.Context, departmentID int) (*CategoryPage, error)
	ListProducts(ctx context.Context, window PageWindow) (*ProductPage, error)
	SearchProducts(ctx context.Context, queryString string, window PageWindow) (*ProductPage, error)
	ListProductsInCategory(ctx context.Context, categoryID int, window PageWindow) (*ProductPage, error)
	ListProductsInDepartment(ctx context.Context, departmentID int, window PageWindow) (*ProductPage, error)
	GetProductSummary(ctx context.Context, id int) (*ProductSummary, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("department_id").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *GormCatalogRepository) GetDepartment(ctx context.Context, id int) (*models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, "department_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("category_id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCatalogRepository) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCatalogRepository) ListCategoriesInDepartment(ctx context.Context, departmentID int) (*CategoryPage, error) {
	page := &CategoryPage{}
	query := r.db.WithContext(ctx).Model(&models.Category{}).Where("department_id = ?", departmentID)

	if err := query.Count(&page.Count).Error; err != nil {
		return nil, err
	}
	if err := query.Order("category_id").Find(&page.Rows).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// productSelect truncates the description server-side; the window limit
// is the legacy offset+limit fetch window, not the page size.
func (r *GormCatalogRepository) productSelect(ctx context.Context, window PageWindow) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("product_id, name, price, SUBSTRING(description, 1, ?) AS description, discounted_price, thumbnail",
			window.DescriptionLength).
		Order("product_id").
		Offset(window.Offset).
		Limit(window.Limit)
}

func (r *GormCatalogRepository) ListProducts(ctx context.Context, window PageWindow) (*ProductPage, error) {
	page := &ProductPage{}

	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&page.Count).Error; err != nil {
		return nil, err
	}
	if err := r.productSelect(ctx, window).Find(&page.Rows).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *GormCatalogRepository) SearchProducts(ctx context.Context, queryString string, window PageWindow) (*ProductPage, error) {
	page := &ProductPage{}
	pattern := "%" + queryString + "%"

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("description LIKE ? OR name LIKE ?", pattern, pattern).
		Count(&page.Count).Error; err != nil {
		return nil, err
	}
	if err := r.productSelect(ctx, window).
		Where("description LIKE ? OR name LIKE ?", pattern, pattern).
		Find(&page.Rows).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *GormCatalogRepository) ListProductsInCategory(ctx context.Context, categoryID int, window PageWindow) (*ProductPage, error) {
	page := &ProductPage{}
	join := "JOIN product_category ON product_category.product_id = product.product_id"

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins(join).
		Where("product_category.category_id = ?", categoryID).
		Count(&page.Count).Error; err != nil {
		return nil, err
	}
	if err := r.productSelect(ctx, window).
		Joins(join).
		Where("product_category.category_id = ?", categoryID).
		Find(&page.Rows).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *GormCatalogRepository) ListProductsInDepartment(ctx context.Context, departmentID int, window PageWindow) (*ProductPage, error) {
	page := &ProductPage{}
	join := "JOIN product_category ON product_category.product_id = product.product_id " +
		"JOIN category ON category.category_id = product_category.category_id"

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins(join).
		Where("category.department_id = ?", departmentID).
		Count(&page.Count).Error; err != nil {
		return nil, err
	}
	if err := r.productSelect(ctx, window).
		Joins(join).
		Where("category.department_id = ?", departmentID).
		Find(&page.Rows).Error; err != nil {
		return nil, err
	}
	return page, nil
}

func (r *GormCatalogRepository) GetProductSummary(ctx context.Context, id int) (*ProductSummary, error) {
	var summary ProductSummary
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("product_id, name, price, SUBSTRING(description, 1, 200) AS description, discounted_price, thumbnail").
		Where("product_id = ?", id).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
