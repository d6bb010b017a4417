package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type catalogUsecaser interface {
	GetProduct(ctx context.Context, id int64) (*domain.ProductSummary, error)
	ListProducts(ctx context.Context) ([]domain.ProductSummary, error)
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
	ListByCategory(ctx context.Context, category string) ([]domain.ProductSummary, error)
	CreateProduct(ctx context.Context, input repository.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input repository.CreateProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
}

type viewTracker interface {
	RecordView(ctx context.Context, email string, productID int64) error
}

type ProductHandler struct {
	catalog catalogUsecaser
	views   viewTracker
	logger  *slog.Logger
}

func NewProductHandler(catalog catalogUsecaser, views viewTracker, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		views:   views,
		logger:  logger.With("component", "product_handler"),
	}
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /search?q=masala+chai
func (h *ProductHandler) Search(c *gin.Context) {
	results, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errNoQuery})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "search products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, results)
}

// ListCategory returns a handler serving one fixed category page.
func (h *ProductHandler) ListCategory(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := h.catalog.ListByCategory(c.Request.Context(), category)
		if err != nil {
			h.logger.ErrorContext(c.Request.Context(), "list category", "category", category, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

type viewProductRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /view-product/:id
func (h *ProductHandler) RecordView(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	var req viewProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.views.RecordView(c.Request.Context(), req.Email, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "record view", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Product %d viewed successfully", id)})
}

type productRequest struct {
	Name          string  `json:"name"        binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"       binding:"required,gt=0"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

func (r productRequest) input() repository.CreateProductInput {
	return repository.CreateProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		StockQuantity: r.StockQuantity,
	}
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := h.catalog.CreateProduct(c.Request.Context(), req.input()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully"})
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.catalog.UpdateProduct(c.Request.Context(), id, req.input()); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "update product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
