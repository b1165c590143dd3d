package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/models"
	"storefront/repository"
)

// ProductController handles product-related requests
type ProductController struct {
	Products repository.ProductRepository
}

// NewProductController creates a new ProductController
func NewProductController(products repository.ProductRepository) *ProductController {
	return &ProductController{Products: products}
}

// GetProducts lists the catalog, optionally by ?category= and ?featured=true
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProductFilter{
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
	}
	products, err := pc.Products.List(r.Context(), filter)
	if err != nil {
		zap.L().Error("list products failed", zap.Error(err))
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by document id
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := pc.Products.Get(r.Context(), mux.Vars(r)["documentId"])
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.L().Error("get product failed", zap.Error(err))
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	product.DocumentID = ""
	if err := pc.Products.Create(r.Context(), &product); err != nil {
		zap.L().Error("create product failed", zap.Error(err))
		http.Error(w, "Error creating product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	documentID := mux.Vars(r)["documentId"]
	err := pc.Products.Update(r.Context(), documentID, product)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.L().Error("update product failed", zap.Error(err))
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}
	product.DocumentID = documentID
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := pc.Products.Delete(r.Context(), mux.Vars(r)["documentId"])
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		zap.L().Error("delete product failed", zap.Error(err))
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return product, false
	}
	if product.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return product, false
	}
	if product.Price < 0 {
		http.Error(w, "Price cannot be negative", http.StatusBadRequest)
		return product, false
	}
	catalog.Normalize(&product)
	return product, true
}
