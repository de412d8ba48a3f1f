package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/product"
	"github.com/nordlane/catalog-service/internal/product/dto"
)

type ProductHandlers struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandlers(uc product.UseCase, logger *zap.Logger) *ProductHandlers {
	return &ProductHandlers{uc: uc, logger: logger}
}

type productRequest struct {
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Gender      string          `json:"gender"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []string        `json:"sizes"`
	Images      []string        `json:"images"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
}

func (h *ProductHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := &dto.CreateProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Gender:      req.Gender,
		Category:    req.Category,
		Color:       req.Color,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Images:      req.Images,
		PublishedAt: req.PublishedAt,
	}

	p, err := h.uc.CreateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("product create failed", zap.Error(err))
		respondJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *ProductHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	p, err := h.uc.GetProduct(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := &dto.UpdateProductInput{
		ID:          id,
		Name:        req.Name,
		Brand:       req.Brand,
		Gender:      req.Gender,
		Category:    req.Category,
		Color:       req.Color,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Images:      req.Images,
		PublishedAt: req.PublishedAt,
	}

	p, err := h.uc.UpdateProduct(r.Context(), input)
	if err != nil {
		h.respondProductError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProductHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.uc.DeleteProduct(r.Context(), id); err != nil {
		h.respondProductError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProductHandlers) respondProductError(w http.ResponseWriter, err error) {
	if errors.Is(err, product.ErrNotFound) {
		respondJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.logger.Error("product operation failed", zap.Error(err))
	respondJSONError(w, "internal error", http.StatusInternalServerError)
}

func productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if id == "" || strings.Contains(id, "/") {
		respondJSONError(w, "invalid product id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
