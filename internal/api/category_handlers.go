package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/category"
	"github.com/nordlane/catalog-service/internal/category/dto"
	"github.com/nordlane/catalog-service/internal/model"
)

type CategoryHandlers struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandlers(uc category.UseCase, logger *zap.Logger) *CategoryHandlers {
	return &CategoryHandlers{uc: uc, logger: logger}
}

type categoryRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Type         string `json:"type,omitempty"`
	ParentID     *int64 `json:"parent_id"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active,omitempty"`
	ImageDesktop string `json:"image_desktop,omitempty"`
	ImageMobile  string `json:"image_mobile,omitempty"`
}

func (h *CategoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		respondJSONError(w, "failed to fetch categories", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandlers) GetTree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.uc.ListTree(r.Context())
	if err != nil {
		h.logger.Error("failed to build category tree", zap.Error(err))
		respondJSONError(w, "failed to fetch category tree", http.StatusInternalServerError)
		return
	}
	if nodes == nil {
		nodes = []*model.CategoryNode{}
	}
	respondJSON(w, http.StatusOK, nodes)
}

func (h *CategoryHandlers) GetNavigation(w http.ResponseWriter, r *http.Request) {
	links, err := h.uc.Navigation(r.Context())
	if err != nil {
		h.logger.Error("failed to build navigation", zap.Error(err))
		respondJSONError(w, "failed to fetch navigation", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, links)
}

func (h *CategoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := &dto.CreateCategoryInput{
		Name:         req.Name,
		Slug:         req.Slug,
		Type:         model.CategoryType(req.Type),
		ParentID:     req.ParentID,
		DisplayOrder: req.DisplayOrder,
		ImageDesktop: req.ImageDesktop,
		ImageMobile:  req.ImageMobile,
	}

	cat, err := h.uc.CreateCategory(r.Context(), input)
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	input := &dto.UpdateCategoryInput{
		ID:           id,
		Name:         req.Name,
		Slug:         req.Slug,
		ParentID:     req.ParentID,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
		ImageDesktop: req.ImageDesktop,
		ImageMobile:  req.ImageMobile,
	}

	cat, err := h.uc.UpdateCategory(r.Context(), input)
	if err != nil {
		h.respondCategoryError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	if err := h.uc.DeleteCategory(r.Context(), id); err != nil {
		h.respondCategoryError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CategoryHandlers) respondCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound), errors.Is(err, category.ErrParentNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, category.ErrSlugTaken), errors.Is(err, category.ErrNameTaken):
		respondJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, category.ErrCycle),
		errors.Is(err, category.ErrParentRequired),
		errors.Is(err, category.ErrRootOnly),
		errors.Is(err, category.ErrImmutable),
		errors.Is(err, category.ErrHasChildren),
		errors.Is(err, category.ErrInUse):
		respondJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.logger.Error("category mutation failed", zap.Error(err))
		respondJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

func categoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/admin/categories/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondJSONError(w, "invalid category id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
