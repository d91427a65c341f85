package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ratewatch/medicaid-rates-backend/internal/application/services"
)

// CategoriesHandler handles service-line taxonomy CRUD
type CategoriesHandler struct {
	categoryService *services.CategoryService
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(categoryService *services.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{
		categoryService: categoryService,
	}
}

// List handles GET /api/service-categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data": categories,
	})
}

// Create handles POST /api/service-categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Category)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, category)
}

// Rename handles PUT /api/service-categories
func (h *CategoriesHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldCategory string `json:"oldCategory"`
		NewCategory string `json:"newCategory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.categoryService.Rename(r.Context(), req.OldCategory, req.NewCategory); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"category": req.NewCategory,
	})
}

// Delete handles DELETE /api/service-categories
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.categoryService.Delete(r.Context(), req.Category); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{
		"deleted": req.Category,
	})
}
