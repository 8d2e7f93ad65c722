package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		respondError(w, err, "failed to create category")

		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Update patches a category. Renames never touch entry snapshots.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.UpdateCategory(r.Context(), req.ToUseCaseInput(owner, id))
	if err != nil {
		respondError(w, err, "failed to update category")

		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Delete removes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	if err := h.categoryUC.DeleteCategory(r.Context(), owner, id); err != nil {
		respondError(w, err, "failed to delete category")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists categories, optionally filtered by kind.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var kind *domain.EntryKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k := domain.EntryKind(raw)
		kind = &k
	}

	categories, err := h.categoryUC.ListCategories(r.Context(), owner, kind)
	if err != nil {
		writeInternalError(w, "failed to list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}
