package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Create creates a new ledger entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		respondError(w, err, "failed to create entry")

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves a ledger entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), owner, id)
	if err != nil {
		respondError(w, err, "failed to get entry")

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Update patches a ledger entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.UpdateEntry(r.Context(), req.ToUseCaseInput(owner, id))
	if err != nil {
		respondError(w, err, "failed to update entry")

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes a ledger entry.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), owner, id); err != nil {
		respondError(w, err, "failed to delete entry")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists ledger entries with optional filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter := domain.EntryFilter{
		OwnerID: owner,
		Page:    parseIntQuery(r, "page", 1),
		Limit:   parseIntQuery(r, "limit", 15),
	}

	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind := domain.EntryKind(raw)
		filter.Kind = &kind
	}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		filter.CategoryID = &raw
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		filter.From = &from
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		filter.To = &to
	}

	entries, total, err := h.entryUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeInternalError(w, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryListResponse{
		Items:      dto.EntriesFromDomain(entries),
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// AmountSuggestions returns the owner's distinct historical amounts.
func (h *EntryHandler) AmountSuggestions(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	amounts, err := h.entryUC.AmountSuggestions(r.Context(), owner)
	if err != nil {
		writeInternalError(w, "failed to load suggestions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AmountSuggestionsResponse{Amounts: amounts})
}
