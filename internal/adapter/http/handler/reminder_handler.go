package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/usecase"
)

// ReminderHandler handles payment reminder HTTP requests.
type ReminderHandler struct {
	reminderUC *usecase.ReminderUseCase
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC *usecase.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create creates a new pending reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.CreateReminder(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		respondError(w, err, "failed to create reminder")

		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromDomain(reminder))
}

// Update patches a reminder. A status change to paid routes through the
// guarded transition and appends the derived expense entry at most once.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing reminder ID", "")
		return
	}

	var req dto.UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.UpdateReminder(r.Context(), req.ToUseCaseInput(owner, id))
	if err != nil {
		respondError(w, err, "failed to update reminder")

		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// MarkPaid transitions a reminder to paid.
func (h *ReminderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing reminder ID", "")
		return
	}

	reminder, err := h.reminderUC.MarkPaid(r.Context(), owner, id)
	if err != nil {
		respondError(w, err, "failed to mark reminder paid")

		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderFromDomain(reminder))
}

// List lists reminders by due date, each with a derived status label.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", 5)

	items, total, err := h.reminderUC.ListReminders(r.Context(), owner, page, limit)
	if err != nil {
		writeInternalError(w, "failed to list reminders", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReminderListResponse{
		Items:      dto.ReminderItemsFromUseCase(items),
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// PendingDigest returns the up-to-five nearest-due pending reminders.
func (h *ReminderHandler) PendingDigest(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	digest, err := h.reminderUC.GetPendingDigest(r.Context(), owner)
	if err != nil {
		writeInternalError(w, "failed to load pending digest", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PendingDigestResponse{
		Pending:      dto.RemindersFromDomain(digest.Pending),
		PendingCount: digest.PendingCount,
	})
}
