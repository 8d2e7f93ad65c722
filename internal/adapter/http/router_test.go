package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/iho/finbook/internal/adapter/http"
	"github.com/iho/finbook/internal/adapter/http/handler"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
	"github.com/iho/finbook/internal/usecase/mocks"
)

type fixture struct {
	router       http.Handler
	entryRepo    *mocks.MockEntryRepository
	reminderRepo *mocks.MockReminderRepository
	reportRepo   *mocks.MockReportRepository
	clock        *mocks.MockClock
}

func newFixture() *fixture {
	entryRepo := mocks.NewMockEntryRepository()
	reminderRepo := mocks.NewMockReminderRepository()
	categoryRepo := mocks.NewMockCategoryRepository()
	reportRepo := mocks.NewMockReportRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	clock := mocks.NewMockClock(time.Date(2025, time.December, 10, 8, 0, 0, 0, time.UTC))

	sideEffects := usecase.NewSideEffectHandler(entryRepo, reminderRepo, idGen, clock)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, categoryRepo, outboxRepo, sideEffects, mocks.NewMockCache(), idGen, clock, nil)
	reminderUC := usecase.NewReminderUseCase(txManager, reminderRepo, outboxRepo, sideEffects, idGen, clock, nil)
	reportUC := usecase.NewReportUseCase(reportRepo, clock)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen, clock)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:    handler.NewEntryHandler(entryUC),
		ReminderHandler: handler.NewReminderHandler(reminderUC),
		ReportHandler:   handler.NewReportHandler(reportUC, nil),
		CategoryHandler: handler.NewCategoryHandler(categoryUC),
		HealthHandler:   handler.NewHealthHandler(nil, nil),
		Logger:          zerolog.Nop(),
	})

	return &fixture{
		router:       router,
		entryRepo:    entryRepo,
		reminderRepo: reminderRepo,
		reportRepo:   reportRepo,
		clock:        clock,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BillFlow(t *testing.T) {
	f := newFixture()

	// An expense filed under the bill category spawns a pending reminder.
	rec := f.do(t, http.MethodPost, "/api/v1/transactions",
		`{"amount":"300000","kind":"expense","category_name":"Hóa đơn","note":"Điện tháng 12"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID           string `json:"id"`
		CategoryName string `json:"category_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Hóa đơn", created.CategoryName)

	reminders := f.reminderRepo.All()
	require.Len(t, reminders, 1)
	assert.Equal(t, "Điện tháng 12", reminders[0].Title)
	assert.Equal(t, domain.ReminderStatusPending, reminders[0].Status)

	// Paying the reminder appends the derived expense entry.
	rec = f.do(t, http.MethodPost, "/api/v1/reminders/"+reminders[0].ID+"/pay", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	entries := f.entryRepo.All()
	require.Len(t, entries, 2)

	var derived *domain.LedgerEntry
	for _, e := range entries {
		if e.ID != created.ID {
			derived = e
		}
	}
	require.NotNil(t, derived)
	assert.Equal(t, domain.EntryKindExpense, derived.Kind)
	assert.True(t, derived.Amount.Equal(decimal.NewFromInt(300000)))
	require.NotNil(t, derived.CategoryName)
	assert.Equal(t, domain.BillCategoryName, *derived.CategoryName)
	require.NotNil(t, derived.Note)
	assert.Equal(t, "Điện tháng 12", *derived.Note)

	// Paying again is a no-op.
	rec = f.do(t, http.MethodPost, "/api/v1/reminders/"+reminders[0].ID+"/pay", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.entryRepo.All(), 2)
}

func TestRouter_RemindersListCarriesStatusLabel(t *testing.T) {
	f := newFixture()

	f.reminderRepo.Create(context.Background(), &domain.Reminder{
		ID:      "rem-1",
		OwnerID: "default",
		Title:   "Nước",
		Amount:  decimal.NewFromInt(150000),
		DueAt:   f.clock.Time.Add(24 * time.Hour),
		Status:  domain.ReminderStatusPending,
	})

	rec := f.do(t, http.MethodGet, "/api/v1/reminders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			ID          string `json:"id"`
			StatusLabel string `json:"status_label"`
		} `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "upcoming", resp.Items[0].StatusLabel)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestRouter_EntryValidationErrors(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/transactions", `{"amount":"0","kind":"expense"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/transactions", `{"amount":"100","kind":"loan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/transactions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ReportByPeriodRequiresYear(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/reports/by-period", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/by-period?year=2025&month=13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/by-period?year=2025", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReportMonthlyTwelveSlots(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/reports/monthly?year=2025", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Year    int `json:"year"`
		Monthly []struct {
			Month int `json:"month"`
		} `json:"monthly"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.Year)
	assert.Len(t, resp.Monthly, 12)
}

func TestRouter_InternalErrorsStayGeneric(t *testing.T) {
	f := newFixture()

	f.reportRepo.SumByKindFunc = func(ctx context.Context, ownerID string, from, to *time.Time) (map[domain.EntryKind]decimal.Decimal, error) {
		return nil, errors.New(`ERROR: relation "ledger_entries" does not exist (SQLSTATE 42P01)`)
	}

	rec := f.do(t, http.MethodGet, "/api/v1/reports/summary", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Message)
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")

	// Not-found causes keep their detail string.
	rec = f.do(t, http.MethodGet, "/api/v1/transactions/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
}

func TestRouter_CategoryCRUD(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/categories", `{"name":"Ăn uống","kind":"expense"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPatch, "/api/v1/categories/"+created.ID, `{"name":"Ăn ngoài"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/categories/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/categories/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
