package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finbook/internal/domain"
)

func TestProjectStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status domain.ReminderStatus
		dueAt  time.Time
		want   domain.StatusLabel
	}{
		{"paid wins over overdue", domain.ReminderStatusPaid, now.Add(-48 * time.Hour), domain.StatusLabelPaid},
		{"paid wins over upcoming", domain.ReminderStatusPaid, now.Add(time.Hour), domain.StatusLabelPaid},
		{"due in the past is overdue", domain.ReminderStatusPending, now.Add(-time.Second), domain.StatusLabelOverdue},
		{"due exactly now is upcoming", domain.ReminderStatusPending, now, domain.StatusLabelUpcoming},
		{"due just inside horizon is upcoming", domain.ReminderStatusPending, now.Add(domain.UpcomingHorizon - time.Second), domain.StatusLabelUpcoming},
		{"due exactly at horizon is upcoming", domain.ReminderStatusPending, now.Add(domain.UpcomingHorizon), domain.StatusLabelUpcoming},
		{"due just past horizon is pending", domain.ReminderStatusPending, now.Add(domain.UpcomingHorizon + time.Second), domain.StatusLabelPending},
		{"far future is pending", domain.ReminderStatusPending, now.AddDate(0, 1, 0), domain.StatusLabelPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.Reminder{Status: tt.status, DueAt: tt.dueAt}
			assert.Equal(t, tt.want, domain.ProjectStatus(r, now))
		})
	}
}

func TestReminderValidate(t *testing.T) {
	valid := func() *domain.Reminder {
		return &domain.Reminder{
			Title:  "Điện tháng 6",
			Amount: decimal.NewFromInt(500000),
			DueAt:  time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		}
	}

	require.NoError(t, valid().Validate())

	r := valid()
	r.Title = ""
	assert.ErrorIs(t, r.Validate(), domain.ErrTitleRequired)

	r = valid()
	r.Amount = decimal.Zero
	assert.ErrorIs(t, r.Validate(), domain.ErrInvalidAmount)

	r = valid()
	r.Amount = decimal.NewFromInt(-1)
	assert.ErrorIs(t, r.Validate(), domain.ErrInvalidAmount)

	r = valid()
	r.DueAt = time.Time{}
	assert.ErrorIs(t, r.Validate(), domain.ErrDueDateRequired)
}
