package postgres

import (
	"strings"
	"testing"
)

func TestSumExpenseByMonthBucketsByStoredUTCMonth(t *testing.T) {
	if !strings.Contains(sumExpenseByMonthSQL, "AT TIME ZONE 'UTC'") {
		t.Error("month extraction must read the stored UTC instant, not the session time zone")
	}
}
