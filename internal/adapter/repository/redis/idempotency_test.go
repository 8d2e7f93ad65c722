package redis

import "testing"

func TestFinishedResponseHidesPendingMarker(t *testing.T) {
	if got := finishedResponse([]byte(pendingMarker)); got != nil {
		t.Errorf("an in-flight key must surface as a nil payload, got %q", got)
	}

	body := []byte(`{"id":"entry-1"}`)
	if got := finishedResponse(body); string(got) != string(body) {
		t.Errorf("a stored response must pass through unchanged, got %q", got)
	}
}
