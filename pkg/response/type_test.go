package response_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"meeting-assistant/pkg/response"
)

// Both types format in Local(), so assertions match the shape of the output
// rather than exact instants; the runner's timezone must not matter.
func TestDateFormats(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	t.Run("Date", func(t *testing.T) {
		b, err := json.Marshal(response.Date(tm))
		if err != nil {
			t.Fatalf("unexpected error marshaling Date: %v", err)
		}
		if ok, _ := regexp.Match(`^"\d{2}\.\d{2}\.\d{4}"$`, b); !ok {
			t.Errorf("expected quoted DD.MM.YYYY, got %s", b)
		}
	})

	t.Run("DateTime", func(t *testing.T) {
		b, err := json.Marshal(response.DateTime(tm))
		if err != nil {
			t.Fatalf("unexpected error marshaling DateTime: %v", err)
		}
		if ok, _ := regexp.Match(`^"\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}"$`, b); !ok {
			t.Errorf("expected quoted DD.MM.YYYY HH:MM, got %s", b)
		}
	})
}
