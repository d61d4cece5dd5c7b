package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"casebem/pkg/response"
)

func TestDateMarshalJSON(t *testing.T) {
	tm := time.Date(2027, 5, 1, 15, 30, 0, 0, time.UTC)

	b, err := json.Marshal(response.Date(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling Date: %v", err)
	}
	if string(b) != `"2027-05-01"` {
		t.Errorf("got %s", b)
	}
}

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2027, 5, 1, 15, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if string(b) != `"2027-05-01T18:30:00Z"` {
		t.Errorf("got %s", b)
	}
}

func TestNewDateNil(t *testing.T) {
	if response.NewDate(nil) != nil || response.NewDateTime(nil) != nil {
		t.Error("nil time should give nil wrapper")
	}
}
