package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDateAcceptedFormats(t *testing.T) {
	day, err := ParseDate("2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day parse: %v", day)
	}

	stamp, err := ParseDate("2026-03-01T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stamp.Equal(time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp parse: %v", stamp)
	}

	empty, err := ParseDate("")
	if err != nil {
		t.Fatalf("empty value must not error, got %v", err)
	}
	if !empty.IsZero() {
		t.Fatalf("empty value must parse to zero time, got %v", empty)
	}

	if _, err := ParseDate("March 1st"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParsePaginationClampsAndFallsBack(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 25, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"clamped", "limit=9999", 100, 0},
		{"negative limit", "limit=-5", 25, 0},
		{"negative offset", "offset=-1", 25, 0},
		{"garbage", "limit=ten&offset=zero", 25, 0},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/goals?"+tc.query, nil)
		page := ParsePagination(req, 25, 100)
		if page.Limit != tc.wantLimit || page.Offset != tc.wantOffset {
			t.Fatalf("%s: got limit=%d offset=%d, want limit=%d offset=%d",
				tc.name, page.Limit, page.Offset, tc.wantLimit, tc.wantOffset)
		}
	}
}
