package audit

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBuildBaseQueryFilters(t *testing.T) {
	query, args := buildBaseQuery("SELECT COUNT(1)", Filter{})
	if len(args) != 0 {
		t.Fatalf("expected no args for empty filter, got %v", args)
	}
	if !strings.HasSuffix(query, "WHERE 1=1") {
		t.Fatalf("unexpected base query: %s", query)
	}

	query, args = buildBaseQuery("SELECT COUNT(1)", Filter{
		Action:     "goals.approve",
		EntityType: "goal",
		ActorID:    "mgr-1",
	})
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	for i, clause := range []string{"action = $1", "entity_type = $2", "actor_id::text = $3"} {
		if !strings.Contains(query, clause) {
			t.Fatalf("expected clause %q (arg %d) in query: %s", clause, i+1, query)
		}
	}
}

func TestEventTimestampMarshalsRFC3339(t *testing.T) {
	evt := Event{
		ID:        "evt-1",
		Action:    "goals.approve",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if !strings.Contains(string(payload), `"createdAt":"2026-03-01T10:00:00Z"`) {
		t.Fatalf("expected RFC3339 timestamp, got %s", payload)
	}
}
