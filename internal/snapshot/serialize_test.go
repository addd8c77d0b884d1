package snapshot

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"dayboard/internal/core"
)

func TestSerializeHabits(t *testing.T) {
	s := NewSerializer()
	now := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

	data, err := s.SerializeHabits(HabitSummary{Unfinished: []core.HabitRecord{
		{ID: "a", Name: "Read", Color: "red"},
	}}, now)
	if err != nil {
		t.Fatalf("SerializeHabits: %v", err)
	}

	var payload HabitPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.SchemaVersion != SchemaVersion {
		t.Errorf("schemaVersion = %d, want %d", payload.SchemaVersion, SchemaVersion)
	}
	if len(payload.UnfinishedHabits) != 1 || payload.UnfinishedHabits[0].Name != "Read" {
		t.Errorf("unexpected habits payload: %+v", payload.UnfinishedHabits)
	}
	if payload.LastUpdated != "2026-08-26T14:30:00Z" {
		t.Errorf("lastUpdated = %s", payload.LastUpdated)
	}
}

func TestSerializeHabits_EmptyIsArrayNotNull(t *testing.T) {
	data, err := NewSerializer().SerializeHabits(HabitSummary{}, time.Now())
	if err != nil {
		t.Fatalf("SerializeHabits: %v", err)
	}
	if !strings.Contains(string(data), `"unfinishedHabits":[]`) {
		t.Errorf("empty habit list must serialize as [], got %s", data)
	}
}

func TestSerializeFinance_TwoFractionalDigits(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1750, "17.50"},
		{0, "0.00"},
		{5, "0.05"},
	}
	for _, tt := range tests {
		data, err := NewSerializer().SerializeFinance(FinanceSummary{
			ExpenseCount: 3,
			Total:        core.Money{Cents: tt.cents},
		}, time.Now())
		if err != nil {
			t.Fatalf("SerializeFinance: %v", err)
		}
		var payload FinancePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if payload.TodayTotal != tt.want {
			t.Errorf("todayTotal = %q, want %q", payload.TodayTotal, tt.want)
		}
	}
}

func TestSerializePlanner(t *testing.T) {
	now := time.Date(2026, 8, 30, 7, 5, 42, 0, time.UTC)
	summary := PlannerSummary{
		Date: core.NewDate(2026, 8, 30),
		Blocks: []core.TimeBlock{
			{ID: 7, Title: "Standup", Start: core.ClockTime{Hour: 9}, End: core.ClockTime{Hour: 10}},
			{ID: 8, Start: core.ClockTime{Hour: 13, Minute: 5}, End: core.ClockTime{Hour: 14}}, // no title
		},
	}

	data, err := NewSerializer().SerializePlanner(summary, now)
	if err != nil {
		t.Fatalf("SerializePlanner: %v", err)
	}

	var payload PlannerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Date != "2026-08-30" {
		t.Errorf("date = %s, want 2026-08-30", payload.Date)
	}
	if payload.DateDisplay != "Sunday, August 30" {
		t.Errorf("dateDisplay = %q", payload.DateDisplay)
	}
	if payload.CurrentTime != "07:05" {
		t.Errorf("currentTime = %q, want 07:05", payload.CurrentTime)
	}
	if len(payload.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(payload.Blocks))
	}

	first := payload.Blocks[0]
	if first.StartTime != "09:00" || len(first.StartTime) != 5 {
		t.Errorf("startTime = %q, want exactly 09:00", first.StartTime)
	}
	if first.StartDisplay != "9:00 AM" || first.EndDisplay != "10:00 AM" {
		t.Errorf("displays = %q/%q", first.StartDisplay, first.EndDisplay)
	}

	// Missing title serializes as empty string, never null.
	if strings.Contains(string(data), "null") {
		t.Errorf("payload must not contain null: %s", data)
	}
	if payload.Blocks[1].Title != "" {
		t.Errorf("missing title = %q, want empty string", payload.Blocks[1].Title)
	}
	if payload.Blocks[1].StartDisplay != "1:05 PM" {
		t.Errorf("startDisplay = %q, want 1:05 PM", payload.Blocks[1].StartDisplay)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%s) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("weather"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}
