package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"dayboard/internal/core"
)

// SchemaVersion tags every payload so the widget renderer can detect
// shapes written by newer app versions.
const SchemaVersion = 1

type (
	HabitEntry struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	HabitPayload struct {
		SchemaVersion    int          `json:"schemaVersion"`
		UnfinishedHabits []HabitEntry `json:"unfinishedHabits"`
		LastUpdated      string       `json:"lastUpdated"`
	}

	FinancePayload struct {
		SchemaVersion int    `json:"schemaVersion"`
		TodayTotal    string `json:"todayTotal"`
		ExpenseCount  int    `json:"expenseCount"`
		LastUpdated   string `json:"lastUpdated"`
	}

	BlockEntry struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		StartTime    string `json:"startTime"`
		EndTime      string `json:"endTime"`
		StartDisplay string `json:"startDisplay"`
		EndDisplay   string `json:"endDisplay"`
	}

	PlannerPayload struct {
		SchemaVersion int          `json:"schemaVersion"`
		Date          string       `json:"date"`
		DateDisplay   string       `json:"dateDisplay"`
		Blocks        []BlockEntry `json:"blocks"`
		CurrentTime   string       `json:"currentTime"`
		LastUpdated   string       `json:"lastUpdated"`
	}
)

// Serializer maps summaries into payload JSON. Optional fields default to
// empty strings, never null: the widget renders whatever it gets.
type Serializer struct{}

func NewSerializer() *Serializer {
	return &Serializer{}
}

// SerializeHabits encodes a habit summary. now becomes lastUpdated.
func (s *Serializer) SerializeHabits(summary HabitSummary, now time.Time) ([]byte, error) {
	entries := make([]HabitEntry, 0, len(summary.Unfinished))
	for _, h := range summary.Unfinished {
		entries = append(entries, HabitEntry{ID: h.ID, Name: h.Name, Color: h.Color})
	}
	payload := HabitPayload{
		SchemaVersion:    SchemaVersion,
		UnfinishedHabits: entries,
		LastUpdated:      now.UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal habit payload: %w", err)
	}
	return data, nil
}

// SerializeFinance encodes a finance summary with todayTotal carrying
// exactly two fractional digits.
func (s *Serializer) SerializeFinance(summary FinanceSummary, now time.Time) ([]byte, error) {
	payload := FinancePayload{
		SchemaVersion: SchemaVersion,
		TodayTotal:    summary.Total.String(),
		ExpenseCount:  summary.ExpenseCount,
		LastUpdated:   now.UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal finance payload: %w", err)
	}
	return data, nil
}

// SerializePlanner encodes a planner summary. Times are emitted in
// 5-character 24-hour form plus a 12-hour display string per block;
// currentTime is the wall clock at serialization time.
func (s *Serializer) SerializePlanner(summary PlannerSummary, now time.Time) ([]byte, error) {
	blocks := make([]BlockEntry, 0, len(summary.Blocks))
	for _, b := range summary.Blocks {
		blocks = append(blocks, BlockEntry{
			ID:           b.ID,
			Title:        b.Title,
			StartTime:    b.Start.String(),
			EndTime:      b.End.String(),
			StartDisplay: b.Start.Display12Hour(),
			EndDisplay:   b.End.Display12Hour(),
		})
	}

	date := summary.Date
	if date.IsZero() {
		date = core.DateOf(now)
	}

	utc := now.UTC()
	payload := PlannerPayload{
		SchemaVersion: SchemaVersion,
		Date:          date.ISO(),
		DateDisplay:   date.LongDisplay(),
		Blocks:        blocks,
		CurrentTime:   core.ClockTime{Hour: utc.Hour(), Minute: utc.Minute()}.String(),
		LastUpdated:   utc.Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal planner payload: %w", err)
	}
	return data, nil
}
