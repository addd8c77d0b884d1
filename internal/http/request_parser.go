package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dayboard/internal/core"
)

// maxBodySize caps request bodies; payloads here are tiny records.
const maxBodySize = 64 << 10 // 64KB

func decodeBody(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	defer io.Copy(io.Discard, body)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// parseOptionalDate reads a YYYY-MM-DD field, defaulting to today (UTC)
// when empty.
func parseOptionalDate(s string) (core.Date, error) {
	if s == "" {
		return core.DateOf(time.Now()), nil
	}
	return core.ParseDate(s)
}

type createHabitRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type completeHabitRequest struct {
	Date string `json:"date"`
}

type createExpenseRequest struct {
	Amount      string `json:"amount"`
	CategoryID  string `json:"categoryId"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (req createExpenseRequest) toExpense() (core.Expense, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Amount:      amount,
		CategoryID:  req.CategoryID,
		Date:        date,
		Description: req.Description,
	}, nil
}

type timeBlockRequest struct {
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Date      string `json:"date"`
}

func (req timeBlockRequest) toTimeBlock() (core.TimeBlock, error) {
	start, err := core.ParseClockTime(req.StartTime)
	if err != nil {
		return core.TimeBlock{}, err
	}
	end, err := core.ParseClockTime(req.EndTime)
	if err != nil {
		return core.TimeBlock{}, err
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return core.TimeBlock{}, err
	}
	return core.TimeBlock{
		Title: req.Title,
		Start: start,
		End:   end,
		Date:  date,
	}, nil
}
