package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"dayboard/internal/core"
	"dayboard/internal/log"
)

type expenseView struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"categoryId"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func toExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		CategoryID:  e.CategoryID,
		Date:        e.Date.ISO(),
		Description: e.Description,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := parseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	expenses, err := s.expenses.ExpensesForDate(r.Context(), date)
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, toExpenseView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense, err := req.toExpense()
	if err != nil {
		writeError(w, validationStatus(err), err.Error())
		return
	}

	created, err := s.expenses.CreateExpense(r.Context(), expense)
	if err != nil {
		status := validationStatus(err)
		if status >= 500 {
			log.FromContext(r.Context()).Error("Failed to create expense", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseView(created))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	err = s.expenses.DeleteExpense(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to delete expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
