package http

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"dayboard/internal/core"
	"dayboard/internal/log"
)

type habitView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	WeekStart string `json:"weekStart"`
}

func toHabitView(h core.HabitRecord) habitView {
	return habitView{ID: h.ID, Name: h.Name, Color: h.Color, WeekStart: h.WeekStart.ISO()}
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.CurrentWeekHabits(r.Context(), time.Now())
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list habits")
		return
	}

	views := make([]habitView, 0, len(habits))
	for _, h := range habits {
		views = append(views, toHabitView(h))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	habit, err := s.habits.CreateHabit(r.Context(), req.Name, req.Color, time.Now())
	if err != nil {
		status := validationStatus(err)
		if status >= 500 {
			log.FromContext(r.Context()).Error("Failed to create habit", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toHabitView(habit))
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	err := s.habits.DeleteHabit(r.Context(), r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "habit not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to delete habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteHabit(w http.ResponseWriter, r *http.Request) {
	var req completeHabitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	if err := s.habits.CompleteHabit(r.Context(), r.PathValue("id"), date); err != nil {
		log.FromContext(r.Context()).Error("Failed to complete habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUncompleteHabit(w http.ResponseWriter, r *http.Request) {
	date, err := parseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	if err := s.habits.UncompleteHabit(r.Context(), r.PathValue("id"), date); err != nil {
		log.FromContext(r.Context()).Error("Failed to uncomplete habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to uncomplete habit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
