package http

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"dayboard/internal/core"
	"dayboard/internal/log"
)

type timeBlockView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Date      string `json:"date"`
}

func toTimeBlockView(b core.TimeBlock) timeBlockView {
	return timeBlockView{
		ID:        b.ID,
		Title:     b.Title,
		StartTime: b.Start.String(),
		EndTime:   b.End.String(),
		Date:      b.Date.ISO(),
	}
}

func (s *Server) handleListTimeBlocks(w http.ResponseWriter, r *http.Request) {
	date, err := parseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	blocks, err := s.planner.TimeBlocksForDate(r.Context(), date)
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to list time blocks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list time blocks")
		return
	}

	views := make([]timeBlockView, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, toTimeBlockView(b))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateTimeBlock(w http.ResponseWriter, r *http.Request) {
	var req timeBlockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	block, err := req.toTimeBlock()
	if err != nil {
		writeError(w, validationStatus(err), err.Error())
		return
	}

	created, err := s.planner.CreateTimeBlock(r.Context(), block)
	if err != nil {
		status := validationStatus(err)
		if status >= 500 {
			log.FromContext(r.Context()).Error("Failed to create time block", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toTimeBlockView(created))
}

func (s *Server) handleUpdateTimeBlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time block id")
		return
	}

	var req timeBlockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	block, err := req.toTimeBlock()
	if err != nil {
		writeError(w, validationStatus(err), err.Error())
		return
	}
	block.ID = id

	err = s.planner.UpdateTimeBlock(r.Context(), block)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "time block not found")
		return
	}
	if err != nil {
		status := validationStatus(err)
		if status >= 500 {
			log.FromContext(r.Context()).Error("Failed to update time block", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTimeBlockView(block))
}

func (s *Server) handleDeleteTimeBlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time block id")
		return
	}

	err = s.planner.DeleteTimeBlock(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "time block not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to delete time block", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete time block")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
