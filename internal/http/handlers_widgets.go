package http

import (
	"errors"
	"net/http"

	"dayboard/internal/log"
	"dayboard/internal/sink"
	"dayboard/internal/snapshot"
)

func (s *Server) handleReadSnapshot(w http.ResponseWriter, r *http.Request) {
	kind, err := snapshot.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown widget kind")
		return
	}

	cacheKey := "snapshot:" + string(kind)
	if payload, ok := s.snapshotCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	payload, err := s.snapshots.Load(r.Context(), kind)
	if errors.Is(err, sink.ErrSnapshotNotFound) {
		writeError(w, http.StatusNotFound, "no snapshot available")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to read snapshot", log.FieldWidgetKind, string(kind), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read snapshot")
		return
	}

	s.snapshotCache.Set(cacheKey, payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (s *Server) handleRefreshWidgets(w http.ResponseWriter, r *http.Request) {
	s.trigger.SyncAll(r.Context())
	for _, kind := range snapshot.Kinds() {
		s.snapshotCache.Delete("snapshot:" + string(kind))
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}
