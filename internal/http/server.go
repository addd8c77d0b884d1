// Package http serves the JSON API the app screens call: CRUD for
// habits, expenses and time blocks, plus the widget snapshot read and
// refresh endpoints.
package http

import (
	"net"
	"net/http"
	"time"

	"dayboard/internal/cache"
	"dayboard/internal/log"
	"dayboard/internal/middleware/ratelimit"
	"dayboard/internal/services"
	"dayboard/internal/sink"
	"dayboard/internal/trigger"
)

// Server wires the handlers into an http.Server.
type Server struct {
	*http.Server

	habits   *services.HabitService
	expenses *services.ExpenseService
	planner  *services.PlannerService

	snapshots     *sink.FallbackStore
	trigger       *trigger.Trigger
	snapshotCache *cache.LRUCache[[]byte]

	limiter *ratelimit.Limiter
}

// Config carries the server's tunables.
type Config struct {
	Addr             string
	SnapshotCacheTTL time.Duration
	Logger           *log.Logger
}

func NewServer(
	cfg Config,
	habits *services.HabitService,
	expenses *services.ExpenseService,
	planner *services.PlannerService,
	snapshots *sink.FallbackStore,
	trig *trigger.Trigger,
) *Server {
	s := &Server{
		habits:        habits,
		expenses:      expenses,
		planner:       planner,
		snapshots:     snapshots,
		trigger:       trig,
		snapshotCache: cache.NewLRUCache[[]byte](8, cfg.SnapshotCacheTTL),
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/habits", s.handleListHabits)
	mux.HandleFunc("POST /api/habits", s.handleCreateHabit)
	mux.HandleFunc("DELETE /api/habits/{id}", s.handleDeleteHabit)
	mux.HandleFunc("POST /api/habits/{id}/completions", s.handleCompleteHabit)
	mux.HandleFunc("DELETE /api/habits/{id}/completions", s.handleUncompleteHabit)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/timeblocks", s.handleListTimeBlocks)
	mux.HandleFunc("POST /api/timeblocks", s.handleCreateTimeBlock)
	mux.HandleFunc("PUT /api/timeblocks/{id}", s.handleUpdateTimeBlock)
	mux.HandleFunc("DELETE /api/timeblocks/{id}", s.handleDeleteTimeBlock)

	mux.HandleFunc("GET /api/widgets/{kind}", s.handleReadSnapshot)
	mux.HandleFunc("POST /api/widgets/refresh", s.handleRefreshWidgets)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(clientIP)(handler)
	if cfg.Logger != nil {
		handler = log.RequestLogger(cfg.Logger)(handler)
		handler = log.Middleware(cfg.Logger)(handler)
	}

	s.Server = &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}
	return s
}

// Stop releases the server's background resources. Shutdown still has to
// be called on the embedded http.Server.
func (s *Server) Stop() {
	s.limiter.Stop()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
