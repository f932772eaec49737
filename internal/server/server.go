package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/omarshaarawi/valuebot/internal/models"
	"github.com/omarshaarawi/valuebot/internal/service"
)

type Server struct {
	router  *chi.Mux
	service *service.ValuationService
}

func New(svc *service.ValuationService) *Server {
	s := &Server{router: chi.NewRouter(), service: svc}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Get("/healthz", s.healthCheck)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/players", s.listPlayers)
		r.Get("/positions", s.listPositions)
		r.Get("/averages", s.averages)
		r.Get("/radar", s.radar)
		r.Get("/overview", s.overview)
		r.Get("/impact/{position}", s.impact)
		r.Post("/sessions", s.newSession)
		r.Get("/selections/{session}", s.selection)
		r.Post("/selections/{session}", s.toggleSelection)
		r.Delete("/selections/{session}", s.clearSelection)
		r.Post("/reload", s.reload)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrPlayerNotFound), errors.Is(err, service.ErrUnknownPosition):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnknownScope), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAmbiguousPlayer):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")

func viewFromQuery(r *http.Request) service.View {
	q := r.URL.Query()
	return service.View{
		Position: q.Get("position"),
		Query:    q.Get("q"),
		Session:  q.Get("session"),
	}
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	ds := s.service.Dataset()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"origin":    ds.Origin,
		"rows":      len(ds.Rows),
		"loaded_at": ds.LoadedAt,
	})
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players := s.service.Players(viewFromQuery(r))
	if players == nil {
		players = []models.ClassifiedPlayer{}
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) listPositions(w http.ResponseWriter, r *http.Request) {
	positions := s.service.Positions()
	if positions == nil {
		positions = []string{}
	}
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) averages(w http.ResponseWriter, r *http.Request) {
	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Averages(scope, viewFromQuery(r)))
}

func (s *Server) radar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := service.ParseScope(q.Get("scope"))
	if err != nil {
		writeError(w, err)
		return
	}

	key := models.PlayerKey{Name: q.Get("name"), Position: q.Get("position")}
	if key.Name == "" {
		writeError(w, fmt.Errorf("%w: missing name", errBadRequest))
		return
	}
	if key.Position == "" {
		p, err := s.service.FindPlayer(key.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		key = p.Key()
	}

	view := service.View{Position: q.Get("filter_position"), Query: q.Get("q"), Session: q.Get("session")}
	radar, err := s.service.Radar(key, scope, view)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, radar)
}

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	overview := s.service.Overview()
	if overview == nil {
		overview = []models.PositionSummary{}
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) impact(w http.ResponseWriter, r *http.Request) {
	position := strings.ToUpper(chi.URLParam(r, "position"))
	impact, err := s.service.FeatureImpact(position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impact)
}

// newSession issues a selection session id. Any non-empty string works as a
// session; the bot uses chat ids.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"session": uuid.NewString()})
}

func (s *Server) selection(w http.ResponseWriter, r *http.Request) {
	selected := s.service.Selected(chi.URLParam(r, "session"))
	if selected == nil {
		selected = []models.ClassifiedPlayer{}
	}
	writeJSON(w, http.StatusOK, selected)
}

func (s *Server) toggleSelection(w http.ResponseWriter, r *http.Request) {
	var key models.PlayerKey
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		slog.Warn("Failed to decode selection request", "error", err)
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	session := chi.URLParam(r, "session")
	selected, err := s.service.ToggleSelection(session, key)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Selection toggled", "session", session, "player", key.String(), "selected", selected)
	writeJSON(w, http.StatusOK, map[string]bool{"selected": selected})
}

func (s *Server) clearSelection(w http.ResponseWriter, r *http.Request) {
	s.service.ClearSelection(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	ds := s.service.Reload(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"origin":   ds.Origin,
		"source":   ds.Source,
		"rows":     len(ds.Rows),
		"warnings": ds.Warnings,
	})
}
