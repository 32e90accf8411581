package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/chatlens/internal/analytics"
	"github.com/MikeSquared-Agency/chatlens/internal/events"
	"github.com/MikeSquared-Agency/chatlens/internal/session"
)

// Options configures the HTTP server.
type Options struct {
	Port           int
	APIToken       string // empty disables bearer auth
	MaxUploadBytes int64
	DayFirst       bool           // default date order for uploads
	Location       *time.Location // zone of export timestamps; nil means UTC
}

type Server struct {
	router    *chi.Mux
	opts      Options
	sessions  *session.Registry
	engine    *analytics.Engine
	publisher events.Publisher // nil when NATS is not configured
	logger    *slog.Logger
	now       func() time.Time
}

func NewServer(opts Options, sessions *session.Registry, engine *analytics.Engine, publisher events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware)

	s := &Server{
		router:    router,
		opts:      opts,
		sessions:  sessions,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Get("/status", s.status)
		r.Post("/uploads", s.createUpload)

		r.Route("/uploads/{id}", func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/", s.getUpload)
			r.Delete("/", s.deleteUpload)
			r.Get("/senders", s.senders)
			r.Get("/stats", s.stats)
			r.Get("/timeline/monthly", s.monthlyTimeline)
			r.Get("/timeline/daily", s.dailyTimeline)
			r.Get("/activity/weekly", s.weekActivity)
			r.Get("/activity/monthly", s.monthActivity)
			r.Get("/activity/heatmap", s.activityHeatmap)
			r.Get("/users/active", s.activeUsers)
			r.Get("/wordcloud", s.wordCloud)
			r.Get("/words", s.words)
			r.Get("/sensitive", s.sensitive)
			r.Get("/report", s.report)
		})
	})

	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns a configured *http.Server for the router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":  "chatlens",
		"sessions": s.sessions.Len(),
		"events":   s.publisher != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// publish sends an event when a publisher is configured. Failures are logged only.
func (s *Server) publish(subject string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
