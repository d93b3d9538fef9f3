package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spendgraph/spendgraph/pkg/usecase"
	"github.com/spendgraph/spendgraph/pkg/utils/errutil"
	"github.com/spendgraph/spendgraph/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/graphs", func(r chi.Router) {
		r.Post("/", s.buildGraph)
		r.Get("/", s.listGraphs)
		r.Post("/merge", s.mergeGraphs)

		r.Route("/{graphID}", func(r chi.Router) {
			r.Get("/", s.getGraph)
			r.Delete("/", s.deleteGraph)
			r.Get("/analytics", s.graphAnalytics)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}
