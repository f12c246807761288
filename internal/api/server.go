package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/store"
)

// maxBodyBytes bounds request bodies; raw completions are the largest input.
const maxBodyBytes = 1 << 20

// GenerationStore is the persistence the API needs. Satisfied by
// *store.Store.
type GenerationStore interface {
	WriteGeneration(ctx context.Context, ownerUUID uuid.UUID, g *extractor.GenerationResult) (uuid.UUID, error)
	GetGeneration(ctx context.Context, id uuid.UUID) (*store.GenerationRow, error)
	ListRecords(ctx context.Context, generationID uuid.UUID) ([]store.RecordRow, error)
}

type Server struct {
	router    *chi.Mux
	port      int
	extractor *extractor.Extractor
	store     GenerationStore
	logger    *slog.Logger
}

// NewServer wires the HTTP API. st may be nil, in which case generations are
// not persisted and cannot be fetched. CORS is enabled only when
// corsOrigins is non-empty.
func NewServer(port int, apiToken string, corsOrigins []string, ext *extractor.Extractor, st GenerationStore, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Authorization", "Content-Type", "Accept"},
		}).Handler)
	}

	s := &Server{
		router:    router,
		port:      port,
		extractor: ext,
		store:     st,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1/onesheet", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Get("/status", s.status)
		r.Get("/templates", s.templates)
		r.Post("/render", s.render)
		r.Post("/parse", s.parse)
		r.Post("/generate", s.generate)
		r.Post("/document", s.document)
		r.Get("/generations/{id}", s.generation)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	mode := "parse-only"
	if s.extractor.HasLLM() {
		mode = "generate"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":     "onesheet",
		"mode":      mode,
		"templates": s.extractor.Engine().Catalog().Len(),
		"store":     s.store != nil,
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

// decode reads a JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}
