// Package server exposes the document store over HTTP.
//
// The API is a thin JSON surface over [store.Store] plus an SVG export
// endpoint. Bodies are codec document records; legacy-version records
// are migrated on write, so the store only ever holds current-schema
// snapshots.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inklab/inkdoc/pkg/codec"
	apperrors "github.com/inklab/inkdoc/pkg/errors"
	"github.com/inklab/inkdoc/pkg/store"
	"github.com/inklab/inkdoc/pkg/svgdoc"
)

// Server serves the document API.
type Server struct {
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server over the given store. A nil logger falls back to
// log.Default().
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{store: st, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1/documents", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handlePut)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/export.svg", s.handleExportSVG)
	})
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "list documents"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.json(w, http.StatusOK, map[string]any{"documents": ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.error(w, http.StatusNotFound,
			apperrors.Wrap(apperrors.ErrCodeDocumentNotFound, err, "document %q", id))
		return
	}
	if err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "load document %q", id))
		return
	}

	data, err := codec.Marshal(rec)
	if err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode document %q", id))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", `"`+store.Hash(data)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var rec codec.DocumentRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.error(w, http.StatusBadRequest,
			apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "decode document body"))
		return
	}

	// The URL is authoritative for the document ID.
	rec.ID = chi.URLParam(r, "id")
	rec = codec.MigrateDocument(rec)

	if err := s.store.Save(r.Context(), rec); err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "save document %q", rec.ID))
		return
	}
	s.logger.Debug("saved document", "id", rec.ID, "layers", len(rec.Layers))
	s.json(w, http.StatusOK, map[string]any{"id": rec.ID, "version": rec.Version})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.error(w, http.StatusNotFound,
			apperrors.Wrap(apperrors.ErrCodeDocumentNotFound, err, "document %q", id))
		return
	}
	if err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "delete document %q", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.error(w, http.StatusNotFound,
			apperrors.Wrap(apperrors.ErrCodeDocumentNotFound, err, "document %q", id))
		return
	}
	if err != nil {
		s.error(w, http.StatusInternalServerError,
			apperrors.Wrap(apperrors.ErrCodeStore, err, "load document %q", id))
		return
	}

	doc := codec.DecodeDocument(rec)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svgdoc.Export(doc))
}

func (s *Server) json(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// error writes a JSON error body. Structured errors contribute their
// machine-readable code alongside the user-facing message.
func (s *Server) error(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	body := map[string]string{"error": apperrors.UserMessage(err)}
	if code := apperrors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	s.json(w, status, body)
}
