// Package httpapi exposes a Store over HTTP so views without direct store
// access can read and write offsets.
//
// The surface is deliberately small:
//
//	GET    /healthz          liveness probe
//	GET    /v1/offsets/{id}  read an offset (404 when absent)
//	PUT    /v1/offsets/{id}  write an offset ({"x":..,"y":..})
//	DELETE /v1/offsets/{id}  remove an offset
//
// Writes go through the store's normal notification path, so subscribed
// draggable instances sync as if another view had dragged.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/neophoriac/SimpleDraggable/pkg/errors"
	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
	"github.com/neophoriac/SimpleDraggable/pkg/store"
)

// Server serves the offset API over a Store.
type Server struct {
	st  store.Store
	log *log.Logger
}

// New creates a server. A nil logger discards.
func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{st: st, log: logger}
}

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLog)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/offsets", func(r chi.Router) {
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handlePut)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// requestLog tags each request with an ID and logs method, path, and timing.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentifier(id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, found, err := s.st.Get(r.Context(), id)
	if err != nil {
		s.log.Error("store get", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeStore, err, "get offset"))
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "no offset for %q", id))
		return
	}

	// Stored payloads follow the same tolerance rule as the engine:
	// malformed values decay to the zero offset.
	writeJSON(w, http.StatusOK, geometry.DecodeOffset(data))
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentifier(id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var offset geometry.Offset
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&offset); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "body must be {\"x\":..,\"y\":..}"))
		return
	}

	if err := s.st.Set(r.Context(), id, geometry.EncodeOffset(offset)); err != nil {
		s.log.Error("store set", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeStore, err, "set offset"))
		return
	}
	writeJSON(w, http.StatusOK, offset)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentifier(id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.st.Delete(r.Context(), id); err != nil {
		s.log.Error("store delete", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeStore, err, "delete offset"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}
