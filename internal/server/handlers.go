package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hyperjump/nasari/internal/models"
	"github.com/hyperjump/nasari/internal/source"
	"github.com/hyperjump/nasari/internal/vector"
	"go.uber.org/zap"
)

func (s *Server) handleVector(w http.ResponseWriter, r *http.Request) {
	key, ok := s.requireParam(w, r, "key")
	if !ok {
		return
	}
	s.logger.Debug("vector request", zap.String("key", key))
	res, err := s.lookup.Vector(key)
	if err != nil {
		s.respondLookupError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.VectorResponse{Vector: res.Vector})
}

func (s *Server) handleCosine(w http.ResponseWriter, r *http.Request) {
	key1, ok := s.requireParam(w, r, "key1")
	if !ok {
		return
	}
	key2, ok := s.requireParam(w, r, "key2")
	if !ok {
		return
	}
	s.logger.Debug("cosine request", zap.String("key1", key1), zap.String("key2", key2))
	res, err := s.lookup.Similarity(key1, key2)
	if err != nil {
		s.respondLookupError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.SimilarityResponse{Similarity: res.Similarity})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := models.StatusResponse{
		Stats:   s.lookup.Stats(),
		Version: s.version,
	}
	if s.config != nil {
		resp.Config = &models.StatusConfig{
			MappingPath: s.config.Data.MappingPath,
			VectorsPath: s.config.Data.VectorsPath,
		}
		if n, err := source.DiskUsageBytes(s.config.Data.MappingPath, s.config.Data.VectorsPath); err == nil {
			resp.DiskUsageBytes = &n
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireParam returns the named query parameter, answering 400 when it is absent.
func (s *Server) requireParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	q := r.URL.Query()
	if !q.Has(name) {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("missing query parameter: %s", name))
		return "", false
	}
	return q.Get(name), true
}

// respondLookupError maps lookup failures to structured error responses.
func (s *Server) respondLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case vector.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vector.ErrDimensionMismatch), errors.Is(err, vector.ErrZeroNorm), errors.Is(err, vector.ErrUndefined):
		s.logger.Warn("similarity undefined", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("lookup failed", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// respondJSON encodes before writing the header, so a value json cannot
// represent (NaN, Inf) becomes a 500 instead of an empty 200.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("encode response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Error: message})
}
