package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/rirekisho/internal/config"
	"github.com/hyperjump/rirekisho/internal/models"
	"github.com/hyperjump/rirekisho/internal/search"
	"github.com/hyperjump/rirekisho/internal/storage"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.Strings("keywords", req.Keywords), zap.String("algorithm", string(req.Algorithm)))
	response, err := s.engine.Search(r.Context(), &req, s.storage)
	if err != nil {
		var invalid *models.InvalidConfigurationError
		switch {
		case errors.As(err, &invalid):
			s.respondError(w, http.StatusBadRequest, invalid.Error())
		case errors.Is(err, search.ErrCancelled):
			s.respondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.logger.Error("search failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleIndexApplicant(w http.ResponseWriter, r *http.Request) {
	var input models.ApplicantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("index applicant request", zap.String("id", input.ID), zap.String("name", input.Name))
	a, err := s.indexer.IndexApplicant(r.Context(), &input)
	if err != nil {
		s.logger.Error("indexing failed", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.storage.GetApplicant(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "applicant not found")
		return
	}
	s.respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)
	if limit > 500 {
		limit = 500
	}
	applicants, err := s.storage.ListApplicants(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list applicants failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.storage.CountApplicants(r.Context())
	if err != nil {
		s.logger.Error("count applicants failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if applicants == nil {
		applicants = []*models.Applicant{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"applicants": applicants,
		"total":      total,
		"offset":     offset,
		"limit":      limit,
	})
}

func (s *Server) handleDeleteApplicant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete applicant request", zap.String("id", id))
	if err := s.indexer.DeleteApplicant(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "applicant not found")
			return
		}
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.storage.CountApplicants(r.Context())
	if err != nil {
		s.logger.Error("status: count applicants failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"applicants":        count,
		"cached_automatons": s.engine.CachedAutomatons(),
	}
	if s.fullConfig != nil {
		resp["config"] = map[string]interface{}{
			"database_path":       s.fullConfig.Storage.DatabasePath,
			"workers":             s.fullConfig.Search.Workers,
			"default_max_results": s.fullConfig.Search.DefaultMaxResults,
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInboxList(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"inboxes": s.watch.Inboxes()})
}

type inboxAddRequest struct {
	Path string `json:"path"`
	Sync *bool  `json:"sync,omitempty"`
}

func (s *Server) handleInboxAdd(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	var req inboxAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "directory not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !info.IsDir() {
		s.respondError(w, http.StatusBadRequest, "path is not a directory")
		return
	}
	syncExisting := true
	if req.Sync != nil {
		syncExisting = *req.Sync
	}
	s.logger.Debug("inbox add request", zap.String("path", abs), zap.Bool("sync_existing", syncExisting))
	if err := s.watch.AddInbox(abs, syncExisting); err != nil {
		s.logger.Error("inbox add failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistInboxes()
	s.respondJSON(w, http.StatusCreated, map[string]string{"path": abs, "status": "added"})
}

func (s *Server) handleInboxRemove(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "watch not enabled")
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		var body struct {
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Path != "" {
			path = body.Path
		}
	}
	if path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required (query or body)")
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	s.logger.Debug("inbox remove request", zap.String("path", abs))
	if err := s.watch.RemoveInbox(abs); err != nil {
		s.logger.Error("inbox remove failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.persistInboxes()
	s.respondJSON(w, http.StatusOK, map[string]string{"path": abs, "status": "removed"})
}

// persistInboxes writes the current inbox list back to the config file.
func (s *Server) persistInboxes() {
	if s.configPath == "" || s.fullConfig == nil {
		return
	}
	s.fullConfigM.Lock()
	s.fullConfig.Watch.Directories = s.watch.Inboxes()
	err := config.Save(s.configPath, s.fullConfig)
	s.fullConfigM.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist inbox config", zap.Error(err))
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
