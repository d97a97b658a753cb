package server

import (
	"net/http"
	"strconv"

	"github.com/lucas/resume-studio/internal/server/middleware"
	"github.com/lucas/resume-studio/internal/types"
)

// handleStoreCredential stores or replaces one provider API key for the
// authenticated user. Last write wins per service.
func (s *Server) handleStoreCredential(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CredentialRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.db.UpsertCredential(r.Context(), userID, req.Service, req.APIKey); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"service": req.Service, "status": "stored"})
}

// handleListCredentials lists the authenticated user's credentials.
// Keys themselves are never echoed back.
func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	creds, err := s.db.ListCredentials(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"credentials": creds})
}

// handleDeleteCredential removes the authenticated user's key for one
// service.
func (s *Server) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	service := r.PathValue("service")
	if service == "" {
		s.errorResponse(w, http.StatusBadRequest, "service is required")
		return
	}

	if err := s.db.DeleteCredential(r.Context(), userID, service); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"service": service, "status": "deleted"})
}

// handleListInvocations returns the authenticated user's recent
// generation calls, newest first.
func (s *Server) handleListInvocations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	records, err := s.db.ListInvocations(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"invocations": records})
}
