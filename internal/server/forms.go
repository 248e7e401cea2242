package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"recyloop/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	authID, err := s.authIDFromContext(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("auth id not found in context")
		s.respondError(w, &types.Error{Kind: types.ErrorKindUnauthorized})
		return
	}

	var input types.CreateFormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	for residue := range input.Residues {
		if !residue.Valid() {
			s.badRequest(w, "unknown residue type: "+string(residue))
			return
		}
	}

	submission, err := s.orchestrator.CreateForm(r.Context(), authID, input)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, submission)
}

func (s *Service) handleListForms(w http.ResponseWriter, r *http.Request) {
	var filter types.FormFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.badRequest(w, "invalid filter parameters")
		return
	}

	if filter.ProfileType != nil && !filter.ProfileType.Valid() {
		s.badRequest(w, "unknown profile type: "+string(*filter.ProfileType))
		return
	}

	forms, err := s.orchestrator.Forms(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, forms)
}

func (s *Service) handleGetForm(w http.ResponseWriter, r *http.Request) {
	formID := flow.Param(r.Context(), "formID")

	form, err := s.orchestrator.Form(r.Context(), formID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, form)
}

func (s *Service) handleGetFormDocuments(w http.ResponseWriter, r *http.Request) {
	formID := flow.Param(r.Context(), "formID")

	links, err := s.orchestrator.FormDocuments(r.Context(), formID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, links)
}

func (s *Service) handleGetAggregates(w http.ResponseWriter, r *http.Request) {
	report, err := s.orchestrator.Aggregates(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

type authorizationRequest struct {
	Authorized *bool `json:"authorized"`
}

func (s *Service) handlePutAuthorization(w http.ResponseWriter, r *http.Request) {
	formID := flow.Param(r.Context(), "formID")

	var req authorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Authorized == nil {
		s.badRequest(w, "authorized flag is required")
		return
	}

	form, err := s.orchestrator.AuthorizeForm(r.Context(), formID, *req.Authorized)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, form)
}

func (s *Service) handleSubmitFormImage(w http.ResponseWriter, r *http.Request) {
	formID := flow.Param(r.Context(), "formID")

	createURL, err := s.orchestrator.SubmitFormImage(r.Context(), formID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"createUrl": createURL})
}

func (s *Service) handleCreateFormMetadata(w http.ResponseWriter, r *http.Request) {
	formID := flow.Param(r.Context(), "formID")

	publication, err := s.orchestrator.CreateFormMetadata(r.Context(), formID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, publication)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.WithError(err).Error("health check database ping failed")
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
