package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"recyloop/pkg/types"
)

type errorBody struct {
	Error   types.ErrorKind `json:"error"`
	Message string          `json:"message"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

// respondError maps a typed error to its HTTP status and a stable JSON body.
// Unclassified errors surface as persistence failures.
func (s *Service) respondError(w http.ResponseWriter, err error) {
	kind := types.KindOf(err)

	message := ""
	var typed *types.Error
	if errors.As(err, &typed) {
		message = typed.Message()
	}

	if kind == types.ErrorKindPersistence || kind == types.ErrorKindStorage {
		s.logger.WithError(err).Error("request failed")
	}

	s.respondJSON(w, statusForKind(kind), errorBody{Error: kind, Message: message})
}

func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.ErrorKindNotFound:
		return http.StatusNotFound
	case types.ErrorKindForbidden:
		return http.StatusForbidden
	case types.ErrorKindUnauthorized:
		return http.StatusUnauthorized
	case types.ErrorKindInvalid:
		return http.StatusBadRequest
	case types.ErrorKindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Service) badRequest(w http.ResponseWriter, message string) {
	s.respondJSON(w, http.StatusBadRequest, errorBody{Error: "BAD_REQUEST", Message: message})
}
