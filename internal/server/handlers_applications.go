package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meera/intern-match/internal/db"
	"github.com/meera/intern-match/internal/matching"
)

var validate = validator.New()

// ApplyRequest is the payload for POST /applications
type ApplyRequest struct {
	CandidateID   string `json:"candidate_id" validate:"required,uuid"`
	OpportunityID string `json:"opportunity_id" validate:"required,uuid"`
}

// handleCreateApplication records an application after the eligibility gate
// passes. Gate rejections return 403 with the blocking reason; a repeat
// application for the same pair returns 400.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "candidate_id and opportunity_id are required UUIDs")
		return
	}

	candidateID := uuid.MustParse(req.CandidateID)
	opportunityID := uuid.MustParse(req.OpportunityID)
	ctx := r.Context()

	profile, err := s.store.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, db.ErrCandidateNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		s.logger.Error("failed to load candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	opportunity, err := s.store.GetOpportunity(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, db.ErrOpportunityNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Opportunity not found")
			return
		}
		s.logger.Error("failed to load opportunity", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	if eligible, reason := matching.CheckEligibility(profile, opportunity); !eligible {
		s.errorResponse(w, http.StatusForbidden, reason)
		return
	}

	app, err := s.store.CreateApplication(ctx, candidateID, opportunityID)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateApplication) {
			s.errorResponse(w, http.StatusBadRequest, "You have already applied to this opportunity")
			return
		}
		s.logger.Error("failed to create application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}
