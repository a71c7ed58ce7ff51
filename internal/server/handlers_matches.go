package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meera/intern-match/internal/db"
	"github.com/meera/intern-match/internal/matching"
)

// MatchesResponse is the payload for GET /matches
type MatchesResponse struct {
	Matches []matching.Match `json:"matches"`
	Count   int              `json:"count"`
}

// candidateIDParam parses the required candidate_id query parameter. It
// writes the error response itself and returns false when parsing failed.
func (s *Server) candidateIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("candidate_id")
	if raw == "" {
		s.errorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate_id format")
		return uuid.Nil, false
	}
	return id, true
}

// handleGetMatches runs a ranking pass and returns the ordered matches.
// An optional priority=skills,location,sector parameter reorders the
// weights; persist=false suppresses score caching.
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.candidateIDParam(w, r)
	if !ok {
		return
	}

	opts := matching.Options{}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		opts.Priority = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get("persist"); raw == "false" {
		persist := false
		opts.Persist = &persist
	}

	matches, err := s.matcher.Rank(r.Context(), candidateID, opts)
	if err != nil {
		if errors.Is(err, db.ErrCandidateNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		s.logger.Error("ranking failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to compute matches")
		return
	}

	s.jsonResponse(w, http.StatusOK, MatchesResponse{Matches: matches, Count: len(matches)})
}

// handleMatchStats returns aggregate statistics over the candidate's cached
// scores. When the candidate has no cached scores yet, a default-weight
// ranking pass runs first so the stats reflect something.
func (s *Server) handleMatchStats(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.candidateIDParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	count, err := s.store.CountMatchScores(ctx, candidateID)
	if err != nil {
		s.logger.Error("failed to count match scores", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load match stats")
		return
	}

	if count == 0 {
		if _, err := s.matcher.Rank(ctx, candidateID, matching.Options{}); err != nil {
			if errors.Is(err, db.ErrCandidateNotFound) {
				s.errorResponse(w, http.StatusNotFound, "Candidate not found")
				return
			}
			s.logger.Error("ranking failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to compute matches")
			return
		}
	}

	stats, err := s.store.GetMatchStats(ctx, candidateID)
	if err != nil {
		s.logger.Error("failed to load match stats", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load match stats")
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}
