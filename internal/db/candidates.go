package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meera/intern-match/internal/matching"
)

// Candidate represents a candidate account record
type Candidate struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Gender           string    `json:"gender,omitempty"`
	Residence        string    `json:"residence,omitempty"`
	SocialBackground string    `json:"social_background,omitempty"`
}

// CreateCandidate inserts a candidate account and returns its ID
func (db *DB) CreateCandidate(ctx context.Context, c *Candidate) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, gender, residence, social_background)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		c.Name, c.Email, c.Gender, c.Residence, c.SocialBackground,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// UpsertCandidateProfile stores the matching-relevant profile for a candidate,
// replacing any previous version.
func (db *DB) UpsertCandidateProfile(ctx context.Context, profile *matching.CandidateProfile) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles (candidate_id, skills, sector_preference, location_preference, resume_text)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (candidate_id) DO UPDATE SET
		   skills = $2, sector_preference = $3, location_preference = $4,
		   resume_text = $5, updated_at = NOW()`,
		profile.CandidateID, profile.Skills, profile.SectorPreference,
		profile.LocationPreference, profile.ResumeText,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate profile: %w", err)
	}
	return nil
}

// GetCandidateProfile loads a candidate's matching profile. A candidate
// without a stored profile still resolves, with empty matching fields.
func (db *DB) GetCandidateProfile(ctx context.Context, candidateID uuid.UUID) (*matching.CandidateProfile, error) {
	profile := matching.CandidateProfile{CandidateID: candidateID}
	err := db.pool.QueryRow(ctx,
		`SELECT c.gender, c.residence, c.social_background,
		        COALESCE(p.skills, '{}'), COALESCE(p.sector_preference, ''),
		        COALESCE(p.location_preference, ''), COALESCE(p.resume_text, '')
		 FROM candidates c
		 LEFT JOIN candidate_profiles p ON p.candidate_id = c.id
		 WHERE c.id = $1`,
		candidateID,
	).Scan(
		&profile.Category.Gender, &profile.Category.Residence, &profile.Category.SocialBackground,
		&profile.Skills, &profile.SectorPreference, &profile.LocationPreference, &profile.ResumeText,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return &profile, nil
}
