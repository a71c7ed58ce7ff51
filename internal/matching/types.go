package matching

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile holds the candidate-side inputs to matching.
type CandidateProfile struct {
	CandidateID        uuid.UUID `json:"candidate_id"`
	Skills             []string  `json:"skills"`
	SectorPreference   string    `json:"sector_preference,omitempty"`
	LocationPreference string    `json:"location_preference,omitempty"` // single value or delimiter-separated list
	ResumeText         string    `json:"resume_text,omitempty"`         // used only for semantic blending
	Category           Category  `json:"category,omitempty"`
}

// Category carries the candidate's declared attributes checked by the
// application-time eligibility gate. Empty values mean "not declared".
type Category struct {
	Gender           string `json:"gender,omitempty"`
	Residence        string `json:"residence,omitempty"`
	SocialBackground string `json:"social_background,omitempty"`
}

// Opportunity is an active internship posting.
type Opportunity struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Requirements   string      `json:"requirements,omitempty"`
	RequiredSkills []string    `json:"required_skills"`
	Sector         string      `json:"sector"`
	Location       string      `json:"location"`
	IsRemote       bool        `json:"is_remote"`
	IsActive       bool        `json:"is_active"`
	Eligibility    Eligibility `json:"eligibility,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Eligibility holds hard requirements an employer may declare for applicants.
// Empty values and the permissive values ("both"/"any") impose no restriction.
type Eligibility struct {
	Gender    string `json:"gender,omitempty"`    // male|female|both
	Residence string `json:"residence,omitempty"` // rural|urban|any
	Social    string `json:"social,omitempty"`    // free text or "any"
}

// Breakdown is the per-dimension result of scoring one candidate/opportunity
// pair. All scores are in [0,1], rounded to 2 decimal places.
type Breakdown struct {
	SkillScore    float64  `json:"skill_score"`
	LocationScore float64  `json:"location_score"`
	SectorScore   float64  `json:"sector_score"`
	TotalScore    float64  `json:"total_score"`
	MatchedSkills []string `json:"matched_skills"` // original, non-canonical strings
}

// Match is one ranked entry returned by the orchestrator. Suggested entries
// were appended to reach the minimum result count and carry the sentinel
// total rather than a computed score.
type Match struct {
	Opportunity   Opportunity `json:"opportunity"`
	SkillScore    float64     `json:"skill_score"`
	LocationScore float64     `json:"location_score"`
	SectorScore   float64     `json:"sector_score"`
	TotalScore    float64     `json:"total_score"`
	MatchedSkills []string    `json:"matched_skills"`
	Suggested     bool        `json:"suggested,omitempty"`
}

// ScoreUpsert is the persistence payload for one computed match score.
type ScoreUpsert struct {
	CandidateID   uuid.UUID
	OpportunityID uuid.UUID
	SkillScore    float64
	LocationScore float64
	SectorScore   float64
	TotalScore    float64
	MatchedSkills []string
}
