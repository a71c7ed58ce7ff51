// Package matching implements the candidate/opportunity compatibility scorer,
// the application-time eligibility gate, and the ranking orchestrator.
package matching

import (
	"math"
	"strings"

	"github.com/meera/intern-match/internal/geo"
	"github.com/meera/intern-match/internal/skills"
)

// Location sub-scores used by the string-heuristic fallback chain when the
// gazetteer cannot resolve both places.
const (
	substringLocationScore  = 0.7
	remoteWordLocationScore = 0.5
)

// Scorer computes pairwise match scores. The gazetteer is injected so tests
// can substitute a fake one.
type Scorer struct {
	gazetteer geo.Gazetteer
}

// NewScorer creates a Scorer backed by the given gazetteer. A nil gazetteer
// disables coordinate lookups entirely.
func NewScorer(gazetteer geo.Gazetteer) *Scorer {
	return &Scorer{gazetteer: gazetteer}
}

// Score computes the per-dimension and weighted-total scores for one
// candidate/opportunity pair. It is a pure function of its inputs and safe to
// call concurrently.
func (s *Scorer) Score(profile *CandidateProfile, opp *Opportunity, weights Weights) Breakdown {
	skillScore, matched := s.skillScore(profile.Skills, opp.RequiredSkills)
	locationScore := s.locationScore(profile.LocationPreference, opp)
	sectorScore := s.sectorScore(profile.SectorPreference, opp.Sector)

	total := skillScore*weights.Skills + locationScore*weights.Location + sectorScore*weights.Sector

	return Breakdown{
		SkillScore:    round2(skillScore),
		LocationScore: round2(locationScore),
		SectorScore:   round2(sectorScore),
		TotalScore:    round2(total),
		MatchedSkills: matched,
	}
}

// skillScore is the fraction of required skills whose canonical form appears
// in the candidate's canonical skill set. Matched skills keep the
// opportunity's original spelling.
func (s *Scorer) skillScore(candidateSkills, requiredSkills []string) (float64, []string) {
	if len(requiredSkills) == 0 {
		return 0, []string{}
	}

	candidateSet := skills.CanonicalSet(candidateSkills)
	matched := make([]string, 0, len(requiredSkills))
	for _, required := range requiredSkills {
		if candidateSet[skills.Canonical(required)] {
			matched = append(matched, required)
		}
	}

	return float64(len(matched)) / float64(len(requiredSkills)), matched
}

// locationScore is the best sub-score across the candidate's preferred
// locations. Remote opportunities score 1 regardless of location strings.
func (s *Scorer) locationScore(preference string, opp *Opportunity) float64 {
	if opp.IsRemote {
		return 1
	}

	oppLocation := strings.ToLower(strings.TrimSpace(opp.Location))
	if preference == "" || oppLocation == "" {
		return 0
	}

	best := 0.0
	for _, candidate := range parseLocations(preference) {
		if candidate == oppLocation {
			return 1
		}
		if score := s.locationSubScore(candidate, oppLocation); score > best {
			best = score
		}
	}
	return best
}

// locationSubScore compares one candidate location against the opportunity
// location: coordinates via the gazetteer when both resolve, then string
// heuristics.
func (s *Scorer) locationSubScore(candidateLoc, oppLoc string) float64 {
	a, aOK := s.gazetteer.Resolve(candidateLoc)
	b, bOK := s.gazetteer.Resolve(oppLoc)
	if aOK && bOK {
		return geo.DistanceScore(geo.HaversineKm(a, b))
	}
	if strings.Contains(candidateLoc, oppLoc) || strings.Contains(oppLoc, candidateLoc) {
		return substringLocationScore
	}
	if strings.Contains(candidateLoc, "remote") || strings.Contains(oppLoc, "remote") {
		return remoteWordLocationScore
	}
	return 0
}

func (s *Scorer) sectorScore(preference, sector string) float64 {
	if preference == "" || sector == "" {
		return 0
	}
	if strings.EqualFold(preference, sector) {
		return 1
	}
	return 0
}

// parseLocations splits a location preference on comma, slash, pipe,
// semicolon, or newline, trimming and lowercasing each entry.
func parseLocations(preference string) []string {
	fields := strings.FieldsFunc(preference, func(r rune) bool {
		return r == ',' || r == '/' || r == '|' || r == ';' || r == '\n'
	})

	locations := make([]string, 0, len(fields))
	for _, f := range fields {
		if loc := strings.ToLower(strings.TrimSpace(f)); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
