package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meera/intern-match/internal/geo"
	"github.com/meera/intern-match/internal/similarity"
)

const (
	// MinSuggestions is the minimum result count the ranking guarantees by
	// padding with recent opportunities.
	MinSuggestions = 10

	// SuggestedTotal marks padded entries as low-confidence suggestions,
	// below the floor of any genuinely computed positive score.
	SuggestedTotal = 0.3

	// Blend coefficients mixing the heuristic total with the external
	// similarity value.
	blendHeuristicWeight  = 0.6
	blendSimilarityWeight = 0.4

	// scoreConcurrency bounds the parallel per-opportunity scoring loop.
	scoreConcurrency = 8
)

// ProfileStore loads candidate profiles.
type ProfileStore interface {
	// GetCandidateProfile returns the profile for an existing candidate.
	// A candidate without profile data yields a zero-valued profile; an
	// unknown candidate ID yields an error.
	GetCandidateProfile(ctx context.Context, candidateID uuid.UUID) (*CandidateProfile, error)
}

// OpportunityStore lists postings eligible for ranking.
type OpportunityStore interface {
	// ListActiveOpportunities returns all active opportunities,
	// most recent first.
	ListActiveOpportunities(ctx context.Context) ([]Opportunity, error)
}

// ScoreStore persists computed match scores idempotently per
// (candidate, opportunity) pair.
type ScoreStore interface {
	UpsertMatchScore(ctx context.Context, score *ScoreUpsert) error
}

// SimilarityScorer is the batch interface to the external similarity service.
type SimilarityScorer interface {
	Scores(ctx context.Context, resumeText string, docs []similarity.Document) (map[string]float64, error)
}

// Options configures a single ranking run.
type Options struct {
	// Priority optionally names the three scoring dimensions in descending
	// importance. An invalid vector falls back to default weights.
	Priority []string
	// Persist controls score persistence; nil means true. Persistence only
	// happens for default-weight runs regardless of this flag.
	Persist *bool
}

// Ranker orchestrates scoring, blending, sorting, padding, and persistence
// for a candidate's ranking request.
type Ranker struct {
	profiles      ProfileStore
	opportunities OpportunityStore
	scores        ScoreStore
	similarity    SimilarityScorer
	scorer        *Scorer
	logger        *zap.Logger
}

// NewRanker wires a Ranker. The similarity scorer and score store may be nil,
// disabling blending and persistence respectively.
func NewRanker(
	profiles ProfileStore,
	opportunities OpportunityStore,
	scores ScoreStore,
	sim SimilarityScorer,
	gazetteer geo.Gazetteer,
	logger *zap.Logger,
) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		profiles:      profiles,
		opportunities: opportunities,
		scores:        scores,
		similarity:    sim,
		scorer:        NewScorer(gazetteer),
		logger:        logger,
	}
}

// Scorer exposes the pairwise scorer for standalone use.
func (r *Ranker) Scorer() *Scorer {
	return r.scorer
}

// Rank computes the ranked, padded opportunity list for a candidate. It never
// fails because an optional enrichment step (similarity, persistence) failed.
func (r *Ranker) Rank(ctx context.Context, candidateID uuid.UUID, opts Options) ([]Match, error) {
	profile, err := r.profiles.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate profile: %w", err)
	}

	opportunities, err := r.opportunities.ListActiveOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	if len(opportunities) == 0 {
		return []Match{}, nil
	}

	weights := DefaultWeights()
	var priority []string
	if len(opts.Priority) > 0 {
		normalized, perr := NormalizePriority(opts.Priority)
		if perr != nil {
			r.logger.Debug("invalid priority vector, using default weights",
				zap.Strings("priority", opts.Priority), zap.Error(perr))
		} else {
			priority = normalized
			weights = WeightsForPriority(normalized)
		}
	}

	sims := r.similarityScores(ctx, profile, opportunities)

	// Scoring is independent per opportunity; no shared state is mutated.
	breakdowns := make([]Breakdown, len(opportunities))
	var g errgroup.Group
	g.SetLimit(scoreConcurrency)
	for i := range opportunities {
		g.Go(func() error {
			breakdowns[i] = r.scorer.Score(profile, &opportunities[i], weights)
			return nil
		})
	}
	_ = g.Wait()

	matches := make([]Match, 0, len(opportunities))
	for i := range opportunities {
		b := breakdowns[i]
		total := b.TotalScore
		if sim, ok := sims[opportunities[i].ID.String()]; ok {
			total = math.Min(1, total*blendHeuristicWeight+sim*blendSimilarityWeight)
		}
		total = round2(total)
		if total <= 0 {
			continue
		}
		matches = append(matches, Match{
			Opportunity:   opportunities[i],
			SkillScore:    b.SkillScore,
			LocationScore: b.LocationScore,
			SectorScore:   b.SectorScore,
			TotalScore:    total,
			MatchedSkills: b.MatchedSkills,
		})
	}

	r.sortMatches(matches, priority)
	matches = padMatches(matches, opportunities)

	if r.shouldPersist(opts, priority) {
		r.persist(ctx, candidateID, matches)
	}

	return matches, nil
}

// similarityScores runs the batch similarity call. Any failure degrades to
// heuristic-only scoring with a logged warning.
func (r *Ranker) similarityScores(ctx context.Context, profile *CandidateProfile, opportunities []Opportunity) map[string]float64 {
	if r.similarity == nil || profile.ResumeText == "" {
		return nil
	}

	docs := make([]similarity.Document, 0, len(opportunities))
	for _, opp := range opportunities {
		docs = append(docs, similarity.Document{
			ID:   opp.ID.String(),
			Text: opportunityDocument(&opp),
		})
	}

	sims, err := r.similarity.Scores(ctx, profile.ResumeText, docs)
	if err != nil {
		r.logger.Warn("similarity service unavailable, proceeding with heuristic scores",
			zap.Error(err))
		return nil
	}
	return sims
}

// opportunityDocument concatenates the opportunity's text fields into the
// document sent to the similarity service.
func opportunityDocument(opp *Opportunity) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{opp.Title, opp.Description, opp.Requirements} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " \n ")
}

// sortMatches orders by the priority dimensions with the blended total as the
// final tie-break, or purely by blended total when no priority was given.
func (r *Ranker) sortMatches(matches []Match, priority []string) {
	if priority == nil {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].TotalScore > matches[j].TotalScore
		})
		return
	}

	sort.SliceStable(matches, func(i, j int) bool {
		for _, dim := range priority {
			a, b := dimensionScore(&matches[i], dim), dimensionScore(&matches[j], dim)
			if a != b {
				return a > b
			}
		}
		return matches[i].TotalScore > matches[j].TotalScore
	})
}

func dimensionScore(m *Match, dim string) float64 {
	switch dim {
	case DimensionSkills:
		return m.SkillScore
	case DimensionLocation:
		return m.LocationScore
	case DimensionSector:
		return m.SectorScore
	default:
		return m.TotalScore
	}
}

// padMatches appends recent opportunities until the minimum suggestion count
// is reached or opportunities are exhausted, never duplicating an entry.
func padMatches(matches []Match, opportunities []Opportunity) []Match {
	if len(matches) >= MinSuggestions {
		return matches
	}

	present := make(map[uuid.UUID]bool, len(matches))
	for _, m := range matches {
		present[m.Opportunity.ID] = true
	}

	for _, opp := range opportunities {
		if len(matches) >= MinSuggestions {
			break
		}
		if present[opp.ID] {
			continue
		}
		matches = append(matches, Match{
			Opportunity:   opp,
			TotalScore:    SuggestedTotal,
			MatchedSkills: []string{},
			Suggested:     true,
		})
	}
	return matches
}

// shouldPersist reports whether this run's scores go to the cache: persistence
// requires default weights so cached scores stay comparable across candidates.
func (r *Ranker) shouldPersist(opts Options, priority []string) bool {
	if r.scores == nil || priority != nil {
		return false
	}
	if opts.Persist != nil && !*opts.Persist {
		return false
	}
	return true
}

// persist upserts each non-padded, positive-score result. Failures are logged
// and skipped; ranking results are returned regardless.
func (r *Ranker) persist(ctx context.Context, candidateID uuid.UUID, matches []Match) {
	for _, m := range matches {
		if m.Suggested || m.TotalScore <= 0 {
			continue
		}
		err := r.scores.UpsertMatchScore(ctx, &ScoreUpsert{
			CandidateID:   candidateID,
			OpportunityID: m.Opportunity.ID,
			SkillScore:    m.SkillScore,
			LocationScore: m.LocationScore,
			SectorScore:   m.SectorScore,
			TotalScore:    m.TotalScore,
			MatchedSkills: m.MatchedSkills,
		})
		if err != nil {
			r.logger.Warn("match score upsert skipped",
				zap.String("candidate_id", candidateID.String()),
				zap.String("opportunity_id", m.Opportunity.ID.String()),
				zap.Error(err))
		}
	}
}
