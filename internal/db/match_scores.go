package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/meera/intern-match/internal/matching"
)

// MatchStats summarizes a candidate's persisted match scores.
type MatchStats struct {
	Total         int     `json:"total"`
	HighMatches   int     `json:"high_matches"`   // total_score >= 0.8
	MediumMatches int     `json:"medium_matches"` // 0.6 <= total_score < 0.8
	LowMatches    int     `json:"low_matches"`    // total_score < 0.6
	BestScore     float64 `json:"best_score"`
	AvgScore      float64 `json:"avg_score"`
}

// UpsertMatchScore stores one computed score, replacing a previous row for
// the same (candidate, opportunity) pair. Re-running a matching pass
// therefore never produces duplicates.
func (db *DB) UpsertMatchScore(ctx context.Context, s *matching.ScoreUpsert) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO match_scores (candidate_id, opportunity_id, skill_score,
		   location_score, sector_score, total_score, matched_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (candidate_id, opportunity_id) DO UPDATE SET
		   skill_score = $3, location_score = $4, sector_score = $5,
		   total_score = $6, matched_skills = $7, updated_at = NOW()`,
		s.CandidateID, s.OpportunityID, s.SkillScore,
		s.LocationScore, s.SectorScore, s.TotalScore, s.MatchedSkills,
	)
	if err != nil {
		if pgErrCode(err) == pgInvalidColumnReference {
			return fmt.Errorf("match_scores is missing its (candidate_id, opportunity_id) unique constraint; run migrations: %w", err)
		}
		return fmt.Errorf("failed to upsert match score: %w", err)
	}
	return nil
}

// CountMatchScores returns how many scores are stored for a candidate
func (db *DB) CountMatchScores(ctx context.Context, candidateID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM match_scores WHERE candidate_id = $1`,
		candidateID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count match scores: %w", err)
	}
	return count, nil
}

// GetMatchStats aggregates a candidate's persisted scores into quality
// buckets.
func (db *DB) GetMatchStats(ctx context.Context, candidateID uuid.UUID) (*MatchStats, error) {
	var stats MatchStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE total_score >= 0.8),
		        COUNT(*) FILTER (WHERE total_score >= 0.6 AND total_score < 0.8),
		        COUNT(*) FILTER (WHERE total_score < 0.6),
		        COALESCE(MAX(total_score), 0),
		        COALESCE(AVG(total_score), 0)
		 FROM match_scores WHERE candidate_id = $1`,
		candidateID,
	).Scan(&stats.Total, &stats.HighMatches, &stats.MediumMatches,
		&stats.LowMatches, &stats.BestScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("failed to get match stats: %w", err)
	}
	return &stats, nil
}
