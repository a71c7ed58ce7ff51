package db

import (
	"context"
	"fmt"
)

// migrations run in order inside Migrate. Each statement is idempotent so
// Migrate can be re-run against an existing database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		gender TEXT NOT NULL DEFAULT '',
		residence TEXT NOT NULL DEFAULT '',
		social_background TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS candidate_profiles (
		candidate_id UUID PRIMARY KEY REFERENCES candidates(id) ON DELETE CASCADE,
		skills TEXT[] NOT NULL DEFAULT '{}',
		sector_preference TEXT NOT NULL DEFAULT '',
		location_preference TEXT NOT NULL DEFAULT '',
		resume_text TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS opportunities (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '',
		required_skills TEXT[] NOT NULL DEFAULT '{}',
		sector TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		is_remote BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		eligible_gender TEXT NOT NULL DEFAULT '',
		eligible_residence TEXT NOT NULL DEFAULT '',
		eligible_social TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// The (candidate_id, opportunity_id) constraint is what makes score
	// upserts idempotent; without it ON CONFLICT fails with SQLSTATE 42P10.
	`CREATE TABLE IF NOT EXISTS match_scores (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		opportunity_id UUID NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
		skill_score DOUBLE PRECISION NOT NULL,
		location_score DOUBLE PRECISION NOT NULL,
		sector_score DOUBLE PRECISION NOT NULL,
		total_score DOUBLE PRECISION NOT NULL,
		matched_skills TEXT[] NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (candidate_id, opportunity_id)
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		candidate_id UUID NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		opportunity_id UUID NOT NULL REFERENCES opportunities(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'submitted',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (candidate_id, opportunity_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_scores_candidate ON match_scores (candidate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_opportunities_active ON opportunities (is_active, created_at DESC)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
