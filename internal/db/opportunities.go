package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meera/intern-match/internal/matching"
)

const opportunityColumns = `id, title, description, requirements, required_skills,
	sector, location, is_remote, is_active,
	eligible_gender, eligible_residence, eligible_social, created_at`

func scanOpportunity(row pgx.Row) (*matching.Opportunity, error) {
	var o matching.Opportunity
	err := row.Scan(
		&o.ID, &o.Title, &o.Description, &o.Requirements, &o.RequiredSkills,
		&o.Sector, &o.Location, &o.IsRemote, &o.IsActive,
		&o.Eligibility.Gender, &o.Eligibility.Residence, &o.Eligibility.Social,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOpportunity inserts an opportunity and returns its ID
func (db *DB) CreateOpportunity(ctx context.Context, o *matching.Opportunity) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO opportunities (title, description, requirements, required_skills,
		   sector, location, is_remote, is_active,
		   eligible_gender, eligible_residence, eligible_social)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		o.Title, o.Description, o.Requirements, o.RequiredSkills,
		o.Sector, o.Location, o.IsRemote, o.IsActive,
		o.Eligibility.Gender, o.Eligibility.Residence, o.Eligibility.Social,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	return id, nil
}

// GetOpportunity retrieves one opportunity by ID
func (db *DB) GetOpportunity(ctx context.Context, id uuid.UUID) (*matching.Opportunity, error) {
	o, err := scanOpportunity(db.pool.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return o, nil
}

// ListActiveOpportunities retrieves all active opportunities, most recent
// first. Padding in the ranker relies on that ordering.
func (db *DB) ListActiveOpportunities(ctx context.Context) ([]matching.Opportunity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities
		 WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []matching.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opportunities = append(opportunities, *o)
	}
	return opportunities, nil
}
