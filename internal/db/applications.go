package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Application represents a submitted application record
type Application struct {
	ID            uuid.UUID `json:"id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateApplication records an application. A second application for the
// same (candidate, opportunity) pair returns ErrDuplicateApplication.
func (db *DB) CreateApplication(ctx context.Context, candidateID, opportunityID uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (candidate_id, opportunity_id)
		 VALUES ($1, $2)
		 RETURNING id, candidate_id, opportunity_id, status, created_at`,
		candidateID, opportunityID,
	).Scan(&app.ID, &app.CandidateID, &app.OpportunityID, &app.Status, &app.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// ListApplications retrieves a candidate's applications, newest first
func (db *DB) ListApplications(ctx context.Context, candidateID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, opportunity_id, status, created_at
		 FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.CandidateID, &app.OpportunityID, &app.Status, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}
