package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrCode(t *testing.T) {
	assert.Equal(t, "23505", pgErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "23505", pgErrCode(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.Equal(t, "", pgErrCode(errors.New("not a pg error")))
	assert.Equal(t, "", pgErrCode(nil))
}

func TestSentinelErrorsDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrCandidateNotFound, ErrOpportunityNotFound)
	assert.NotErrorIs(t, ErrDuplicateApplication, ErrCandidateNotFound)
}
