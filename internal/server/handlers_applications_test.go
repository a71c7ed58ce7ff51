package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/meera/intern-match/internal/db"
	"github.com/meera/intern-match/internal/matching"
)

func postApplication(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)
	return w
}

func TestHandleCreateApplication_Success(t *testing.T) {
	store := &fakeStore{
		profile:     &matching.CandidateProfile{CandidateID: uuid.New()},
		opportunity: &matching.Opportunity{ID: uuid.New(), IsActive: true},
	}
	s := newTestServer(store, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{
		CandidateID:   uuid.NewString(),
		OpportunityID: uuid.NewString(),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var app db.Application
	_ = json.Unmarshal(w.Body.Bytes(), &app)
	assert.Equal(t, "submitted", app.Status)
}

func TestHandleCreateApplication_InvalidBody(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeMatcher{})

	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader([]byte("{ not json")))
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateApplication_MissingFields(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{CandidateID: uuid.NewString()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateApplication_NotUUID(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{CandidateID: "abc", OpportunityID: "def"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateApplication_EligibilityRejection(t *testing.T) {
	store := &fakeStore{
		profile: &matching.CandidateProfile{
			CandidateID: uuid.New(),
			Category:    matching.Category{Gender: "male"},
		},
		opportunity: &matching.Opportunity{
			ID:          uuid.New(),
			Eligibility: matching.Eligibility{Gender: "female"},
		},
	}
	s := newTestServer(store, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{
		CandidateID:   uuid.NewString(),
		OpportunityID: uuid.NewString(),
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "gender requirement not met", resp["error"])
}

func TestHandleCreateApplication_Duplicate(t *testing.T) {
	store := &fakeStore{
		profile:     &matching.CandidateProfile{CandidateID: uuid.New()},
		opportunity: &matching.Opportunity{ID: uuid.New()},
		appErr:      db.ErrDuplicateApplication,
	}
	s := newTestServer(store, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{
		CandidateID:   uuid.NewString(),
		OpportunityID: uuid.NewString(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "You have already applied to this opportunity", resp["error"])
}

func TestHandleCreateApplication_CandidateNotFound(t *testing.T) {
	store := &fakeStore{profileErr: db.ErrCandidateNotFound}
	s := newTestServer(store, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{
		CandidateID:   uuid.NewString(),
		OpportunityID: uuid.NewString(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreateApplication_OpportunityNotFound(t *testing.T) {
	store := &fakeStore{
		profile: &matching.CandidateProfile{CandidateID: uuid.New()},
		oppErr:  db.ErrOpportunityNotFound,
	}
	s := newTestServer(store, &fakeMatcher{})

	w := postApplication(t, s, ApplyRequest{
		CandidateID:   uuid.NewString(),
		OpportunityID: uuid.NewString(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
