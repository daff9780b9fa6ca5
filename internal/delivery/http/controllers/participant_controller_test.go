package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"slotplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParticipantService struct {
	joinReg       *domain.Registration
	joinCreated   bool
	joinErr       error
	lastJoinEvent string
	lastJoinUser  string
	lastJoinCode  string
	leaveErr      error
	participants  []*domain.User
	inviteSent    int
	inviteFailed  []string
	inviteErr     error
	lastEmails    []string
}

func (f *fakeParticipantService) Join(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	f.lastJoinEvent = eventID
	f.lastJoinUser = userID
	return f.joinReg, f.joinCreated, f.joinErr
}

func (f *fakeParticipantService) JoinByCode(ctx context.Context, joinCode, userID string) (*domain.Registration, bool, error) {
	f.lastJoinCode = joinCode
	f.lastJoinUser = userID
	return f.joinReg, f.joinCreated, f.joinErr
}

func (f *fakeParticipantService) Leave(ctx context.Context, eventID, userID string) error {
	f.lastJoinEvent = eventID
	f.lastJoinUser = userID
	return f.leaveErr
}

func (f *fakeParticipantService) Participants(ctx context.Context, eventID string) ([]*domain.User, error) {
	return f.participants, nil
}

func (f *fakeParticipantService) Invite(ctx context.Context, eventID, actorID string, emails []string) (int, []string, error) {
	f.lastJoinEvent = eventID
	f.lastJoinUser = actorID
	f.lastEmails = emails
	if f.inviteErr != nil {
		return 0, nil, f.inviteErr
	}
	return f.inviteSent, f.inviteFailed, nil
}

func TestParticipantController_Join(t *testing.T) {
	t.Run("new registration", func(t *testing.T) {
		svc := &fakeParticipantService{
			joinReg:     &domain.Registration{ID: "reg-1", EventID: "ev-1", UserID: "user-1"},
			joinCreated: true,
		}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/participants", c.Join)
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-1/participants", ""))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "ev-1", svc.lastJoinEvent)
		assert.Equal(t, "user-1", svc.lastJoinUser)

		data, _ := decodeEnvelope(t, w)
		var resp JoinResponse
		require.NoError(t, json.Unmarshal(data, &resp))
		assert.True(t, resp.Created)
		assert.Equal(t, "reg-1", resp.Registration.ID)
	})

	t.Run("already registered returns 200", func(t *testing.T) {
		svc := &fakeParticipantService{
			joinReg: &domain.Registration{ID: "reg-1", EventID: "ev-1", UserID: "user-1"},
		}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/participants", c.Join)
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-1/participants", ""))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("event not found", func(t *testing.T) {
		svc := &fakeParticipantService{joinErr: domain.ErrNotFound}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/participants", c.Join)
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-missing/participants", ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		c := NewParticipantController(testLogger, &fakeParticipantService{})
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/participants", c.Join)
		mux.ServeHTTP(w, httptest.NewRequest("POST", "/events/ev-1/participants", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestParticipantController_JoinByCode(t *testing.T) {
	svc := &fakeParticipantService{
		joinReg:     &domain.Registration{ID: "reg-1", EventID: "ev-1", UserID: "user-1"},
		joinCreated: true,
	}
	c := NewParticipantController(testLogger, svc)
	w := httptest.NewRecorder()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/join/{joinCode}", c.JoinByCode)
	mux.ServeHTTP(w, authedRequest("POST", "/events/join/ab12", ""))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ab12", svc.lastJoinCode)

	t.Run("unknown code", func(t *testing.T) {
		svc := &fakeParticipantService{joinErr: domain.ErrNotFound}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/join/{joinCode}", c.JoinByCode)
		mux.ServeHTTP(w, authedRequest("POST", "/events/join/zzzz", ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestParticipantController_Leave(t *testing.T) {
	svc := &fakeParticipantService{}
	c := NewParticipantController(testLogger, svc)
	w := httptest.NewRecorder()
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /events/{eventID}/participants", c.Leave)
	mux.ServeHTTP(w, authedRequest("DELETE", "/events/ev-1/participants", ""))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "ev-1", svc.lastJoinEvent)

	t.Run("not registered", func(t *testing.T) {
		svc := &fakeParticipantService{leaveErr: domain.ErrNotFound}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /events/{eventID}/participants", c.Leave)
		mux.ServeHTTP(w, authedRequest("DELETE", "/events/ev-1/participants", ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestParticipantController_ListParticipants(t *testing.T) {
	svc := &fakeParticipantService{participants: []*domain.User{{ID: "user-2", Name: "Sam"}}}
	c := NewParticipantController(testLogger, svc)
	w := httptest.NewRecorder()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{eventID}/participants", c.ListParticipants)
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/events/ev-1/participants", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data, _ := decodeEnvelope(t, w)
	var resp ParticipantListResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, "Sam", resp.Participants[0].Name)
}

func TestParticipantController_Invite(t *testing.T) {
	t.Run("success with partial failures", func(t *testing.T) {
		svc := &fakeParticipantService{inviteSent: 1, inviteFailed: []string{"bad@example.com"}}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/invitations", c.Invite)
		body := `{"emails":["ok@example.com","bad@example.com"]}`
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-1/invitations", body))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"ok@example.com", "bad@example.com"}, svc.lastEmails)

		data, _ := decodeEnvelope(t, w)
		var resp InviteResponse
		require.NoError(t, json.Unmarshal(data, &resp))
		assert.Equal(t, 1, resp.Sent)
		assert.Equal(t, []string{"bad@example.com"}, resp.Failed)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := &fakeParticipantService{inviteErr: domain.ErrForbidden}
		c := NewParticipantController(testLogger, svc)
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/invitations", c.Invite)
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-1/invitations", `{"emails":["x@example.com"]}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("empty emails rejected", func(t *testing.T) {
		c := NewParticipantController(testLogger, &fakeParticipantService{})
		w := httptest.NewRecorder()
		mux := http.NewServeMux()
		mux.HandleFunc("POST /events/{eventID}/invitations", c.Invite)
		mux.ServeHTTP(w, authedRequest("POST", "/events/ev-1/invitations", `{"emails":[]}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
