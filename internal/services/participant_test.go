package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"slotplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	invitations []*domain.Invitation
	err         error
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.err != nil {
		return f.err
	}
	inv.ID = fmt.Sprintf("inv-%d", len(f.invitations)+1)
	f.invitations = append(f.invitations, inv)
	return nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.EventID == eventID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// fakeEmailService records sent invitations.
type fakeEmailService struct {
	sent    []*domain.InvitationEmailData
	failFor map[string]bool
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.failFor[data.Email] {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, data)
	return nil
}

type participantFixture struct {
	eventRepo *fakeEventRepo
	regRepo   *fakeRegistrationRepo
	invRepo   *fakeInvitationRepo
	userRepo  *fakeUserRepo
	email     *fakeEmailService
	svc       domain.ParticipantService
	event     *domain.Event
}

func newParticipantFixture(t *testing.T) *participantFixture {
	t.Helper()
	f := &participantFixture{
		eventRepo: newFakeEventRepo(),
		regRepo:   newFakeRegistrationRepo(),
		invRepo:   &fakeInvitationRepo{},
		userRepo:  newFakeUserRepo(),
		email:     &fakeEmailService{failFor: make(map[string]bool)},
	}
	f.svc = NewParticipantService(f.eventRepo, f.regRepo, f.invRepo, f.userRepo, f.email, 2*time.Second)

	event := domain.NewEvent("Offsite", domain.CalendarDate{Year: 2024, Month: 3, Day: 10}, "owner-1", nil, time.Now(), time.Now())
	event.JoinCode = "ab12"
	require.NoError(t, f.eventRepo.Create(context.Background(), event))
	f.event = event
	return f
}

func TestParticipantService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("first join creates a registration", func(t *testing.T) {
		f := newParticipantFixture(t)
		reg, created, err := f.svc.Join(ctx, f.event.ID, "user-2")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, f.event.ID, reg.EventID)
		assert.Equal(t, "user-2", reg.UserID)
	})

	t.Run("second join is idempotent", func(t *testing.T) {
		f := newParticipantFixture(t)
		first, created, err := f.svc.Join(ctx, f.event.ID, "user-2")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := f.svc.Join(ctx, f.event.ID, "user-2")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newParticipantFixture(t)
		_, _, err := f.svc.Join(ctx, "missing", "user-2")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestParticipantService_JoinByCode(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t)

	reg, created, err := f.svc.JoinByCode(ctx, "  AB12 ", "user-2")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, f.event.ID, reg.EventID)

	_, _, err = f.svc.JoinByCode(ctx, "zzzz", "user-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, _, err = f.svc.JoinByCode(ctx, "  ", "user-2")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParticipantService_Leave(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t)

	_, _, err := f.svc.Join(ctx, f.event.ID, "user-2")
	require.NoError(t, err)

	require.NoError(t, f.svc.Leave(ctx, f.event.ID, "user-2"))
	err = f.svc.Leave(ctx, f.event.ID, "user-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestParticipantService_Participants(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t)

	users, err := f.svc.Participants(ctx, f.event.ID)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, _, err = f.svc.Join(ctx, f.event.ID, "user-2")
	require.NoError(t, err)
	f.regRepo.users["user-2"] = &domain.User{ID: "user-2", Name: "Sam"}

	users, err = f.svc.Participants(ctx, f.event.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Sam", users[0].Name)

	_, err = f.svc.Participants(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestParticipantService_Invite(t *testing.T) {
	ctx := context.Background()

	t.Run("owner invites", func(t *testing.T) {
		f := newParticipantFixture(t)
		f.userRepo.byID["owner-1"] = &domain.User{ID: "owner-1", Name: "Alex", Email: "alex@example.com"}

		sent, failed, err := f.svc.Invite(ctx, f.event.ID, "owner-1", []string{"A@Example.com", " ", "b@example.com"})
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Empty(t, failed)
		require.Len(t, f.email.sent, 2)
		assert.Equal(t, "a@example.com", f.email.sent[0].Email)
		assert.Equal(t, "Alex", f.email.sent[0].OwnerName)
		assert.Equal(t, "ab12", f.email.sent[0].JoinCode)
		assert.Len(t, f.invRepo.invitations, 2)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newParticipantFixture(t)
		_, _, err := f.svc.Invite(ctx, f.event.ID, "user-2", []string{"a@example.com"})
		assert.True(t, errors.Is(err, domain.ErrForbidden))
	})

	t.Run("mailer failure collects address", func(t *testing.T) {
		f := newParticipantFixture(t)
		f.email.failFor["bad@example.com"] = true

		sent, failed, err := f.svc.Invite(ctx, f.event.ID, "owner-1", []string{"good@example.com", "bad@example.com"})
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"bad@example.com"}, failed)
	})
}
