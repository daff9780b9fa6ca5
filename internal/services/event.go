package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"strings"
	"time"

	"slotplanner/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

const joinCodeLength = 4

var joinCodeAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateJoinCode() (string, error) {
	b := make([]rune, joinCodeLength)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// checkFields validates everything except the date. Returns the reason for a
// NeedsInputError, or nil.
func checkFields(name string, timesAllowed []domain.TimeOfDay) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidInput
	}
	for _, t := range timesAllowed {
		if !domain.CatalogContains(t) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, ownerID, name string, date domain.CalendarDate, timesAllowed []domain.TimeOfDay) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("event owner is required")
	}

	// Date validation runs before any store call. On failure the caller
	// gets the unanchored catalog back: there is no prior date to anchor to.
	if !date.Valid() {
		return nil, &domain.NeedsInputError{Reason: domain.ErrInvalidDate, Slots: domain.AllSlots()}
	}
	if err := checkFields(name, timesAllowed); err != nil {
		return nil, &domain.NeedsInputError{Reason: err, Slots: domain.AllSlots()}
	}

	now := time.Now()
	event := domain.NewEvent(strings.TrimSpace(name), date, ownerID, timesAllowed, now, now)

	code, err := generateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("generate join code: %w", err)
	}
	event.JoinCode = code

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, actorID, name string, date domain.CalendarDate, timesAllowed []domain.TimeOfDay) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// Ownership is compared against the stored owner, never a submitted one.
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}

	// On recoverable failures the catalog is re-anchored to the event's
	// current, pre-update date.
	current := event.Date
	if !date.Valid() {
		return nil, &domain.NeedsInputError{Reason: domain.ErrInvalidDate, Slots: domain.AllSlots(), AnchorDate: &current}
	}
	if err := checkFields(name, timesAllowed); err != nil {
		return nil, &domain.NeedsInputError{Reason: err, Slots: domain.AllSlots(), AnchorDate: &current}
	}

	event.Name = strings.TrimSpace(name)
	event.Date = date
	event.TimesAllowed = timesAllowed
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		// A delete by a non-owner is dropped without error: the caller sees
		// the same outcome as a successful delete. Logged so operators can
		// still see the attempts.
		s.logger.WarnContext(ctx, "delete by non-owner ignored", "event_id", eventID, "actor_id", actorID)
		return nil
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, actorID string) (mine, others []*domain.Event, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list events: %w", err)
	}
	// The store's order is not trusted; sort by date here.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Time().Before(events[j].Date.Time())
	})
	mine = make([]*domain.Event, 0)
	others = make([]*domain.Event, 0)
	for _, e := range events {
		if e.OwnerID == actorID {
			mine = append(mine, e)
		} else {
			others = append(others, e)
		}
	}
	return mine, others, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.registrationRepo.ListUsersByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.User{}
	}
	return &domain.EventDetail{
		Event:        event,
		AllowedTimes: event.AnchoredTimes(),
		Participants: participants,
	}, nil
}
