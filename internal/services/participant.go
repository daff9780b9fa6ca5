package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotplanner/internal/domain"
)

type participantService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	invitationRepo   domain.InvitationRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

func NewParticipantService(eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		invitationRepo:   invitationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

func (s *participantService) Join(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	existing, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get registration: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}
	reg := domain.NewRegistration(eventID, userID, time.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			// Lost a race with a concurrent join; re-read the winner.
			existing, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
			if err != nil {
				return nil, false, fmt.Errorf("get registration: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create registration: %w", err)
	}
	return reg, true, nil
}

func (s *participantService) JoinByCode(ctx context.Context, joinCode, userID string) (*domain.Registration, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	code := strings.ToLower(strings.TrimSpace(joinCode))
	if code == "" {
		return nil, false, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event by join code: %w", err)
	}
	return s.Join(ctx, event.ID, userID)
}

func (s *participantService) Leave(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *participantService) Participants(ctx context.Context, eventID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	users, err := s.registrationRepo.ListUsersByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *participantService) Invite(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return 0, nil, domain.ErrForbidden
	}

	ownerName := "Event owner"
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil && owner != nil {
		if name := strings.TrimSpace(owner.Name); name != "" {
			ownerName = name
		} else if owner.Email != "" {
			ownerName = owner.Email
		}
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		inv := &domain.Invitation{
			EventID: eventID,
			Email:   email,
			SentAt:  time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		data := &domain.InvitationEmailData{
			Email:     email,
			OwnerName: ownerName,
			EventName: event.Name,
			EventDate: event.Date,
			JoinCode:  event.JoinCode,
		}
		if err := s.emailService.SendInvitation(ctx, data); err != nil {
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}
