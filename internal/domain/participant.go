package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyRegistered means the user is already a participant of the event.
var ErrAlreadyRegistered = errors.New("already registered")

// Registration represents a user's participation in an event.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// RegistrationRepository defines storage operations for event participation.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	Delete(ctx context.Context, eventID, userID string) error
	ListUsersByEventID(ctx context.Context, eventID string) ([]*User, error)
}

// Invitation records an email invitation sent for an event.
// swagger:model Invitation
type Invitation struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sent_at"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
}

// InvitationEmailData carries the fields rendered into an invitation email.
type InvitationEmailData struct {
	Email     string
	OwnerName string
	EventName string
	EventDate CalendarDate
	JoinCode  string
}

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, html,
// and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// EmailService sends domain emails.
type EmailService interface {
	SendInvitation(ctx context.Context, data *InvitationEmailData) error
}

// ParticipantService defines participant-facing operations.
type ParticipantService interface {
	// Join registers the user for the event. created is false if the user
	// was already registered.
	Join(ctx context.Context, eventID, userID string) (reg *Registration, created bool, err error)
	// JoinByCode registers the user for the event identified by join code.
	JoinByCode(ctx context.Context, joinCode, userID string) (reg *Registration, created bool, err error)
	// Leave removes the user's registration.
	Leave(ctx context.Context, eventID, userID string) error
	// Participants lists the users registered for the event.
	Participants(ctx context.Context, eventID string) ([]*User, error)
	// Invite records invitations and sends one email per address. Only the
	// event owner may invite. Returns the sent count and the addresses
	// that failed.
	Invite(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error)
}
