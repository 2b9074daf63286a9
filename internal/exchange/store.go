package exchange

import (
	"context"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/google/uuid"
)

// Store is the durable record of events, participants, and assignment links.
//
// Lookups return ErrNotFound (possibly wrapped) when a row is absent.
// Writes that hit a unique constraint return ErrDuplicate.
type Store interface {
	CreateEvent(ctx context.Context, name string) (*models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetEventByName(ctx context.Context, name string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// SetEventStatus moves the event from one status to another only when its
	// current status equals from. It returns ErrStatusChanged otherwise.
	SetEventStatus(ctx context.Context, id uuid.UUID, from, to models.EventStatus) error
	// LockPendingEvent claims the event row for the current transaction and
	// fails with ErrAlreadyCompleted unless the event is still pending.
	LockPendingEvent(ctx context.Context, id uuid.UUID) error

	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetParticipantByCode(ctx context.Context, code string) (*models.Participant, error)
	AddParticipant(ctx context.Context, participant *models.Participant) error
	RemoveParticipant(ctx context.Context, id uuid.UUID) error
	UpdateParticipantName(ctx context.Context, id uuid.UUID, name string) error
	// UpdateParticipantCode replaces the access code and clears has_accessed.
	UpdateParticipantCode(ctx context.Context, id uuid.UUID, code string) error
	UpdateParticipantContact(ctx context.Context, id uuid.UUID, contact *string) error
	// MarkAccessed sets has_accessed while the participant still holds code.
	// It is a no-op when already set or when the code has been replaced.
	MarkAccessed(ctx context.Context, id uuid.UUID, code string) error
	SetAssignment(ctx context.Context, giverID, receiverID uuid.UUID) error

	// Transaction runs fn against a store bound to a single transaction.
	// Returning an error from fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
