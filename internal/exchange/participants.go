package exchange

import (
	"context"
	"errors"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/google/uuid"
)

// UpdateParticipantInput carries the fields to change. Nil fields are left
// alone; an empty Contact removes the contact address.
type UpdateParticipantInput struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
}

// withPendingEvent runs fn in a transaction that holds the event row and has
// verified the event is still pending.
func (s *Service) withPendingEvent(
	ctx context.Context,
	eventID uuid.UUID,
	fn func(tx Store, event *models.Event) error,
) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.LockPendingEvent(ctx, eventID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrEventNotFound
			}
			return persistenceError("lock event", err)
		}
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return eventLookupError(err)
		}
		return fn(tx, event)
	})
}

func loadEventParticipant(ctx context.Context, tx Store, eventID, participantID uuid.UUID) (*models.Participant, error) {
	participant, err := tx.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, persistenceError("load participant", err)
	}
	if participant.EventID != eventID {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

func ensureNameFree(participants []models.Participant, name string, self uuid.UUID) error {
	key := models.NameKey(name)
	for _, p := range participants {
		if p.ID != self && p.NameKey == key {
			return validationError("a participant named %q already exists", p.Name)
		}
	}
	return nil
}

func (s *Service) AddParticipant(ctx context.Context, eventID uuid.UUID, in ParticipantInput) (*ParticipantView, error) {
	name, err := ValidateParticipantName(in.Name)
	if err != nil {
		return nil, err
	}
	contact, err := ValidateContact(in.Contact)
	if err != nil {
		return nil, err
	}

	var participant models.Participant
	err = s.withPendingEvent(ctx, eventID, func(tx Store, event *models.Event) error {
		existing, err := tx.ListParticipants(ctx, eventID)
		if err != nil {
			return persistenceError("list participants", err)
		}
		if len(existing) >= MaxParticipants {
			return validationError("an event can have at most %d participants", MaxParticipants)
		}
		if err := ensureNameFree(existing, name, uuid.Nil); err != nil {
			return err
		}
		code, err := uniqueCode(ctx, tx, event.Name, nil)
		if err != nil {
			return err
		}
		participant = models.Participant{
			EventID:    eventID,
			Name:       name,
			Contact:    contact,
			AccessCode: code,
		}
		if err := tx.AddParticipant(ctx, &participant); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return validationError("a participant named %q already exists", name)
			}
			return persistenceError("add participant", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("participant added",
		"component", "exchange",
		"event_id", eventID,
		"participant_id", participant.ID,
	)
	view := newParticipantView(participant)
	return &view, nil
}

func (s *Service) UpdateParticipant(
	ctx context.Context,
	eventID, participantID uuid.UUID,
	in UpdateParticipantInput,
) (*ParticipantView, error) {
	var name *string
	if in.Name != nil {
		validated, err := ValidateParticipantName(*in.Name)
		if err != nil {
			return nil, err
		}
		name = &validated
	}
	var contact *string
	if in.Contact != nil {
		validated, err := ValidateContact(in.Contact)
		if err != nil {
			return nil, err
		}
		contact = validated
	}

	var updated *models.Participant
	err := s.withPendingEvent(ctx, eventID, func(tx Store, _ *models.Event) error {
		participant, err := loadEventParticipant(ctx, tx, eventID, participantID)
		if err != nil {
			return err
		}
		if name != nil {
			existing, err := tx.ListParticipants(ctx, eventID)
			if err != nil {
				return persistenceError("list participants", err)
			}
			if err := ensureNameFree(existing, *name, participantID); err != nil {
				return err
			}
			if err := tx.UpdateParticipantName(ctx, participantID, *name); err != nil {
				if errors.Is(err, ErrDuplicate) {
					return validationError("a participant named %q already exists", *name)
				}
				return persistenceError("rename participant", err)
			}
		}
		if in.Contact != nil {
			if err := tx.UpdateParticipantContact(ctx, participantID, contact); err != nil {
				return persistenceError("update contact", err)
			}
		}
		updated, err = tx.GetParticipant(ctx, participant.ID)
		if err != nil {
			return persistenceError("reload participant", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := newParticipantView(*updated)
	return &view, nil
}

func (s *Service) RemoveParticipant(ctx context.Context, eventID, participantID uuid.UUID) error {
	err := s.withPendingEvent(ctx, eventID, func(tx Store, _ *models.Event) error {
		if _, err := loadEventParticipant(ctx, tx, eventID, participantID); err != nil {
			return err
		}
		if err := tx.RemoveParticipant(ctx, participantID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrParticipantNotFound
			}
			return persistenceError("remove participant", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("participant removed",
		"component", "exchange",
		"event_id", eventID,
		"participant_id", participantID,
	)
	return nil
}

// RegenerateCode gives one participant a fresh access code, different from
// the previous one, and clears has_accessed.
func (s *Service) RegenerateCode(ctx context.Context, eventID, participantID uuid.UUID) (*ParticipantView, error) {
	var updated *models.Participant
	err := s.withPendingEvent(ctx, eventID, func(tx Store, event *models.Event) error {
		participant, err := loadEventParticipant(ctx, tx, eventID, participantID)
		if err != nil {
			return err
		}
		updated, err = regenerate(ctx, tx, event, participant)
		return err
	})
	if err != nil {
		return nil, err
	}
	view := newParticipantView(*updated)
	return &view, nil
}

// RegenerateAllCodes replaces every participant's code. The batch runs in one
// transaction, so a single failed update leaves every code unchanged.
func (s *Service) RegenerateAllCodes(ctx context.Context, eventID uuid.UUID) ([]ParticipantView, error) {
	var views []ParticipantView
	err := s.withPendingEvent(ctx, eventID, func(tx Store, event *models.Event) error {
		participants, err := tx.ListParticipants(ctx, eventID)
		if err != nil {
			return persistenceError("list participants", err)
		}
		views = make([]ParticipantView, 0, len(participants))
		for i := range participants {
			updated, err := regenerate(ctx, tx, event, &participants[i])
			if err != nil {
				return err
			}
			views = append(views, newParticipantView(*updated))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("code regeneration failed, no codes were changed",
			"component", "exchange",
			"event_id", eventID,
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("access codes regenerated",
		"component", "exchange",
		"event_id", eventID,
		"participants", len(views),
	)
	return views, nil
}

func regenerate(ctx context.Context, tx Store, event *models.Event, participant *models.Participant) (*models.Participant, error) {
	code, err := uniqueCode(ctx, tx, event.Name, map[string]struct{}{participant.AccessCode: {}})
	if err != nil {
		return nil, err
	}
	if err := tx.UpdateParticipantCode(ctx, participant.ID, code); err != nil {
		return nil, persistenceError("update access code", err)
	}
	updated := *participant
	updated.AccessCode = code
	updated.HasAccessed = false
	return &updated, nil
}
