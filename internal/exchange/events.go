package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/google/uuid"
)

type ParticipantInput struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
}

type CreateEventInput struct {
	Name         string             `json:"name"`
	Participants []ParticipantInput `json:"participants"`
}

type normalizedParticipant struct {
	name    string
	contact *string
}

func normalizeParticipants(inputs []ParticipantInput) ([]normalizedParticipant, error) {
	if err := ValidateParticipantCount(len(inputs)); err != nil {
		return nil, err
	}
	out := make([]normalizedParticipant, 0, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		name, err := ValidateParticipantName(in.Name)
		if err != nil {
			return nil, err
		}
		contact, err := ValidateContact(in.Contact)
		if err != nil {
			return nil, err
		}
		out = append(out, normalizedParticipant{name: name, contact: contact})
		names = append(names, name)
	}
	if err := ValidateUniqueNames(names); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEvent validates the whole request before touching the store, then
// creates the event and its participants in one transaction.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*EventView, error) {
	name, err := ValidateEventName(in.Name)
	if err != nil {
		return nil, err
	}
	participants, err := normalizeParticipants(in.Participants)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetEventByName(ctx, name); err == nil {
		return nil, ErrEventNameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, persistenceError("look up event name", err)
	}

	var (
		event   *models.Event
		created []models.Participant
	)
	err = s.store.Transaction(ctx, func(tx Store) error {
		var err error
		event, err = tx.CreateEvent(ctx, name)
		if err != nil {
			if errors.Is(err, ErrDuplicate) {
				return ErrEventNameTaken
			}
			return persistenceError("create event", err)
		}
		used := make(map[string]struct{}, len(participants))
		created = make([]models.Participant, 0, len(participants))
		for _, p := range participants {
			code, err := uniqueCode(ctx, tx, event.Name, used)
			if err != nil {
				return err
			}
			used[code] = struct{}{}
			participant := models.Participant{
				EventID:    event.ID,
				Name:       p.name,
				Contact:    p.contact,
				AccessCode: code,
			}
			if err := tx.AddParticipant(ctx, &participant); err != nil {
				return persistenceError(fmt.Sprintf("add participant %q", p.name), err)
			}
			created = append(created, participant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.EventCreated()
	s.logger.Info("event created",
		"component", "exchange",
		"event_id", event.ID,
		"participants", len(created),
	)
	view := buildEventView(event, created)
	return &view, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]EventSummary, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, persistenceError("list events", err)
	}
	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summary := EventSummary{
			ID:               event.ID,
			Name:             event.Name,
			Status:           event.Status,
			CreatedAt:        event.CreatedAt,
			ParticipantCount: len(event.Participants),
		}
		for _, p := range event.Participants {
			if p.HasAccessed {
				summary.AccessedCount++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*EventView, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, eventLookupError(err)
	}
	participants, err := s.store.ListParticipants(ctx, id)
	if err != nil {
		return nil, persistenceError("list participants", err)
	}
	view := buildEventView(event, participants)
	return &view, nil
}

// DeleteEvent removes the event, its participants, and their assignment links.
// It is allowed in any status.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) (*EventInfo, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, eventLookupError(err)
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return nil, eventLookupError(err)
	}
	s.logger.Info("event deleted",
		"component", "exchange",
		"event_id", id,
	)
	info := newEventInfo(event)
	return &info, nil
}

func eventLookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrEventNotFound
	}
	return persistenceError("load event", err)
}
