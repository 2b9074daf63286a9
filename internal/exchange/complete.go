package exchange

import (
	"context"
	"errors"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/farellandr/secretsanta/internal/notifier"
	"github.com/google/uuid"
)

// Complete runs the draw for a pending event and marks it completed. It
// succeeds at most once per event.
//
// The status flip is a conditional update executed first inside the
// transaction, so concurrent callers serialize on the event row and every
// caller but one sees ErrAlreadyCompleted. Any later failure rolls the flip
// back together with the links written so far.
func (s *Service) Complete(ctx context.Context, eventID uuid.UUID) (*CompletionResult, error) {
	var (
		event        *models.Event
		participants []models.Participant
	)
	err := s.store.Transaction(ctx, func(tx Store) error {
		err := tx.SetEventStatus(ctx, eventID, models.StatusPending, models.StatusCompleted)
		switch {
		case errors.Is(err, ErrNotFound):
			return ErrEventNotFound
		case errors.Is(err, ErrStatusChanged):
			return ErrAlreadyCompleted
		case err != nil:
			return persistenceError("complete event", err)
		}

		participants, err = tx.ListParticipants(ctx, eventID)
		if err != nil {
			return persistenceError("list participants", err)
		}
		ids := make([]uuid.UUID, len(participants))
		for i, p := range participants {
			ids[i] = p.ID
		}
		links, err := Assign(ids)
		if err != nil {
			return err
		}
		for _, link := range links {
			if err := tx.SetAssignment(ctx, link.GiverID, link.ReceiverID); err != nil {
				return persistenceError("store assignment", err)
			}
		}

		event, err = tx.GetEvent(ctx, eventID)
		if err != nil {
			return eventLookupError(err)
		}
		participants, err = tx.ListParticipants(ctx, eventID)
		if err != nil {
			return persistenceError("reload participants", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrNotFound):
		case errors.Is(err, ErrInsufficientParticipants):
			s.logger.Info("draw skipped, not enough participants",
				"component", "exchange",
				"event_id", eventID,
			)
		default:
			s.logger.Error("draw failed, event left pending",
				"component", "exchange",
				"event_id", eventID,
				"error", err,
			)
		}
		return nil, err
	}

	s.metrics.EventCompleted()
	s.logger.Info("event completed",
		"component", "exchange",
		"event_id", eventID,
		"participants", len(participants),
	)

	result := s.broadcast(ctx, event, participants, notifier.KindCompletion)
	if result.Failed > 0 {
		s.logger.Warn("some completion notices were not delivered",
			"component", "exchange",
			"event_id", eventID,
			"sent", result.Sent,
			"failed", result.Failed,
			"skipped", result.Skipped,
		)
	}
	return &CompletionResult{
		Event:         buildEventView(event, participants),
		Notifications: result,
	}, nil
}
