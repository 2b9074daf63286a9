package exchange

import (
	"context"
	"errors"
	"strings"
)

// Verify resolves an access code for its holder. Any lookup miss, including
// a code whose event is gone, yields ErrCodeNotFound. Only the holder's own
// recipient name is ever returned, and only once the event is completed.
func (s *Service) Verify(ctx context.Context, code string) (*VerifyResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, validationError("access code is required")
	}

	participant, err := s.store.GetParticipantByCode(ctx, code)
	if err != nil {
		return nil, s.verifyMiss(err)
	}
	event, err := s.store.GetEvent(ctx, participant.EventID)
	if err != nil {
		return nil, s.verifyMiss(err)
	}

	if !participant.HasAccessed {
		if err := s.store.MarkAccessed(ctx, participant.ID, participant.AccessCode); err != nil {
			s.logger.Warn("failed to record first access",
				"component", "exchange",
				"participant_id", participant.ID,
				"error", err,
			)
		}
	}

	result := &VerifyResult{
		Participant: ParticipantIdentity{ID: participant.ID, Name: participant.Name},
		Event:       newEventInfo(event),
	}
	if event.IsCompleted() && participant.AssignedToID != nil {
		receiver, err := s.store.GetParticipant(ctx, *participant.AssignedToID)
		if err != nil {
			return nil, s.verifyMiss(err)
		}
		name := receiver.Name
		result.AssignedToName = &name
	}
	s.metrics.CodeVerified(true)
	return result, nil
}

func (s *Service) verifyMiss(err error) error {
	if errors.Is(err, ErrNotFound) {
		s.metrics.CodeVerified(false)
		return ErrCodeNotFound
	}
	return persistenceError("verify code", err)
}
