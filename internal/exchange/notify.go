package exchange

import (
	"context"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/farellandr/secretsanta/internal/notifier"
	"github.com/google/uuid"
)

// SendNotifications messages every participant with a contact address: an
// invitation while the event is pending, a completion notice afterwards.
func (s *Service) SendNotifications(ctx context.Context, eventID uuid.UUID) (*notifier.Result, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, eventLookupError(err)
	}
	participants, err := s.store.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, persistenceError("list participants", err)
	}
	kind := notifier.KindInvitation
	if event.IsCompleted() {
		kind = notifier.KindCompletion
	}
	result := s.broadcast(ctx, event, participants, kind)
	s.logger.Info("notifications sent",
		"component", "exchange",
		"event_id", eventID,
		"kind", kind,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return &result, nil
}

// broadcast never carries assignment data; recipients learn their match only
// through code verification.
func (s *Service) broadcast(
	ctx context.Context,
	event *models.Event,
	participants []models.Participant,
	kind notifier.Kind,
) notifier.Result {
	recipients := make([]notifier.Recipient, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, notifier.Recipient{
			Contact: p.Contact,
			Payload: notifier.Payload{
				ParticipantName: p.Name,
				EventName:       event.Name,
				AccessCode:      p.AccessCode,
				AccessURL:       notifier.AccessURL(s.baseURL, p.AccessCode),
			},
		})
	}
	return notifier.Broadcast(ctx, s.notifier, recipients, kind, s.notifyConcurrency,
		func(kind notifier.Kind, delivered bool) {
			s.metrics.NotificationSent(string(kind), delivered)
		},
	)
}
