package exchange

import (
	"sort"
	"time"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/farellandr/secretsanta/internal/notifier"
	"github.com/google/uuid"
)

// EventView is the administrative read model of an event and its participants.
type EventView struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Status       models.EventStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	Participants []ParticipantView  `json:"participants"`
}

// ParticipantView exposes a participant to administrators. AssignedToName is
// set only once the event is completed.
type ParticipantView struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Contact        *string    `json:"contact,omitempty"`
	AccessCode     string     `json:"access_code"`
	HasAccessed    bool       `json:"has_accessed"`
	AssignedToID   *uuid.UUID `json:"assigned_to_id,omitempty"`
	AssignedToName *string    `json:"assigned_to_name,omitempty"`
}

type EventSummary struct {
	ID               uuid.UUID          `json:"id"`
	Name             string             `json:"name"`
	Status           models.EventStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	ParticipantCount int                `json:"participant_count"`
	AccessedCount    int                `json:"accessed_count"`
}

// VerifyResult is everything a participant may learn from their own code.
type VerifyResult struct {
	Participant    ParticipantIdentity `json:"participant"`
	Event          EventInfo           `json:"event"`
	AssignedToName *string             `json:"assigned_to_name"`
}

type ParticipantIdentity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type EventInfo struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Status    models.EventStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type CompletionResult struct {
	Event         EventView       `json:"event"`
	Notifications notifier.Result `json:"notifications"`
}

func newParticipantView(p models.Participant) ParticipantView {
	return ParticipantView{
		ID:          p.ID,
		Name:        p.Name,
		Contact:     p.Contact,
		AccessCode:  p.AccessCode,
		HasAccessed: p.HasAccessed,
	}
}

// buildEventView joins participants with their recipients. Recipient names are
// resolved only for completed events.
func buildEventView(event *models.Event, participants []models.Participant) EventView {
	byID := make(map[uuid.UUID]models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	views := make([]ParticipantView, 0, len(participants))
	for _, p := range participants {
		view := newParticipantView(p)
		if event.IsCompleted() && p.AssignedToID != nil {
			if receiver, ok := byID[*p.AssignedToID]; ok {
				id, name := receiver.ID, receiver.Name
				view.AssignedToID = &id
				view.AssignedToName = &name
			}
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return models.NameKey(views[i].Name) < models.NameKey(views[j].Name)
	})
	return EventView{
		ID:           event.ID,
		Name:         event.Name,
		Status:       event.Status,
		CreatedAt:    event.CreatedAt,
		Participants: views,
	}
}

func newEventInfo(event *models.Event) EventInfo {
	return EventInfo{
		ID:        event.ID,
		Name:      event.Name,
		Status:    event.Status,
		CreatedAt: event.CreatedAt,
	}
}
