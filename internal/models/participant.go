package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Participant struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_event_name"`
	Name         string     `gorm:"not null"`
	NameKey      string     `gorm:"not null;uniqueIndex:idx_participants_event_name"`
	Contact      *string
	AccessCode   string     `gorm:"not null;uniqueIndex"`
	HasAccessed  bool       `gorm:"not null;default:false"`
	AssignedToID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NameKey folds a display name into the form used for per-event uniqueness.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (participant *Participant) BeforeCreate(tx *gorm.DB) (err error) {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	participant.NameKey = NameKey(participant.Name)
	return
}
