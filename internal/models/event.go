package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	StatusPending   EventStatus = "PENDING"
	StatusCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key"`
	Name         string        `gorm:"uniqueIndex;not null"`
	Status       EventStatus   `gorm:"type:varchar(16);not null;default:'PENDING'"`
	Participants []Participant `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = StatusPending
	}
	return
}

func (event *Event) IsCompleted() bool {
	return event.Status == StatusCompleted
}
