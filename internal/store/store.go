// Package store persists events and participants with gorm. It implements
// exchange.Store on top of Postgres in production and SQLite for local runs.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/farellandr/secretsanta/internal/exchange"
	"github.com/farellandr/secretsanta/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ exchange.Store = (*Store)(nil)

func New(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the tables backing the store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Event{}, &models.Participant{})
}

// OpenSQLite opens a file-backed SQLite database. All access goes through a
// single connection, which serializes writers.
func OpenSQLite(path string, gormLogger gormlogger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = gormlogger.Discard
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx exchange.Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
}

func (s *Store) CreateEvent(ctx context.Context, name string) (*models.Event, error) {
	event := models.Event{
		Name:   name,
		Status: models.StatusPending,
	}
	if err := s.conn(ctx).Create(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.conn(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *Store) GetEventByName(ctx context.Context, name string) (*models.Event, error) {
	var event models.Event
	if err := s.conn(ctx).Where("name = ?", name).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.conn(ctx).
		Preload("Participants").
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

// DeleteEvent removes the event together with its participants and their links.
func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return translate(err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Event{})
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("event %s: %w", id, exchange.ErrNotFound)
		}
		return nil
	})
}

func (s *Store) SetEventStatus(ctx context.Context, id uuid.UUID, from, to models.EventStatus) error {
	result := s.conn(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return exchange.ErrStatusChanged
}

func (s *Store) LockPendingEvent(ctx context.Context, id uuid.UUID) error {
	result := s.conn(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("updated_at", time.Now())
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return exchange.ErrAlreadyCompleted
}

func (s *Store) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error) {
	var participants []models.Participant
	err := s.conn(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, translate(err)
	}
	return participants, nil
}

func (s *Store) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	var participant models.Participant
	if err := s.conn(ctx).Where("id = ?", id).First(&participant).Error; err != nil {
		return nil, translate(err)
	}
	return &participant, nil
}

func (s *Store) GetParticipantByCode(ctx context.Context, code string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.conn(ctx).Where("access_code = ?", code).First(&participant).Error; err != nil {
		return nil, translate(err)
	}
	return &participant, nil
}

func (s *Store) AddParticipant(ctx context.Context, participant *models.Participant) error {
	return translate(s.conn(ctx).Create(participant).Error)
}

func (s *Store) RemoveParticipant(ctx context.Context, id uuid.UUID) error {
	result := s.conn(ctx).Where("id = ?", id).Delete(&models.Participant{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("participant %s: %w", id, exchange.ErrNotFound)
	}
	return nil
}

func (s *Store) updateParticipant(ctx context.Context, id uuid.UUID, values map[string]any) error {
	result := s.conn(ctx).
		Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("participant %s: %w", id, exchange.ErrNotFound)
	}
	return nil
}

func (s *Store) UpdateParticipantName(ctx context.Context, id uuid.UUID, name string) error {
	return s.updateParticipant(ctx, id, map[string]any{
		"name":     name,
		"name_key": models.NameKey(name),
	})
}

func (s *Store) UpdateParticipantCode(ctx context.Context, id uuid.UUID, code string) error {
	return s.updateParticipant(ctx, id, map[string]any{
		"access_code":  code,
		"has_accessed": false,
	})
}

func (s *Store) UpdateParticipantContact(ctx context.Context, id uuid.UUID, contact *string) error {
	var value any = gorm.Expr("NULL")
	if contact != nil {
		value = *contact
	}
	return s.updateParticipant(ctx, id, map[string]any{
		"contact": value,
	})
}

func (s *Store) MarkAccessed(ctx context.Context, id uuid.UUID, code string) error {
	return translate(s.conn(ctx).
		Model(&models.Participant{}).
		Where("id = ? AND access_code = ? AND has_accessed = ?", id, code, false).
		Update("has_accessed", true).Error)
}

func (s *Store) SetAssignment(ctx context.Context, giverID, receiverID uuid.UUID) error {
	return s.updateParticipant(ctx, giverID, map[string]any{
		"assigned_to_id": receiverID,
	})
}
