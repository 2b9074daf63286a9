package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrValidation               = errors.New("validation failed")
	ErrAlreadyCompleted         = errors.New("event already completed")
	ErrInsufficientParticipants = errors.New("at least 2 participants are required")
	ErrPersistence              = errors.New("persistence failure")

	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	// ErrCodeNotFound is returned for every verification miss, whatever the cause.
	ErrCodeNotFound   = fmt.Errorf("access code %w", ErrNotFound)
	ErrEventNameTaken = fmt.Errorf("%w: an event with this name already exists", ErrValidation)

	// ErrStatusChanged is returned by Store.SetEventStatus when the event is no
	// longer in the expected status.
	ErrStatusChanged = errors.New("event status changed")
	// ErrDuplicate is returned by the store when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// persistenceError wraps a store failure unless it already carries a domain meaning.
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrNotFound,
		ErrValidation,
		ErrAlreadyCompleted,
		ErrInsufficientParticipants,
		ErrPersistence,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
