package exchange

import (
	"strings"
	"unicode/utf8"

	"github.com/farellandr/secretsanta/internal/models"
	"github.com/go-playground/validator/v10"
)

const (
	MinParticipants = 2
	MaxParticipants = 20

	maxEventNameLength       = 100
	maxParticipantNameLength = 100
)

var validate = validator.New()

// ValidateParticipantCount reports whether count is within the allowed range.
func ValidateParticipantCount(count int) error {
	if count < MinParticipants || count > MaxParticipants {
		return validationError("participant count must be between %d and %d, got %d", MinParticipants, MaxParticipants, count)
	}
	return nil
}

// ValidateUniqueNames rejects names that collide once trimmed and lower-cased.
func ValidateUniqueNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := models.NameKey(name)
		if _, dup := seen[key]; dup {
			return validationError("participant name %q is used more than once", strings.TrimSpace(name))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func ValidateEventName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("event name is required")
	}
	if utf8.RuneCountInString(name) > maxEventNameLength {
		return "", validationError("event name must be at most %d characters", maxEventNameLength)
	}
	return name, nil
}

func ValidateParticipantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("participant name is required")
	}
	if utf8.RuneCountInString(name) > maxParticipantNameLength {
		return "", validationError("participant name must be at most %d characters", maxParticipantNameLength)
	}
	return name, nil
}

// ValidateContact normalizes an optional email address. Blank input means no contact.
func ValidateContact(contact *string) (*string, error) {
	if contact == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*contact)
	if trimmed == "" {
		return nil, nil
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		return nil, validationError("contact %q is not a valid email address", trimmed)
	}
	return &trimmed, nil
}
