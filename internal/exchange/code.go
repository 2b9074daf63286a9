package exchange

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	codeSeparator = "-"
	codeMin       = 10_000_000
	codeMax       = 99_999_999

	maxCodeAttempts = 5
)

// GenerateCode builds an access code of the form <event name alphanumerics>-<8 digits>.
func GenerateCode(eventName string) string {
	digits := codeMin + rand.IntN(codeMax-codeMin+1)
	return fmt.Sprintf("%s%s%d", sanitizeEventName(eventName), codeSeparator, digits)
}

func sanitizeEventName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// uniqueCode draws codes until one is unused in the store and differs from
// every entry in avoid.
func uniqueCode(ctx context.Context, store Store, eventName string, avoid map[string]struct{}) (string, error) {
	for range maxCodeAttempts {
		code := GenerateCode(eventName)
		if _, taken := avoid[code]; taken {
			continue
		}
		_, err := store.GetParticipantByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", persistenceError("check access code", err)
		}
	}
	return "", fmt.Errorf("%w: could not draw an unused access code after %d attempts", ErrPersistence, maxCodeAttempts)
}
