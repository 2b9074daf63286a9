// Package notifier delivers best-effort informational messages to participants.
package notifier

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
)

type Kind string

const (
	KindInvitation Kind = "invitation"
	KindCompletion Kind = "completion"
)

const DefaultConcurrency = 4

// Payload is the data a message template is rendered from.
type Payload struct {
	ParticipantName string
	EventName       string
	AccessCode      string
	AccessURL       string
}

// Notifier sends one message. It never panics or returns an error; a false
// result means the message was not delivered.
type Notifier interface {
	Notify(ctx context.Context, contact string, kind Kind, payload Payload) bool
}

// Recipient is one addressee of a broadcast. A nil Contact is skipped.
type Recipient struct {
	Contact *string
	Payload Payload
}

// Result aggregates the outcome of a broadcast.
type Result struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ObserveFunc is called once per delivered or failed message.
type ObserveFunc func(kind Kind, delivered bool)

// Broadcast sends kind to every recipient with a contact address, running at
// most concurrency sends at a time. It waits for all sends before returning.
func Broadcast(
	ctx context.Context,
	n Notifier,
	recipients []Recipient,
	kind Kind,
	concurrency int,
	observe ObserveFunc,
) Result {
	var (
		result Result
		mu     sync.Mutex
	)
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, r := range recipients {
		if r.Contact == nil || *r.Contact == "" {
			result.Skipped++
			continue
		}
		contact := *r.Contact
		payload := r.Payload
		g.Go(func() error {
			delivered := n != nil && n.Notify(ctx, contact, kind, payload)
			mu.Lock()
			if delivered {
				result.Sent++
			} else {
				result.Failed++
			}
			mu.Unlock()
			if observe != nil {
				observe(kind, delivered)
			}
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// AccessURL builds the direct link a participant can follow to verify their code.
func AccessURL(baseURL, code string) string {
	return baseURL + "?code=" + url.QueryEscape(code)
}
