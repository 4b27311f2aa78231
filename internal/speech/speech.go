// Package speech is the live transcription capability consumed by recording
// sessions.
//
// A Client first answers an authorization request and then streams cumulative
// transcript snapshots: every value is the whole transcript so far, never a
// delta. The stream ends when ctx is cancelled or yields a non-nil error when
// recognition fails.
package speech

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
)

// ErrUnavailable is yielded by clients that have no recognizer behind them.
var ErrUnavailable = errors.New("speech recognition unavailable")

// Authorization is the user's answer to the recording permission request.
type Authorization int

const (
	NotDetermined Authorization = iota
	Denied
	Restricted
	Authorized
)

func (a Authorization) String() string {
	switch a {
	case NotDetermined:
		return "not_determined"
	case Denied:
		return "denied"
	case Restricted:
		return "restricted"
	case Authorized:
		return "authorized"
	default:
		return fmt.Sprintf("authorization(%d)", int(a))
	}
}

// ParseAuthorization reads the String form back. Empty input is NotDetermined.
func ParseAuthorization(s string) (Authorization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "not_determined":
		return NotDetermined, nil
	case "denied":
		return Denied, nil
	case "restricted":
		return Restricted, nil
	case "authorized":
		return Authorized, nil
	}
	return NotDetermined, fmt.Errorf("unknown speech authorization %q", s)
}

// Config tunes a transcription stream.
type Config struct {
	// Locale is a BCP 47 tag; empty means the recognizer default.
	Locale string
	// PartialResults asks for snapshots while a phrase is still being spoken.
	PartialResults bool
}

// Client is the speech capability.
type Client interface {
	RequestAuthorization(ctx context.Context) Authorization
	StartTranscription(ctx context.Context, cfg Config) iter.Seq2[string, error]
}

// Unavailable is a Client for hosts with no recognizer.
type Unavailable struct{}

func (Unavailable) RequestAuthorization(context.Context) Authorization { return Restricted }

func (Unavailable) StartTranscription(context.Context, Config) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", ErrUnavailable)
	}
}

// Remembered answers authorization from a stored decision. While the stored
// answer is NotDetermined the wrapped client is asked and a definite answer is
// handed to OnAnswer so the caller can persist it.
type Remembered struct {
	Client   Client
	OnAnswer func(Authorization)

	mu     sync.Mutex
	answer Authorization
}

// Remember wraps c with a previously stored answer.
func Remember(c Client, answer Authorization, onAnswer func(Authorization)) *Remembered {
	return &Remembered{Client: c, OnAnswer: onAnswer, answer: answer}
}

func (r *Remembered) RequestAuthorization(ctx context.Context) Authorization {
	r.mu.Lock()
	answer := r.answer
	r.mu.Unlock()
	if answer != NotDetermined {
		return answer
	}

	answer = r.Client.RequestAuthorization(ctx)
	if answer == NotDetermined {
		return answer
	}
	r.mu.Lock()
	r.answer = answer
	r.mu.Unlock()
	if r.OnAnswer != nil {
		r.OnAnswer(answer)
	}
	return answer
}

func (r *Remembered) StartTranscription(ctx context.Context, cfg Config) iter.Seq2[string, error] {
	return r.Client.StartTranscription(ctx, cfg)
}
