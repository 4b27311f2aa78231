// Package record runs one timed, speaker-rotating recording session.
//
// The Controller is driven from the serialized loop goroutine. Start launches
// a session goroutine that asks for speech authorization and then supervises
// two activities with an errgroup: a one-second timer and, when authorized, a
// live transcription stream. Activity results are handed back to the loop with
// Dispatch and applied there; once a session is over its late results are
// dropped. Either activity failing stops the other and surfaces Failure.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/standups/internal/clock"
	"github.com/five82/standups/internal/logging"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
)

// ErrClockStopped is reported when the tick source closes while the session
// is still running.
var ErrClockStopped = errors.New("clock stopped ticking")

// Choice is a button on the early-end confirmation.
type Choice int

const (
	SaveAndEnd Choice = iota
	Discard
	Resume
)

func (c Choice) String() string {
	switch c {
	case SaveAndEnd:
		return "Save and end"
	case Discard:
		return "Discard"
	case Resume:
		return "Resume"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// Destination is the alert currently shown over the session. nil means none.
type Destination interface {
	recordDestination()
}

// ConfirmEarlyEnd asks how to end the meeting before its time is up.
type ConfirmEarlyEnd struct {
	Choices []Choice
}

// Failure reports that the session stopped because an activity failed.
type Failure struct {
	Err error
}

func (ConfirmEarlyEnd) recordDestination() {}
func (Failure) recordDestination() {}

// Has reports whether choice is offered.
func (c ConfirmEarlyEnd) Has(choice Choice) bool {
	for _, offered := range c.Choices {
		if offered == choice {
			return true
		}
	}
	return false
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Clock      clock.Clock
	Speech     speech.Client
	Dispatcher mainloop.Dispatcher
	Logger     *zap.Logger
	// Tick is the timer interval; zero means one second.
	Tick         time.Duration
	SpeechConfig speech.Config
}

// Hooks are called on the loop goroutine.
type Hooks struct {
	// Finished receives the final transcript when the meeting is saved.
	Finished func(transcript string)
	// Dismissed is called once when the session is over for any reason.
	Dismissed func()
}

type session struct {
	cancel context.CancelFunc
	done   chan struct{}
	over   bool // loop goroutine only
}

// Controller is one recording session. It is not safe for concurrent use.
type Controller struct {
	standup standup.Standup
	deps    Deps
	hooks   Hooks
	log     *zap.Logger

	elapsed    int // seconds
	speaker    int
	transcript string
	dest       Destination
	dismissed  bool

	started bool
	session *session
}

// New prepares a session for a snapshot of s. Nothing runs until Start.
func New(s standup.Standup, deps Deps, hooks Hooks) *Controller {
	if deps.Tick <= 0 {
		deps.Tick = time.Second
	}
	if deps.Speech == nil {
		deps.Speech = speech.Unavailable{}
	}
	return &Controller{
		standup: s.Clone(),
		deps:    deps,
		hooks:   hooks,
		log:     logging.OrNop(deps.Logger).With(zap.String("standup", s.ID.String())),
	}
}

func (c *Controller) Standup() standup.Standup { return c.standup.Clone() }

func (c *Controller) ElapsedSeconds() int { return c.elapsed }

func (c *Controller) SpeakerIndex() int { return c.speaker }

// Transcript is the latest cumulative transcript.
func (c *Controller) Transcript() string { return c.transcript }

func (c *Controller) Destination() Destination { return c.dest }

// Dismissed reports whether the session is over.
func (c *Controller) Dismissed() bool { return c.dismissed }

// PerSpeaker is each attendee's share of the meeting.
func (c *Controller) PerSpeaker() time.Duration {
	return c.standup.DurationPerAttendee()
}

func (c *Controller) perSpeakerSeconds() int {
	return int(c.PerSpeaker() / time.Second)
}

// Elapsed is the time spent so far.
func (c *Controller) Elapsed() time.Duration {
	return time.Duration(c.elapsed) * time.Second
}

// Remaining is the meeting duration minus elapsed time. It can go negative
// when a per-speaker share was rounded up to one second.
func (c *Controller) Remaining() time.Duration {
	return c.standup.Duration - c.Elapsed()
}

// Progress is elapsed over total time, in [0, 1].
func (c *Controller) Progress() float64 {
	total := c.Elapsed() + c.Remaining()
	if total <= 0 {
		return 0
	}
	return min(float64(c.Elapsed())/float64(total), 1)
}

// Speaker is the current speaker's name.
func (c *Controller) Speaker() string {
	if c.speaker < len(c.standup.Attendees) {
		return c.standup.Attendees[c.speaker].Name
	}
	return "Someone"
}

// SpeakerText describes the position in the rotation.
func (c *Controller) SpeakerText() string {
	if c.speaker >= len(c.standup.Attendees)-1 {
		return "No more speakers."
	}
	return fmt.Sprintf("Speaker %d of %d", c.speaker+1, len(c.standup.Attendees))
}

func (c *Controller) isLastSpeaker() bool {
	return c.speaker >= len(c.standup.Attendees)-1
}

// NextSpeaker skips to the next attendee's slot. On the last attendee it asks
// whether to end the meeting instead.
func (c *Controller) NextSpeaker() {
	if c.dismissed || c.dest != nil {
		return
	}
	if c.isLastSpeaker() {
		c.dest = ConfirmEarlyEnd{Choices: []Choice{SaveAndEnd, Resume}}
		return
	}
	c.speaker++
	c.elapsed = c.speaker * c.perSpeakerSeconds()
}

// EndMeetingEarly asks whether to save, discard or resume.
func (c *Controller) EndMeetingEarly() {
	if c.dismissed {
		return
	}
	if _, failed := c.dest.(Failure); failed {
		return
	}
	c.dest = ConfirmEarlyEnd{Choices: []Choice{SaveAndEnd, Discard, Resume}}
}

// Resolve answers the open alert. Any choice dismisses a Failure without
// saving. Choices not offered by the open confirmation are ignored.
func (c *Controller) Resolve(choice Choice) {
	switch dest := c.dest.(type) {
	case Failure:
		c.finish(false)
	case ConfirmEarlyEnd:
		if !dest.Has(choice) {
			return
		}
		switch choice {
		case SaveAndEnd:
			c.finish(true)
		case Discard:
			c.finish(false)
		case Resume:
			c.dest = nil
		}
	}
}

// Start launches the session. It runs at most once per controller.
func (c *Controller) Start(ctx context.Context) {
	if c.started || c.dismissed {
		return
	}
	c.started = true

	ctx, cancel := context.WithCancel(ctx)
	s := &session{cancel: cancel, done: make(chan struct{})}
	c.session = s
	c.log.Debug("recording session started",
		zap.Int("attendees", len(c.standup.Attendees)),
		zap.Duration("per_speaker", c.PerSpeaker()))

	go func() {
		defer close(s.done)
		err := c.run(ctx, s)
		if err == nil || ctx.Err() != nil {
			return
		}
		c.deps.Dispatcher.Dispatch(func() { c.fail(s, err) })
	}()
}

// Stop ends the session and waits for its goroutines. Results still in
// flight are discarded. Safe to call more than once.
func (c *Controller) Stop() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	s.over = true
	s.cancel()
	<-s.done
	c.log.Debug("recording session stopped", zap.Int("elapsed", c.elapsed))
}

func (c *Controller) run(ctx context.Context, s *session) error {
	auth := c.deps.Speech.RequestAuthorization(ctx)
	if ctx.Err() != nil {
		return nil
	}
	c.log.Debug("speech authorization", zap.Stringer("status", auth))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.runTimer(gctx, s) })
	if auth == speech.Authorized {
		g.Go(func() error { return c.runTranscription(gctx, s) })
	}
	return g.Wait()
}

func (c *Controller) runTimer(ctx context.Context, s *session) error {
	ticks := c.deps.Clock.Ticker(ctx, c.deps.Tick)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrClockStopped
			}
			if err := c.deliver(ctx, s, c.tick); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) runTranscription(ctx context.Context, s *session) error {
	for text, err := range c.deps.Speech.StartTranscription(ctx, c.deps.SpeechConfig) {
		if err != nil {
			return fmt.Errorf("transcribe: %w", err)
		}
		if err := c.deliver(ctx, s, func() { c.transcript = text }); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// deliver applies fn on the loop and waits until it has run, so a fast
// producer never gets ahead of the loop.
func (c *Controller) deliver(ctx context.Context, s *session, fn func()) error {
	applied := make(chan struct{})
	c.deps.Dispatcher.Dispatch(func() {
		defer close(applied)
		if s.over {
			return
		}
		fn()
	})
	select {
	case <-applied:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) tick() {
	if c.dismissed || c.dest != nil {
		return
	}
	c.elapsed++
	if c.elapsed%c.perSpeakerSeconds() != 0 {
		return
	}
	if c.isLastSpeaker() {
		c.finish(true)
		return
	}
	c.speaker++
}

func (c *Controller) fail(s *session, err error) {
	if s.over || c.dismissed {
		return
	}
	s.over = true
	c.log.Warn("recording session failed", zap.Error(err))
	c.transcript = ""
	c.dest = Failure{Err: err}
}

// finish ends the session. The activities are cancelled before any hook runs
// so a hook may Stop this controller without waiting on a blocked activity.
func (c *Controller) finish(save bool) {
	if c.dismissed {
		return
	}
	if s := c.session; s != nil {
		s.over = true
		s.cancel()
	}
	c.dest = nil
	if save {
		c.log.Debug("meeting finished", zap.Int("elapsed", c.elapsed), zap.Int("transcript_len", len(c.transcript)))
		if c.hooks.Finished != nil {
			c.hooks.Finished(c.transcript)
		}
	}
	c.dismissed = true
	if c.hooks.Dismissed != nil {
		c.hooks.Dismissed()
	}
}
