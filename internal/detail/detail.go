// Package detail drives the screen for one standup: editing it, recording a
// meeting, viewing past meetings and deleting it.
//
// The Controller owns a working copy of the standup. Every change to that copy
// is reported through Hooks.Changed right away so the owning list can mirror
// it. Child screens are mutually exclusive; switching destination tears the
// previous child down first.
package detail

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/standups/internal/clock"
	"github.com/five82/standups/internal/edit"
	"github.com/five82/standups/internal/logging"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/record"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
)

// DefaultSettleDelay is the pause between a meeting finishing and it being
// added to the history.
const DefaultSettleDelay = 400 * time.Millisecond

// Destination is the child screen currently open. nil means none.
type Destination interface {
	detailDestination()
}

// ConfirmDelete asks before deleting the whole standup.
type ConfirmDelete struct{}

// Editing holds the edit form.
type Editing struct {
	Edit *edit.Controller
}

// ViewingMeeting shows one past meeting.
type ViewingMeeting struct {
	Meeting standup.Meeting
}

// Recording holds the running session.
type Recording struct {
	Record *record.Controller
}

func (ConfirmDelete) detailDestination() {}
func (Editing) detailDestination() {}
func (ViewingMeeting) detailDestination() {}
func (Recording) detailDestination() {}

// Deps are the collaborators of a Controller.
type Deps struct {
	Clock      clock.Clock
	Speech     speech.Client
	Dispatcher mainloop.Dispatcher
	Logger     *zap.Logger
	// SettleDelay postpones adding a finished meeting; zero adds it at once.
	SettleDelay time.Duration
	// Tick overrides the recording timer interval.
	Tick time.Duration
}

// Hooks are called on the loop goroutine.
type Hooks struct {
	Changed         func(standup.Standup)
	DeleteConfirmed func()
}

type finishedMeeting struct {
	record *record.Controller
	at     time.Time
	text   string
	timer  clock.Timer
}

// Controller is not safe for concurrent use.
type Controller struct {
	standup standup.Standup
	dest    Destination
	deps    Deps
	hooks   Hooks
	log     *zap.Logger

	pending *finishedMeeting
}

// New opens the detail screen on a copy of s.
func New(s standup.Standup, deps Deps, hooks Hooks) *Controller {
	return &Controller{
		standup: s.Clone(),
		deps:    deps,
		hooks:   hooks,
		log:     logging.OrNop(deps.Logger).With(zap.String("standup", s.ID.String())),
	}
}

// Standup returns a copy of the working copy.
func (c *Controller) Standup() standup.Standup { return c.standup.Clone() }

func (c *Controller) Destination() Destination { return c.dest }

func (c *Controller) mutate(fn func(*standup.Standup)) {
	fn(&c.standup)
	if c.hooks.Changed != nil {
		c.hooks.Changed(c.standup.Clone())
	}
}

func (c *Controller) setDestination(d Destination) {
	c.flushPending()
	if rec, ok := c.dest.(Recording); ok {
		rec.Record.Stop()
	}
	c.dest = d
	c.log.Debug("detail destination", zap.String("to", destinationName(d)))
}

func destinationName(d Destination) string {
	switch d.(type) {
	case nil:
		return "none"
	case ConfirmDelete:
		return "confirm_delete"
	case Editing:
		return "editing"
	case ViewingMeeting:
		return "meeting"
	case Recording:
		return "recording"
	default:
		return "unknown"
	}
}

// StartEdit opens the edit form on the current working copy.
func (c *Controller) StartEdit() {
	c.setDestination(Editing{Edit: edit.New(c.standup)})
}

// CancelEdit closes the form and drops its changes.
func (c *Controller) CancelEdit() {
	if _, ok := c.dest.(Editing); ok {
		c.setDestination(nil)
	}
}

// CommitEdit replaces the working copy with the form's copy. Blank attendees
// are dropped, keeping one if none remain.
func (c *Controller) CommitEdit() {
	e, ok := c.dest.(Editing)
	if !ok {
		return
	}
	edited := e.Edit.Standup().WithoutBlankAttendees()
	c.setDestination(nil)
	c.mutate(func(s *standup.Standup) {
		s.Title = edited.Title
		s.Duration = edited.Duration
		s.Theme = edited.Theme
		s.Attendees = edited.Attendees
	})
}

// StartMeeting opens a recording session on a snapshot of the standup.
func (c *Controller) StartMeeting(ctx context.Context) {
	var rec *record.Controller
	rec = record.New(c.standup, record.Deps{
		Clock:      c.deps.Clock,
		Speech:     c.deps.Speech,
		Dispatcher: c.deps.Dispatcher,
		Logger:     c.deps.Logger,
		Tick:       c.deps.Tick,
	}, record.Hooks{
		Finished:  func(transcript string) { c.meetingFinished(rec, transcript) },
		Dismissed: func() { c.recordingDismissed(rec) },
	})
	c.setDestination(Recording{Record: rec})
	rec.Start(ctx)
}

func (c *Controller) isRecording(rec *record.Controller) bool {
	r, ok := c.dest.(Recording)
	return ok && r.Record == rec
}

func (c *Controller) meetingFinished(rec *record.Controller, transcript string) {
	if !c.isRecording(rec) {
		return
	}
	p := &finishedMeeting{record: rec, at: c.deps.Clock.Now(), text: transcript}
	c.pending = p
	if c.deps.SettleDelay <= 0 {
		c.settle(p)
		return
	}
	p.timer = c.deps.Clock.AfterFunc(c.deps.SettleDelay, func() {
		c.deps.Dispatcher.Dispatch(func() { c.settle(p) })
	})
}

func (c *Controller) recordingDismissed(rec *record.Controller) {
	if c.pending != nil && c.pending.record == rec {
		// The settle step closes the recording.
		return
	}
	if c.isRecording(rec) {
		c.setDestination(nil)
	}
}

// settle adds the finished meeting and closes its recording if still open.
func (c *Controller) settle(p *finishedMeeting) {
	if c.pending != p {
		return
	}
	c.pending = nil
	if p.timer != nil {
		p.timer.Stop()
	}
	c.mutate(func(s *standup.Standup) {
		m := standup.Meeting{ID: standup.NewMeetingID(), Date: p.at, Transcript: p.text}
		s.Meetings = append([]standup.Meeting{m}, s.Meetings...)
	})
	c.log.Info("meeting added", zap.Int("meetings", len(c.standup.Meetings)))
	if c.isRecording(p.record) {
		c.setDestination(nil)
	}
}

func (c *Controller) flushPending() {
	if c.pending != nil {
		c.settle(c.pending)
	}
}

// ViewMeeting opens a past meeting and reports whether it exists.
func (c *Controller) ViewMeeting(id standup.MeetingID) bool {
	m, ok := c.standup.Meeting(id)
	if !ok {
		return false
	}
	c.setDestination(ViewingMeeting{Meeting: m})
	return true
}

func (c *Controller) CloseMeeting() {
	if _, ok := c.dest.(ViewingMeeting); ok {
		c.setDestination(nil)
	}
}

// DeleteMeetings removes the meetings at offsets.
func (c *Controller) DeleteMeetings(offsets ...int) {
	remaining := standup.RemoveAt(c.standup.Meetings, offsets...)
	if len(remaining) == len(c.standup.Meetings) {
		return
	}
	c.mutate(func(s *standup.Standup) { s.Meetings = remaining })
}

// RequestDeletion asks for confirmation before deleting the standup.
func (c *Controller) RequestDeletion() {
	c.setDestination(ConfirmDelete{})
}

// ConfirmDeletion closes the confirmation and hands the deletion upward.
func (c *Controller) ConfirmDeletion() {
	if _, ok := c.dest.(ConfirmDelete); !ok {
		return
	}
	c.setDestination(nil)
	if c.hooks.DeleteConfirmed != nil {
		c.hooks.DeleteConfirmed()
	}
}

func (c *Controller) CancelDeletion() {
	if _, ok := c.dest.(ConfirmDelete); ok {
		c.setDestination(nil)
	}
}

// Close tears down any open child. A finished meeting still waiting to
// settle is added first.
func (c *Controller) Close() {
	c.setDestination(nil)
}
