// Package list is the root of the controller tree. It owns the standups
// collection, loads it once at startup and saves it, debounced, after every
// change.
//
// While a detail screen is open its working copy is mirrored into the
// collection on every change, so the collection has a single writer at a time:
// the list's own commands or the open detail.
package list

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/standups/internal/clock"
	"github.com/five82/standups/internal/debounce"
	"github.com/five82/standups/internal/detail"
	"github.com/five82/standups/internal/edit"
	"github.com/five82/standups/internal/logging"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
	"github.com/five82/standups/internal/state"
)

// DefaultSaveDebounce is the quiet interval before a change is saved.
const DefaultSaveDebounce = time.Second

// Store persists the whole collection.
type Store interface {
	Load() ([]standup.Standup, error)
	Save([]standup.Standup) error
}

// Destination is the child screen currently open. nil means none.
type Destination interface {
	listDestination()
}

// Adding holds the form for a new standup.
type Adding struct {
	Edit *edit.Controller
}

// Detail holds the screen of one standup.
type Detail struct {
	Detail *detail.Controller
}

func (Adding) listDestination() {}
func (Detail) listDestination() {}

// Deps are the collaborators of a Controller.
type Deps struct {
	Store      Store
	Clock      clock.Clock
	Speech     speech.Client
	Dispatcher mainloop.Dispatcher
	Logger     *zap.Logger
	// Status receives load and save outcomes; nil discards them.
	Status       *state.Store
	SaveDebounce time.Duration
	SettleDelay  time.Duration
	Tick         time.Duration
}

// Controller is not safe for concurrent use, except that saves run on the
// clock's goroutine.
type Controller struct {
	standups []standup.Standup
	dest     Destination
	deps     Deps
	log      *zap.Logger

	subs    map[int]func([]standup.Standup)
	nextSub int

	saver  *debounce.Debouncer[[]standup.Standup]
	saveMu sync.Mutex
}

// New loads the collection and starts saving changes. A failed load leaves
// the collection empty; the error is logged and recorded in Deps.Status.
func New(deps Deps) *Controller {
	if deps.SaveDebounce <= 0 {
		deps.SaveDebounce = DefaultSaveDebounce
	}
	if deps.Status == nil {
		deps.Status = &state.Store{}
	}
	c := &Controller{
		deps: deps,
		log:  logging.OrNop(deps.Logger),
		subs: make(map[int]func([]standup.Standup)),
	}

	standups, err := deps.Store.Load()
	if err != nil {
		c.log.Warn("load standups failed, starting empty", zap.Error(err))
		standups = nil
	} else {
		c.log.Info("standups loaded", zap.Int("count", len(standups)))
	}
	deps.Status.RecordLoad(err)
	c.standups = standups

	c.saver = debounce.New(deps.Clock, deps.SaveDebounce, c.persist)
	c.Subscribe(c.saver.Schedule)
	return c
}

// Standups returns a copy of the collection.
func (c *Controller) Standups() []standup.Standup {
	return standup.CloneAll(c.standups)
}

func (c *Controller) Destination() Destination { return c.dest }

// Status returns the persistence status.
func (c *Controller) Status() state.Snapshot {
	return c.deps.Status.Snapshot()
}

// PendingSave reports when the next debounced save is due. ok is false when
// every change has been written.
func (c *Controller) PendingSave() (due time.Time, ok bool) {
	return c.saver.Deadline()
}

// Subscribe calls fn with a copy of the collection after every change. The
// returned func removes the subscription.
func (c *Controller) Subscribe(fn func([]standup.Standup)) (cancel func()) {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Controller) changed() {
	for _, fn := range c.subs {
		fn(standup.CloneAll(c.standups))
	}
}

// persist runs on the debouncer's clock goroutine or from Flush.
func (c *Controller) persist(standups []standup.Standup) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	err := c.deps.Store.Save(standups)
	if err != nil {
		c.log.Warn("save standups failed, retrying", zap.Error(err))
		err = c.deps.Store.Save(standups)
	}
	if err != nil {
		c.log.Error("save standups failed", zap.Error(err))
	} else {
		c.log.Debug("standups saved", zap.Int("count", len(standups)))
	}
	c.deps.Status.RecordSave(err)
}

func (c *Controller) setDestination(d Destination) {
	if old, ok := c.dest.(Detail); ok {
		// Close may still mirror a settling meeting, so the detail stays
		// current until it returns.
		old.Detail.Close()
	}
	c.dest = d
}

func (c *Controller) index(id standup.StandupID) int {
	for i, s := range c.standups {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// AddStandup opens the form for a new standup with one blank attendee.
func (c *Controller) AddStandup() {
	c.setDestination(Adding{Edit: edit.New(standup.New())})
}

// ConfirmAdd appends the form's standup without its blank attendees, keeping
// one blank attendee if none are left, and closes the form.
func (c *Controller) ConfirmAdd() {
	a, ok := c.dest.(Adding)
	if !ok {
		return
	}
	s := a.Edit.Standup().WithoutBlankAttendees()
	c.standups = append(c.standups, s)
	c.log.Info("standup added", zap.String("standup", s.ID.String()), zap.Int("attendees", len(s.Attendees)))
	c.changed()
	c.setDestination(nil)
}

// CancelAdd closes the form and drops it.
func (c *Controller) CancelAdd() {
	if _, ok := c.dest.(Adding); ok {
		c.setDestination(nil)
	}
}

// Select opens the detail screen of the standup with id.
func (c *Controller) Select(id standup.StandupID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}

	var d *detail.Controller
	d = detail.New(c.standups[i], detail.Deps{
		Clock:       c.deps.Clock,
		Speech:      c.deps.Speech,
		Dispatcher:  c.deps.Dispatcher,
		Logger:      c.deps.Logger,
		SettleDelay: c.deps.SettleDelay,
		Tick:        c.deps.Tick,
	}, detail.Hooks{
		Changed:         func(s standup.Standup) { c.mirror(d, s) },
		DeleteConfirmed: func() { c.deleteFromDetail(d, id) },
	})
	c.setDestination(Detail{Detail: d})
	return true
}

func (c *Controller) isOpen(d *detail.Controller) bool {
	open, ok := c.dest.(Detail)
	return ok && open.Detail == d
}

func (c *Controller) mirror(d *detail.Controller, s standup.Standup) {
	if !c.isOpen(d) {
		return
	}
	i := c.index(s.ID)
	if i < 0 {
		return
	}
	c.standups[i] = s
	c.changed()
}

func (c *Controller) deleteFromDetail(d *detail.Controller, id standup.StandupID) {
	if !c.isOpen(d) {
		return
	}
	if i := c.index(id); i >= 0 {
		c.standups = standup.RemoveAt(c.standups, i)
		c.log.Info("standup deleted", zap.String("standup", id.String()))
		c.changed()
	}
	c.setDestination(nil)
}

// CloseDetail leaves the detail screen. The collection already holds every
// change it made.
func (c *Controller) CloseDetail() {
	if _, ok := c.dest.(Detail); ok {
		c.setDestination(nil)
	}
}

// Flush saves a pending change now.
func (c *Controller) Flush() {
	c.saver.Flush()
}

// Close tears down the open screen and saves anything pending.
func (c *Controller) Close() {
	c.setDestination(nil)
	c.Flush()
}
