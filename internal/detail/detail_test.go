package detail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/five82/standups/internal/clock"
	"github.com/five82/standups/internal/mainloop"
	"github.com/five82/standups/internal/record"
	"github.com/five82/standups/internal/speech"
	"github.com/five82/standups/internal/standup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// The test goroutine is the loop: drainUntil runs dispatched closures until
// cond holds.
func drainUntil(t *testing.T, loop *mainloop.Loop, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		loop.Drain()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

type fixture struct {
	loop    *mainloop.Loop
	clock   clock.Clock
	changes []standup.Standup
	deleted int
	c       *Controller
}

func newFixture(t *testing.T, s standup.Standup, c clock.Clock, settle time.Duration) *fixture {
	t.Helper()
	f := &fixture{loop: mainloop.New(), clock: c}
	f.c = New(s, Deps{
		Clock:       c,
		Speech:      &speech.Scripted{Status: speech.Authorized, Snapshots: []string{"we shipped it"}, Hold: true},
		Dispatcher:  f.loop,
		SettleDelay: settle,
	}, Hooks{
		Changed:         func(s standup.Standup) { f.changes = append(f.changes, s) },
		DeleteConfirmed: func() { f.deleted++ },
	})
	t.Cleanup(f.c.Close)
	return f
}

func (f *fixture) last() standup.Standup {
	return f.changes[len(f.changes)-1]
}

func recording(t *testing.T, c *Controller) *record.Controller {
	t.Helper()
	r, ok := c.Destination().(Recording)
	require.True(t, ok, "destination is %T, want Recording", c.Destination())
	return r.Record
}

func TestCommitEdit_ReplacesWorkingCopyAndSyncs(t *testing.T) {
	f := newFixture(t, standup.Mock(), clock.NewManual(epoch), 0)

	f.c.StartEdit()
	e, ok := f.c.Destination().(Editing)
	require.True(t, ok)
	e.Edit.SetTitle("Platform")
	e.Edit.AddAttendee()
	assert.Empty(t, f.changes, "edits are not live-synced")

	f.c.CommitEdit()

	assert.Nil(t, f.c.Destination())
	assert.Equal(t, "Platform", f.c.Standup().Title)
	require.Len(t, f.changes, 1)
	assert.Equal(t, "Platform", f.last().Title)
	assert.Len(t, f.last().Attendees, 6, "blank attendee added in the form is dropped")
	assert.Len(t, f.last().Meetings, 1)
}

func TestCancelEdit_DiscardsChanges(t *testing.T) {
	f := newFixture(t, standup.Mock(), clock.NewManual(epoch), 0)

	f.c.StartEdit()
	f.c.Destination().(Editing).Edit.SetTitle("Nope")
	f.c.CancelEdit()

	assert.Nil(t, f.c.Destination())
	assert.Equal(t, "Design", f.c.Standup().Title)
	assert.Empty(t, f.changes)
}

func TestMeeting_CompletesAndIsPrepended(t *testing.T) {
	s := standup.New()
	s.Title = "Quick"
	s.Duration = 3 * time.Second
	s.Attendees = []standup.Attendee{standup.NewAttendee("Solo")}
	f := newFixture(t, s, clock.NewImmediate(epoch), 0)

	f.c.StartMeeting(context.Background())
	rec := recording(t, f.c)
	drainUntil(t, f.loop, func() bool { return f.c.Destination() == nil })

	assert.True(t, rec.Dismissed())
	require.Len(t, f.c.Standup().Meetings, 1)
	require.NotEmpty(t, f.changes)
	assert.Len(t, f.last().Meetings, 1)
}

func TestMeeting_SettleDelayPostponesInsert(t *testing.T) {
	clk := clock.NewManual(epoch)
	mock := standup.Mock()
	f := newFixture(t, mock, clk, DefaultSettleDelay)

	f.c.StartMeeting(context.Background())
	rec := recording(t, f.c)
	drainUntil(t, f.loop, func() bool { return rec.Transcript() != "" })

	rec.EndMeetingEarly()
	rec.Resolve(record.SaveAndEnd)

	assert.True(t, rec.Dismissed())
	assert.Same(t, rec, recording(t, f.c), "recording stays open while settling")
	assert.Len(t, f.c.Standup().Meetings, 1)

	clk.Advance(DefaultSettleDelay - time.Millisecond)
	f.loop.Drain()
	assert.Len(t, f.c.Standup().Meetings, 1)

	clk.Advance(time.Millisecond)
	drainUntil(t, f.loop, func() bool { return f.c.Destination() == nil })

	got := f.c.Standup()
	require.Len(t, got.Meetings, 2)
	assert.Equal(t, "we shipped it", got.Meetings[0].Transcript, "newest first")
	assert.Equal(t, epoch, got.Meetings[0].Date, "stamped at completion time")
	assert.Equal(t, mock.Meetings[0].ID, got.Meetings[1].ID)
}

func TestMeeting_CloseFlushesPendingMeeting(t *testing.T) {
	clk := clock.NewManual(epoch)
	f := newFixture(t, standup.Mock(), clk, DefaultSettleDelay)

	f.c.StartMeeting(context.Background())
	rec := recording(t, f.c)
	rec.EndMeetingEarly()
	rec.Resolve(record.SaveAndEnd)

	f.c.Close()

	assert.Nil(t, f.c.Destination())
	assert.Len(t, f.c.Standup().Meetings, 2)

	clk.Advance(time.Second)
	f.loop.Drain()
	assert.Len(t, f.c.Standup().Meetings, 2, "the settle timer does not add it twice")
}

func TestMeeting_DiscardClosesWithoutMeeting(t *testing.T) {
	f := newFixture(t, standup.Mock(), clock.NewManual(epoch), DefaultSettleDelay)

	f.c.StartMeeting(context.Background())
	rec := recording(t, f.c)
	rec.EndMeetingEarly()
	rec.Resolve(record.Discard)

	assert.Nil(t, f.c.Destination())
	assert.Len(t, f.c.Standup().Meetings, 1)
	assert.Empty(t, f.changes)
}

func TestSwitchingDestinationStopsRecording(t *testing.T) {
	f := newFixture(t, standup.Mock(), clock.NewManual(epoch), 0)

	f.c.StartMeeting(context.Background())
	rec := recording(t, f.c)

	f.c.StartEdit()

	assert.IsType(t, Editing{}, f.c.Destination())
	assert.False(t, rec.Dismissed())
	f.loop.Drain()
	assert.Len(t, f.c.Standup().Meetings, 1, "a torn down session records nothing")
}

func TestViewMeeting(t *testing.T) {
	mock := standup.Mock()
	f := newFixture(t, mock, clock.NewManual(epoch), 0)

	assert.False(t, f.c.ViewMeeting(standup.NewMeetingID()))
	assert.Nil(t, f.c.Destination())

	require.True(t, f.c.ViewMeeting(mock.Meetings[0].ID))
	assert.Equal(t, ViewingMeeting{Meeting: mock.Meetings[0]}, f.c.Destination())

	f.c.CloseMeeting()
	assert.Nil(t, f.c.Destination())
}

func TestDeleteMeetings(t *testing.T) {
	mock := standup.Mock()
	f := newFixture(t, mock, clock.NewManual(epoch), 0)

	f.c.DeleteMeetings(7)
	assert.Empty(t, f.changes, "nothing removed, nothing reported")

	f.c.DeleteMeetings(0)
	assert.Empty(t, f.c.Standup().Meetings)
	require.Len(t, f.changes, 1)
	assert.Empty(t, f.last().Meetings)
}

func TestDeletion(t *testing.T) {
	f := newFixture(t, standup.Mock(), clock.NewManual(epoch), 0)

	f.c.ConfirmDeletion()
	assert.Zero(t, f.deleted, "nothing to confirm")

	f.c.RequestDeletion()
	assert.Equal(t, ConfirmDelete{}, f.c.Destination())
	f.c.CancelDeletion()
	assert.Nil(t, f.c.Destination())
	assert.Zero(t, f.deleted)

	f.c.RequestDeletion()
	f.c.ConfirmDeletion()
	assert.Nil(t, f.c.Destination())
	assert.Equal(t, 1, f.deleted)
}
