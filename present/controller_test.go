package present

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/eringen/deckengine/deck"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitialState(t *testing.T) {
	c := NewController(deck.Sample())
	s := c.State()
	assert.Equal(t, 0, s.Position)
	assert.Equal(t, Presenting, s.Mode)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 1, s.SlideID)
	assert.Equal(t, 1, s.Current())
	assert.True(t, s.AtStart())
	assert.False(t, s.AtEnd())
}

func TestNavigationScenario(t *testing.T) {
	c := NewController(deck.Sample())

	for i := 0; i < 9; i++ {
		c.Advance()
	}
	s := c.State()
	require.Equal(t, 9, s.Position)
	assert.Equal(t, 10, s.SlideID)
	assert.Equal(t, deck.Conclusion, c.CurrentSlide().Variant)
	assert.InDelta(t, 100.0, s.Percent(), 0.001)

	s = c.Advance()
	assert.Equal(t, 9, s.Position, "advance saturates at the last slide")

	for i := 0; i < 20; i++ {
		c.Retreat()
	}
	assert.Equal(t, 0, c.State().Position, "retreat saturates at the first slide")

	s = c.ToggleExportMode()
	assert.Equal(t, Exporting, s.Mode)
	assert.Equal(t, 0, s.Position)
}

func TestPositionStaysInBounds(t *testing.T) {
	c := NewController(deck.Sample())
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		var s State
		if rng.Intn(2) == 0 {
			s = c.Advance()
		} else {
			s = c.Retreat()
		}
		require.GreaterOrEqual(t, s.Position, 0)
		require.Less(t, s.Position, s.Total)
	}
}

func TestModeTogglingIsIdempotent(t *testing.T) {
	c := NewController(deck.Sample())
	c.Goto(4)

	once := c.EnterExportMode()
	twice := c.EnterExportMode()
	assert.Equal(t, once, twice)
	assert.Equal(t, 4, twice.Position)

	c.ExitExportMode()
	before := c.State()
	after := c.ExitExportMode()
	assert.Equal(t, before, after, "exit from Presenting is a no-op")
	assert.Equal(t, 4, after.Position)
}

func TestGotoClamps(t *testing.T) {
	c := NewController(deck.Sample())
	assert.Equal(t, 9, c.Goto(99).Position)
	assert.Equal(t, 0, c.Goto(-3).Position)
	assert.Equal(t, 3, c.Goto(3).Position)
}

func TestHandle(t *testing.T) {
	c := NewController(deck.Sample())

	s, changed := c.Handle(Previous)
	assert.False(t, changed)
	assert.Equal(t, 0, s.Position)

	s, changed = c.Handle(Next)
	assert.True(t, changed)
	assert.Equal(t, 1, s.Position)

	s, _ = c.Handle(Last)
	assert.Equal(t, 9, s.Position)

	s, _ = c.Handle(ToggleExport)
	require.Equal(t, Exporting, s.Mode)

	s, changed = c.Handle(First)
	assert.False(t, changed, "navigation is suppressed while exporting")
	assert.Equal(t, 9, s.Position)

	_, changed = c.Handle(Print)
	assert.False(t, changed, "print is delegated to the host")

	s, changed = c.Handle(ExitExport)
	assert.True(t, changed)
	assert.Equal(t, Presenting, s.Mode)
	assert.Equal(t, 9, s.Position)
}

func TestReplaceClampsPosition(t *testing.T) {
	c := NewController(deck.Sample())
	c.Goto(8)

	short, err := deck.New("short", "", []deck.Slide{
		{ID: 1, Variant: deck.Title, Title: "a", Content: deck.TitleContent{}},
		{ID: 2, Variant: deck.Conclusion, Title: "b", Content: deck.ConclusionContent{Metaphor: "m"}},
	})
	require.NoError(t, err)

	tr := c.Replace(short)
	assert.Equal(t, Reload, tr.Event)
	assert.Equal(t, 8, tr.From.Position)
	assert.Equal(t, 0, tr.From.Revision)
	assert.Equal(t, 1, tr.To.Position)
	assert.Equal(t, 2, tr.To.Total)
	assert.Equal(t, 1, tr.To.Revision)
	assert.Same(t, short, c.Deck())
}

// Navigation racing a reload must not slip between the two snapshots.
func TestReplaceTransitionIsAtomic(t *testing.T) {
	c := NewController(deck.Sample())
	short, err := deck.New("short", "", deck.Sample().Slides()[:3])
	require.NoError(t, err)
	long := deck.Sample()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				c.Goto(rand.Intn(10))
			}
		}
	}()

	for i := 0; i < 200; i++ {
		d := short
		if i%2 == 1 {
			d = long
		}
		tr := c.Replace(d)
		assert.Equal(t, tr.From.Revision+1, tr.To.Revision)
		assert.Equal(t, min(tr.From.Position, d.Len()-1), tr.To.Position)
	}
	close(stop)
	wg.Wait()
}

func TestSubscribe(t *testing.T) {
	c := NewController(deck.Sample())
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Advance()
	c.Advance()
	select {
	case s := <-ch:
		assert.Equal(t, 2, s.Position, "slow readers see only the latest state")
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}

	c.Retreat()
	c.Retreat()
	c.Retreat()
	s := <-ch
	assert.Equal(t, 0, s.Position)

	// A no-op publishes nothing.
	c.Retreat()
	select {
	case s := <-ch:
		t.Fatalf("unexpected publish %+v", s)
	default:
	}

	cancel()
	_, open := <-ch
	assert.False(t, open)
	cancel()
}

func TestConcurrentWriters(t *testing.T) {
	c := NewController(deck.Sample())
	ch, cancel := c.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if (i+j)%2 == 0 {
					c.Handle(Next)
				} else {
					c.Handle(Previous)
				}
			}
		}(i)
	}
	wg.Wait()

	s := c.State()
	assert.GreaterOrEqual(t, s.Position, 0)
	assert.Less(t, s.Position, s.Total)
	select {
	case <-ch:
	default:
	}
}

func TestApplyReportsBothSides(t *testing.T) {
	c := NewController(deck.Sample())

	tr := c.Apply(Next)
	assert.Equal(t, Next, tr.Event)
	assert.Equal(t, 0, tr.From.Position)
	assert.Equal(t, 1, tr.To.Position)
	assert.True(t, tr.Changed())

	tr = c.Apply(Print)
	assert.False(t, tr.Changed())
	assert.Equal(t, tr.From, tr.To)
}

func TestSnapshotMatchesDeck(t *testing.T) {
	c := NewController(deck.Sample())
	c.Goto(9)

	short, err := deck.New("short", "", deck.Sample().Slides()[:3])
	require.NoError(t, err)
	c.Replace(short)

	s, d := c.Snapshot()
	assert.Same(t, short, d)
	assert.Equal(t, 2, s.Position)
	assert.Equal(t, d.At(s.Position).ID, s.SlideID)
	assert.Equal(t, 1, s.Revision)
}

func TestStateJSONRoundTrip(t *testing.T) {
	c := NewController(deck.Sample())
	c.Advance()
	c.EnterExportMode()

	data, err := json.Marshal(c.State())
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":1,"total":10,"mode":"exporting","slideId":2,"revision":0}`, string(data))

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.State(), back)

	assert.Error(t, json.Unmarshal([]byte(`{"mode":"sleeping"}`), &back))
}
