package timer

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tracker/internal/timeutil"
)

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) C() <-chan time.Time {
	return f.ch
}

func (f *fakeTicker) Stop() {}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) Notify(string, string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++

	return nil
}

type phaseHarness struct {
	phase    *Phase
	ticks    chan time.Time
	clock    *timeutil.FakeClock
	input    *io.PipeWriter
	out      *bytes.Buffer
	notifier *countingNotifier
}

func newPhaseHarness(t *testing.T) *phaseHarness {
	t.Helper()

	pr, pw := io.Pipe()
	t.Cleanup(func() {
		pw.Close()
	})

	h := &phaseHarness{
		ticks: make(chan time.Time),
		clock: timeutil.NewFakeClock(
			time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local),
		),
		input:    pw,
		out:      &bytes.Buffer{},
		notifier: &countingNotifier{},
	}

	h.phase = NewPhase(
		pr,
		WithOutput(h.out),
		WithClock(h.clock),
		WithNotifier(h.notifier),
		WithTicker(func() Ticker {
			return &fakeTicker{ch: h.ticks}
		}),
	)

	return h
}

// start runs a phase in the background and returns its result channel.
func (h *phaseHarness) start(mode Mode, budget int, isBreak bool) <-chan PhaseResult {
	results := make(chan PhaseResult, 1)

	go func() {
		results <- h.phase.RunPhase(context.Background(), mode, budget, isBreak)
	}()

	return results
}

// tick delivers n ticks one second apart. The clock follows each tick once
// the renderer has taken it.
func (h *phaseHarness) tick(t *testing.T, n int) {
	t.Helper()

	for range n {
		next := h.clock.Now().Add(time.Second)

		select {
		case h.ticks <- next:
		case <-time.After(time.Second):
			t.Fatal("renderer did not accept a tick")
		}

		h.clock.Set(next)
	}
}

func (h *phaseHarness) finish(t *testing.T, results <-chan PhaseResult, line string) PhaseResult {
	t.Helper()

	_, err := io.WriteString(h.input, line)
	require.NoError(t, err)

	select {
	case res := <-results:
		return res
	case <-time.After(time.Second):
		t.Fatal("phase did not stop within one tick period")
	}

	return PhaseResult{}
}

func TestRunPhaseStopsOnInput(t *testing.T) {
	h := newPhaseHarness(t)

	results := h.start(CountUp, 0, false)

	h.tick(t, 3)
	h.clock.Advance(1500 * time.Millisecond)

	res := h.finish(t, results, "done\r\n")

	assert.Equal(t, "done", res.Input)
	assert.False(t, res.StreamEnded)
	assert.Equal(t, 4500*time.Millisecond, res.Elapsed)
	assert.Equal(t, 4, res.ElapsedSeconds)
	assert.Equal(t, 10, res.Start.Hour)
	assert.Equal(t, 4, res.End.Second)

	out := h.out.String()
	assert.Contains(t, out, "\t00:00:01\r")
	assert.Contains(t, out, "\t00:00:03\r")

	// the renderer has exited, so nobody takes further ticks
	select {
	case h.ticks <- time.Now():
		t.Fatal("renderer still running after the phase ended")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunPhaseStopsWithoutTick(t *testing.T) {
	h := newPhaseHarness(t)

	results := h.start(CountUp, 0, false)
	res := h.finish(t, results, "\n")

	assert.Empty(t, res.Input)
	assert.False(t, res.StreamEnded)
	assert.Zero(t, res.ElapsedSeconds)
	assert.Empty(t, h.out.String())
}

func TestRunPhaseFreshCancellationPerPhase(t *testing.T) {
	h := newPhaseHarness(t)

	first := h.finish(t, h.start(CountUp, 0, false), "one\n")
	assert.Equal(t, "one", first.Input)

	// a second phase on the same Phase must run until its own input
	results := h.start(CountUp, 0, false)
	h.tick(t, 2)

	second := h.finish(t, results, "two\n")
	assert.Equal(t, "two", second.Input)
	assert.Equal(t, 2, second.ElapsedSeconds)
}

func TestCountdownFlipsOnce(t *testing.T) {
	h := newPhaseHarness(t)

	results := h.start(CountDown, 2, false)

	h.tick(t, 2)
	h.tick(t, 1)
	h.tick(t, 3)

	res := h.finish(t, results, "\n")

	out := h.out.String()

	assert.Equal(t, 1, strings.Count(out, bannerTitle))
	assert.Equal(t, 1, h.notifier.calls)
	assert.Equal(t, CountUp, res.Mode)
	assert.Equal(t, -1, res.RemainingSeconds)

	before, after, found := strings.Cut(out, bannerTitle)
	require.True(t, found)

	assert.Equal(t, 3, strings.Count(before, "\t0.00\r")+strings.Count(before, "\t-0.00\r"))
	assert.Contains(t, after, "\t00:00:04\r")
	assert.Contains(t, after, "\t00:00:06\r")
	assert.NotContains(t, after, "0.00\r")
}

func TestCountdownRemainingCarriesOver(t *testing.T) {
	h := newPhaseHarness(t)

	results := h.start(CountDown, 7200, false)
	h.tick(t, 5)

	res := h.finish(t, results, "\n")

	assert.Equal(t, CountDown, res.Mode)
	assert.Equal(t, 7195, res.RemainingSeconds)
	assert.Contains(t, h.out.String(), "\t2.00\r")
	assert.Zero(t, h.notifier.calls)
}

func TestBreakAlwaysCountsUp(t *testing.T) {
	h := newPhaseHarness(t)

	results := h.start(CountDown, 1, true)
	h.tick(t, 3)

	res := h.finish(t, results, "\n")

	assert.Equal(t, CountDown, res.Mode)
	assert.Equal(t, 1, res.RemainingSeconds)
	assert.NotContains(t, h.out.String(), bannerTitle)
	assert.Contains(t, h.out.String(), "\t00:00:03\r")
}

func TestRunPhaseStreamEnded(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"empty stream": {input: "", want: ""},
		"partial line": {input: "q", want: "q"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewPhase(
				strings.NewReader(tc.input),
				WithTicker(func() Ticker {
					return &fakeTicker{}
				}),
			)

			res := p.RunPhase(context.Background(), CountUp, 0, false)

			assert.True(t, res.StreamEnded)
			assert.Equal(t, tc.want, res.Input)
			assert.True(t, res.Quit())
		})
	}
}

func TestRunPhaseReadsFromBufferedInput(t *testing.T) {
	p := NewPhase(
		strings.NewReader("first\nsecond\n"),
		WithTicker(func() Ticker {
			return &fakeTicker{}
		}),
	)

	ctx := context.Background()

	assert.Equal(t, "first", p.RunPhase(ctx, CountUp, 0, false).Input)
	assert.Equal(t, "second", p.RunPhase(ctx, CountUp, 0, true).Input)
	assert.True(t, p.RunPhase(ctx, CountUp, 0, false).StreamEnded)
}
