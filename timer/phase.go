package timer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/internal/ui"
)

// Mode is the direction the work clock counts in.
type Mode int

const (
	CountUp Mode = iota
	CountDown
)

func (m Mode) String() string {
	if m == CountDown {
		return "down"
	}

	return "up"
}

// PhaseResult describes a finished work or break phase.
type PhaseResult struct {
	Start timeutil.Stamp `json:"start"`
	End   timeutil.Stamp `json:"end"`
	// Input is the line that ended the phase without its line terminator.
	Input string `json:"input"`
	// Elapsed is measured between the start and stop instants, so it is
	// immune to wall clock adjustments.
	Elapsed        time.Duration `json:"elapsed"`
	ElapsedSeconds int           `json:"elapsed_seconds"`
	// Mode and RemainingSeconds carry the countdown into the next work phase.
	Mode             Mode `json:"mode"`
	RemainingSeconds int  `json:"remaining_seconds"`
	// StreamEnded is set when the input closed before a full line was read.
	StreamEnded bool `json:"stream_ended"`
}

// Quit reports whether the operator asked to stop the run.
func (r PhaseResult) Quit() bool {
	return r.StreamEnded || r.Input == "q"
}

// Ticker delivers render ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type systemTicker struct {
	*time.Ticker
}

func (t systemTicker) C() <-chan time.Time {
	return t.Ticker.C
}

// NewTicker returns a Ticker that fires every second.
func NewTicker() Ticker {
	return systemTicker{time.NewTicker(time.Second)}
}

// Phase runs phases one at a time against a shared input stream.
type Phase struct {
	in        *bufio.Reader
	out       io.Writer
	clock     timeutil.Clock
	notifier  Notifier
	newTicker func() Ticker
}

// PhaseOption configures a Phase.
type PhaseOption func(*Phase)

func WithOutput(w io.Writer) PhaseOption {
	return func(p *Phase) {
		p.out = w
	}
}

func WithClock(c timeutil.Clock) PhaseOption {
	return func(p *Phase) {
		p.clock = c
	}
}

func WithTicker(fn func() Ticker) PhaseOption {
	return func(p *Phase) {
		p.newTicker = fn
	}
}

func WithNotifier(n Notifier) PhaseOption {
	return func(p *Phase) {
		p.notifier = n
	}
}

// NewPhase returns a Phase that reads terminating lines from in. The reader
// is kept across phases so buffered input is never lost.
func NewPhase(in io.Reader, opts ...PhaseOption) *Phase {
	p := &Phase{
		in:        bufio.NewReader(in),
		out:       io.Discard,
		clock:     timeutil.System,
		notifier:  nopNotifier{},
		newTicker: NewTicker,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// RunPhase renders a live clock until a line is read from the input, then
// stops the renderer and returns how long the phase lasted. Break phases
// always count up and leave the countdown budget untouched.
func (p *Phase) RunPhase(
	ctx context.Context,
	mode Mode,
	budgetSeconds int,
	isBreak bool,
) PhaseResult {
	r := &renderer{
		out:       p.out,
		notifier:  p.notifier,
		mode:      mode,
		remaining: budgetSeconds,
		isBreak:   isBreak,
	}

	// a fresh channel per phase; nothing from a previous phase can leak in
	done := make(chan struct{})
	ticker := p.newTicker()

	start := p.clock.Now()
	r.start = start

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		defer ticker.Stop()

		r.run(done, ticker.C())
	}()

	line, err := p.in.ReadString('\n')
	end := p.clock.Now()

	close(done)
	wg.Wait()

	elapsed := end.Sub(start)

	res := PhaseResult{
		Start:            timeutil.StampOf(start),
		End:              timeutil.StampOf(end),
		Input:            strings.TrimRight(line, "\r\n"),
		Elapsed:          elapsed,
		ElapsedSeconds:   int(elapsed / time.Second),
		Mode:             r.mode,
		RemainingSeconds: r.remaining,
		StreamEnded:      err != nil,
	}

	if err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "reading phase input failed", slog.Any("error", err))
	}

	slog.DebugContext(
		ctx,
		"phase finished",
		slog.Bool("break", isBreak),
		slog.Int("elapsed_seconds", res.ElapsedSeconds),
		slog.Bool("stream_ended", res.StreamEnded),
	)

	return res
}

const (
	bannerTitle = "Finished set work time!"
	notifyTitle = "Work time finished"
)

// renderer owns the countdown state while a phase runs. The foreground only
// reads it after the renderer goroutine has been joined.
type renderer struct {
	start     time.Time
	out       io.Writer
	notifier  Notifier
	mode      Mode
	remaining int
	isBreak   bool
	finished  bool
}

func (r *renderer) run(done <-chan struct{}, ticks <-chan time.Time) {
	for {
		var now time.Time

		select {
		case <-done:
			return
		case now = <-ticks:
		}

		// done wins over a tick that became ready at the same time
		select {
		case <-done:
			return
		default:
		}

		r.tick(now)
	}
}

func (r *renderer) tick(now time.Time) {
	if r.isBreak || r.mode != CountDown {
		elapsed := now.Sub(r.start)
		fmt.Fprintf(r.out, "\t%s\r", timeutil.FormatElapsed(elapsed))

		return
	}

	r.remaining--

	hours := float64(r.remaining) / 3600
	fmt.Fprintf(r.out, "\t%02.2f\r", hours)

	if r.remaining < 0 {
		r.finish()
	}
}

// finish switches the phase to counting up for good.
func (r *renderer) finish() {
	r.mode = CountUp

	if r.finished {
		return
	}

	r.finished = true

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, ui.Banner(
		bannerTitle,
		"Feel free to continue",
		"Time will continue to be counted",
	))

	if err := r.notifier.Notify(notifyTitle, "Time will continue to be counted"); err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}
}
