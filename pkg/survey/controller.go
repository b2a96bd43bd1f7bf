package survey

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/topic"
)

// Recorder receives component outcomes for metrics.
type Recorder interface {
	SubmitAccepted(topic string)
	SubmitRejected(fields int)
	FetchCompleted(topic string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) SubmitAccepted(string)                      {}
func (nopRecorder) SubmitRejected(int)                         {}
func (nopRecorder) FetchCompleted(string, time.Duration, error) {}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for fetch outcomes.
func WithLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) ControllerOption {
	return func(c *Controller) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// WithFetchTimeout bounds every fetch. Zero disables the bound.
func WithFetchTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithMachine overrides the state machine.
func WithMachine(machine *Machine) ControllerOption {
	return func(c *Controller) {
		if machine != nil {
			c.machine = machine
		}
	}
}

// Controller owns one session's snapshot, applies events under a mutex, and
// runs the fetches the machine requests. Only the latest fetch may write
// state: issuing a new one cancels the previous and its late result is
// dropped by sequence number.
type Controller struct {
	machine  *Machine
	fetcher  questions.Fetcher
	logger   *zap.Logger
	recorder Recorder
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	idle     *sync.Cond
	state    Snapshot
	inflight context.CancelFunc
	pending  int
	closed   bool
}

// NewController builds a controller whose fetches live no longer than ctx.
func NewController(ctx context.Context, fetcher questions.Fetcher, opts ...ControllerOption) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Controller{
		machine:  NewMachine(),
		fetcher:  fetcher,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		state:    NewSnapshot(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.idle = sync.NewCond(&c.mu)
	c.ctx, c.cancel = context.WithCancel(ctx)
	return c
}

// Dispatch applies ev and returns a copy of the resulting snapshot. It never
// blocks on I/O.
func (c *Controller) Dispatch(ev Event) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apply(ev)
	return c.state.Clone()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Wait blocks until no fetch is in flight.
func (c *Controller) Wait() {
	c.mu.Lock()
	for c.pending > 0 {
		c.idle.Wait()
	}
	c.mu.Unlock()
}

// Close cancels any outstanding fetch and waits for it to finish. Later
// dispatches still update state but start no fetches.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.Wait()
		return
	}
	c.closed = true
	c.cancel()
	c.mu.Unlock()

	c.Wait()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// apply must be called with mu held.
func (c *Controller) apply(ev Event) {
	next, cmds := c.machine.Update(c.state, ev)
	c.state = next

	if _, ok := ev.(SubmitRequested); ok {
		if next.Phase == PhaseInvalid {
			c.recorder.SubmitRejected(len(next.Form.Errors))
		} else {
			selected, _ := next.SubmittedTopic()
			c.recorder.SubmitAccepted(topic.NameOf(selected))
		}
	}

	for _, cmd := range cmds {
		if fetch, ok := cmd.(FetchQuestions); ok {
			c.startFetch(fetch)
		}
	}
}

// startFetch must be called with mu held.
func (c *Controller) startFetch(cmd FetchQuestions) {
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}

	name := topic.NameOf(cmd.Topic)
	if c.closed || c.fetcher == nil {
		err := errors.New("survey: question fetcher unavailable")
		if c.closed {
			err = context.Canceled
		}
		c.logger.Debug("question fetch skipped",
			zap.String("topic", name),
			zap.Uint64("seq", cmd.Seq),
			zap.Error(err),
		)
		next, _ := c.machine.Update(c.state, QuestionsFailed{Seq: cmd.Seq, Err: err})
		c.state = next
		return
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.inflight = cancel
	c.pending++

	c.logger.Debug("question fetch started", zap.String("topic", name), zap.Uint64("seq", cmd.Seq))

	go func() {
		defer cancel()

		started := time.Now()
		qs, err := c.fetcher.Fetch(ctx, cmd.Topic)
		elapsed := time.Since(started)
		c.recorder.FetchCompleted(name, elapsed, err)

		c.mu.Lock()
		defer c.mu.Unlock()

		if err != nil {
			fields := []zap.Field{
				zap.String("topic", name),
				zap.Uint64("seq", cmd.Seq),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			}
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				c.logger.Debug("question fetch cancelled", fields...)
			} else {
				c.logger.Error("error fetching questions", fields...)
			}
			c.apply(QuestionsFailed{Seq: cmd.Seq, Err: err})
		} else {
			if cmd.Seq != c.state.Seq {
				c.logger.Debug("stale question set ignored",
					zap.String("topic", name),
					zap.Uint64("seq", cmd.Seq),
					zap.Uint64("latest", c.state.Seq),
				)
			}
			c.apply(QuestionsLoaded{Seq: cmd.Seq, Questions: qs})
		}

		if c.state.Seq == cmd.Seq {
			c.inflight = nil
		}
		c.pending--
		if c.pending == 0 {
			c.idle.Broadcast()
		}
	}()
}
