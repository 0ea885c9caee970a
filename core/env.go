package core

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInvalidAction = errors.New("action not available in state")
)

type Environment interface {
	Reset() (State, error)
	// Step applies the action and returns the next state with the reward earned by the transition.
	Step(Action, *StepContext) (State, float64, error)
}

type State interface {
	Hash() string
	Actions() []Action
	Terminal() bool
}

type Action interface {
	Hash() string
}

type EpisodeContext struct {
	Context context.Context
	Episode int
	Horizon int
	Run     int

	Trace *Trace

	err     error
	timeout bool
	doneCh  chan struct{}
	once    sync.Once
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
		doneCh:  make(chan struct{}),
	}
}

// Error, Timeout and Finish end the episode. Only the first call counts.
func (e *EpisodeContext) Error(err error) {
	e.once.Do(func() {
		e.err = err
		e.Trace.SetError(err)
		close(e.doneCh)
	})
}

func (e *EpisodeContext) Timeout() {
	e.once.Do(func() {
		e.timeout = true
		close(e.doneCh)
	})
}

func (e *EpisodeContext) Finish() {
	e.once.Do(func() {
		close(e.doneCh)
	})
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

func (e *EpisodeContext) IsTimeout() bool {
	return e.timeout
}

func (e *EpisodeContext) Done() <-chan struct{} {
	return e.doneCh
}

type StepContext struct {
	Step int
	*EpisodeContext
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment with the given instance number.
	NewEnvironment(int) Environment
}
