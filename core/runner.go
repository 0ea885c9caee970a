package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gosuri/uilive"
)

var (
	ErrTooManyTimeouts = errors.New("too many timeouts")
	ErrTooManyErrors   = errors.New("too many errors")
	ErrNoAction        = errors.New("policy picked no action")
)

// progressEvery controls how often an experiment reports its episode count.
const progressEvery = 100

type experimentRunContext struct {
	run       int
	ctx       context.Context
	analyzers map[string]Analyzer

	writer io.Writer

	*RunConfig
}

type ExperimentResult struct {
	CompletedEpisodes int
	TotalEpisodes     int
	ErrorEpisodes     int
	TimeoutEpisodes   int
	HorizonEpisodes   int
	TotalTimeSteps    int
	TotalReturn       float64

	Error    error
	Datasets map[string]DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

// MeanReturn averages the return over completed episodes.
func (r *ExperimentResult) MeanReturn() float64 {
	if r.CompletedEpisodes == 0 {
		return 0
	}
	return r.TotalReturn / float64(r.CompletedEpisodes)
}

func (e *Experiment) runEpisode(eCtx *EpisodeContext, horizon int) {
	state, err := e.Environment.Reset()
	if err != nil {
		eCtx.Error(err)
		return
	}
	for step := 0; step < horizon && !state.Terminal(); step++ {
		select {
		case <-eCtx.Context.Done():
			eCtx.Error(eCtx.Context.Err())
			return
		default:
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		action := e.Policy.PickAction(sCtx, state, state.Actions())
		if action == nil {
			eCtx.Error(ErrNoAction)
			return
		}
		nextState, reward, err := e.Environment.Step(action, sCtx)
		if err != nil {
			eCtx.Error(err)
			return
		}
		e.Policy.UpdateStep(sCtx, state, action, reward, nextState)
		eCtx.Trace.AddStep(&Step{
			State:     state,
			Action:    action,
			Reward:    reward,
			NextState: nextState,
		})
		state = nextState
	}
	e.Policy.UpdateEpisode(eCtx)
	eCtx.Finish()
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	e.Policy.Reset()

	consecutiveErrors := 0
	consecutiveTimeouts := 0
EpisodeLoop:
	for episode := 0; episode < ctx.Episodes; episode++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = errors.New("context cancelled")
			break EpisodeLoop
		default:
		}

		if episode%progressEvery == 0 {
			fmt.Fprintf(
				ctx.writer,
				"Experiment: %s, Run %d, Episode %d/%d, Timesteps: %d, Error: %d, Timedout: %d, Horizon: %d\n",
				e.Name, ctx.run, episode, ctx.Episodes, result.TotalTimeSteps, result.ErrorEpisodes, result.TimeoutEpisodes, result.HorizonEpisodes,
			)
		}

		var episodeCtx context.Context
		var cancel context.CancelFunc
		if ctx.EpisodeTimeout > 0 {
			episodeCtx, cancel = context.WithTimeout(ctx.ctx, ctx.EpisodeTimeout)
		} else {
			episodeCtx, cancel = context.WithCancel(ctx.ctx)
		}
		eCtx := NewEpisodeContext(episodeCtx)
		eCtx.Run = ctx.run
		eCtx.Episode = episode
		eCtx.Horizon = ctx.Horizon
		e.Policy.ResetEpisode(eCtx)

		go e.runEpisode(eCtx, ctx.Horizon)

		errorred := false
		timedout := false
		select {
		case <-eCtx.Done():
			errorred = eCtx.IsError()
		case <-episodeCtx.Done():
			eCtx.Timeout()
			timedout = eCtx.IsTimeout()
			errorred = eCtx.IsError()
		}
		cancel()

		if errorred {
			result.ErrorEpisodes++
			if consecutiveErrors++; consecutiveErrors >= ctx.ThresholdConsecutiveErrors {
				result.Error = ErrTooManyErrors
				break EpisodeLoop
			}
		} else {
			consecutiveErrors = 0
		}
		if timedout {
			result.TimeoutEpisodes++
			if consecutiveTimeouts++; consecutiveTimeouts >= ctx.ThresholdConsecutiveTimeouts {
				result.Error = ErrTooManyTimeouts
				break EpisodeLoop
			}
		} else {
			consecutiveTimeouts = 0
		}

		if !errorred && !timedout {
			result.TotalTimeSteps += eCtx.Trace.Len()
			result.TotalReturn += eCtx.Trace.Return()
			result.CompletedEpisodes++
			if last := eCtx.Trace.Last(); last == nil || !last.NextState.Terminal() {
				result.HorizonEpisodes++
			}
		}
		result.TotalEpisodes++

		for _, a := range ctx.analyzers {
			a.Analyze(eCtx, eCtx.Trace)
		}
	}
	if result.Error != nil {
		fmt.Fprintf(ctx.writer, "Experiment: %s, Run %d, Error: %v\n", e.Name, ctx.run, result.Error)
	} else {
		fmt.Fprintf(
			ctx.writer,
			"Experiment: %s, Run %d, Episodes: %d, Mean return: %.3f\n",
			e.Name, ctx.run, result.CompletedEpisodes, result.MeanReturn(),
		)
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}

	e.Policy.Reset()
	return result
}

// parallelWorker is a worker that runs experiments
type parallelWorker struct {
	id int
}

// parallelWork is a struct that contains all the information needed to run an experiment
type parallelWork struct {
	experiment *ParallelExperiment
	comp       *ParallelComparison
	runNumber  int
	writer     io.Writer
	rConfig    *RunConfig
}

// parallelResult is a struct that contains the result of running an experiment
type parallelResult struct {
	experimentName string
	run            int
	result         *ExperimentResult
}

// Worker main loop that consumes work from a channel
func (w *parallelWorker) run(ctx context.Context, workCh <-chan *parallelWork, resultsCh chan<- *parallelResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case work, more := <-workCh:
			if !more {
				return
			}
			resultsCh <- w.runWork(ctx, work)
		}
	}
}

// Run an experiment by constructing the experiment context, *Experiment
func (w *parallelWorker) runWork(ctx context.Context, work *parallelWork) *parallelResult {
	eCtx := &experimentRunContext{
		run:       work.runNumber,
		ctx:       ctx,
		analyzers: make(map[string]Analyzer),
		writer:    work.writer,
		RunConfig: work.rConfig,
	}

	for name, aC := range work.comp.Analyzers {
		eCtx.analyzers[name] = aC.NewAnalyzer(work.experiment.Name, w.id)
	}

	exp := &Experiment{
		Name:        work.experiment.Name,
		Environment: work.experiment.Environment.NewEnvironment(w.id),
		Policy:      work.experiment.Policy.NewPolicy(),
	}

	return &parallelResult{
		experimentName: work.experiment.Name,
		run:            work.runNumber,
		result:         exp.run(eCtx),
	}
}

// Run executes every experiment once per run, spread over parallelism workers,
// and hands the analyzer datasets of each run to the comparators.
// The returned slice holds the results of each completed run.
func (c *ParallelComparison) Run(ctx context.Context, runs int, rConfig *RunConfig, parallelism int) []map[string]*ExperimentResult {
	if parallelism < 1 {
		parallelism = 1
	}
	out := make([]map[string]*ExperimentResult, 0, runs)
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		writer := uilive.New()
		if c.Out != nil {
			writer.Out = c.Out
		}
		writer.Start()
		fmt.Fprintf(writer, "Run %d\n", run)

		works := make([]*parallelWork, len(c.Experiments))
		for i, e := range c.Experiments {
			works[i] = &parallelWork{
				experiment: e,
				comp:       c,
				runNumber:  run,
				rConfig:    rConfig,
				writer:     writer.Newline(),
			}
		}

		workCh := make(chan *parallelWork)
		resultsCh := make(chan *parallelResult, len(works))

		wg := new(sync.WaitGroup)
		for i := 0; i < parallelism; i++ {
			worker := &parallelWorker{id: i}
			wg.Add(1)
			go func() {
				defer wg.Done()
				worker.run(ctx, workCh, resultsCh)
			}()
		}

		go func() {
			defer close(workCh)
			for _, work := range works {
				select {
				case <-ctx.Done():
					return
				case workCh <- work:
				}
			}
		}()

		wg.Wait()
		close(resultsCh)
		writer.Stop()

		results := make(map[string]*ExperimentResult)
		for result := range resultsCh {
			results[result.experimentName] = result.result
		}

		// Gather datasets to run comparisons
		datasets := make(map[string][]DataSet)
		experimentNames := make([]string, 0)
		for _, e := range c.Experiments {
			result, ok := results[e.Name]
			if !ok {
				continue
			}
			experimentNames = append(experimentNames, e.Name)
			for name := range c.Analyzers {
				if result.IsError() {
					datasets[name] = append(datasets[name], nil)
				} else {
					datasets[name] = append(datasets[name], result.Datasets[name])
				}
			}
		}
		for name, cmp := range c.Comparators {
			select {
			case <-ctx.Done():
				return out
			default:
			}
			cmp.NewComparator(run).Compare(experimentNames, datasets[name])
		}
		out = append(out, results)
	}
	return out
}
