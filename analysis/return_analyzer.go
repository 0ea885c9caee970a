package analysis

import (
	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/game"
	"github.com/zeu5/cardmdp/util"
)

// ReturnDataset summarises how a policy's games ended.
type ReturnDataset struct {
	Episodes    int
	Busts       int
	Stops       int
	Bonuses     int
	Unfinished  int
	TotalReturn float64
	// MeanReturns is the running mean return after each episode.
	MeanReturns []float64
}

func (r *ReturnDataset) MeanReturn() float64 {
	if r.Episodes == 0 {
		return 0
	}
	return r.TotalReturn / float64(r.Episodes)
}

func (r *ReturnDataset) Copy() *ReturnDataset {
	out := *r
	out.MeanReturns = util.CopyFloatSlice(r.MeanReturns)
	return &out
}

// ReturnAnalyzer counts outcomes and returns of completed episodes.
type ReturnAnalyzer struct {
	dataset *ReturnDataset
}

var _ core.Analyzer = &ReturnAnalyzer{}

func NewReturnAnalyzer() *ReturnAnalyzer {
	return &ReturnAnalyzer{
		dataset: &ReturnDataset{MeanReturns: make([]float64, 0)},
	}
}

func (r *ReturnAnalyzer) Reset() {
	r.dataset = &ReturnDataset{MeanReturns: make([]float64, 0)}
}

func (r *ReturnAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	if trace.Error() != nil {
		return
	}
	d := r.dataset
	d.Episodes++
	d.TotalReturn += trace.Return()
	d.MeanReturns = append(d.MeanReturns, d.MeanReturn())

	last := trace.Last()
	if last == nil {
		d.Unfinished++
		return
	}
	hs, ok := last.NextState.(*game.HandState)
	if !ok {
		d.Unfinished++
		return
	}
	switch hs.Outcome {
	case game.Busted:
		d.Busts++
	case game.Stopped:
		d.Stops++
		if hs.Bonus {
			d.Bonuses++
		}
	default:
		d.Unfinished++
	}
}

func (r *ReturnAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

type ReturnAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &ReturnAnalyzerConstructor{}

func NewReturnAnalyzerConstructor() *ReturnAnalyzerConstructor {
	return &ReturnAnalyzerConstructor{}
}

func (c *ReturnAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewReturnAnalyzer()
}
