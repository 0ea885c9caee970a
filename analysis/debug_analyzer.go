package analysis

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/game"
)

type PrintDebugAnalyzer struct {
	// savePath is the path to save the trace
	savePath string
	exp      string
	// will save the trace to the file only after the episode number exceeds this threshold
	thresholdEpisode int
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

func NewPrintDebugAnalyzer(savePath string, threshold int) *PrintDebugAnalyzer {
	return &PrintDebugAnalyzer{
		savePath:         ensureDir(path.Join(savePath, "traces")),
		thresholdEpisode: threshold,
	}
}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	if ctx.Episode < a.thresholdEpisode {
		return
	}
	fileName := fmt.Sprintf("%d_trace_%d.txt", ctx.Run, ctx.Episode)
	if a.exp != "" {
		fileName = fmt.Sprintf("%d_%s_trace_%d.txt", ctx.Run, a.exp, ctx.Episode)
	}
	file := path.Join(a.savePath, fileName)
	if err := os.WriteFile(file, []byte(traceToString(trace)), 0644); err != nil {
		glog.Errorf("Error writing trace %s: %v", file, err)
	}
}

func traceToString(trace *core.Trace) string {
	buf := new(bytes.Buffer)
	for i := 0; i < trace.Len(); i++ {
		buf.WriteString(fmt.Sprintf("Step %d\n%s\n", i, stepToString(trace.Step(i))))
	}
	buf.WriteString(fmt.Sprintf("Return: %g\n", trace.Return()))
	return buf.String()
}

func stepToString(step *core.Step) string {
	return fmt.Sprintf(
		"State: %s\nAction: %s\nReward: %g\nNext State: %s\n",
		stateToString(step.State),
		actionToString(step.Action),
		step.Reward,
		stateToString(step.NextState),
	)
}

func stateToString(state core.State) string {
	hs, ok := state.(*game.HandState)
	if !ok {
		return state.Hash()
	}
	switch hs.Outcome {
	case game.Busted:
		return fmt.Sprintf("BUST [%s] sum %d", hs.Hand, hs.Hand.Sum())
	case game.Stopped:
		if hs.Bonus {
			return fmt.Sprintf("STOP [%s] with bonus", hs.Hand)
		}
		return fmt.Sprintf("STOP [%s]", hs.Hand)
	}
	return fmt.Sprintf("[%s] sum %d", hs.Hand, hs.Hand.Sum())
}

func actionToString(action core.Action) string {
	if a, ok := action.(game.Action); ok {
		return fmt.Sprintf("%s (%d)", a, a.Code())
	}
	return "Unknown Action " + action.Hash()
}

// ensureDir creates dir if needed and returns it.
func ensureDir(dir string) string {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			glog.Errorf("Error creating %s: %v", dir, err)
		}
	}
	return dir
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *PrintDebugAnalyzer) Reset() {
	// do nothing
}

type PrintDebugAnalyzerConstructor struct {
	SavePath         string
	ThresholdEpisode int
}

var _ core.AnalyzerConstructor = &PrintDebugAnalyzerConstructor{}

func NewPrintDebugAnalyzerConstructor(savePath string, thresholdEpisode int) *PrintDebugAnalyzerConstructor {
	return &PrintDebugAnalyzerConstructor{
		SavePath:         savePath,
		ThresholdEpisode: thresholdEpisode,
	}
}

func (c *PrintDebugAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	return &PrintDebugAnalyzer{
		savePath:         ensureDir(path.Join(c.SavePath, "traces")),
		exp:              exp,
		thresholdEpisode: c.ThresholdEpisode,
	}
}
