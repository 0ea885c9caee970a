package analysis

import (
	"fmt"
	"os"
	"path"

	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/core"
)

// ErrorAnalyzer writes the trace of every episode that ended in an error.
type ErrorAnalyzer struct {
	savePath string
	exp      string
	count    int
}

var _ core.Analyzer = &ErrorAnalyzer{}

func NewErrorAnalyzer(savePath string) *ErrorAnalyzer {
	return &ErrorAnalyzer{
		savePath: ensureDir(path.Join(savePath, "errors")),
	}
}

func (a *ErrorAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	err := trace.Error()
	if err == nil {
		return
	}
	a.count++
	out := fmt.Sprintf("Error: %s\n%s", err, traceToString(trace))

	fileName := fmt.Sprintf("%d_error_%d.txt", ctx.Run, ctx.Episode)
	if a.exp != "" {
		fileName = fmt.Sprintf("%d_%s_error_%d.txt", ctx.Run, a.exp, ctx.Episode)
	}
	file := path.Join(a.savePath, fileName)
	if err := os.WriteFile(file, []byte(out), 0644); err != nil {
		glog.Errorf("Error writing %s: %v", file, err)
	}
}

// DataSet is the number of errored episodes seen.
func (a *ErrorAnalyzer) DataSet() core.DataSet {
	return a.count
}

func (a *ErrorAnalyzer) Reset() {
	a.count = 0
}

type ErrorAnalyzerConstructor struct {
	SavePath string
}

var _ core.AnalyzerConstructor = &ErrorAnalyzerConstructor{}

func NewErrorAnalyzerConstructor(savePath string) *ErrorAnalyzerConstructor {
	return &ErrorAnalyzerConstructor{
		SavePath: savePath,
	}
}

func (e *ErrorAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	return &ErrorAnalyzer{
		savePath: ensureDir(path.Join(e.SavePath, "errors")),
		exp:      exp,
	}
}
