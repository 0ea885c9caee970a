package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/game"
)

func mustHand(t *testing.T, s string) game.Hand {
	t.Helper()
	h, err := game.ParseHand(s)
	if err != nil {
		t.Fatalf("ParseHand(%q): %v", s, err)
	}
	return h
}

// trace builds a trace that draws through hands and ends in last.
func trace(t *testing.T, last *game.HandState, reward float64, hands ...string) *core.Trace {
	t.Helper()
	tr := core.NewTrace()
	prev := &game.HandState{Hand: game.EmptyHand}
	for _, s := range hands {
		next := &game.HandState{Hand: mustHand(t, s)}
		tr.AddStep(&core.Step{State: prev, Action: game.DrawAction(), NextState: next})
		prev = next
	}
	if last != nil {
		tr.AddStep(&core.Step{State: prev, Action: game.StopAction(), Reward: reward, NextState: last})
	}
	return tr
}

func episode(n int) *core.EpisodeContext {
	eCtx := core.NewEpisodeContext(context.Background())
	eCtx.Episode = n
	return eCtx
}

func TestReturnAnalyzer(t *testing.T) {
	a := NewReturnAnalyzer()

	bonus := &game.HandState{Hand: mustHand(t, "1H 2D"), Outcome: game.Stopped, Bonus: true}
	a.Analyze(episode(0), trace(t, bonus, 13, "1H", "1H 2D"))

	bust := &game.HandState{Hand: mustHand(t, "3H 4D"), Outcome: game.Busted}
	a.Analyze(episode(1), trace(t, bust, 0, "3H"))

	a.Analyze(episode(2), trace(t, nil, 0, "1D"))

	errored := trace(t, nil, 0)
	errored.SetError(errors.New("boom"))
	a.Analyze(episode(3), errored)

	d := a.DataSet().(*ReturnDataset)
	if d.Episodes != 3 {
		t.Errorf("episodes %d, want 3", d.Episodes)
	}
	if d.Stops != 1 || d.Bonuses != 1 || d.Busts != 1 || d.Unfinished != 1 {
		t.Errorf("stops %d bonuses %d busts %d unfinished %d", d.Stops, d.Bonuses, d.Busts, d.Unfinished)
	}
	if d.MeanReturn() != 13.0/3 {
		t.Errorf("mean return %v", d.MeanReturn())
	}
	want := []float64{13, 6.5, 13.0 / 3}
	if len(d.MeanReturns) != len(want) {
		t.Fatalf("mean returns %v", d.MeanReturns)
	}
	for i := range want {
		if d.MeanReturns[i] != want[i] {
			t.Errorf("mean return after %d = %v, want %v", i, d.MeanReturns[i], want[i])
		}
	}

	// the dataset is a snapshot
	d.MeanReturns[0] = -1
	if a.DataSet().(*ReturnDataset).MeanReturns[0] != 13 {
		t.Error("DataSet shares its slice with the analyzer")
	}

	a.Reset()
	if d := a.DataSet().(*ReturnDataset); d.Episodes != 0 || len(d.MeanReturns) != 0 {
		t.Errorf("after Reset: %+v", d)
	}
}

func TestCoverageAnalyzer(t *testing.T) {
	a := NewCoverageAnalyzer()
	stop := &game.HandState{Hand: mustHand(t, "1H 2D"), Outcome: game.Stopped}
	a.Analyze(episode(0), trace(t, stop, 3, "1H", "1H 2D"))
	a.Analyze(episode(1), trace(t, nil, 0, "1H"))

	d := a.DataSet().(*coverageDataset)
	// [], [1H], [1H 2D]; the terminal state is not counted
	if len(d.UniqueStates) != 2 || d.UniqueStates[0] != 3 || d.UniqueStates[1] != 3 {
		t.Errorf("unique states %v, want [3 3]", d.UniqueStates)
	}
	if len(d.Timesteps) != 2 || d.Timesteps[0] != 3 || d.Timesteps[1] != 4 {
		t.Errorf("timesteps %v, want [3 4]", d.Timesteps)
	}
}

func TestErrorAnalyzer(t *testing.T) {
	dir := t.TempDir()
	a := NewErrorAnalyzerConstructor(dir).NewAnalyzer("Random", 0)

	a.Analyze(episode(0), trace(t, nil, 0, "1H"))
	errored := trace(t, nil, 0, "2D")
	errored.SetError(game.ErrInvalidConfig)
	a.Analyze(episode(7), errored)

	if got := a.DataSet().(int); got != 1 {
		t.Errorf("count %d, want 1", got)
	}
	bs, err := os.ReadFile(filepath.Join(dir, "errors", "0_Random_error_7.txt"))
	if err != nil {
		t.Fatalf("reading error trace: %v", err)
	}
	if len(bs) == 0 {
		t.Error("empty error trace")
	}
}

func TestJSONComparator(t *testing.T) {
	dir := t.TempDir()
	c := NewJSONComparatorConstructor(dir, "returns.json").NewComparator(2)
	c.Compare(
		[]string{"Solved", "Broken"},
		[]core.DataSet{&ReturnDataset{Episodes: 4, TotalReturn: 10}, nil},
	)

	bs, err := os.ReadFile(filepath.Join(dir, "2", "returns.json"))
	if err != nil {
		t.Fatalf("reading comparison: %v", err)
	}
	var out map[string]ReturnDataset
	if err := json.Unmarshal(bs, &out); err != nil {
		t.Fatalf("decoding comparison: %v", err)
	}
	if _, ok := out["Broken"]; ok {
		t.Error("nil dataset was written")
	}
	if out["Solved"].Episodes != 4 || out["Solved"].TotalReturn != 10 {
		t.Errorf("Solved = %+v", out["Solved"])
	}
}

func TestDebugStrings(t *testing.T) {
	h := mustHand(t, "1H 2D")
	cases := []struct {
		state core.State
		want  string
	}{
		{&game.HandState{Hand: h}, "[1H 2D] sum 3"},
		{&game.HandState{Hand: h, Outcome: game.Busted}, "BUST [1H 2D] sum 3"},
		{&game.HandState{Hand: h, Outcome: game.Stopped, Bonus: true}, "STOP [1H 2D] with bonus"},
	}
	for _, c := range cases {
		if got := stateToString(c.state); got != c.want {
			t.Errorf("stateToString = %q, want %q", got, c.want)
		}
	}
	if got := actionToString(game.StopAction()); got != "stop (27)" {
		t.Errorf("actionToString(stop) = %q", got)
	}
}
