package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.Execute()
	return out.String(), err
}

func TestSolveAndQuery(t *testing.T) {
	policy := filepath.Join(t.TempDir(), "policy.jsonl")
	out, err := execute(t, "solve",
		"--threshold", "5", "--bonus", "10", "--sequence", "1,2",
		"--out", policy,
		"1H 2D", "",
	)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if got := strings.Fields(out); len(got) != 2 || got[0] != "27" || got[1] != "0" {
		t.Errorf("solve printed %q, want codes 27 and 0", out)
	}

	out, err = execute(t, "query", "--policy", policy, "2D 1H", "13H")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("query printed %q", out)
	}
	if !strings.HasPrefix(lines[0], "27\tstop\t") {
		t.Errorf("query [1H 2D] = %q", lines[0])
	}
	if lines[1] != "27\tstop\t-" {
		t.Errorf("query [13H] = %q, want unknown stop", lines[1])
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "solve", "--threshold", "0"); err == nil {
		t.Error("threshold 0 accepted")
	}
	if _, err := execute(t, "solve", "--threshold", "5", "1H 1H"); err == nil {
		t.Error("duplicate card accepted")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(envParallelism, "7")
	if _, err := execute(t, "solve", "--threshold", "3"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if flags.Parallelism != 7 {
		t.Errorf("parallelism %d, want 7 from the env", flags.Parallelism)
	}

	if _, err := execute(t, "solve", "--threshold", "3", "--parallelism", "2"); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if flags.Parallelism != 2 {
		t.Errorf("parallelism %d, want the flag value 2", flags.Parallelism)
	}
}
