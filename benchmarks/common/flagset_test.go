package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeu5/cardmdp/game"
)

func TestGameFromFlags(t *testing.T) {
	f := DefaultFlags()
	f.Threshold = 10
	f.Bonus = 5
	f.Sequence = []int{3, 4}

	cfg, hands, err := f.Game()
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if cfg.Threshold != 10 || cfg.Bonus != 5 || len(cfg.Sequence) != 2 {
		t.Errorf("config %+v", cfg)
	}
	if len(hands) != 0 {
		t.Errorf("hands %v without a testcase", hands)
	}

	f.Sequence[0] = 9
	if cfg.Sequence[0] != 3 {
		t.Error("config shares its sequence with the flags")
	}
}

func TestGameInvalidFlags(t *testing.T) {
	f := DefaultFlags()
	f.Threshold = 0
	if _, _, err := f.Game(); !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("err %v, want %v", err, game.ErrInvalidConfig)
	}
}

func TestGameFromTestcase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.txt")
	content := "Configuration:\n5\n10\n1 2\nTestcase:\n1H 2D\n3H\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	f := DefaultFlags()
	f.Testcase = path

	cfg, hands, err := f.Game()
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if cfg.Threshold != 5 || cfg.Bonus != 10 {
		t.Errorf("config %+v", cfg)
	}
	if len(hands) != 2 || hands[0].String() != "1H 2D" || hands[1].String() != "3H" {
		t.Errorf("hands %v", hands)
	}
}

func TestRecord(t *testing.T) {
	f := DefaultFlags()
	f.SavePath = filepath.Join(t.TempDir(), "run")
	if err := f.Record(); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.SavePath, "config.json")); err != nil {
		t.Errorf("config.json: %v", err)
	}
}
