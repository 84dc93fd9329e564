package store

import (
	"errors"
	"testing"
	"time"
)

func testRecord(runID string) *RunRecord {
	return &RunRecord{
		RunID:     runID,
		Instance:  "testdata/toy.txt",
		N:         6,
		K:         2,
		Assign:    []int{0, 0, 0, 1, 1, 1},
		Sizes:     []int{3, 3},
		Cost:      40.2,
		BestCost:  40.2,
		MeanCost:  39.5,
		WorstCost: 38.0,
		Timestamp: time.Now(),
		Config: SolverConfig{
			PopMax:         15,
			PopMin:         2,
			ThetaMax:       1.2,
			ThetaMin:       0.1,
			LMax:           3,
			TimeBudgetSecs: 3,
			Seed:           42,
			Repetitions:    20,
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}

	rec := testRecord("run-1")
	if err := fs.SaveRun("run-1", rec); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	loaded, err := fs.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.Cost != rec.Cost {
		t.Errorf("cost = %v, want %v", loaded.Cost, rec.Cost)
	}
	if len(loaded.Assign) != rec.N {
		t.Errorf("assignment length = %d, want %d", len(loaded.Assign), rec.N)
	}
	if loaded.Config.Repetitions != 20 {
		t.Errorf("config not round-tripped: %+v", loaded.Config)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("loaded record invalid: %v", err)
	}
}

func TestSaveRunOverwrites(t *testing.T) {
	fs, _ := NewFSStore(t.TempDir())

	first := testRecord("run-1")
	if err := fs.SaveRun("run-1", first); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	second := testRecord("run-1")
	second.Cost = 99.0
	if err := fs.SaveRun("run-1", second); err != nil {
		t.Fatalf("SaveRun (overwrite) failed: %v", err)
	}

	loaded, err := fs.LoadRun("run-1")
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.Cost != 99.0 {
		t.Errorf("overwrite lost: cost = %v, want 99", loaded.Cost)
	}
}

func TestLoadRunNotFound(t *testing.T) {
	fs, _ := NewFSStore(t.TempDir())

	_, err := fs.LoadRun("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	fs, _ := NewFSStore(t.TempDir())

	infos, err := fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(infos))
	}

	fs.SaveRun("a", testRecord("a"))
	fs.SaveRun("b", testRecord("b"))

	infos, err = fs.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d entries, want 2", len(infos))
	}
	for _, info := range infos {
		if info.N != 6 || info.K != 2 {
			t.Errorf("bad metadata: %+v", info)
		}
	}
}

func TestDeleteRun(t *testing.T) {
	fs, _ := NewFSStore(t.TempDir())
	fs.SaveRun("run-1", testRecord("run-1"))

	if err := fs.DeleteRun("run-1"); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if _, err := fs.LoadRun("run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("record still present after delete: %v", err)
	}
	if err := fs.DeleteRun("run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSaveRunRejectsBadInput(t *testing.T) {
	fs, _ := NewFSStore(t.TempDir())

	if err := fs.SaveRun("", testRecord("x")); err == nil {
		t.Error("expected error for empty runID")
	}
	if err := fs.SaveRun("x", nil); err == nil {
		t.Error("expected error for nil record")
	}
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || a == b {
		t.Errorf("run IDs not unique: %q vs %q", a, b)
	}
}
