package game

import "testing"

func TestSim_ScriptedPlayerEscapesWithoutPursuers(t *testing.T) {
	sim, err := NewSim(WithMazeSize(4, 4), WithSeed(7), WithPursuers(-1))
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if got := len(sim.Session.Pursuers()); got != 0 {
		t.Fatalf("expected no pursuers, got %d", got)
	}
	if sim.PathLength() < 7 {
		t.Fatalf("4x4 solution path should span at least 7 cells, got %d", sim.PathLength())
	}

	state := sim.RunTicks(60 * 60)
	if state != StateWon {
		t.Fatalf("scripted player should escape an empty maze, got %v", state)
	}
	if sim.Session.Tick() >= 60*60 {
		t.Fatal("escape should finish well before the tick budget")
	}
	if sim.Log.CountCategory("record", "candidate") != 1 {
		t.Fatal("win should log a record candidate")
	}
}

func TestSim_RecordStoreReceivesWinTime(t *testing.T) {
	store := &memRecordStore{}
	sim, err := NewSim(WithMazeSize(3, 3), WithSeed(2), WithPursuers(-1), WithRecordStore(store))
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if state := sim.RunTicks(60 * 60); state != StateWon {
		t.Fatalf("expected won, got %v", state)
	}
	if len(store.submitted) != 1 || store.submitted[0] != sim.Session.Elapsed() {
		t.Fatalf("store received %v, want one submission of %g", store.submitted, sim.Session.Elapsed())
	}
}

func TestSim_DeterministicAcrossRuns(t *testing.T) {
	run := func() *Sim {
		sim, err := NewSim(WithMazeSize(10, 10), WithSeed(5))
		if err != nil {
			t.Fatalf("NewSim: %v", err)
		}
		sim.RunTicks(600)
		return sim
	}
	a, b := run(), run()

	if a.Session.State() != b.Session.State() {
		t.Fatalf("states diverged: %v vs %v", a.Session.State(), b.Session.State())
	}
	if a.Session.Tick() != b.Session.Tick() {
		t.Fatalf("tick counts diverged: %d vs %d", a.Session.Tick(), b.Session.Tick())
	}
	if a.Session.Player().Pos != b.Session.Player().Pos {
		t.Fatal("player positions diverged between identical seeds")
	}
	pa, pb := a.Session.Pursuers(), b.Session.Pursuers()
	if len(pa) != len(pb) {
		t.Fatalf("pursuer counts diverged: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].Pos != pb[i].Pos {
			t.Fatalf("pursuer %d positions diverged", i)
		}
	}
	ea, eb := a.Log.Entries(), b.Log.Entries()
	if len(ea) != len(eb) {
		t.Fatalf("log lengths diverged: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("log entry %d diverged: %v vs %v", i, ea[i], eb[i])
		}
	}
}

func TestSim_DifferentSeedsDifferentMazes(t *testing.T) {
	a, err := NewSim(WithMazeSize(9, 9), WithSeed(1), WithPursuers(-1))
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	b, err := NewSim(WithMazeSize(9, 9), WithSeed(2), WithPursuers(-1))
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	same := true
	for i := range a.Session.Maze().cells {
		if a.Session.Maze().cells[i] != b.Session.Maze().cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should generate different mazes")
	}
}

func TestSim_InvalidConfigSurfacesError(t *testing.T) {
	if _, err := NewSim(WithMazeSize(-2, 5)); err == nil {
		t.Fatal("expected error for invalid maze size")
	}
}
