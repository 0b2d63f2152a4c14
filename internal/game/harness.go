package game

import "math"

// Sim is a headless session harness used by cmd/headless-run and the tests.
// It drives the session with a scripted player that walks the maze solution
// path toward the exit, with no ebiten dependency, deterministic seeding and
// structured logging.
type Sim struct {
	Session *Session
	Log     *EventLog

	cfg      SessionConfig
	verbose  bool
	path     [][2]int // solution path, start to exit
	waypoint int      // next path index the scripted player steers for
}

// SimOption is a builder function applied to a Sim during construction.
type SimOption func(*Sim)

// WithMazeSize sets the maze dimensions in cells.
func WithMazeSize(w, h int) SimOption {
	return func(s *Sim) {
		s.cfg.MazeWidth = w
		s.cfg.MazeHeight = h
	}
}

// WithCellSize sets the world-space cell edge length.
func WithCellSize(size float64) SimOption {
	return func(s *Sim) { s.cfg.CellSize = size }
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(s *Sim) { s.cfg.Seed = seed }
}

// WithPursuers sets the number of pursuers. Use -1 for none.
func WithPursuers(n int) SimOption {
	return func(s *Sim) { s.cfg.PursuerCount = n }
}

// WithRecordStore routes win times into the given store.
func WithRecordStore(rs RecordStore) SimOption {
	return func(s *Sim) { s.cfg.Records = rs }
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return func(s *Sim) { s.verbose = v }
}

// NewSim constructs a headless session from the given options.
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{cfg: SessionConfig{Seed: 1}}
	for _, o := range opts {
		o(s)
	}
	// SessionConfig treats 0 as "use default", so WithPursuers(-1) requests
	// the no-pursuer case and the spawned set is stripped after creation.
	noPursuers := s.cfg.PursuerCount == -1
	if noPursuers {
		s.cfg.PursuerCount = 1
	}
	s.cfg.Log = NewEventLog(s.verbose)
	sess, err := NewSession(s.cfg)
	if err != nil {
		return nil, err
	}
	if noPursuers {
		sess.pursuers = nil
	}
	s.Session = sess
	s.Log = sess.Log()
	s.resetPath()
	return s, nil
}

func (s *Sim) resetPath() {
	m := s.Session.Maze()
	sx, sy := m.Start()
	ex, ey := m.Exit()
	s.path = m.SolvePath(sx, sy, ex, ey)
	s.waypoint = 0
}

// simDT is the fixed headless frame time (60 ticks per simulated second).
const simDT = 1.0 / 60.0

// RunTicks advances the simulation by up to n ticks, stopping early when the
// session leaves the Playing state. It returns the final state.
func (s *Sim) RunTicks(n int) State {
	for i := 0; i < n; i++ {
		if s.Session.State() != StatePlaying {
			break
		}
		s.Session.Update(s.scriptedInput(), simDT)
	}
	return s.Session.State()
}

// scriptedInput points the player straight at the next solution waypoint and
// walks forward. The path is the unique corridor route, so no wall ever
// blocks the straight line to the next cell centre.
func (s *Sim) scriptedInput() InputFrame {
	m := s.Session.Maze()
	p := s.Session.Player()

	// Advance the waypoint once the current one is reached.
	for s.waypoint < len(s.path) {
		wp := m.CellToWorld(s.path[s.waypoint][0], s.path[s.waypoint][1])
		dx := wp.X - p.Pos.X
		dz := wp.Z - p.Pos.Z
		if dx*dx+dz*dz > 0.04 {
			break
		}
		s.waypoint++
	}
	if s.waypoint >= len(s.path) {
		return InputFrame{}
	}

	wp := m.CellToWorld(s.path[s.waypoint][0], s.path[s.waypoint][1])
	// Steer by snapping yaw toward the waypoint; forward is (sin yaw, cos yaw)
	// at zero pitch.
	p.Yaw = math.Atan2(wp.X-p.Pos.X, wp.Z-p.Pos.Z)
	p.Pitch = 0
	return InputFrame{MoveForward: 1, Run: true}
}

// PathLength returns the number of cells on the solution path.
func (s *Sim) PathLength() int { return len(s.path) }
