package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// State is the session-level game state. Pursuer and player updates freeze
// once the state leaves Playing; torches keep burning on the end screens.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InputFrame is one frame of input intent from the input collaborator. The
// core never reads input devices directly. Jump and Restart are
// edge-triggered action events; the look deltas are already scaled to
// radians.
type InputFrame struct {
	MoveForward float64 // +1 forward, -1 back
	MoveStrafe  float64 // +1 right, -1 left
	LookDX      float64
	LookDY      float64
	Run         bool
	Jump        bool
	Restart     bool
}

const (
	defaultMazeWidth    = 15
	defaultMazeHeight   = 15
	defaultCellSize     = 3.0
	defaultPursuerCount = 3

	flameCapacity = 20 // particle pool size per torch
)

// SessionConfig sets up a session. Zero values fall back to the defaults
// above; Seed 0 means seed from the clock.
type SessionConfig struct {
	MazeWidth    int
	MazeHeight   int
	CellSize     float64
	PursuerCount int
	Seed         int64
	Records      RecordStore // optional; receives the completion time on a win
	Log          *EventLog   // optional; a silent log is created if nil
}

func (c *SessionConfig) applyDefaults() {
	if c.MazeWidth == 0 {
		c.MazeWidth = defaultMazeWidth
	}
	if c.MazeHeight == 0 {
		c.MazeHeight = defaultMazeHeight
	}
	if c.CellSize == 0 {
		c.CellSize = defaultCellSize
	}
	if c.PursuerCount == 0 {
		c.PursuerCount = defaultPursuerCount
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Log == nil {
		c.Log = NewEventLog(false)
	}
}

// Session owns all core state for one play-through: the maze, its derived
// wall segments, torches with their flame pools, the pursuers and the player.
// Restart discards and rebuilds everything, so no partial state is ever
// observable.
type Session struct {
	cfg SessionConfig
	rng *rand.Rand

	maze     *Maze
	walls    []WallSegment
	torches  []*Torch
	flames   []*ParticleSystem // one pool per torch
	pursuers []*Pursuer
	player   Player

	state   State
	elapsed float64 // seconds in Playing state
	tick    int
	log     *EventLog
}

// NewSession creates and generates a full session. It fails only on invalid
// maze dimensions; everything else has a defined fallback.
func NewSession(cfg SessionConfig) (*Session, error) {
	cfg.applyDefaults()
	s := &Session{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- gameplay randomness
		log: cfg.Log,
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild generates a fresh maze and derives all session state from it.
func (s *Session) rebuild() error {
	m, err := NewMaze(s.cfg.MazeWidth, s.cfg.MazeHeight, s.cfg.CellSize)
	if err != nil {
		return err
	}
	m.Generate(s.rng)

	s.maze = m
	s.walls = m.BuildWallSegments()
	s.torches = placeTorches(m, s.rng)
	s.flames = make([]*ParticleSystem, len(s.torches))
	for i := range s.flames {
		s.flames[i] = NewParticleSystem(flameCapacity)
	}

	startX, startY := m.Start()
	startWorld := m.CellToWorld(startX, startY)
	s.player = Player{Pos: Vec3{X: startWorld.X, Z: startWorld.Z}}

	minDist := float64(spawnMinDistCells) * m.CellSize()
	s.pursuers = spawnPursuers(m, startWorld, s.cfg.PursuerCount, minDist, s.rng)
	for i, p := range s.pursuers {
		cx, cy := m.WorldToCell(p.Pos.X, p.Pos.Z)
		s.log.Add(s.tick, pursuerLabel(i), "spawn", "placed",
			fmt.Sprintf("cell=(%d,%d)", cx, cy), 0)
	}

	s.state = StatePlaying
	s.elapsed = 0
	s.log.Add(s.tick, "--", "state", "change", "playing", 0)
	return nil
}

// Restart throws the current play-through away and generates a new one. The
// rng stream continues, so restarting produces a different maze.
func (s *Session) Restart() {
	s.log.Add(s.tick, "--", "state", "restart", "", 0)
	// rebuild cannot fail here: the dimensions were validated at creation.
	if err := s.rebuild(); err != nil {
		panic(fmt.Sprintf("session rebuild: %v", err))
	}
}

// Update advances the session by one frame. Frame order is fixed: torches,
// flame particles, player movement, pursuer steering, capture check, exit
// check. A capture this frame takes precedence over reaching the exit.
func (s *Session) Update(in InputFrame, dt float64) {
	s.tick++

	if in.Restart {
		s.Restart()
		return
	}

	for i, t := range s.torches {
		t.Update(dt)
		s.flames[i].Update(t.EmitterPos(), dt, s.rng)
	}

	if s.state != StatePlaying {
		return
	}
	s.elapsed += dt

	s.player.ApplyLook(in.LookDX, in.LookDY)
	s.player.Move(in.MoveForward, in.MoveStrafe, in.Run, dt, s.walls)
	s.player.Fall(in.Jump, dt)
	s.log.AddVerbose(s.tick, "P", "move", "position",
		fmt.Sprintf("(%.2f,%.2f)", s.player.Pos.X, s.player.Pos.Z), 0)

	playerXZ := s.player.Pos.XZ()
	for i, p := range s.pursuers {
		p.Steer(playerXZ, pursuerRandomness, dt, s.walls, s.rng)
		if p.Caught(playerXZ, playerRadius) {
			dx := p.Pos.X - playerXZ.X
			dz := p.Pos.Z - playerXZ.Z
			s.log.Add(s.tick, pursuerLabel(i), "capture", "player_caught",
				fmt.Sprintf("dist=%.2f", math.Sqrt(dx*dx+dz*dz)), 0)
			s.setState(StateLost)
			return
		}
	}

	cx, cy := s.maze.WorldToCell(s.player.Pos.X, s.player.Pos.Z)
	if s.maze.IsExit(cx, cy) {
		s.setState(StateWon)
		s.log.Add(s.tick, "P", "record", "candidate",
			fmt.Sprintf("%.2fs", s.elapsed), s.elapsed)
		if s.cfg.Records != nil {
			if improved, err := s.cfg.Records.Submit(s.elapsed); err != nil {
				s.log.Add(s.tick, "--", "record", "error", err.Error(), 0)
			} else if improved {
				s.log.Add(s.tick, "--", "record", "new_best",
					fmt.Sprintf("%.2fs", s.elapsed), s.elapsed)
			}
		}
	}
}

func (s *Session) setState(st State) {
	if s.state == st {
		return
	}
	s.log.Add(s.tick, "--", "state", "change", st.String(), 0)
	s.state = st
}

func pursuerLabel(i int) string { return fmt.Sprintf("S%d", i) }

// Read-only accessors for the rendering collaborator and the harness.

// Maze returns the current maze topology.
func (s *Session) Maze() *Maze { return s.maze }

// Walls returns the derived collision rectangles. Treat as immutable.
func (s *Session) Walls() []WallSegment { return s.walls }

// Torches returns the torches of the current maze.
func (s *Session) Torches() []*Torch { return s.torches }

// Flames returns the per-torch particle pools, index-aligned with Torches.
func (s *Session) Flames() []*ParticleSystem { return s.flames }

// Pursuers returns the live pursuers.
func (s *Session) Pursuers() []*Pursuer { return s.pursuers }

// Player returns the player state.
func (s *Session) Player() *Player { return &s.player }

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Elapsed returns the seconds spent in Playing state this play-through.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Tick returns the number of frames processed.
func (s *Session) Tick() int { return s.tick }

// Log returns the session event log.
func (s *Session) Log() *EventLog { return s.log }
