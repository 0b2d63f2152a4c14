package game

import (
	"fmt"
	"math/rand"
)

// WallMask is a 4-bit set recording which sides of a cell are walled.
type WallMask uint8

const (
	WallNorth WallMask = 1 << iota
	WallEast
	WallSouth
	WallWest

	wallAll = WallNorth | WallEast | WallSouth | WallWest
)

// Has reports whether the mask contains the given side.
func (m WallMask) Has(side WallMask) bool { return m&side != 0 }

// mazeDir pairs a wall side with its grid step and the matching side on the
// neighbouring cell.
type mazeDir struct {
	side     WallMask
	opposite WallMask
	dx, dy   int
}

var mazeDirs = [4]mazeDir{
	{WallNorth, WallSouth, 0, -1},
	{WallEast, WallWest, 1, 0},
	{WallSouth, WallNorth, 0, 1},
	{WallWest, WallEast, -1, 0},
}

// Maze is a W×H grid of cells, each carrying a wall mask. It is the sole
// source of truth for maze topology; collision rectangles and render geometry
// are derived from it after generation.
type Maze struct {
	width    int
	height   int
	cellSize float64
	cells    []WallMask // row-major, index = y*width + x

	startX, startY int
	exitX, exitY   int
}

// NewMaze creates a maze with every wall in place. Call Generate to carve
// passages. Dimensions must be at least 1×1 and cellSize positive.
func NewMaze(width, height int, cellSize float64) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("maze dimensions must be positive, got %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %g", cellSize)
	}
	m := &Maze{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]WallMask, width*height),
		exitX:    width - 1,
		exitY:    height - 1,
	}
	for i := range m.cells {
		m.cells[i] = wallAll
	}
	return m, nil
}

// Width returns the number of cells horizontally.
func (m *Maze) Width() int { return m.width }

// Height returns the number of cells vertically.
func (m *Maze) Height() int { return m.height }

// CellSize returns the world-space edge length of a cell.
func (m *Maze) CellSize() float64 { return m.cellSize }

// Start returns the start cell coordinates.
func (m *Maze) Start() (int, int) { return m.startX, m.startY }

// Exit returns the exit cell coordinates.
func (m *Maze) Exit() (int, int) { return m.exitX, m.exitY }

// index returns the row-major cell index, or -1 for out-of-bounds coordinates.
func (m *Maze) index(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return -1
	}
	return y*m.width + x
}

// HasWall reports whether the cell at (x, y) has a wall on the given side.
// Out-of-bounds cells are treated as fully walled, so the maze boundary is
// solid without any edge special-casing in collision code.
func (m *Maze) HasWall(x, y int, side WallMask) bool {
	idx := m.index(x, y)
	if idx < 0 {
		return true
	}
	return m.cells[idx].Has(side)
}

// IsExit reports whether (x, y) is the exit cell.
func (m *Maze) IsExit(x, y int) bool {
	return x == m.exitX && y == m.exitY
}

// Generate carves passages in place using randomized depth-first backtracking
// with an explicit stack, so grid size is not limited by call-stack depth.
// The four directions are reshuffled on every neighbour scan; the resulting
// spanning tree depends only on the rng stream, so a seeded rng reproduces
// the same maze.
func (m *Maze) Generate(rng *rand.Rand) {
	visited := make([]bool, len(m.cells))

	type stackCell struct{ x, y int }
	stack := make([]stackCell, 0, len(m.cells))

	visited[m.index(m.startX, m.startY)] = true
	stack = append(stack, stackCell{m.startX, m.startY})

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		d, ok := m.randomUnvisitedNeighbour(top.x, top.y, visited, rng)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}

		nx, ny := top.x+d.dx, top.y+d.dy
		m.cells[m.index(top.x, top.y)] &^= d.side
		m.cells[m.index(nx, ny)] &^= d.opposite
		visited[m.index(nx, ny)] = true
		stack = append(stack, stackCell{nx, ny})
	}
}

// randomUnvisitedNeighbour shuffles the four directions and returns the first
// one leading to an in-bounds unvisited cell. The shuffle-then-scan order is
// what shapes the carved tree; keep it even though a single random pick over
// the unvisited subset would be cheaper.
func (m *Maze) randomUnvisitedNeighbour(x, y int, visited []bool, rng *rand.Rand) (mazeDir, bool) {
	dirs := mazeDirs
	for i := len(dirs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	for _, d := range dirs {
		idx := m.index(x+d.dx, y+d.dy)
		if idx >= 0 && !visited[idx] {
			return d, true
		}
	}
	return mazeDir{}, false
}

// SolvePath returns the unique open-passage path between two cells as a list
// of cell coordinates, start and goal inclusive. Returns nil if either cell is
// out of bounds. On a generated maze the path always exists (spanning tree).
func (m *Maze) SolvePath(fromX, fromY, toX, toY int) [][2]int {
	if m.index(fromX, fromY) < 0 || m.index(toX, toY) < 0 {
		return nil
	}
	prev := make([]int, len(m.cells))
	for i := range prev {
		prev[i] = -1
	}
	start := m.index(fromX, fromY)
	goal := m.index(toX, toY)
	prev[start] = start

	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			break
		}
		cx, cy := cur%m.width, cur/m.width
		for _, d := range mazeDirs {
			if m.cells[cur].Has(d.side) {
				continue
			}
			next := m.index(cx+d.dx, cy+d.dy)
			if next < 0 || prev[next] >= 0 {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	if prev[goal] < 0 {
		return nil
	}

	var path [][2]int
	for cur := goal; ; cur = prev[cur] {
		path = append(path, [2]int{cur % m.width, cur / m.width})
		if cur == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// openPassages counts unordered adjacent cell pairs with no wall between them.
// A perfect maze has exactly width*height-1 of them.
func (m *Maze) openPassages() int {
	count := 0
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if x+1 < m.width && !m.HasWall(x, y, WallEast) {
				count++
			}
			if y+1 < m.height && !m.HasWall(x, y, WallSouth) {
				count++
			}
		}
	}
	return count
}
