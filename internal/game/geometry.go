package game

// Vec2 is a point or direction in the world XZ plane.
type Vec2 struct {
	X, Z float64
}

// Vec3 is a world-space point. Y is up; the maze floor is at Y=0.
type Vec3 struct {
	X, Y, Z float64
}

// XZ returns the horizontal components of the vector.
func (v Vec3) XZ() Vec2 { return Vec2{v.X, v.Z} }

// Rect is an axis-aligned rectangle in the XZ plane.
type Rect struct {
	X, Z float64 // min corner
	W, H float64 // extent along X and Z
}

// WallSegment is one derived collision rectangle. Vertical segments come from
// W/E-facing walls and run along Z; horizontal segments come from N/S-facing
// walls and run along X.
type WallSegment struct {
	Rect     Rect
	Vertical bool
}

// wallThickness is the collision thickness of a wall, added symmetrically
// around the wall centreline. Segments from adjacent walls overlap slightly
// at corners so a circle cannot slip through an intersection.
const wallThickness = 0.1

// CellToWorld maps cell coordinates to the world-space centre of that cell.
// The maze is centred on the world origin.
func (m *Maze) CellToWorld(cellX, cellY int) Vec2 {
	return Vec2{
		X: (float64(cellX) - float64(m.width)*0.5 + 0.5) * m.cellSize,
		Z: (float64(cellY) - float64(m.height)*0.5 + 0.5) * m.cellSize,
	}
}

// WorldToCell maps a world position to cell coordinates, truncating toward
// the cell origin. It is the exact inverse of CellToWorld for cell centres.
// Positions outside the maze yield out-of-range coordinates; HasWall treats
// those as solid.
func (m *Maze) WorldToCell(x, z float64) (int, int) {
	cellX := int(x/m.cellSize + float64(m.width)*0.5)
	cellY := int(z/m.cellSize + float64(m.height)*0.5)
	return cellX, cellY
}

// BuildWallSegments derives the collision rectangles for the current
// topology. Each interior wall is emitted exactly once: every cell claims its
// own North and West walls, and the last column and row additionally claim
// their East and South boundary walls, which no neighbour exists to claim.
// The result is read-only for the rest of the session.
func (m *Maze) BuildWallSegments() []WallSegment {
	segs := make([]WallSegment, 0, m.width*m.height*2+m.width+m.height)
	half := m.cellSize * 0.5
	const t = wallThickness

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := m.CellToWorld(x, y)

			if m.HasWall(x, y, WallNorth) {
				segs = append(segs, WallSegment{
					Rect: Rect{X: c.X - half - t*0.5, Z: c.Z - half - t*0.5, W: m.cellSize + t, H: t},
				})
			}
			if m.HasWall(x, y, WallWest) {
				segs = append(segs, WallSegment{
					Rect:     Rect{X: c.X - half - t*0.5, Z: c.Z - half - t*0.5, W: t, H: m.cellSize + t},
					Vertical: true,
				})
			}
			if x == m.width-1 && m.HasWall(x, y, WallEast) {
				segs = append(segs, WallSegment{
					Rect:     Rect{X: c.X + half - t*0.5, Z: c.Z - half - t*0.5, W: t, H: m.cellSize + t},
					Vertical: true,
				})
			}
			if y == m.height-1 && m.HasWall(x, y, WallSouth) {
				segs = append(segs, WallSegment{
					Rect: Rect{X: c.X - half - t*0.5, Z: c.Z + half - t*0.5, W: m.cellSize + t, H: t},
				})
			}
		}
	}
	return segs
}
