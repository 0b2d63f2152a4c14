package game

import (
	"image/color"
	"math"
	"sort"
)

// Virtual framebuffer resolution. Ebiten scales it to the window.
const (
	virtualW = 640
	virtualH = 360

	planeLen     = 0.66 // camera plane half-length; ~66° horizontal FOV
	ambientLight = 0.15
	maxRaySteps  = 512
)

// verticalFocal is the projection constant mapping world height over distance
// to screen pixels.
const verticalFocal = float64(virtualH)

// camera is the per-frame view basis derived from the player.
type camera struct {
	eye     Vec3
	dirX    float64 // forward in XZ, unit length
	dirZ    float64
	planeX  float64 // screen-right in XZ, scaled by planeLen
	planeZ  float64
	horizon float64 // screen row of the horizon, shifted by pitch
}

func newCamera(p *Player) camera {
	sin, cos := math.Sincos(p.Yaw)
	return camera{
		eye:     p.EyePos(),
		dirX:    sin,
		dirZ:    cos,
		planeX:  -cos * planeLen,
		planeZ:  sin * planeLen,
		horizon: float64(virtualH)/2 + math.Tan(p.Pitch)*verticalFocal,
	}
}

// renderFrame raycasts the scene into g.pix. One ray per column walks the
// cell grid with DDA; wall checks consult the maze topology directly, so the
// renderer needs no geometry beyond the wall masks. Sprites (torches, flames,
// pursuers, the exit marker) are depth-tested against the per-column wall
// distances afterwards.
func (g *Game) renderFrame() {
	cam := newCamera(g.session.Player())
	m := g.session.Maze()
	cs := m.CellSize()

	g.drawFloorAndCeiling(cam, cs)

	// Walls.
	for x := 0; x < virtualW; x++ {
		cameraX := 2*float64(x)/float64(virtualW) - 1
		rayX := cam.dirX + cam.planeX*cameraX
		rayZ := cam.dirZ + cam.planeZ*cameraX

		dist, side, texU := g.castRay(m, cam, rayX, rayZ)
		worldDist := dist * cs
		g.zbuf[x] = worldDist

		top := cam.horizon - (wallHeight-cam.eye.Y)*verticalFocal/worldDist
		bottom := cam.horizon + cam.eye.Y*verticalFocal/worldDist

		hitX := cam.eye.X + rayX*worldDist
		hitZ := cam.eye.Z + rayZ*worldDist
		light := g.lightAt(hitX, hitZ, worldDist)
		if side == 0 {
			light *= 0.75 // east/west faces darker, fakes directional shading
		}

		y0 := int(math.Max(0, top))
		y1 := int(math.Min(virtualH-1, bottom))
		for y := y0; y <= y1; y++ {
			worldY := cam.eye.Y + (cam.horizon-float64(y))*worldDist/verticalFocal
			c := g.wallTex.At(texU, 1-worldY/wallHeight)
			g.setPix(x, y, shade(c, light))
		}
	}

	g.drawSprites(cam)
	g.frame.WritePixels(g.pix)
}

// castRay runs DDA from the camera through the cell grid and returns the
// perpendicular hit distance in cell units, which axis was crossed (0 = X),
// and the texture coordinate along the wall. Out-of-bounds cells report every
// wall as present, so rays always terminate at the maze boundary.
func (g *Game) castRay(m *Maze, cam camera, rayX, rayZ float64) (float64, int, float64) {
	// Positions in cell units.
	posU := cam.eye.X/m.CellSize() + float64(m.Width())*0.5
	posV := cam.eye.Z/m.CellSize() + float64(m.Height())*0.5
	mapX := int(math.Floor(posU))
	mapY := int(math.Floor(posV))

	deltaX := math.Inf(1)
	if rayX != 0 {
		deltaX = math.Abs(1 / rayX)
	}
	deltaZ := math.Inf(1)
	if rayZ != 0 {
		deltaZ = math.Abs(1 / rayZ)
	}

	stepX, stepY := 1, 1
	sideWallX, sideWallY := WallEast, WallSouth
	sideDistX := (1 - (posU - math.Floor(posU))) * deltaX
	sideDistZ := (1 - (posV - math.Floor(posV))) * deltaZ
	if rayX < 0 {
		stepX = -1
		sideWallX = WallWest
		sideDistX = (posU - math.Floor(posU)) * deltaX
	}
	if rayZ < 0 {
		stepY = -1
		sideWallY = WallNorth
		sideDistZ = (posV - math.Floor(posV)) * deltaZ
	}

	for i := 0; i < maxRaySteps; i++ {
		if sideDistX < sideDistZ {
			if m.HasWall(mapX, mapY, sideWallX) {
				texU := posV + sideDistX*rayZ
				return sideDistX, 0, texU - math.Floor(texU)
			}
			mapX += stepX
			sideDistX += deltaX
		} else {
			if m.HasWall(mapX, mapY, sideWallY) {
				texU := posU + sideDistZ*rayX
				return sideDistZ, 1, texU - math.Floor(texU)
			}
			mapY += stepY
			sideDistZ += deltaZ
		}
	}
	return float64(maxRaySteps), 0, 0
}

// drawFloorAndCeiling scan-fills the rows above and below the horizon with
// perspective-correct texture sampling, interpolated linearly across each row.
func (g *Game) drawFloorAndCeiling(cam camera, cs float64) {
	// Ray directions at the screen edges.
	lX, lZ := cam.dirX-cam.planeX, cam.dirZ-cam.planeZ
	rX, rZ := cam.dirX+cam.planeX, cam.dirZ+cam.planeZ

	for y := 0; y < virtualH; y++ {
		below := float64(y) - cam.horizon
		var rowDist float64
		var tex *texture
		switch {
		case below > 0.5: // floor
			rowDist = cam.eye.Y * verticalFocal / below
			tex = g.floorTex
		case below < -0.5: // ceiling
			rowDist = (wallHeight - cam.eye.Y) * verticalFocal / -below
			tex = g.wallTex
		default:
			continue
		}

		wx := cam.eye.X + rowDist*lX
		wz := cam.eye.Z + rowDist*lZ
		stepX := rowDist * (rX - lX) / virtualW
		stepZ := rowDist * (rZ - lZ) / virtualW
		for x := 0; x < virtualW; x++ {
			u := wx/cs - math.Floor(wx/cs)
			v := wz/cs - math.Floor(wz/cs)
			light := g.lightAt(wx, wz, rowDist)
			g.setPix(x, y, shade(tex.At(u, v), light))
			wx += stepX
			wz += stepZ
		}
	}
}

// lightAt computes the brightness at a world point: low ambient plus the
// falloff-summed contribution of every torch, clamped to 1.
func (g *Game) lightAt(x, z, viewDist float64) float64 {
	light := ambientLight / (1 + 0.02*viewDist*viewDist)
	for _, t := range g.session.Torches() {
		dx := t.Pos.X - x
		dz := t.Pos.Z - z
		light += 0.35 * t.Intensity() / (1 + 0.4*(dx*dx+dz*dz))
	}
	return math.Min(light, 1)
}

// sprite is one billboard draw request.
type sprite struct {
	pos   Vec3 // base (bottom centre) position
	w, h  float64
	col   color.RGBA
	alpha float64
	depth float64 // filled during projection
}

// drawSprites projects and depth-tests all billboards, back to front.
func (g *Game) drawSprites(cam camera) {
	var sprites []sprite

	for i, p := range g.session.Pursuers() {
		sprites = append(sprites, sprite{
			pos: Vec3{X: p.Pos.X, Z: p.Pos.Z},
			w:   p.Radius * 2, h: p.Height,
			col:   color.RGBA{R: uint8(40 + i*5), B: uint8(i * 3), A: 255},
			alpha: 1,
		})
	}
	for i, t := range g.session.Torches() {
		intensity := t.Intensity()
		sprites = append(sprites, sprite{
			pos: Vec3{X: t.Pos.X, Y: t.Pos.Y - 0.15, Z: t.Pos.Z},
			w:   0.1, h: 0.3,
			col:   color.RGBA{R: 60, G: 40, B: 20, A: 255},
			alpha: 1,
		})
		glow := math.Max(0, math.Min(intensity, 1))
		sprites = append(sprites, sprite{
			pos: Vec3{X: t.Pos.X, Y: t.Pos.Y + 0.3, Z: t.Pos.Z},
			w:   0.12 * intensity, h: 0.12 * intensity,
			col:   color.RGBA{R: uint8(220 * glow), G: uint8(150 * glow), B: uint8(80 * glow), A: 255},
			alpha: 0.9,
		})
		for _, p := range g.session.Flames()[i].Active() {
			a := math.Max(0, math.Min(p.Life/p.MaxLife, 1))
			sprites = append(sprites, sprite{
				pos: p.Pos,
				w:   p.Size * 2, h: p.Size * 2,
				col:   p.Color,
				alpha: a,
			})
		}
	}

	// Exit marker: a soft green pillar on the exit cell.
	ex, ey := g.session.Maze().Exit()
	ew := g.session.Maze().CellToWorld(ex, ey)
	sprites = append(sprites, sprite{
		pos: Vec3{X: ew.X, Z: ew.Z},
		w:   g.session.Maze().CellSize() * 0.4, h: 0.6,
		col:   color.RGBA{G: 200, A: 255},
		alpha: 0.6,
	})

	invDet := 1 / (cam.planeX*cam.dirZ - cam.dirX*cam.planeZ)
	for i := range sprites {
		s := &sprites[i]
		relX := s.pos.X - cam.eye.X
		relZ := s.pos.Z - cam.eye.Z
		s.depth = invDet * (-cam.planeZ*relX + cam.planeX*relZ)
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })

	for i := range sprites {
		g.drawSprite(cam, invDet, &sprites[i])
	}
}

func (g *Game) drawSprite(cam camera, invDet float64, s *sprite) {
	if s.depth <= 0.1 {
		return
	}
	relX := s.pos.X - cam.eye.X
	relZ := s.pos.Z - cam.eye.Z
	transX := invDet * (cam.dirZ*relX - cam.dirX*relZ)

	screenX := float64(virtualW) / 2 * (1 + transX/s.depth)
	halfW := s.w / 2 * verticalFocal / s.depth
	top := cam.horizon - (s.pos.Y+s.h-cam.eye.Y)*verticalFocal/s.depth
	bottom := cam.horizon - (s.pos.Y-cam.eye.Y)*verticalFocal/s.depth

	x0 := int(math.Max(0, screenX-halfW))
	x1 := int(math.Min(virtualW-1, screenX+halfW))
	y0 := int(math.Max(0, top))
	y1 := int(math.Min(virtualH-1, bottom))

	for x := x0; x <= x1; x++ {
		if s.depth >= g.zbuf[x] {
			continue
		}
		for y := y0; y <= y1; y++ {
			g.blendPix(x, y, s.col, s.alpha)
		}
	}
}

func shade(c color.RGBA, light float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * light),
		G: uint8(float64(c.G) * light),
		B: uint8(float64(c.B) * light),
		A: 255,
	}
}

func (g *Game) setPix(x, y int, c color.RGBA) {
	i := (y*virtualW + x) * 4
	g.pix[i] = c.R
	g.pix[i+1] = c.G
	g.pix[i+2] = c.B
	g.pix[i+3] = 255
}

func (g *Game) blendPix(x, y int, c color.RGBA, alpha float64) {
	i := (y*virtualW + x) * 4
	inv := 1 - alpha
	g.pix[i] = uint8(float64(c.R)*alpha + float64(g.pix[i])*inv)
	g.pix[i+1] = uint8(float64(c.G)*alpha + float64(g.pix[i+1])*inv)
	g.pix[i+2] = uint8(float64(c.B)*alpha + float64(g.pix[i+2])*inv)
	g.pix[i+3] = 255
}
