package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	mouseSens = 0.0020 // radians per pixel

	// overlayScale is the integer upscale factor for the end-screen text,
	// rendered at 1x into an offscreen buffer then blitted up.
	overlayScale = 2

	minimapCell = 8 // minimap pixels per maze cell
)

// Game adapts a Session to ebiten: it reads the input devices, builds an
// InputFrame each tick, and draws the raycast view with minimap and HUD.
// All gameplay lives in Session; Game owns only presentation and input state.
type Game struct {
	session *Session

	frame *ebiten.Image // raycast target at virtual resolution
	pix   []byte
	zbuf  []float64

	wallTex  *texture
	floorTex *texture

	overlayBuf *ebiten.Image

	prevKeys       map[ebiten.Key]bool
	mouseCaptured  bool
	prevMX, prevMY int
	mouseFresh     bool // skip the first delta after (re)capturing
}

// NewGame builds a session with the default configuration and a file-backed
// best-time store next to the executable.
func NewGame() (*Game, error) {
	session, err := NewSession(SessionConfig{
		Records: NewFileRecordStore("best_time.txt"),
	})
	if err != nil {
		return nil, err
	}

	texRng := rand.New(rand.NewSource(12345)) // #nosec G404 -- cosmetic only
	g := &Game{
		session:    session,
		frame:      ebiten.NewImage(virtualW, virtualH),
		pix:        make([]byte, virtualW*virtualH*4),
		zbuf:       make([]float64, virtualW),
		wallTex:    newStoneTexture(texRng),
		floorTex:   newWoodTexture(texRng),
		overlayBuf: ebiten.NewImage(virtualW/overlayScale, virtualH/overlayScale),
		prevKeys:   map[ebiten.Key]bool{},
	}
	g.setMouseCaptured(true)
	return g, nil
}

func (g *Game) setMouseCaptured(captured bool) {
	g.mouseCaptured = captured
	g.mouseFresh = true
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// pressedEdge reports a key transition from up to down this tick.
func (g *Game) pressedEdge(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.pressedEdge(ebiten.KeyF) {
		g.setMouseCaptured(!g.mouseCaptured)
	}
	if g.pressedEdge(ebiten.KeyC) {
		if err := g.session.CopyDebugReport(); err != nil {
			log.Printf("copy debug report: %v", err)
		}
	}

	var in InputFrame
	in.Restart = g.pressedEdge(ebiten.KeyR)
	in.Jump = g.pressedEdge(ebiten.KeySpace)
	in.Run = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveForward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveForward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveStrafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveStrafe--
	}

	mx, my := ebiten.CursorPosition()
	if g.mouseCaptured && !g.mouseFresh {
		in.LookDX = float64(mx-g.prevMX) * mouseSens
		in.LookDY = float64(my-g.prevMY) * mouseSens
	}
	g.prevMX, g.prevMY = mx, my
	g.mouseFresh = false

	g.session.Update(in, dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderFrame()

	var blit ebiten.DrawImageOptions
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	blit.GeoM.Scale(float64(sw)/virtualW, float64(sh)/virtualH)
	screen.DrawImage(g.frame, &blit)

	g.drawMinimap(screen)
	g.drawCrosshair(screen)
	g.drawHUD(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return virtualW * 2, virtualH * 2
}

// drawMinimap draws the wall topology, the player and the pursuers in the
// top-right corner. It reads only the maze masks, not the collision
// rectangles.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	m := g.session.Maze()
	w := m.Width() * minimapCell
	offX := float32(screen.Bounds().Dx() - w - 12)
	offY := float32(12)

	bg := color.RGBA{R: 5, G: 5, B: 8, A: 200}
	vector.DrawFilledRect(screen, offX, offY, float32(w), float32(m.Height()*minimapCell), bg, false)

	wallCol := color.RGBA{R: 150, G: 150, B: 160, A: 255}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			x0 := offX + float32(x*minimapCell)
			y0 := offY + float32(y*minimapCell)
			x1 := x0 + minimapCell
			y1 := y0 + minimapCell
			if m.HasWall(x, y, WallNorth) {
				vector.StrokeLine(screen, x0, y0, x1, y0, 1, wallCol, false)
			}
			if m.HasWall(x, y, WallWest) {
				vector.StrokeLine(screen, x0, y0, x0, y1, 1, wallCol, false)
			}
			if x == m.Width()-1 && m.HasWall(x, y, WallEast) {
				vector.StrokeLine(screen, x1, y0, x1, y1, 1, wallCol, false)
			}
			if y == m.Height()-1 && m.HasWall(x, y, WallSouth) {
				vector.StrokeLine(screen, x0, y1, x1, y1, 1, wallCol, false)
			}
		}
	}

	toMap := func(wx, wz float64) (float32, float32) {
		u := wx/m.CellSize() + float64(m.Width())*0.5
		v := wz/m.CellSize() + float64(m.Height())*0.5
		return offX + float32(u*minimapCell), offY + float32(v*minimapCell)
	}

	ex, ey := m.Exit()
	ew := m.CellToWorld(ex, ey)
	exMX, exMY := toMap(ew.X, ew.Z)
	vector.DrawFilledCircle(screen, exMX, exMY, 3, color.RGBA{G: 200, A: 255}, false)

	p := g.session.Player()
	pmx, pmy := toMap(p.Pos.X, p.Pos.Z)
	vector.DrawFilledCircle(screen, pmx, pmy, 3, color.RGBA{R: 240, G: 240, B: 240, A: 255}, false)

	for _, s := range g.session.Pursuers() {
		smx, smy := toMap(s.Pos.X, s.Pos.Z)
		vector.DrawFilledCircle(screen, smx, smy, 3, color.RGBA{R: 200, A: 255}, false)
	}
}

func (g *Game) drawCrosshair(screen *ebiten.Image) {
	if g.session.State() != StatePlaying {
		return
	}
	cx := float32(screen.Bounds().Dx()) / 2
	cy := float32(screen.Bounds().Dy()) / 2
	c := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, c, false)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, c, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	switch g.session.State() {
	case StatePlaying:
		ebitenutil.DebugPrintAt(screen,
			"WASD move | Shift run | Space jump | F mouse | C report | R restart", 8, 8)
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("time %.1fs", g.session.Elapsed()), 8, 24)
	case StateWon:
		msg := fmt.Sprintf("YOU ESCAPED in %.2fs", g.session.Elapsed())
		if best, ok := g.bestTime(); ok {
			msg += fmt.Sprintf("  (best %.2fs)", best)
		}
		g.drawOverlay(screen, color.RGBA{A: 200}, msg, color.RGBA{G: 220, A: 255})
	case StateLost:
		g.drawOverlay(screen, color.RGBA{R: 40, A: 220}, "You were caught...", color.RGBA{R: 220, A: 255})
	}
}

func (g *Game) bestTime() (float64, bool) {
	if g.session.cfg.Records == nil {
		return 0, false
	}
	return g.session.cfg.Records.Best()
}

// drawOverlay dims the screen and centres a message, rendered at 1x into the
// overlay buffer then blitted up so the bitmap font stays crisp.
func (g *Game) drawOverlay(screen *ebiten.Image, dim color.RGBA, msg string, msgCol color.RGBA) {
	sw := float32(screen.Bounds().Dx())
	sh := float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, sw, sh, dim, false)

	g.overlayBuf.Clear()
	face := basicfont.Face7x13
	bw := g.overlayBuf.Bounds().Dx()
	tw := len(msg) * face.Advance
	tx := (bw - tw) / 2
	ty := g.overlayBuf.Bounds().Dy()/2 + face.Ascent/2
	text.Draw(g.overlayBuf, msg, face, tx, ty, msgCol)
	text.Draw(g.overlayBuf, "R restart | Esc quit", face, tx, ty+face.Height+4, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	var blit ebiten.DrawImageOptions
	scaleX := float64(sw) / float64(bw)
	blit.GeoM.Scale(scaleX, float64(sh)/float64(g.overlayBuf.Bounds().Dy()))
	screen.DrawImage(g.overlayBuf, &blit)
}
