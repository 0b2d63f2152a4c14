package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestTexture_AtWraps(t *testing.T) {
	tex := newStoneTexture(rand.New(rand.NewSource(1)))
	a := tex.At(0.25, 0.75)
	b := tex.At(1.25, -0.25)
	if a != b {
		t.Fatalf("texture sampling should wrap: %v vs %v", a, b)
	}
}

func TestTexture_Deterministic(t *testing.T) {
	a := newWoodTexture(rand.New(rand.NewSource(3)))
	b := newWoodTexture(rand.New(rand.NewSource(3)))
	if a.pix != b.pix {
		t.Fatal("identical seeds should synthesize identical textures")
	}
}

func TestNewCamera_BasisOrthogonal(t *testing.T) {
	for _, yaw := range []float64{0, 0.7, math.Pi / 2, 3.1} {
		p := &Player{Yaw: yaw}
		cam := newCamera(p)
		if dot := cam.dirX*cam.planeX + cam.dirZ*cam.planeZ; math.Abs(dot) > 1e-9 {
			t.Fatalf("yaw %g: camera plane not orthogonal to dir, dot=%g", yaw, dot)
		}
		if l := math.Hypot(cam.dirX, cam.dirZ); math.Abs(l-1) > 1e-9 {
			t.Fatalf("yaw %g: dir not unit length, |dir|=%g", yaw, l)
		}
		if l := math.Hypot(cam.planeX, cam.planeZ); math.Abs(l-planeLen) > 1e-9 {
			t.Fatalf("yaw %g: plane length %g, want %g", yaw, l, planeLen)
		}
	}
}

func TestNewCamera_PitchShiftsHorizon(t *testing.T) {
	level := newCamera(&Player{})
	if level.horizon != virtualH/2 {
		t.Fatalf("level horizon should sit mid-screen, got %g", level.horizon)
	}
	up := newCamera(&Player{Pitch: 0.3})
	if up.horizon <= level.horizon {
		t.Fatal("looking up should move the horizon down the screen")
	}
	down := newCamera(&Player{Pitch: -0.3})
	if down.horizon >= level.horizon {
		t.Fatal("looking down should move the horizon up the screen")
	}
}
