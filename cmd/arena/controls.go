package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/pkg/math3d"
	"github.com/taigrr/arena/pkg/render"
)

const maxPitch = math.Pi/2 - 0.01

// Spring settings for look smoothing
const (
	springFrequency = 4.0
	springDamping   = 1.0
)

// smoothAxis eases a value toward its target with a critically damped
// spring.
type smoothAxis struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newSmoothAxis(fps int, value float64) smoothAxis {
	return smoothAxis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		pos:    value,
		target: value,
	}
}

func (a *smoothAxis) update() float64 {
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	return a.pos
}

// settled reports whether the axis has come to rest on its target.
func (a *smoothAxis) settled() bool {
	return math.Abs(a.pos-a.target) < 1e-4 && math.Abs(a.vel) < 1e-4
}

// viewer turns key presses into camera motion. Walking is immediate; turning
// and looking glide through springs.
type viewer struct {
	cam *render.Camera

	yaw   smoothAxis
	pitch smoothAxis

	moveSpeed float64 // World units per key press
	turnStep  float64 // Radians per key press

	wireframe bool
	showHUD   bool
}

func newViewer(cfg *config.Config) *viewer {
	cam := render.NewCamera()
	cam.FovY = cfg.Render.FovY
	cam.TallPixelRatio = cfg.Render.TallPixelRatio
	p := cfg.Camera.Position
	cam.SetWorldPoint(math3d.V3(p[0], p[1], p[2]))
	cam.Yaw = degToRad(cfg.Camera.Yaw)
	cam.Pitch = clampPitch(degToRad(cfg.Camera.Pitch))

	return &viewer{
		cam:       cam,
		yaw:       newSmoothAxis(cfg.Render.TargetFPS, cam.Yaw),
		pitch:     newSmoothAxis(cfg.Render.TargetFPS, cam.Pitch),
		moveSpeed: cfg.Camera.MoveSpeed,
		turnStep:  degToRad(cfg.Camera.TurnSpeed),
		wireframe: cfg.Render.Wireframe,
		showHUD:   true,
	}
}

func (v *viewer) walk(steps float64)   { v.cam.MoveForward(steps * v.moveSpeed) }
func (v *viewer) strafe(steps float64) { v.cam.MoveRight(steps * v.moveSpeed) }
func (v *viewer) rise(steps float64)   { v.cam.MoveUp(steps * v.moveSpeed) }

// turn sets a new yaw target; positive turns right.
func (v *viewer) turn(steps float64) {
	v.yaw.target += steps * v.turnStep
}

// look sets a new pitch target; positive looks up.
func (v *viewer) look(steps float64) {
	v.pitch.target = clampPitch(v.pitch.target + steps*v.turnStep)
}

// update advances the springs one frame and applies them to the camera.
func (v *viewer) update() {
	v.cam.Yaw = v.yaw.update()
	v.cam.Pitch = clampPitch(v.pitch.update())
}

// snapshot returns the camera for a width x height frame.
func (v *viewer) snapshot(width, height int) render.RenderCamera {
	return v.cam.Snapshot(float64(width) / float64(height))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
