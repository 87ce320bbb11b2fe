// Package host runs a space in an SDL window: it owns the window, the
// physics loop and the environment, and drives the player once per frame.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/config"
	"github.com/Faultbox/spaces/internal/engine/camera"
	"github.com/Faultbox/spaces/internal/engine/debug"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/internal/engine/input/sdlinput"
	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/internal/engine/renderer"
	"github.com/Faultbox/spaces/internal/engine/window"
	"github.com/Faultbox/spaces/internal/environment"
	"github.com/Faultbox/spaces/internal/game"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/internal/physics/local"
	"github.com/Faultbox/spaces/internal/telemetry"
	"github.com/Faultbox/spaces/pkg/math"
)

const (
	title        = "Spaces"
	gridHalfSize = 50
	gridStep     = 1
)

// Game is the running host.
type Game struct {
	cfg      *config.Config
	settings game.Settings
	log      *zap.Logger
	frameLog *zap.Logger

	window     *window.Window
	renderer   *renderer.Renderer
	poller     *sdlinput.Poller
	dispatcher *input.Dispatcher
	camera     *camera.FirstPerson

	physics     *local.Engine
	stopPhysics context.CancelFunc
	physicsDone chan error

	env       *environment.Environment
	session   *game.Session
	telemetry *telemetry.Provider
	metricOut *os.File

	boxes []picking.AABB
	grid  []float32
}

// New creates the window, starts physics and mounts the player.
func New(cfg *config.Config) (g *Game, err error) {
	g = &Game{
		cfg:        cfg,
		settings:   game.SettingsFromConfig(cfg),
		log:        logger.Named("host"),
		frameLog:   logger.Sampled("frame"),
		dispatcher: input.NewDispatcher(),
		poller:     sdlinput.New(),
		boxes:      Boxes(cfg.Physics.Boxes),
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, g.Close())
		}
	}()

	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return g, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window, since the OpenGL context must exist.
	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		return g, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := g.setupTelemetry(); err != nil {
		return g, err
	}
	frames, err := telemetry.NewFrames(g.telemetry.Meter())
	if err != nil {
		return g, err
	}

	g.env = environment.New()
	g.physics = local.New(local.Options{
		Gravity:      cfg.Physics.Gravity,
		GroundHeight: cfg.Physics.GroundHeight,
		Boxes:        g.boxes,
	})
	if err := g.env.Defer("physics engine", g.physics.Close); err != nil {
		return g, err
	}

	g.camera = camera.NewFirstPerson(cfg.Graphics.FOV, float32(cfg.Graphics.Width)/float32(cfg.Graphics.Height))
	g.session, err = game.Mount(g.env, game.Deps{
		Engine:       g.physics,
		Dispatcher:   g.dispatcher,
		Camera:       g.camera,
		TouchDevices: sdlinput.TouchDeviceCount(),
		PointerLock:  sdlinput.SetPointerLock,
		Observer:     frames,
	}, g.settings)
	if err != nil {
		return g, fmt.Errorf("mount player: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.stopPhysics = cancel
	g.physicsDone = make(chan error, 1)
	go func() {
		g.physicsDone <- g.physics.Run(ctx, cfg.Physics.StepRate)
	}()

	g.grid = debug.GridLines(gridHalfSize, gridStep, cfg.Physics.GroundHeight)
	g.log.Info("host initialized",
		zap.Stringer("scheme", g.session.Controls.Scheme),
		zap.Int("boxes", len(g.boxes)))
	return g, nil
}

func (g *Game) setupTelemetry() error {
	tc := telemetry.Config{
		Enabled:  g.cfg.Telemetry.Enabled,
		Interval: g.cfg.Telemetry.Interval,
	}
	if tc.Enabled && g.cfg.Telemetry.Output != "" {
		f, err := os.OpenFile(g.cfg.Telemetry.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open telemetry output: %w", err)
		}
		g.metricOut = f
		tc.Writer = f
	}

	var err error
	g.telemetry, err = telemetry.Setup(tc)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	return nil
}

// Run drives frames until the window is closed.
func (g *Game) Run() error {
	g.log.Info("starting frame loop")

	for {
		if g.poller.Update() {
			return nil
		}

		events := g.poller.Events()
		for _, event := range events {
			g.handleHostEvent(event)
		}
		if input.IsKeyPressed(events, input.KeyF3) {
			g.logPlayer()
		}
		g.dispatcher.DispatchAll(events)

		now := time.Now()
		g.session.Update(now)
		g.render()
		g.window.SwapBuffers()

		g.frameLog.Debug("frame",
			zap.Stringer("state", g.session.Controller.State()),
			zap.Float32("x", g.camera.Position.X),
			zap.Float32("y", g.camera.Position.Y),
			zap.Float32("z", g.camera.Position.Z))

		select {
		case err := <-g.physicsDone:
			g.physicsDone = nil
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("physics loop: %w", err)
			}
		default:
		}
	}
}

// handleHostEvent applies host-level keys before the event reaches the
// input providers.
func (g *Game) handleHostEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		g.renderer.Resize(e.Width, e.Height)
		g.camera.SetViewport(e.Width, e.Height)
	case input.EventKeyDown:
		switch e.Key {
		case input.KeyP:
			g.env.SetPaused(!g.env.Paused())
		case input.KeyTab:
			ctrl := g.session.Controller
			ctrl.SetLocked(!ctrl.Locked())
			g.log.Info("movement lock toggled", zap.Bool("locked", ctrl.Locked()))
		}
	}
}

// logPlayer logs the published player state as any consumer would see it.
func (g *Game) logPlayer() {
	p, ok := g.env.Player()
	if !ok {
		g.log.Warn("no player published")
		return
	}
	pos, vel, ray := p.Position(), p.Velocity(), p.Ray()
	fields := []zap.Field{
		zap.Float32s("position", pos.Array()[:]),
		zap.Float32s("velocity", vel.Array()[:]),
		zap.Bool("locked", p.Locked()),
		zap.Float32s("ray_direction", ray.Direction.Array()[:]),
	}
	if i, dist := ray.Closest(g.boxes); i >= 0 {
		fields = append(fields, zap.Int("looking_at_box", i), zap.Float32("distance", dist))
	}
	g.log.Info("player", fields...)
}

func (g *Game) render() {
	g.renderer.Begin(g.camera.ViewMatrix(), g.camera.ProjectionMatrix())

	g.renderer.DrawLines(g.grid, renderer.GridColor)
	for _, b := range g.boxes {
		g.renderer.DrawLines(debug.BoxLines(b), renderer.BoxColor)
	}
	if g.cfg.Player.ShowHitbox {
		pos := g.session.Snapshot.Position()
		g.renderer.DrawLines(debug.CapsuleLines(pos, g.settings.Shape, debug.DefaultCapsuleSegments), renderer.HitboxColor)
		g.renderer.DrawLines(debug.RayLines(g.session.Snapshot.Ray()), renderer.RayColor)
	}

	g.renderer.End()
}

// Close stops physics, tears down the environment and releases the window.
func (g *Game) Close() error {
	g.log.Info("closing host")

	var err error
	if g.stopPhysics != nil {
		g.stopPhysics()
		if g.physicsDone != nil {
			<-g.physicsDone
		}
	}
	if g.env != nil {
		err = multierr.Append(err, g.env.Close())
	}
	if g.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = multierr.Append(err, g.telemetry.Shutdown(ctx))
		cancel()
	}
	if g.metricOut != nil {
		err = multierr.Append(err, g.metricOut.Close())
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		err = multierr.Append(err, g.window.Close())
	}
	return err
}

// Boxes converts configured colliders to world boxes.
func Boxes(boxes []config.Box) []picking.AABB {
	out := make([]picking.AABB, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, picking.NewAABB(
			math.Vec3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
			math.Vec3{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		))
	}
	return out
}
