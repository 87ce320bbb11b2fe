// Package environment is the per-session context handle shared by the
// systems of one space: the published player, the pause flag and the
// resources to release on teardown.
package environment

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/pkg/math"
)

var (
	// ErrAlreadyPublished is returned when a second player is published.
	ErrAlreadyPublished = errors.New("player already published")
	// ErrClosed is returned after the environment has been torn down.
	ErrClosed = errors.New("environment closed")
)

// Player is the read-only view of the player other systems consume.
type Player interface {
	Position() math.Vec3
	Velocity() math.Vec3
	Locked() bool
	Ray() picking.Ray
}

type release struct {
	name string
	fn   func() error
}

// Environment holds the state of one space session.
type Environment struct {
	player *cell.Cell[Player]
	paused atomic.Bool

	mu        sync.Mutex
	published bool
	closed    bool
	releases  []release

	log *zap.Logger
}

// New creates an empty, unpaused environment.
func New() *Environment {
	return &Environment{
		player: &cell.Cell[Player]{},
		log:    logger.Named("environment"),
	}
}

// Publish makes p visible through Player. It may be called once.
func (e *Environment) Publish(p Player) error {
	if p == nil {
		return errors.New("publish nil player")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.published {
		return ErrAlreadyPublished
	}
	e.published = true
	e.player.Store(p)
	e.log.Debug("player published")
	return nil
}

// Player returns the published player. ok is false before Publish and
// after Close.
func (e *Environment) Player() (p Player, ok bool) {
	p = e.player.Load()
	return p, p != nil
}

// SetPaused sets the pause flag.
func (e *Environment) SetPaused(paused bool) {
	if e.paused.Swap(paused) != paused {
		e.log.Info("pause changed", zap.Bool("paused", paused))
	}
}

// Paused reports the pause flag.
func (e *Environment) Paused() bool {
	return e.paused.Load()
}

// Defer registers fn to run on Close. Releases run in reverse order of
// registration. If the environment is already closed, fn runs immediately.
func (e *Environment) Defer(name string, fn func() error) error {
	e.mu.Lock()
	if !e.closed {
		e.releases = append(e.releases, release{name: name, fn: fn})
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	if err := fn(); err != nil {
		return multierr.Append(ErrClosed, fmt.Errorf("release %s: %w", name, err))
	}
	return ErrClosed
}

// Close withdraws the player and releases every deferred resource in
// reverse order. Errors from individual releases are combined. Calling
// Close again is a no-op.
func (e *Environment) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	releases := e.releases
	e.releases = nil
	e.player.Store(nil)
	e.mu.Unlock()

	var err error
	for i := len(releases) - 1; i >= 0; i-- {
		r := releases[i]
		if rerr := r.fn(); rerr != nil {
			e.log.Warn("release failed", zap.String("resource", r.name), zap.Error(rerr))
			err = multierr.Append(err, fmt.Errorf("release %s: %w", r.name, rerr))
			continue
		}
		e.log.Debug("released", zap.String("resource", r.name))
	}
	return err
}
