// Package game runs an exploration session: a player and a few sentries
// moving through generated realms, with visibility recomputed each turn.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"roguecore/internal/component"
	"roguecore/internal/config"
	"roguecore/internal/ecs"
	"roguecore/internal/event"
	"roguecore/internal/factory"
	"roguecore/internal/gamemap"
	"roguecore/internal/generate"
	"roguecore/internal/grid"
	"roguecore/internal/render"
	"roguecore/internal/system"
	"roguecore/internal/world"
)

// RunLog records statistics gathered during one session.
type RunLog struct {
	WorldID         string `json:"world_id"`
	FloorsReached   int    `json:"floors_reached"`
	TurnsPlayed     int    `json:"turns_played"`
	TilesDiscovered int    `json:"tiles_discovered"`
	TimesSpotted    int    `json:"times_spotted"`
}

// Game is the top-level orchestrator.
type Game struct {
	cfg      config.Config
	log      *zap.Logger
	metrics  *system.Metrics
	rng      *rand.Rand
	world    *world.World
	vis      *system.Visibility
	gmap     *gamemap.GameMap
	playerID ecs.Entity
	floor    int
	messages []string
	runLog   RunLog
	quit     bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the session logger. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithMetrics records visibility metrics on m.
func WithMetrics(m *system.Metrics) Option {
	return func(g *Game) { g.metrics = m }
}

// New creates a session and loads the first floor.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: zap.NewNop(),
		rng: rand.New(rand.NewSource(cfg.Map.Seed)),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.loadFloor(1); err != nil {
		return nil, err
	}
	return g, nil
}

// World returns the session world.
func (g *Game) World() *world.World { return g.world }

// Player returns the player entity.
func (g *Game) Player() ecs.Entity { return g.playerID }

// Realm returns the current floor's map.
func (g *Game) Realm() *gamemap.GameMap { return g.gmap }

// Floor returns the 1-indexed floor number.
func (g *Game) Floor() int { return g.floor }

// Messages returns the message log, oldest first.
func (g *Game) Messages() []string { return g.messages }

// Stats returns the statistics gathered so far.
func (g *Game) Stats() RunLog { return g.runLog }

// loadFloor generates the given floor. The first call creates the world and
// the player; later calls switch the realm, forget what the player saw and
// replace every other entity.
func (g *Game) loadFloor(floor int) error {
	lc := levelConfig(floor, g.cfg, g.rng)
	gmap, start := generate.Generate(lc)
	g.gmap = gmap
	g.floor = floor
	g.runLog.FloorsReached = max(g.runLog.FloorsReached, floor)

	if g.world == nil {
		if err := g.createWorld(start); err != nil {
			return err
		}
	} else if err := g.switchRealm(start); err != nil {
		return err
	}

	sentryRadius := max(g.cfg.Vision.Radius/2, 2)
	for _, p := range generate.Populate(gmap, lc) {
		if _, err := factory.NewSentry(g.world, p, sentryRadius, sentryBehavior(floor, g.rng)); err != nil {
			return err
		}
	}
	if len(gmap.Rooms) > 1 {
		if _, err := factory.NewMarker(g.world, gmap.Rooms[len(gmap.Rooms)-1].Center(), render.Emoji.StairsDown); err != nil {
			return err
		}
	}

	g.log.Info("floor loaded",
		zap.Int("floor", floor),
		zap.Int("rooms", len(gmap.Rooms)),
		zap.Int("entities", g.world.Entities().Len()))
	if floor == 1 {
		g.addMessage("Use hjklyubn or arrow keys to move. > to descend.")
	} else {
		g.addMessage(fmt.Sprintf("You descend to floor %d.", floor))
	}
	return g.vis.Update(g.world)
}

func (g *Game) createWorld(start grid.Point) error {
	g.world = world.New(g.gmap,
		world.WithLogger(g.log),
		world.WithMaxEventDepth(g.cfg.Events.MaxDepth))
	g.runLog.WorldID = g.world.ID().String()

	opts := []system.VisibilityOption{system.WithLogger(g.log)}
	if g.metrics != nil {
		opts = append(opts, system.WithMetrics(g.metrics))
	}
	vis, err := system.NewVisibility(g.world, opts...)
	if err != nil {
		return err
	}
	g.vis = vis
	if _, err := event.On(g.world.Events(), g.onDiscovered); err != nil {
		return err
	}

	g.playerID, err = factory.NewPlayer(g.world, start, g.cfg.Vision.Radius)
	return err
}

func (g *Game) switchRealm(start grid.Point) error {
	var errs []error
	for _, e := range g.world.Entities().Snapshot(component.CPosition) {
		if e != g.playerID {
			errs = append(errs, g.world.Destroy(e))
		}
	}
	g.world.SetRealm(g.gmap)
	errs = append(errs,
		g.vis.Reset(g.world, g.playerID),
		g.world.Positions.Insert(g.playerID, component.Position{X: start.X, Y: start.Y}))
	return errors.Join(errs...)
}

// onDiscovered tallies what the player sees for the first time and points
// out stairs.
func (g *Game) onDiscovered(ev event.TilesDiscovered) error {
	if ev.Entity != g.playerID {
		return nil
	}
	g.runLog.TilesDiscovered += len(ev.Tiles)
	for _, p := range ev.Tiles {
		if g.gmap.At(p).Kind == gamemap.TileStairsDown {
			g.addMessage("You spot a way down.")
		}
	}
	return nil
}

// Act handles one player action. Actions that take a turn advance the turn
// counter and recompute visibility for everything that moved.
func (g *Game) Act(action Action) error {
	turnUsed := false

	switch action {
	case ActionQuit:
		g.quit = true
		return nil

	case ActionWait:
		turnUsed = true

	case ActionDescend:
		if g.gmap.At(g.playerPosition()).Kind != gamemap.TileStairsDown {
			g.addMessage("There are no stairs down here.")
			return nil
		}
		if g.floor >= MaxFloors {
			g.addMessage("There is nowhere further to descend.")
			return nil
		}
		return g.loadFloor(g.floor + 1)

	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return nil
		}
		result, _, err := system.TryMove(g.world, g.playerID, dx, dy)
		if err != nil {
			return err
		}
		switch result {
		case system.MoveOK:
			turnUsed = true
		case system.MoveBumped:
			g.addMessage("A sentry blocks the way.")
		case system.MoveBlocked:
			// no message for walking into walls
		}
	}

	if !turnUsed {
		return nil
	}
	g.runLog.TurnsPlayed++
	if err := errors.Join(g.world.AdvanceTurn(), g.vis.UpdateDirty(g.world)); err != nil {
		return err
	}
	seen, err := system.ProcessAI(g.world, g.playerID)
	if len(seen) > 0 {
		g.runLog.TimesSpotted++
		g.addMessage("A sentry watches you.")
	}
	return errors.Join(err, g.vis.UpdateDirty(g.world))
}

// Dump writes the current floor as the player knows it.
func (g *Game) Dump(out io.Writer) error {
	vis, ok, err := g.world.Visions.Get(g.playerID)
	if err != nil {
		return err
	}
	if !ok || vis.View == nil {
		return errors.New("player has no computed vision")
	}
	return render.Dump(out, g.gmap, vis.View, g.playerPosition())
}

// Run is the interactive loop. It owns screen and finalizes it on return.
func (g *Game) Run(screen tcell.Screen) error {
	defer screen.Fini()
	defer func() { saveRunLog(g.log, g.runLog) }()

	renderer := render.NewRenderer(screen, render.Emoji)
	for !g.quit {
		renderer.CenterOn(g.playerPosition())
		if err := renderer.DrawFrame(g.world, g.gmap, g.playerID); err != nil {
			return err
		}
		renderer.DrawHUD(g.world, g.playerID, g.messages)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil // screen finalized
		case *tcell.EventResize:
			screen.Sync()
			renderer.Resize()
		case *tcell.EventKey:
			if err := g.Act(keyToAction(ev)); err != nil {
				g.log.Warn("turn failed", zap.Error(err))
				g.addMessage("Something went wrong: " + err.Error())
			}
		}
	}
	return nil
}

func (g *Game) playerPosition() grid.Point {
	pos, _, _ := g.world.Positions.Get(g.playerID)
	return pos.Point()
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}
