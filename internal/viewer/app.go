// Package viewer is the meshvr window: it renders the stage, feeds
// controller events to the gestures and maps mouse drags to the current
// interaction mode.
package viewer

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"meshvr/internal/assets"
	"meshvr/internal/bridge"
	"meshvr/internal/camera"
	"meshvr/internal/components"
	"meshvr/internal/config"
	"meshvr/internal/gesture"
	"meshvr/internal/interact"
	"meshvr/internal/loop"
	"meshvr/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const reloadDebounce = 300 * time.Millisecond

type App struct {
	cfg config.Config
	log *zap.Logger

	redraws     *interact.RedrawCounter
	session     *xr.Session
	registry    *xr.Registry
	coord       *gesture.Coordinator
	driver      *loop.Driver
	cam         *camera.OrbitCamera
	stage       *Stage
	switchboard *interact.Switchboard
	target      *deskTarget
	undo        undoStack

	sources  []<-chan xr.Event
	emulator *bridge.Emulator
	emuHand  xr.Hand

	canvas    canvas
	panel     *panel
	status    status
	meshColor rl.Color
	now       func() float64

	ctx       context.Context
	watcher   *assets.Watcher
	stopWatch context.CancelFunc

	dragging [3]bool
	dragged  [3]bool
}

// New wires the viewer. sources are the controller event streams of the
// bridge and serial inputs; the keyboard emulator is added when enabled.
func New(cfg config.Config, log *zap.Logger, sources ...<-chan xr.Event) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		cfg:       cfg,
		log:       log,
		redraws:   &interact.RedrawCounter{},
		session:   &xr.Session{},
		cam:       camera.New(rl.Vector3{}, 3),
		sources:   sources,
		meshColor: cfg.MeshColor(),
		now:       rl.GetTime,
		ctx:       context.Background(),
	}
	a.registry = xr.NewRegistry(log.Named("xr"))
	a.coord = gesture.NewCoordinator(a.registry, cfg.Gesture(), log.Named("gesture"))
	a.stage = NewStage(a.redraws)
	a.driver = loop.NewDriver(a.session, a.registry, a.coord, a.cam, a.stage.Handles.Pickable, a.redraws)
	a.driver.Step = cfg.Interaction.OrbitStep
	a.switchboard = interact.NewSwitchboard(cfg.Sensitivity(), a.redraws)
	mode := a.switchboard.SetModeName(cfg.Interaction.Mode)
	a.target = &deskTarget{
		cam:      a.cam,
		current:  a.stage.Current,
		minScale: cfg.Interaction.MinScale,
		maxScale: cfg.Interaction.MaxScale,
	}
	if cfg.Bridge.Keyboard {
		a.emulator = bridge.NewEmulator()
	}
	a.panel = newPanel(cfg.Colors.Mesh, mode)
	a.session.OnChange.AddListener(a.sessionChanged)
	return a
}

// Run opens the window and blocks until it is closed or ctx is done.
// meshPath, if set, is loaded first.
func (a *App) Run(ctx context.Context, meshPath string) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(a.cfg.Window.Width), int32(a.cfg.Window.Height), a.cfg.Window.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("open window")
	}
	rl.SetTargetFPS(int32(a.cfg.Window.FPS))
	rl.SetExitKey(0)
	initRayguiStyle()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	defer a.canvas.unload()
	defer a.stage.Unload()
	defer a.stopWatching()
	defer a.coord.Close()

	if meshPath != "" {
		a.loadMesh(meshPath)
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		a.update(rl.GetFrameTime())
		a.draw()
	}
	a.log.Info("viewer closed")
	return nil
}

func (a *App) update(dt float32) {
	a.canvas.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))

	for _, src := range a.sources {
		drain(src, a.route)
	}
	if a.emulator != nil && !a.panel.editingPath {
		a.emulate(dt)
	}

	a.driver.Tick()
	if a.cam.Update(dt) {
		a.redraws.RequestRedraw()
	}

	a.pollReload()
	a.handleFileDrop()
	if !a.panel.editingPath {
		a.handleKeys()
		a.handleMouse()
	}
}

// route applies one controller event, gated on the session state.
func (a *App) route(ev xr.Event) {
	if !accept(ev, a.session.Active()) {
		return
	}
	a.coord.Apply(ev)
	if a.session.Active() {
		a.redraws.RequestRedraw()
	}
}

func (a *App) emulate(dt float32) {
	if rl.IsKeyPressed(rl.KeyTab) {
		a.emuHand = a.emuHand.Other()
		a.setMsg("Emulating %s hand", a.emuHand)
	}
	k := bridge.Keys{
		Hand:    a.emuHand,
		Toggle:  rl.IsKeyPressed(rl.KeyC),
		Trigger: rl.IsKeyDown(rl.KeyT),
		Grip:    rl.IsKeyDown(rl.KeyG),
		Move: rl.Vector3{
			X: axis(rl.KeyL, rl.KeyJ),
			Y: axis(rl.KeyO, rl.KeyU),
			Z: axis(rl.KeyK, rl.KeyI),
		},
		Turn: axis(rl.KeyQ, rl.KeyE),
	}
	a.feedEmulator(k, dt)
}

func (a *App) feedEmulator(k bridge.Keys, dt float32) {
	for _, ev := range a.emulator.Step(k, dt) {
		a.route(ev)
	}
}

func axis(pos, neg int32) float32 {
	var v float32
	if rl.IsKeyDown(pos) {
		v++
	}
	if rl.IsKeyDown(neg) {
		v--
	}
	return v
}

func (a *App) handleKeys() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)

	if ctrl && rl.IsKeyPressed(rl.KeyZ) {
		if a.undo.undo() {
			a.setMsg("Undo")
		}
		return
	}
	for i, m := range interact.Modes() {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			a.setMode(m)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.focus()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.session.Toggle()
	}
}

var mouseButtons = [3]struct {
	button interact.Button
	raylib rl.MouseButton
}{
	{interact.ButtonLeft, rl.MouseLeftButton},
	{interact.ButtonMiddle, rl.MouseMiddleButton},
	{interact.ButtonRight, rl.MouseRightButton},
}

// handleMouse feeds drags that start outside the panel to the
// switchboard. A left click without movement selects.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	for i, b := range mouseButtons {
		if rl.IsMouseButtonPressed(b.raylib) {
			a.dragging[i] = !a.panel.contains(mouse)
			a.dragged[i] = false
			if a.dragging[i] && a.switchboard.Binding(b.button) == interact.ManipScale {
				a.undo.push(a.stage.Current())
			}
		}
		if a.dragging[i] && rl.IsMouseButtonDown(b.raylib) {
			d := rl.GetMouseDelta()
			if a.switchboard.Drag(a.target, b.button, d.X, d.Y) {
				a.dragged[i] = true
			}
		}
		if rl.IsMouseButtonReleased(b.raylib) {
			if b.button == interact.ButtonLeft && a.dragging[i] && !a.dragged[i] {
				a.pick(mouse)
			}
			a.dragging[i] = false
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !a.panel.contains(mouse) {
		a.target.Zoom(-wheel * 0.1)
		a.redraws.RequestRedraw()
	}
}

// pick selects the mesh under the cursor, or clears the selection.
func (a *App) pick(mouse rl.Vector2) {
	if a.session.Active() {
		return
	}
	ray := rl.GetScreenToWorldRay(mouse, a.cam.GetRaylibCamera())
	hit, _ := gesture.RayPick(ray.Position, ray.Direction, a.stage.Handles.Pickable(), 0, a.cam.MaxDistance*2)
	for _, h := range a.stage.Handles.All() {
		if sel := h == hit; h.Selected() != sel {
			h.Highlight(sel)
		}
	}
}

func (a *App) setMode(m interact.Mode) {
	a.switchboard.SetMode(m)
	a.panel.mode = int32(a.switchboard.CurrentMode())
	a.setMsg("Mode: %s", a.switchboard.CurrentMode())
}

func (a *App) reset() {
	h := a.stage.Current()
	if h == nil || h.Owner() != interact.NoOwner {
		return
	}
	a.undo.push(h)
	h.Reset()
}

func (a *App) focus() {
	h := a.stage.Current()
	if h == nil {
		return
	}
	center, radius := h.Sphere()
	a.cam.FocusOn(center, radius, a.cfg.Interaction.FocusSeconds)
	a.redraws.RequestRedraw()
}

// sessionChanged ends gesture state on exit so no pressed flag or owner
// token outlives the session. On entry the emulated hands report where
// they are, since their poses were dropped while inactive.
func (a *App) sessionChanged(active bool) {
	if !active {
		a.registry.ReleaseAll()
		a.coord.Cancel()
	} else if a.emulator != nil {
		for _, ev := range a.emulator.Sync() {
			a.route(ev)
		}
	}
	a.canvas.stale = true
	a.redraws.RequestRedraw()
	a.log.Info("vr session", zap.Bool("active", active))
	if active {
		a.setMsg("VR session started")
	} else {
		a.setMsg("VR session ended")
	}
}

// loadMesh replaces the current mesh. On failure the current actor stays.
func (a *App) loadMesh(path string) {
	if path == "" {
		return
	}
	m, err := assets.LoadMesh(path)
	if err != nil {
		a.log.Warn("load mesh", zap.String("path", path), zap.Error(err))
		a.setError("Load failed: %v", err)
		return
	}
	if old := a.stage.Current(); old != nil {
		a.coord.Forget(old)
		a.undo.forget(old)
	}
	a.stage.SetMesh(m, a.meshColor, a.cfg.SelectedColor())
	a.stage.SetRepresentation(components.Representation(a.panel.repr))
	a.panel.path = path
	a.focus()
	a.watch(path)
	a.log.Info("mesh loaded", zap.String("path", path), zap.Int("triangles", m.Triangles))
	a.setMsg("Loaded %s (%d triangles)", filepath.Base(path), m.Triangles)
}

func (a *App) watch(path string) {
	a.stopWatching()
	if !a.cfg.Interaction.HotReload {
		return
	}
	w, err := assets.NewWatcher(path, reloadDebounce, a.log.Named("watch"))
	if err != nil {
		a.log.Warn("watch mesh", zap.String("path", path), zap.Error(err))
		return
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.watcher = w
	a.stopWatch = cancel
	go func() {
		defer w.Close()
		logWatcherExit(a.log, w.Run(ctx))
	}()
}

// logWatcherExit reports a watcher that stopped on its own. Cancellation
// is the normal way out.
func logWatcherExit(log *zap.Logger, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	log.Warn("watcher stopped", zap.Error(err))
}

func (a *App) stopWatching() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.watcher = nil
	a.stopWatch = nil
}

// pollReload swaps in the geometry of a changed mesh file.
func (a *App) pollReload() {
	if a.watcher == nil {
		return
	}
	var path string
	select {
	case path = <-a.watcher.Changes():
	default:
		return
	}
	m, err := assets.LoadMesh(path)
	if err != nil {
		a.log.Warn("reload mesh", zap.String("path", path), zap.Error(err))
		a.setError("Reload failed: %v", err)
		return
	}
	if !a.stage.SwapModel(m) {
		rl.UnloadModel(m.Model)
		return
	}
	a.log.Info("mesh reloaded", zap.String("path", path))
	a.setMsg("Reloaded %s", filepath.Base(path))
}

func (a *App) draw() {
	stereo := a.session.Active()
	if a.redraws.Take() || a.canvas.stale {
		a.canvas.render(a.cam, stereo, a.cfg.Window.IPD, a.drawScene)
	}

	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)
	a.canvas.blit(stereo)
	a.drawUI()
	rl.EndDrawing()
}

func (a *App) drawScene() {
	a.stage.Draw()
	if !a.session.Active() {
		return
	}
	colors := a.coord.Config().LaserColors
	for _, c := range a.registry.Live() {
		rl.DrawSphere(c.Position, 0.03, colors[c.Hand])
		if from, to, ok := a.coord.Laser.Ray(c); ok {
			rl.DrawLine3D(from, to, colors[c.Hand])
		}
	}
}

func (a *App) setMsg(format string, args ...any) {
	a.status.set(a.now(), false, format, args...)
}

func (a *App) setError(format string, args ...any) {
	a.status.set(a.now(), true, format, args...)
}
