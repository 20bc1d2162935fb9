package viewer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"meshvr/internal/assets"
	"meshvr/internal/components"
	"meshvr/internal/interact"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors, dark with an indigo accent.
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgScene   = rl.NewColor(22, 22, 30, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 235)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255)
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
	colorError         = rl.NewColor(255, 110, 110, 255)
)

const (
	panelWidth = 240
	rowHeight  = 26
	pad        = 12
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// panel is the state of the side panel's widgets.
type panel struct {
	repr  int32
	color int32
	mode  int32

	reprItems  string
	colorNames []string
	colorItems string
	modeItems  string

	path        string
	editingPath bool
}

func newPanel(meshColor string, mode interact.Mode) *panel {
	p := &panel{
		colorNames: assets.ColorNames(),
		mode:       int32(mode),
	}
	var reps, modes []string
	for _, r := range components.Representations() {
		reps = append(reps, r.String())
	}
	for _, m := range interact.Modes() {
		modes = append(modes, m.String())
	}
	p.reprItems = strings.Join(reps, ";")
	p.modeItems = strings.Join(modes, ";")
	p.colorItems = strings.Join(p.colorNames, ";")
	if i := slices.IndexFunc(p.colorNames, func(n string) bool { return strings.EqualFold(n, meshColor) }); i >= 0 {
		p.color = int32(i)
	}
	return p
}

func (p *panel) contains(pt rl.Vector2) bool {
	return pt.X < panelWidth
}

// drawUI draws the side panel and applies whatever the user changed.
func (a *App) drawUI() {
	p := a.panel
	h := float32(rl.GetScreenHeight())
	rl.DrawRectangleRec(rl.Rectangle{Width: panelWidth, Height: h}, colorBgPanel)

	x := float32(pad)
	w := float32(panelWidth - 2*pad)
	y := float32(pad)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}
		y += rowHeight + 6
		return r
	}
	caption := func(text string) {
		rl.DrawText(text, int32(x), int32(y), 12, colorTextMuted)
		y += 16
	}

	rl.DrawText("meshvr", int32(x), int32(y), 22, colorAccentLight)
	y += 34

	caption("FILE")
	if gui.TextBox(row(), &p.path, 512, p.editingPath) {
		p.editingPath = !p.editingPath
	}
	if gui.Button(row(), "Load") {
		p.editingPath = false
		a.loadMesh(strings.TrimSpace(p.path))
	}

	caption("REPRESENTATION")
	if r := gui.ComboBox(row(), p.reprItems, p.repr); r != p.repr {
		p.repr = r
		a.stage.SetRepresentation(components.Representation(r))
	}

	caption("COLOR")
	if c := gui.ComboBox(row(), p.colorItems, p.color); c != p.color {
		p.color = c
		a.meshColor = assets.LookupColor(p.colorNames[c])
		if cur := a.stage.Current(); cur != nil {
			cur.SetBaseColor(a.meshColor)
		}
	}

	caption("MODE")
	if m := gui.ComboBox(row(), p.modeItems, p.mode); m != p.mode {
		a.setMode(interact.Mode(m))
	}

	caption("VR")
	if gui.Button(row(), a.session.Label()) {
		a.session.Toggle()
	}
	gui.Label(row(), fmt.Sprintf("Controllers: %d", a.registry.Count()))

	caption("OBJECT")
	if gui.Button(row(), "Reset") {
		a.reset()
	}
	if gui.Button(row(), "Focus") {
		a.focus()
	}
	if src := a.stage.Source(); src != nil {
		rl.DrawText(filepath.Base(src.Path), int32(x), int32(y), 12, colorTextSecondary)
		y += 16
		rl.DrawText(fmt.Sprintf("%d triangles", src.Triangles), int32(x), int32(y), 12, colorTextMuted)
		y += 22
	}

	for _, line := range helpLines {
		rl.DrawText(line, int32(x), int32(y), 10, colorTextMuted)
		y += 14
	}

	now := rl.GetTime()
	if a.status.visible(now) {
		col := colorTextPrimary
		if a.status.failed {
			col = colorError
		}
		rl.DrawText(a.status.text, int32(x), int32(h)-24, 12, col)
	}
}

var helpLines = []string{
	"Drag L/M/R: per mode, wheel: zoom",
	"1-4 mode, R reset, F focus, V VR",
	"Ctrl+Z undo, drop a file to load",
	"Emulator: Tab hand, C connect",
	"T trigger, G grip, IJKL/UO move",
	"Q/E turn",
}
