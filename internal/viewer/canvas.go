package viewer

import (
	"meshvr/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// canvas is the offscreen target the 3D scene is rendered into. It is only
// re-rendered on request; every frame blits it under the UI. In stereo the
// window is split into two eye textures side by side.
type canvas struct {
	mono   rl.RenderTexture2D
	eyes   [2]rl.RenderTexture2D
	width  int32
	height int32
	loaded bool
	stale  bool
}

// resize reallocates the targets when the window size changed.
func (c *canvas) resize(w, h int32) {
	if w <= 0 || h <= 0 {
		return
	}
	if c.loaded && w == c.width && h == c.height {
		return
	}
	c.unload()
	c.mono = rl.LoadRenderTexture(w, h)
	c.eyes[0] = rl.LoadRenderTexture(w/2, h)
	c.eyes[1] = rl.LoadRenderTexture(w-w/2, h)
	c.width, c.height = w, h
	c.loaded = true
	c.stale = true
}

func (c *canvas) render(cam *camera.OrbitCamera, stereo bool, ipd float32, draw func()) {
	if !c.loaded {
		return
	}
	if stereo {
		left, right := cam.EyeCameras(ipd)
		renderInto(c.eyes[0], left, draw)
		renderInto(c.eyes[1], right, draw)
	} else {
		renderInto(c.mono, cam.GetRaylibCamera(), draw)
	}
	c.stale = false
}

func renderInto(target rl.RenderTexture2D, cam rl.Camera3D, draw func()) {
	rl.BeginTextureMode(target)
	rl.ClearBackground(colorBgScene)
	rl.BeginMode3D(cam)
	draw()
	rl.EndMode3D()
	rl.EndTextureMode()
}

func (c *canvas) blit(stereo bool) {
	if !c.loaded {
		return
	}
	if !stereo {
		drawFlipped(c.mono.Texture, 0)
		return
	}
	drawFlipped(c.eyes[0].Texture, 0)
	drawFlipped(c.eyes[1].Texture, float32(c.width/2))
	rl.DrawLine(c.width/2, 0, c.width/2, c.height, colorBgDark)
}

// drawFlipped draws a render texture upright; framebuffers are stored
// bottom-up.
func drawFlipped(tex rl.Texture2D, x float32) {
	src := rl.Rectangle{Width: float32(tex.Width), Height: -float32(tex.Height)}
	rl.DrawTextureRec(tex, src, rl.Vector2{X: x}, rl.White)
}

func (c *canvas) unload() {
	if !c.loaded {
		return
	}
	rl.UnloadRenderTexture(c.mono)
	rl.UnloadRenderTexture(c.eyes[0])
	rl.UnloadRenderTexture(c.eyes[1])
	c.loaded = false
}
