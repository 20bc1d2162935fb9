package viewer

import (
	"path/filepath"

	"meshvr/internal/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleFileDrop loads the first supported file of a drop.
func (a *App) handleFileDrop() {
	if !rl.IsFileDropped() {
		return
	}

	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	if path, ok := firstSupported(files, assets.Supported); ok {
		a.loadMesh(path)
		return
	}
	if len(files) > 0 {
		a.setError("Unsupported file type: %s", filepath.Ext(files[0]))
	}
}
