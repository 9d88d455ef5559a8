package app

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/viewer"
)

// Options configures the interactive viewer
type Options struct {
	Path   string
	Config viewer.Config
	Watch  bool // reload the model when its file changes
}

type App struct {
	Camera      CameraState
	Model       ModelData
	Slice       SliceState
	View        ViewSettings
	Interaction InteractionState
	Loading     LoadingState
	Slider      SliderState
	UI          UIState
}

// UIState holds UI resources
type UIState struct {
	font rl.Font
}

// newApp builds the viewer state without touching the window
func newApp(opts Options) (*App, error) {
	view, err := viewer.NewView(opts.Config)
	if err != nil {
		return nil, err
	}

	app := &App{
		Camera: CameraState{view: view},
		Model: ModelData{
			source: asset.NewSource(opts.Path),
			cache:  isolate.NewCache(),
		},
		Slice: SliceState{
			plane:     opts.Config.Slice.Plane,
			offset:    opts.Config.Slice.Offset,
			heatmap:   opts.Config.Slice.Heatmap,
			intensity: opts.Config.Slice.Intensity,
		},
		View: ViewSettings{
			showContour: true,
		},
		Interaction: InteractionState{held: make(map[viewer.Button]bool)},
	}
	app.setOffset(app.Slice.offset)
	return app, nil
}

// Run opens the window and blocks until it is closed
func Run(ctx context.Context, opts Options) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}

	app.Model.source.Start()
	defer app.Model.source.Close()
	if opts.Watch {
		if err := app.Model.source.Watch(ctx); err != nil {
			slog.Warn("auto-reload not available", "err", err)
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // must be before InitWindow
	rl.InitWindow(1400, 900, "NeuroSight")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app.UI.font = rl.GetFontDefault()
	app.syncCamera()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil || (ctrlDown() && rl.IsKeyPressed(rl.KeyC)) {
			break
		}

		app.pollModel()
		app.handleInput()
		app.syncCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		// The 3D content appears only once the model is ready; the overlay stays live.
		if mesh := app.currentMesh(); mesh != nil {
			rl.BeginMode3D(app.Camera.camera)
			app.drawModel(mesh)
			if app.View.showWireframe {
				app.drawWireframe(mesh)
			}
			if app.View.showContour {
				app.drawContour(mesh)
			}
			rl.EndMode3D()
		}

		app.drawUI()
		rl.EndDrawing()
	}
	return nil
}

// pollModel picks up the latest scene from the source without blocking.
// A new version replaces the staged model and drops the isolation memo.
func (app *App) pollModel() {
	src := app.Model.source

	loading := src.Loading()
	if loading && !app.Loading.active {
		app.Loading.startTime = time.Now()
	}
	app.Loading.active = loading

	version := src.Version()
	model, ok := src.Scene()
	if !ok || version == app.Model.version {
		return
	}

	app.Model.version = version
	app.Model.staged = viewer.Stage(model)
	app.Model.cache.Invalidate()
	app.Model.prepared = nil

	stats := model.Stats()
	slog.Info("model ready",
		"path", src.Path(),
		"version", app.Model.version,
		"meshes", stats.Meshes,
		"triangles", stats.Triangles,
		"unstyled", stats.Unstyled)
}
