package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/viewer"
	"github.com/philipparndt/neurosight/version"
)

type App struct {
	window fyne.Window
	config viewer.Config

	ctx    context.Context
	cancel context.CancelFunc
	source *asset.Source

	view  *viewer.SliceView
	slice viewer.SliceConfig
	info  *SliceInfo
}

// SliceInfo holds the labels and controls of the side panel
type SliceInfo struct {
	modelLabel     *widget.Label
	statusLabel    *widget.Label
	offsetLabel    *widget.Label
	planeSelect    *widget.RadioGroup
	offsetSlider   *widget.Slider
	heatmapCheck   *widget.Check
	intensitySlide *widget.Slider
}

func main() {
	cfg := viewer.DefaultConfig()
	if path := os.Getenv("NEUROSIGHT_CONFIG"); path != "" {
		loaded, err := viewer.LoadConfig(path)
		if err != nil {
			slog.Error("failed to load config, using defaults", "path", path, "err", err)
		} else {
			cfg = loaded
		}
	}

	a := app.New()
	w := a.NewWindow("NeuroSight " + version.GetVersion())

	ctx, cancel := context.WithCancel(context.Background())
	appInstance := &App{
		window: w,
		config: cfg,
		slice:  cfg.Slice,
		ctx:    ctx,
		cancel: cancel,
	}
	w.SetOnClosed(appInstance.close)

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to NeuroSight")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Model' to load a .glb, .gltf or .stl file")

	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

// loadFile shows the main UI right away and fills in the model once the
// background load finishes
func (a *App) loadFile(filename string) {
	if a.source != nil {
		a.source.Close()
	}

	if a.view == nil {
		ctrl, err := viewer.NewView(a.config)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.view = viewer.NewSliceView(ctrl)
		a.setupMainUI()
	}
	a.view.SetModel(nil)
	a.info.modelLabel.SetText("Model: " + filename)
	a.info.statusLabel.SetText("Loading...")

	src := asset.NewSource(filename)
	src.OnChange(func(model *scene.Node) {
		fyne.Do(func() { a.showModel(model) })
	})
	src.Start()
	if err := src.Watch(a.ctx); err != nil {
		slog.Warn("auto-reload not available", "err", err)
	}
	a.source = src

	go func() {
		if _, err := src.Wait(a.ctx); err != nil {
			fyne.Do(func() {
				a.info.statusLabel.SetText("Load failed")
				dialog.ShowError(fmt.Errorf("failed to load model: %w", err), a.window)
			})
		}
	}()
}

func (a *App) showModel(model *scene.Node) {
	stats := model.Stats()
	a.info.statusLabel.SetText(fmt.Sprintf("Meshes: %d\nTriangles: %d\nWithout material: %d",
		stats.Meshes, stats.Triangles, stats.Unstyled))
	a.view.SetModel(model)
}

func (a *App) setupMainUI() {
	a.info = &SliceInfo{
		modelLabel:  widget.NewLabel(""),
		statusLabel: widget.NewLabel(""),
		offsetLabel: widget.NewLabel(""),
	}
	a.info.modelLabel.Wrapping = fyne.TextWrapBreak

	// Plane selection
	labels := make([]string, 0, len(anatomy.Planes()))
	byLabel := make(map[string]anatomy.Plane)
	for _, p := range anatomy.Planes() {
		labels = append(labels, p.Label())
		byLabel[p.Label()] = p
	}
	a.info.planeSelect = widget.NewRadioGroup(labels, func(selected string) {
		plane, ok := byLabel[selected]
		if !ok {
			plane = anatomy.Unknown
		}
		if plane == a.slice.Plane {
			return
		}
		a.slice.Plane = plane
		// A new plane starts from the center.
		a.slice.Offset = 0
		a.info.offsetSlider.SetValue(0)
		a.applySlice()
	})

	a.info.offsetSlider = widget.NewSlider(anatomy.OffsetMin, anatomy.OffsetMax)
	a.info.offsetSlider.Step = anatomy.OffsetStep
	a.info.offsetSlider.OnChanged = func(value float64) {
		a.slice.Offset = value
		a.applySlice()
	}

	a.info.intensitySlide = widget.NewSlider(0, 1)
	a.info.intensitySlide.Step = 0.05
	a.info.intensitySlide.OnChanged = func(value float64) {
		a.slice.Intensity = value
		a.applySlice()
	}

	a.info.heatmapCheck = widget.NewCheck("Heatmap", func(checked bool) {
		a.slice.Heatmap = checked
		if checked {
			a.info.intensitySlide.Enable()
		} else {
			a.info.intensitySlide.Disable()
		}
		a.applySlice()
	})

	resetButton := widget.NewButton("Reset View", a.view.ResetView)
	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			fmt.Sprintf("• Left drag: %s\n", a.config.Buttons.Primary) +
			fmt.Sprintf("• Right drag: %s\n", a.config.Buttons.Secondary) +
			fmt.Sprintf("• Middle drag: %s\n", a.config.Buttons.Auxiliary) +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	panel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.info.modelLabel,
		a.info.statusLabel,
		widget.NewSeparator(),
		widget.NewLabel("Plane:"),
		a.info.planeSelect,
		a.info.offsetLabel,
		a.info.offsetSlider,
		widget.NewSeparator(),
		a.info.heatmapCheck,
		a.info.intensitySlide,
		widget.NewSeparator(),
		resetButton,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
	)

	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(300, 0))

	a.window.SetContent(container.NewBorder(nil, nil, nil, scroll, a.view))

	// Seed the controls from the config without triggering a plane reset.
	a.info.offsetSlider.Value = anatomy.ClampOffset(a.slice.Offset)
	a.info.intensitySlide.Value = a.slice.Intensity
	a.info.heatmapCheck.SetChecked(a.slice.Heatmap)
	if !a.slice.Heatmap {
		a.info.intensitySlide.Disable()
	}
	if a.slice.Plane != anatomy.Unknown {
		a.info.planeSelect.SetSelected(a.slice.Plane.Label())
	}
	a.applySlice()
}

// applySlice pushes the panel state into the view
func (a *App) applySlice() {
	if a.view == nil || a.info.offsetSlider == nil {
		return
	}
	a.info.offsetSlider.Refresh()
	a.info.offsetLabel.SetText(fmt.Sprintf("Offset: %+.2f", a.slice.Offset))

	a.view.SetSlice(a.slice.Plane, a.slice.Offset)
	if a.slice.Heatmap {
		a.view.SetTint(isolate.Heat(a.slice.Intensity))
	} else {
		a.view.SetTint(isolate.NoTint)
	}
	if a.slice.Plane == anatomy.Unknown {
		a.view.SetLabel("")
		return
	}
	a.view.SetLabel(fmt.Sprintf("%s  %+.2f", a.slice.Plane.Label(), a.slice.Offset))
}

func (a *App) close() {
	a.cancel()
	if a.source != nil {
		a.source.Close()
	}
}
