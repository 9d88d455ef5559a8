package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
)

// SliceView is a fyne widget that draws a clipped model and forwards
// pointer input to the orbit controls of its ViewController.
type SliceView struct {
	widget.BaseWidget

	view     *ViewController
	renderer *Renderer
	cache    *isolate.Cache
	raster   *canvas.Raster

	model  *scene.Node
	plane  anatomy.Plane
	offset float64
	tint   isolate.Tint
}

// NewSliceView creates a widget drawing through view. The model is set
// later with SetModel; until then only the background is drawn.
func NewSliceView(view *ViewController) *SliceView {
	v := &SliceView{
		view:     view,
		renderer: NewRenderer(),
		cache:    isolate.NewCache(),
		plane:    anatomy.Sagittal,
	}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// SetModel replaces the drawn model. Passing nil shows the loading state.
func (v *SliceView) SetModel(model *scene.Node) {
	v.model = Stage(model)
	v.Refresh()
}

// SetSlice selects the cutting plane and offset
func (v *SliceView) SetSlice(plane anatomy.Plane, offset float64) {
	v.plane = plane
	v.offset = offset
	v.Refresh()
}

// SetTint switches the heatmap decorator
func (v *SliceView) SetTint(tint isolate.Tint) {
	v.tint = tint
	v.Refresh()
}

// SetLabel sets the caption stamped into the frame
func (v *SliceView) SetLabel(label string) {
	v.renderer.Label = label
	v.Refresh()
}

// ResetView restores the home pose and redraws
func (v *SliceView) ResetView() {
	v.view.Reset()
	v.Refresh()
}

// CacheStats exposes how often the isolation was reused
func (v *SliceView) CacheStats() isolate.CacheStats {
	return v.cache.Stats()
}

func (v *SliceView) draw(width, height int) image.Image {
	camera := v.view.Camera()
	if camera == nil || width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	}
	var root *scene.Node
	if v.model != nil {
		root = v.cache.Get(v.model, anatomy.Resolve(v.plane, v.offset), v.tint).Root
	}
	return v.renderer.Render(root, camera, width, height)
}

// CreateRenderer implements fyne.Widget
func (v *SliceView) CreateRenderer() fyne.WidgetRenderer {
	return &sliceViewRenderer{view: v}
}

// MouseDown implements desktop.Mouseable
func (v *SliceView) MouseDown(event *desktop.MouseEvent) {
	if controls := v.view.Controls(); controls != nil {
		controls.PointerDown(toButton(event.Button), float64(event.Position.X), float64(event.Position.Y))
	}
}

// MouseUp implements desktop.Mouseable
func (v *SliceView) MouseUp(event *desktop.MouseEvent) {
	if controls := v.view.Controls(); controls != nil {
		controls.PointerUp(toButton(event.Button))
	}
}

// MouseIn implements desktop.Hoverable
func (v *SliceView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable
func (v *SliceView) MouseMoved(event *desktop.MouseEvent) {
	v.pointerMoved(event.Position)
}

// MouseOut implements desktop.Hoverable
func (v *SliceView) MouseOut() {}

// Dragged implements fyne.Draggable. Fyne routes primary drags here instead
// of MouseMoved.
func (v *SliceView) Dragged(event *fyne.DragEvent) {
	v.pointerMoved(event.Position)
}

// DragEnd implements fyne.Draggable
func (v *SliceView) DragEnd() {
	if controls := v.view.Controls(); controls != nil {
		controls.Cancel()
	}
}

// Scrolled implements fyne.Scrollable
func (v *SliceView) Scrolled(event *fyne.ScrollEvent) {
	if controls := v.view.Controls(); controls != nil {
		controls.Wheel(-float64(event.Scrolled.DY))
		v.Refresh()
	}
}

func (v *SliceView) pointerMoved(pos fyne.Position) {
	controls := v.view.Controls()
	if controls == nil || !controls.Dragging() {
		return
	}
	controls.PointerMove(float64(pos.X), float64(pos.Y))
	v.Refresh()
}

func toButton(b desktop.MouseButton) Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return ButtonSecondary
	case desktop.MouseButtonTertiary:
		return ButtonAuxiliary
	default:
		return ButtonPrimary
	}
}

type sliceViewRenderer struct {
	view *SliceView
}

func (r *sliceViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
	if controls := r.view.view.Controls(); controls != nil {
		controls.SetViewport(float64(size.Width), float64(size.Height))
	}
}

func (r *sliceViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sliceViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *sliceViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *sliceViewRenderer) Destroy() {}
