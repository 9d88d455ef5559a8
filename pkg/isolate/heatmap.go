package isolate

import (
	"math"

	"github.com/philipparndt/neurosight/pkg/scene"
)

// Heatmap endpoints. The tint is decorative and carries no data.
var (
	HeatmapNeutral = scene.Hex(0xd9d9d9)
	HeatmapHot     = scene.Hex(0xff6b00)
)

// DefaultHeatmapIntensity is used when the tint is switched on without a value
const DefaultHeatmapIntensity = 1.0

// Heatmap colors each material between neutral gray (0) and the hot tint (1).
// Intensity is clamped to [0, 1].
func Heatmap(intensity float64) Decorator {
	t := clampUnit(intensity)
	return func(m *scene.Material) {
		m.Color = HeatmapNeutral.Lerp(HeatmapHot, t)
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}
