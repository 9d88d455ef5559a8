package viewer

import (
	"image"
	"image/color"
	"math"
	"slices"
)

// screenVertex is a projected vertex: pixel coordinates plus view depth
type screenVertex struct {
	x, y, z float64
}

// frame is a color buffer with a matching depth buffer
type frame struct {
	img    *image.RGBA
	depth  []float64
	width  int
	height int
}

func newFrame(width, height int, background color.RGBA) *frame {
	f := &frame{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:  make([]float64, width*height),
		width:  width,
		height: height,
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.img.SetRGBA(x, y, background)
		}
	}
	return f
}

// plot writes col at (x, y) if z is closer than what is already there
func (f *frame) plot(x, y int, z float64, col color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	idx := y*f.width + x
	if z < f.depth[idx] {
		f.depth[idx] = z
		f.img.SetRGBA(x, y, col)
	}
}

// fillTriangle scan-converts a triangle with depth testing
func (f *frame) fillTriangle(a, b, c screenVertex, col color.RGBA) {
	v := []screenVertex{a, b, c}
	slices.SortFunc(v, func(p, q screenVertex) int {
		switch {
		case p.y < q.y:
			return -1
		case p.y > q.y:
			return 1
		}
		return 0
	})
	top, mid, bottom := v[0], v[1], v[2]
	if bottom.y == top.y {
		return
	}

	yStart := max(0, int(math.Ceil(top.y)))
	yEnd := min(f.height-1, int(math.Floor(bottom.y)))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge spans the full height; the short one switches at mid.
		xl, zl := edgeAt(top, bottom, fy)
		var xr, zr float64
		if fy < mid.y {
			xr, zr = edgeAt(top, mid, fy)
		} else {
			xr, zr = edgeAt(mid, bottom, fy)
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		xStart := max(0, int(math.Ceil(xl)))
		xEnd := min(f.width-1, int(math.Floor(xr)))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			f.plot(x, y, zl+t*(zr-zl), col)
		}
	}
}

func edgeAt(a, b screenVertex, y float64) (x, z float64) {
	if b.y == a.y {
		return a.x, a.z
	}
	t := (y - a.y) / (b.y - a.y)
	return a.x + t*(b.x-a.x), a.z + t*(b.z-a.z)
}

// drawLine draws a depth-tested line with Bresenham's algorithm. bias pulls
// the line towards the viewer so it wins against the faces it lies on.
func (f *frame) drawLine(a, b screenVertex, bias float64, col color.RGBA) {
	x1, y1 := int(math.Round(a.x)), int(math.Round(a.y))
	x2, y2 := int(math.Round(b.x)), int(math.Round(b.y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	steps := max(dx, dy)
	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plot(x1, y1, a.z+t*(b.z-a.z)-bias, col)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
